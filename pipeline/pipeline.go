package pipeline

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/halcyonite/softshade/shader"
	"github.com/halcyonite/softshade/stage"
)

// pipeline is the implementation of the Pipeline interface.
// It pairs a vertex program with a fragment program and holds the fixed-function
// state the rasterizer honors when drawing with it.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	vertexProgram   stage.VertexProgram
	fragmentProgram stage.FragmentProgram

	// The following properties configure rasterization and can be toggled/set with the builder options.

	cullMode  wgpu.CullMode
	topology  wgpu.PrimitiveTopology
	frontFace wgpu.FrontFace
}

// Pipeline defines the interface for a render pipeline: a vertex program and a
// fragment program whose stage interfaces must match, plus the primitive
// topology, cull mode, and front-face winding the rasterizer applies.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// VertexProgram retrieves the vertex program of this pipeline.
	//
	// Returns:
	//   - stage.VertexProgram: the vertex program, or nil if not set
	VertexProgram() stage.VertexProgram

	// FragmentProgram retrieves the fragment program of this pipeline.
	//
	// Returns:
	//   - stage.FragmentProgram: the fragment program, or nil if not set
	FragmentProgram() stage.FragmentProgram

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline (e.g., wgpu.CullModeNone, wgpu.CullModeFront, wgpu.CullModeBack)
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline (e.g., wgpu.PrimitiveTopologyTriangleList)
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline (e.g., wgpu.FrontFaceCW, wgpu.FrontFaceCCW)
	FrontFace() wgpu.FrontFace

	// Validate checks that the pipeline is drawable: both programs are set and
	// the fragment stage's input interface is satisfied by the vertex stage's
	// outputs, location by location with matching component counts. This is the
	// type/arity contract between paired stages; binding-point satisfaction is
	// checked at draw time against the resource table actually bound.
	//
	// Returns:
	//   - error: an error describing the first interface mismatch, or nil if the pipeline is drawable
	Validate() error
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new Pipeline interface.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the provided configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey: pipelineKey,
		cullMode:    wgpu.CullModeNone,
		topology:    wgpu.PrimitiveTopologyTriangleList,
		frontFace:   wgpu.FrontFaceCW,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) VertexProgram() stage.VertexProgram {
	return p.vertexProgram
}

func (p *pipeline) FragmentProgram() stage.FragmentProgram {
	return p.fragmentProgram
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) Validate() error {
	if p.vertexProgram == nil || p.fragmentProgram == nil {
		return errors.New("both vertex and fragment programs must be set to draw with a render pipeline")
	}
	return validateStageInterfaces(p.vertexProgram.Shader(), p.fragmentProgram.Shader())
}

// validateStageInterfaces checks the vertex stage's declared outputs against the
// fragment stage's declared inputs. Every fragment input location must be fed by
// a vertex output of the same arity; extra vertex outputs are permitted and
// simply go unconsumed.
func validateStageInterfaces(vert, frag shader.Shader) error {
	if vert.ShaderType() != shader.ShaderTypeVertex {
		return fmt.Errorf("%s is not a vertex shader", vert.Key())
	}
	if frag.ShaderType() != shader.ShaderTypeFragment {
		return fmt.Errorf("%s is not a fragment shader", frag.Key())
	}

	for _, in := range frag.Inputs() {
		out, ok := vert.Output(in.Location)
		if !ok {
			return fmt.Errorf("fragment input %s at location %d has no matching vertex output", in.Name, in.Location)
		}
		if out.Components != in.Components {
			return fmt.Errorf("interpolant at location %d has mismatched arity: vertex outputs %s (%d components), fragment expects %s (%d components)",
				in.Location, out.TypeName, out.Components, in.TypeName, in.Components)
		}
	}

	return nil
}
