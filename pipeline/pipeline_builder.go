package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/halcyonite/softshade/stage"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithVertexProgram sets the vertex program for this pipeline.
//
// Parameters:
//   - p: the vertex program to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the vertex program for this pipeline
func WithVertexProgram(p stage.VertexProgram) PipelineBuilderOption {
	return func(pl *pipeline) {
		pl.vertexProgram = p
	}
}

// WithFragmentProgram sets the fragment program for this pipeline.
//
// Parameters:
//   - p: the fragment program to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the fragment program for this pipeline
func WithFragmentProgram(p stage.FragmentProgram) PipelineBuilderOption {
	return func(pl *pipeline) {
		pl.fragmentProgram = p
	}
}

// WithCullMode sets the cull mode for this pipeline.
//
// Parameters:
//   - mode: the cull mode to use for this pipeline (e.g., wgpu.CullModeNone, wgpu.CullModeFront, wgpu.CullModeBack)
//
// Returns:
//   - PipelineBuilderOption: a function that sets the cull mode for this pipeline
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(pl *pipeline) {
		pl.cullMode = mode
	}
}

// WithTopology sets the primitive topology for this pipeline.
//
// Parameters:
//   - topology: the primitive topology to use for this pipeline (e.g., wgpu.PrimitiveTopologyTriangleList)
//
// Returns:
//   - PipelineBuilderOption: a function that sets the primitive topology for this pipeline
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(pl *pipeline) {
		pl.topology = topology
	}
}

// WithFrontFace sets the front face winding order for this pipeline.
//
// Parameters:
//   - frontFace: the front face to use for this pipeline (e.g., wgpu.FrontFaceCW, wgpu.FrontFaceCCW)
//
// Returns:
//   - PipelineBuilderOption: a function that sets the front face for this pipeline
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(pl *pipeline) {
		pl.frontFace = frontFace
	}
}
