// Package raster executes a render pipeline in software: it runs the vertex
// program once per input vertex, maps clip-space positions onto the target,
// interpolates varyings across each triangle, and runs the fragment program
// once per covered pixel. It is the minimal host harness the stage programs
// need; there is no device, no command recording, and no presentation.
package raster

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/halcyonite/softshade/binding"
	"github.com/halcyonite/softshade/pipeline"
	"github.com/halcyonite/softshade/stage"
)

// bandRows is the minimum bounding-box height before a triangle's fragment
// work is split across the worker pool. Smaller triangles shade inline.
const bandRows = 16

// rasterizer is the implementation of the Rasterizer interface.
type rasterizer struct {
	// pool manages a bounded set of reusable goroutines for parallel fragment
	// shading. Workers persist across draws, avoiding per-draw goroutine
	// spawn/teardown overhead.
	pool    worker.DynamicWorkerPool
	workers int // stored so we can log/inspect the configured count
}

// Rasterizer defines the interface for the software rasterization harness that
// draws a pipeline's output into a render target.
type Rasterizer interface {
	// Workers returns the number of pool workers configured for fragment shading.
	//
	// Returns:
	//   - int: the configured worker count
	Workers() int

	// Draw runs the pipeline over the vertex stream and writes shaded fragments
	// into the target. The pipeline's stage interfaces are validated first, and
	// every sampler binding the fragment shader declares must be satisfied by
	// the resource table. Vertices are consumed three at a time as a triangle
	// list; a trailing partial triangle is ignored.
	//
	// Parameters:
	//   - p: the pipeline to draw with
	//   - vertices: the vertex input stream
	//   - resources: the binding table supplying textures, may be nil if the fragment shader declares no samplers
	//   - t: the render target receiving fragment colors
	//
	// Returns:
	//   - error: an error if the pipeline is not drawable or a binding is unsatisfied
	Draw(p pipeline.Pipeline, vertices []stage.VertexInput, resources binding.Provider, t Target) error
}

var _ Rasterizer = &rasterizer{}

// NewRasterizer creates a new software rasterizer with all specified options
// applied. The default worker count leaves one CPU for the caller.
//
// Parameters:
//   - opts: a variadic list of RasterizerBuilderOption functions to configure the rasterizer
//
// Returns:
//   - Rasterizer: a new Rasterizer instance
func NewRasterizer(opts ...RasterizerBuilderOption) Rasterizer {
	r := &rasterizer{
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	// Initialize the pool after options so WithWorkers can override the default.
	// Queue size of 256 accommodates the row bands of any draw with headroom.
	r.pool = worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)
	return r
}

func (r *rasterizer) Workers() int {
	return r.workers
}

func (r *rasterizer) Draw(p pipeline.Pipeline, vertices []stage.VertexInput, resources binding.Provider, t Target) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("pipeline %s: %w", p.PipelineKey(), err)
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		return fmt.Errorf("pipeline %s: unsupported topology, only triangle lists are drawable", p.PipelineKey())
	}

	// Every sampler binding the fragment shader declares must have a texture
	// attached before any fragment is shaded; the stage itself has no error channel.
	for _, sb := range p.FragmentProgram().Shader().Samplers() {
		if resources == nil || resources.Texture(sb.Binding) == nil {
			return fmt.Errorf("pipeline %s: sampler binding %d has no texture attached", p.PipelineKey(), sb.Binding)
		}
	}

	vertexProgram := p.VertexProgram()
	outputs := make([]stage.VertexOutput, len(vertices))
	for i, v := range vertices {
		outputs[i] = vertexProgram.Execute(v)
	}

	for i := 0; i+2 < len(outputs); i += 3 {
		r.rasterizeTriangle(p, outputs[i], outputs[i+1], outputs[i+2], resources, t)
	}

	return nil
}

// screenVertex is a vertex output mapped onto the target's pixel grid.
type screenVertex struct {
	x, y     float32
	varyings []stage.Varying
}

// rasterizeTriangle maps one triangle to the pixel grid, applies facing and
// cull rules, and shades the covered pixels. Rows of large triangles are split
// into bands across the worker pool; triangles are processed sequentially so
// no two tasks ever touch the same pixel.
func (r *rasterizer) rasterizeTriangle(p pipeline.Pipeline, v0, v1, v2 stage.VertexOutput, resources binding.Provider, t Target) {
	a := toScreen(v0, t)
	b := toScreen(v1, t)
	c := toScreen(v2, t)

	// Signed parallelogram area in pixel coordinates. With y growing downward,
	// a positive area means clockwise winding on screen.
	area := (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
	if area == 0 {
		return
	}

	frontFacing := (area > 0) == (p.FrontFace() == wgpu.FrontFaceCW)
	switch p.CullMode() {
	case wgpu.CullModeBack:
		if !frontFacing {
			return
		}
	case wgpu.CullModeFront:
		if frontFacing {
			return
		}
	}

	minX := clampPixel(int(math.Floor(float64(minf(a.x, b.x, c.x)))), t.Width())
	maxX := clampPixel(int(math.Ceil(float64(maxf(a.x, b.x, c.x)))), t.Width())
	minY := clampPixel(int(math.Floor(float64(minf(a.y, b.y, c.y)))), t.Height())
	maxY := clampPixel(int(math.Ceil(float64(maxf(a.y, b.y, c.y)))), t.Height())

	rows := maxY - minY + 1
	if rows < bandRows {
		r.shadeRows(p, a, b, c, area, minX, maxX, minY, maxY, resources, t)
		return
	}

	// Parallel fragment shading: one task per row band, with a WaitGroup as the
	// per-draw barrier since pool.Wait() blocks until workers idle-exit.
	bands := min(r.workers, rows)
	rowsPerBand := (rows + bands - 1) / bands

	var wg sync.WaitGroup
	taskID := 0
	for band := 0; band < bands; band++ {
		bandMinY := minY + band*rowsPerBand
		bandMaxY := min(bandMinY+rowsPerBand-1, maxY)
		if bandMinY > maxY {
			break
		}

		wg.Add(1)
		id := taskID
		taskID++
		r.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				r.shadeRows(p, a, b, c, area, minX, maxX, bandMinY, bandMaxY, resources, t)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// shadeRows shades all covered pixels in rows [minY, maxY] of one triangle.
func (r *rasterizer) shadeRows(p pipeline.Pipeline, a, b, c screenVertex, area float32, minX, maxX, minY, maxY int, resources binding.Provider, t Target) {
	fragmentProgram := p.FragmentProgram()

	// Scratch varying slice reused across pixels in this band.
	varyings := make([]stage.Varying, len(a.varyings))

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5

			// Barycentric weights from edge functions, normalized by the
			// signed area so coverage is winding-independent.
			l0 := ((b.x-px)*(c.y-py) - (b.y-py)*(c.x-px)) / area
			l1 := ((c.x-px)*(a.y-py) - (c.y-py)*(a.x-px)) / area
			l2 := 1 - l0 - l1
			if l0 < 0 || l1 < 0 || l2 < 0 {
				continue
			}

			// All vertex programs emit w=1, so linear interpolation in screen
			// space matches the rasterizer contract for these interpolants.
			for i := range a.varyings {
				varyings[i] = stage.Varying{
					Location:   a.varyings[i].Location,
					Components: a.varyings[i].Components,
					Value: a.varyings[i].Value.Mul(l0).
						Add(b.varyings[i].Value.Mul(l1)).
						Add(c.varyings[i].Value.Mul(l2)),
				}
			}

			out := fragmentProgram.Execute(stage.FragmentInput{
				Varyings:  varyings,
				Resources: resources,
			})
			t.setPixel(x, y, out.Color)
		}
	}
}

// toScreen maps a clip-space vertex onto the target's pixel grid using the
// Vulkan conventions the shader sources were written against: x and y in
// [-1, 1] after the w divide, with +y pointing down the image.
func toScreen(v stage.VertexOutput, t Target) screenVertex {
	invW := 1 / v.ClipPosition.W()
	ndcX := v.ClipPosition.X() * invW
	ndcY := v.ClipPosition.Y() * invW
	return screenVertex{
		x:        (ndcX + 1) / 2 * float32(t.Width()),
		y:        (ndcY + 1) / 2 * float32(t.Height()),
		varyings: v.Varyings,
	}
}

func clampPixel(i, size int) int {
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}

func minf(a, b, c float32) float32 {
	return min(a, min(b, c))
}

func maxf(a, b, c float32) float32 {
	return max(a, max(b, c))
}
