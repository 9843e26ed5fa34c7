package raster

// RasterizerBuilderOption is a functional option used to configure a Rasterizer during construction.
type RasterizerBuilderOption func(*rasterizer)

// WithWorkers sets the number of pool workers used for parallel fragment shading.
// Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - RasterizerBuilderOption: a function that sets the worker count for this rasterizer
func WithWorkers(n int) RasterizerBuilderOption {
	return func(r *rasterizer) {
		if n >= 1 {
			r.workers = n
		}
	}
}
