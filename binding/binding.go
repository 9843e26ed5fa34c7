// Package binding wires external resources to shader stages by numeric binding
// point. A stage never looks resources up by name: the binding indices declared
// in the shader source are the contract, and the provider is the table a host
// populates to satisfy it.
package binding

import (
	"sort"

	"github.com/halcyonite/softshade/common"
	"github.com/halcyonite/softshade/texture"
)

// provider is the unexported implementation of Provider.
type provider struct {
	// label is a debug label added for convenience.
	label string

	// textures holds the combined image+sampler resources, keyed by binding point index.
	textures map[int]texture.Texture
}

// Provider defines the interface for the numbered resource slots a fragment
// stage reads from. A host attaches textures at the binding points the shader
// declares; the stage resolves binding 0, binding 1, ... against this table
// at invocation time.
type Provider interface {
	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Texture retrieves the texture attached at the given binding point.
	//
	// Parameters:
	//   - binding: the binding point index
	//
	// Returns:
	//   - texture.Texture: the texture at the binding point, or nil if none is attached
	Texture(binding int) texture.Texture

	// Bindings retrieves the populated binding point indices in ascending order.
	//
	// Returns:
	//   - []int: the binding points that have a texture attached
	Bindings() []int

	// SetTexture attaches a texture at the given binding point, replacing any
	// texture previously attached there.
	//
	// Parameters:
	//   - binding: the binding point index
	//   - t: the texture to attach
	SetTexture(binding int, t texture.Texture)
}

var _ Provider = &provider{}

// NewProvider creates a new empty Provider with the given debug label.
//
// Parameters:
//   - label: a debug label for this provider
//
// Returns:
//   - Provider: a new Provider with no resources attached
func NewProvider(label string) Provider {
	return &provider{
		label:    common.Coalesce(label, "provider"),
		textures: make(map[int]texture.Texture),
	}
}

func (p *provider) Label() string {
	return p.label
}

func (p *provider) Texture(binding int) texture.Texture {
	return p.textures[binding]
}

func (p *provider) Bindings() []int {
	result := make([]int, 0, len(p.textures))
	for b := range p.textures {
		result = append(result, b)
	}
	sort.Ints(result)
	return result
}

func (p *provider) SetTexture(binding int, t texture.Texture) {
	p.textures[binding] = t
}
