package scene

import "haunted-house/core"

// StandardMaterial is a metallic-roughness PBR material. Every map slot is
// optional; a nil slot, or a texture that failed to load, falls back to the
// scalar parameter. Materials may be shared by reference across meshes.
type StandardMaterial struct {
	Name  string
	Color core.Color

	Metalness float32
	Roughness float32

	Map             *Texture // base color
	NormalMap       *Texture
	RoughnessMap    *Texture // G channel
	MetalnessMap    *Texture // B channel
	AOMap           *Texture // R channel, sampled with UV2
	AOMapIntensity  float32
	AlphaMap        *Texture // G channel
	DisplacementMap *Texture

	DisplacementScale float32
	Transparent       bool
}

// NewStandardMaterial returns the usual defaults: white, fully rough, non-metallic.
func NewStandardMaterial(name string) *StandardMaterial {
	return &StandardMaterial{
		Name:              name,
		Color:             core.ColorWhite,
		Metalness:         0,
		Roughness:         1,
		AOMapIntensity:    1,
		DisplacementScale: 1,
	}
}

// Textures lists the non-nil map slots.
func (m *StandardMaterial) Textures() []*Texture {
	var out []*Texture
	for _, t := range []*Texture{m.Map, m.NormalMap, m.RoughnessMap, m.MetalnessMap, m.AOMap, m.AlphaMap, m.DisplacementMap} {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}
