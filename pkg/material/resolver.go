package material

import (
	"github.com/softtracer/go-pbr-pathtracer/pkg/core"
	"github.com/softtracer/go-pbr-pathtracer/pkg/scene"
)

// Hit is a resolved, texture-modulated snapshot of a material at one
// shading point. Created fresh per shading evaluation, never persisted.
type Hit struct {
	BaseColor core.Vec3
	Emittance core.Vec3
	Metallic  float64
	Roughness float64
}

// Resolver resolves material ids against the shared material buffer,
// applying texture modulation through the external sampler
type Resolver struct {
	materials []scene.Material
	textures  core.TextureSampler
}

// NewResolver creates a resolver over the scene's material buffer.
// textures may be nil when the scene carries no textured materials.
func NewResolver(materials []scene.Material, textures core.TextureSampler) *Resolver {
	return &Resolver{materials: materials, textures: textures}
}

// Resolve snapshots the material at the given uv. Each factor multiplies by
// its texture sample only when the texture id is non-negative; the packed
// metallic-roughness texture contributes roughness from G and metallic
// from B. Without a sampler every material shades untextured.
func (r *Resolver) Resolve(materialID int, uv core.Vec2) Hit {
	m := r.materials[materialID]
	hit := Hit{
		BaseColor: m.BaseColor,
		Emittance: m.Emittance,
		Metallic:  m.Metallic,
		Roughness: m.Roughness,
	}
	if r.textures == nil {
		return hit
	}

	if m.ColorTexture >= 0 {
		hit.BaseColor = hit.BaseColor.MultiplyVec(r.textures.Sample(m.ColorTexture, uv))
	}
	if m.EmittanceTexture >= 0 {
		hit.Emittance = hit.Emittance.MultiplyVec(r.textures.Sample(m.EmittanceTexture, uv))
	}
	if m.MetallicRoughnessTexture >= 0 {
		mr := r.textures.Sample(m.MetallicRoughnessTexture, uv)
		hit.Roughness *= mr.Y
		hit.Metallic *= mr.Z
	}

	return hit
}
