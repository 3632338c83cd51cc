package core

// HitInfo describes a resolved ray-surface intersection. It is produced once
// per trace call and consumed immediately; nothing retains it across bounces.
type HitInfo struct {
	Position   Vec3 // World-space hit position
	Normal     Vec3 // World-space geometric normal (unit length)
	UV         Vec2 // Interpolated texture coordinates
	MaterialID int  // Index into the scene's material buffer
}

// Intersector is the scene intersection oracle. Implementations must return
// the closest hit in (tMin, tMax) and treat all geometry as opaque.
type Intersector interface {
	Trace(ray Ray, tMin, tMax float64) (HitInfo, bool)
}

// TextureSampler resolves a texture id and uv to an RGB value. Only consulted
// for non-negative texture ids; out-of-range id behavior is the sampler's
// contract.
type TextureSampler interface {
	Sample(textureID int, uv Vec2) Vec3
}
