package integrator

import (
	"math"

	"github.com/softtracer/go-pbr-pathtracer/pkg/core"
	"github.com/softtracer/go-pbr-pathtracer/pkg/material"
	"github.com/softtracer/go-pbr-pathtracer/pkg/scene"
)

// Config holds the immutable limits and constants of the integrator. It is
// supplied at construction; nothing mutates it during rendering.
type Config struct {
	MaxBounces  int       // Hard path length cap
	MinBounces  int       // Bounces before Russian roulette may terminate
	RayEpsilon  float64   // tMin for every ray, guards self-intersection
	MaxDistance float64   // tMax for every ray
	Environment core.Vec3 // Radiance gathered on miss
}

// DefaultConfig returns the rendering constants used by the reference
// renderer
func DefaultConfig() Config {
	return Config{
		MaxBounces:  8,
		MinBounces:  3,
		RayEpsilon:  1e-3,
		MaxDistance: 1e5,
		Environment: core.NewVec3(0.05, 0.01, 0.01),
	}
}

// PathTracer estimates per-pixel radiance by unidirectional BSDF sampling
// with Russian roulette termination. Emission is gathered only when a
// sampled path lands on an emissive surface; there is no explicit light
// sampling.
type PathTracer struct {
	config      Config
	camera      *scene.Camera
	intersector core.Intersector
	materials   *material.Resolver
	width       int
	height      int
}

// NewPathTracer creates an integrator for a fixed resolution
func NewPathTracer(config Config, camera *scene.Camera, intersector core.Intersector, materials *material.Resolver, width, height int) *PathTracer {
	return &PathTracer{
		config:      config,
		camera:      camera,
		intersector: intersector,
		materials:   materials,
		width:       width,
		height:      height,
	}
}

// TracePixel renders one sample for pixel (px, py) of the given frame. The
// random stream is keyed by (pixel, frame), so identical inputs reproduce
// the identical estimate.
func (pt *PathTracer) TracePixel(px, py, frame int) core.Vec3 {
	rng := core.NewRng(px, py, frame)
	ray := pt.camera.GenerateRay(px, py, pt.width, pt.height, rng.NextVec2())
	return pt.Li(ray, rng)
}

// Li runs the iterative bounce loop, carrying ray, throughput and radiance
// as plain local state
func (pt *PathTracer) Li(ray core.Ray, rng *core.Rng) core.Vec3 {
	radiance := core.NewVec3(0, 0, 0)
	throughput := core.NewVec3(1, 1, 1)

	for bounce := 0; bounce < pt.config.MaxBounces; bounce++ {
		hit, found := pt.intersector.Trace(ray, pt.config.RayEpsilon, pt.config.MaxDistance)
		if !found {
			radiance = radiance.Add(throughput.MultiplyVec(pt.config.Environment))
			break
		}

		// Face the shading normal toward the outgoing ray so backface hits
		// on single-sided geometry shade consistently
		wo := ray.Direction.Negate().Normalize()
		normal := hit.Normal
		if normal.Dot(wo) < 0 {
			normal = normal.Negate()
		}

		mat := pt.materials.Resolve(hit.MaterialID, hit.UV)
		radiance = radiance.Add(throughput.MultiplyVec(mat.Emittance))

		// A sample taken on the last allowed bounce would never be traced
		if bounce == pt.config.MaxBounces-1 {
			break
		}

		// Russian roulette: survivors are reweighted by their survival
		// probability, keeping the estimator unbiased
		if bounce > pt.config.MinBounces {
			survival := math.Min(throughput.Luminance(), 0.95)
			if survival <= 0 || rng.NextFloat() > survival {
				break
			}
			throughput = throughput.Multiply(1.0 / survival)
		}

		lobe, lobeProb := pt.selectLobe(mat, wo, normal, rng)
		throughput = throughput.Multiply(1.0 / lobeProb)

		wi, weight, ok := material.Sample(mat, wo, normal, lobe, rng.NextVec2())
		if !ok {
			break
		}

		throughput = throughput.MultiplyVec(weight)
		ray = core.NewRay(hit.Position, wi)
	}

	return radiance
}

// selectLobe picks the specular or diffuse lobe stochastically, returning
// the probability of the choice made. Perfect mirrors skip the draw since
// diffuse would contribute nothing.
func (pt *PathTracer) selectLobe(mat material.Hit, wo, n core.Vec3, rng *core.Rng) (material.Lobe, float64) {
	if mat.Metallic == 1 && mat.Roughness == 0 {
		return material.LobeSpecular, 1.0
	}

	p := material.SpecularProbability(mat, wo, n)
	if rng.NextFloat() < p {
		return material.LobeSpecular, p
	}
	return material.LobeDiffuse, 1.0 - p
}
