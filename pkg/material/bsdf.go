package material

import (
	"math"

	"github.com/softtracer/go-pbr-pathtracer/pkg/core"
)

// The BSDF combines a Lambertian diffuse lobe with a GGX microfacet
// specular lobe, blended by the metallic and roughness parameters.
// Directions are evaluated in a local frame with the shading normal mapped
// to +Z via a quaternion rotation. Sampled weights are unbiased Monte Carlo
// estimators of BRDF × cosine / pdf for the chosen lobe.

// Dielectrics reflect about 4% at normal incidence; metals reflect their
// albedo
const minDielectricF0 = 0.04

// Lobe selects which part of the BSDF to sample
type Lobe int

const (
	LobeDiffuse Lobe = iota
	LobeSpecular
)

// SpecularF0 blends the dielectric normal-incidence reflectance with the
// base color by metallic
func SpecularF0(baseColor core.Vec3, metallic float64) core.Vec3 {
	dielectric := core.NewVec3(minDielectricF0, minDielectricF0, minDielectricF0)
	return dielectric.Lerp(baseColor, metallic)
}

// DiffuseReflectance returns the diffuse albedo; metals have no diffuse
// term
func DiffuseReflectance(baseColor core.Vec3, metallic float64) core.Vec3 {
	return baseColor.Multiply(1.0 - metallic)
}

// shadowedF90 lowers the grazing reflectance for very dark F0 values so
// colored metals are not suppressed relative to their albedo
func shadowedF90(f0 core.Vec3) float64 {
	return math.Min(1.0, f0.Luminance()/minDielectricF0)
}

// Fresnel evaluates Schlick's approximation with an explicit grazing
// reflectance f90
func Fresnel(f0 core.Vec3, f90, cosTheta float64) core.Vec3 {
	f := math.Pow(1.0-cosTheta, 5.0)
	return f0.Add(core.NewVec3(f90, f90, f90).Subtract(f0).Multiply(f))
}

// smithG1 is the GGX Smith masking term for a single direction with cosine
// cosN to the normal
func smithG1(alpha2, cosN float64) float64 {
	cos2 := cosN * cosN
	return 2.0 / (math.Sqrt((alpha2*(1.0-cos2)+cos2)/cos2) + 1.0)
}

// specularSampleWeight converts a VNDF half-vector sample into the
// BRDF/pdf ratio using the height-correlated Smith visibility term:
// G2(V,L) / G1(V)
func specularSampleWeight(alpha2, cosL, cosV float64) float64 {
	g1V := smithG1(alpha2, cosV)
	g1L := smithG1(alpha2, cosL)
	return g1L / (g1V + g1L - g1V*g1L)
}

// SampleSpecularHalfVector importance-samples the GGX distribution of
// visible normals (Heitz's method). wo is the outgoing direction in the
// local frame where the normal is +Z.
func SampleSpecularHalfVector(wo core.Vec3, alpha float64, u core.Vec2) core.Vec3 {
	// Stretch the view direction into the isotropic configuration
	vh := core.NewVec3(alpha*wo.X, alpha*wo.Y, wo.Z).Normalize()

	// Tangent basis orthogonal to the stretched view; a vertical view has
	// no azimuth, so fall back to a fixed tangent instead of dividing by
	// zero
	lensq := vh.X*vh.X + vh.Y*vh.Y
	var t1 core.Vec3
	if lensq > 0 {
		t1 = core.NewVec3(-vh.Y, vh.X, 0).Multiply(1.0 / math.Sqrt(lensq))
	} else {
		t1 = core.NewVec3(1, 0, 0)
	}
	t2 := vh.Cross(t1)

	// Sample a point on the half-disk projected along the view
	r := math.Sqrt(u.X)
	phi := 2.0 * math.Pi * u.Y
	p1 := r * math.Cos(phi)
	p2 := r * math.Sin(phi)
	s := 0.5 * (1.0 + vh.Z)
	p2 = (1.0-s)*math.Sqrt(1.0-p1*p1) + s*p2

	nh := t1.Multiply(p1).
		Add(t2.Multiply(p2)).
		Add(vh.Multiply(math.Sqrt(math.Max(0, 1.0-p1*p1-p2*p2))))

	// Unstretch back to the original configuration
	return core.NewVec3(alpha*nh.X, alpha*nh.Y, math.Max(0, nh.Z)).Normalize()
}

// SampleSpecularMicrofacet samples the specular lobe in the local frame and
// returns the incoming direction with its importance weight. Zero alpha
// degenerates deterministically to a perfect mirror with weight exactly
// Fresnel.
func SampleSpecularMicrofacet(wo core.Vec3, alpha float64, f0 core.Vec3, u core.Vec2) (core.Vec3, core.Vec3) {
	var h core.Vec3
	if alpha == 0 {
		h = core.NewVec3(0, 0, 1)
	} else {
		h = SampleSpecularHalfVector(wo, alpha, u)
	}

	wi := wo.Negate().Reflect(h)

	hDotL := clamp(wi.Dot(h), 0.00001, 1)
	fresnel := Fresnel(f0, shadowedF90(f0), hDotL)
	if alpha == 0 {
		return wi, fresnel
	}

	nDotL := clamp(wi.Z, 0.00001, 1)
	nDotV := clamp(wo.Z, 0.00001, 1)
	return wi, fresnel.Multiply(specularSampleWeight(alpha*alpha, nDotL, nDotV))
}

// SpecularProbability estimates how much energy the specular lobe carries
// relative to diffuse at this shading point. The result is clamped to
// [0.1, 0.9] so neither lobe ever starves, which keeps variance bounded at
// grazing angles where Fresnel saturates.
func SpecularProbability(hit Hit, wo, n core.Vec3) float64 {
	f0 := SpecularF0(hit.BaseColor, hit.Metallic)
	fresnel := Fresnel(f0, shadowedF90(f0), clamp(wo.Dot(n), 0, 1))

	specular := fresnel.Luminance()
	diffuse := DiffuseReflectance(hit.BaseColor, hit.Metallic).Luminance() * (1.0 - specular)

	p := specular / math.Max(1e-7, specular+diffuse)
	return clamp(p, 0.1, 0.9)
}

// Sample draws an incoming direction for the selected lobe and returns its
// multiplicative throughput weight. ok=false means no valid sample; the
// caller terminates the path.
func Sample(hit Hit, wo, n core.Vec3, lobe Lobe, u core.Vec2) (wi, weight core.Vec3, ok bool) {
	// Outgoing direction below the hemisphere never scatters
	if n.Dot(wo) <= 0 {
		return core.Vec3{}, core.Vec3{}, false
	}

	rotation := core.RotationToZAxis(n)
	woLocal := rotation.Rotate(wo)

	alpha := hit.Roughness * hit.Roughness
	var wiLocal core.Vec3

	if lobe == LobeSpecular {
		wiLocal, weight = SampleSpecularMicrofacet(woLocal, alpha, SpecularF0(hit.BaseColor, hit.Metallic), u)
	} else {
		// Cosine-weighted direction for the diffuse lobe. Its weight still
		// runs through the specular half-vector machinery: diffuse only
		// receives the energy the specular layer lets through.
		wiLocal = sampleCosineHemisphere(u)

		h := SampleSpecularHalfVector(woLocal, alpha, u)
		vDotH := clamp(woLocal.Dot(h), 0.00001, 1)
		f0 := SpecularF0(hit.BaseColor, hit.Metallic)
		transmitted := core.NewVec3(1, 1, 1).Subtract(Fresnel(f0, shadowedF90(f0), vDotH))
		weight = DiffuseReflectance(hit.BaseColor, hit.Metallic).MultiplyVec(transmitted)
	}

	if weight.Luminance() == 0 {
		return core.Vec3{}, core.Vec3{}, false
	}

	// Back to world space; specular samples can land below the hemisphere
	// at grazing angles
	wi = rotation.Inverse().Rotate(wiLocal).Normalize()
	if n.Dot(wi) <= 0 {
		return core.Vec3{}, core.Vec3{}, false
	}

	return wi, weight, true
}

// sampleCosineHemisphere maps a uniform pair onto a cosine-weighted
// direction around +Z
func sampleCosineHemisphere(u core.Vec2) core.Vec3 {
	r := math.Sqrt(u.X)
	phi := 2.0 * math.Pi * u.Y
	return core.NewVec3(
		r*math.Cos(phi),
		r*math.Sin(phi),
		math.Sqrt(math.Max(0, 1.0-u.X)),
	)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
