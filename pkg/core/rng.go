package core

import (
	"math"
)

// Rng is a counter-based pseudo-random stream keyed by pixel coordinate and
// frame index (PCG4D hash). Every pixel gets an independent, reproducible
// sequence: identical (pixel, frame) seeds always produce identical draws in
// identical order, bit-for-bit across platforms. State is purely integer.
type Rng struct {
	state [4]uint32
}

// NewRng seeds a stream for one pixel in one frame
func NewRng(pixelX, pixelY, frame int) *Rng {
	return &Rng{state: [4]uint32{uint32(pixelX), uint32(pixelY), uint32(frame), 0}}
}

// pcg4d mixes a 4-lane counter into 4 decorrelated output words.
// The lanes feed each other before and after the shift-xor step so that
// nearby seeds (adjacent pixels, consecutive frames) diverge immediately.
func pcg4d(v [4]uint32) [4]uint32 {
	v[0] = v[0]*1664525 + 1013904223
	v[1] = v[1]*1664525 + 1013904223
	v[2] = v[2]*1664525 + 1013904223
	v[3] = v[3]*1664525 + 1013904223

	v[0] += v[1] * v[3]
	v[1] += v[2] * v[0]
	v[2] += v[0] * v[1]
	v[3] += v[1] * v[2]

	v[0] ^= v[0] >> 16
	v[1] ^= v[1] >> 16
	v[2] ^= v[2] >> 16
	v[3] ^= v[3] >> 16

	v[0] += v[1] * v[3]
	v[1] += v[2] * v[0]
	v[2] += v[0] * v[1]
	v[3] += v[1] * v[2]

	return v
}

// NextUint32 advances the draw counter and returns the next raw word
func (r *Rng) NextUint32() uint32 {
	r.state[3]++
	return pcg4d(r.state)[0]
}

// NextFloat returns a float in [0, 1). The raw word's low bits become the
// mantissa with the exponent forced to the [1,2) range, then 1 is
// subtracted, so the result never reaches 1.0.
func (r *Rng) NextFloat() float64 {
	bits := (r.NextUint32() >> 9) | 0x3f800000
	return float64(math.Float32frombits(bits) - 1.0)
}

// NextVec2 returns two floats, each in [0, 1)
func (r *Rng) NextVec2() Vec2 {
	x := r.NextFloat()
	y := r.NextFloat()
	return Vec2{X: x, Y: y}
}
