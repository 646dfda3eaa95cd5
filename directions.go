// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// DirectionCount is the number of stochastic sampling directions handed to
// the effect.
const DirectionCount = 6

// RandomDirections returns DirectionCount unit vectors distributed uniformly
// on the sphere. The same seed always yields the same directions.
func RandomDirections(seed uint64) [DirectionCount]mgl32.Vec3 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var dirs [DirectionCount]mgl32.Vec3
	for i := range dirs {
		z := 2*rng.Float64() - 1
		phi := 2 * math.Pi * rng.Float64()
		r := math.Sqrt(1 - z*z)
		dirs[i] = mgl32.Vec3{
			float32(r * math.Cos(phi)),
			float32(r * math.Sin(phi)),
			float32(z),
		}.Normalize()
	}
	return dirs
}
