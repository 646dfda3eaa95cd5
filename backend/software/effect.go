// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"context"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cloudtaa"
)

// SkyEffect is a procedural sky with a band of cloud-like noise. Each pixel
// is a pure function of its world-space view direction, which makes the
// result independent of camera history.
type SkyEffect struct {
	Zenith  mgl32.Vec3
	Horizon mgl32.Vec3
	Cloud   mgl32.Vec3

	// Coverage scales the cloud band in [0, 1].
	Coverage float32

	// Intensity scales the output radiance; zero means 1. Values above 1
	// only survive on high-dynamic-range targets.
	Intensity float32
}

// NewSkyEffect returns a SkyEffect with a daylight palette.
func NewSkyEffect() *SkyEffect {
	return &SkyEffect{
		Zenith:    mgl32.Vec3{0.20, 0.38, 0.78},
		Horizon:   mgl32.Vec3{0.70, 0.80, 0.92},
		Cloud:     mgl32.Vec3{0.96, 0.96, 0.98},
		Coverage:  0.6,
		Intensity: 1,
	}
}

// Render implements cloudtaa.Effect. Subframe pixel (sx, sy) samples the
// full-resolution pixel (sx*N+cx, sy*N+cy) where (cx, cy) is the jitter cell.
func (e *SkyEffect) Render(ctx context.Context, dst cloudtaa.Target, params *cloudtaa.FrameParams) error {
	m, err := asImage(dst)
	if err != nil {
		return err
	}
	n := params.SubPixelGrid
	res := params.Resolution
	for sy := range m.Height() {
		if err := ctx.Err(); err != nil {
			return err
		}
		for sx := range m.Width() {
			ndc := pixelNDC(sx*n, sy*n, res.FrameWidth, res.FrameHeight)
			dir := worldDirection(params.JitteredInverseProjection, params.InverseRotation, ndc)
			m.SetFloat(sx, sy, e.Radiance(dir).Vec4(1))
		}
	}
	return nil
}

// Sample returns the sky colour seen along the world direction dir, clamped
// to [0, 1] and quantized to 16 bits.
func (e *SkyEffect) Sample(dir mgl32.Vec3) color.RGBA64 {
	return quantize(e.Radiance(dir).Vec4(1))
}

// Radiance returns the unclamped sky colour seen along the world direction
// dir, scaled by Intensity.
func (e *SkyEffect) Radiance(dir mgl32.Vec3) mgl32.Vec3 {
	up := max(dir.Y(), 0)
	base := e.Horizon.Mul(1 - up).Add(e.Zenith.Mul(up))

	// Cheap lattice of sinusoids standing in for cloud density.
	d := float64(0.5 + 0.25*math.Sin(float64(dir.X())*11+float64(dir.Z())*3) +
		0.25*math.Sin(float64(dir.Z())*13-float64(dir.Y())*7))
	density := float32(d) * e.Coverage * smoothstep(0.02, 0.35, up)
	c := base.Mul(1 - density).Add(e.Cloud.Mul(density))
	if e.Intensity > 0 {
		c = c.Mul(e.Intensity)
	}
	return c
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// SolidEffect fills the subframe with one colour. It is handy in tests that
// only care about buffer flow.
type SolidEffect struct {
	Color color.RGBA64
}

// Render implements cloudtaa.Effect.
func (e SolidEffect) Render(ctx context.Context, dst cloudtaa.Target, _ *cloudtaa.FrameParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := asImage(dst)
	if err != nil {
		return err
	}
	m.Fill(e.Color)
	return nil
}
