// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"github.com/go-gl/mathgl/mgl32"
)

// pixelNDC returns the NDC position of the centre of pixel (x, y) in a
// width×height grid. Row 0 is NDC y = -1.
func pixelNDC(x, y, width, height int) mgl32.Vec2 {
	return mgl32.Vec2{
		(float32(x)+0.5)*2/float32(width) - 1,
		(float32(y)+0.5)*2/float32(height) - 1,
	}
}

// worldDirection unprojects an NDC position on the far plane and rotates
// the view-space ray into world space.
func worldDirection(inverseProjection, inverseRotation mgl32.Mat4, ndc mgl32.Vec2) mgl32.Vec3 {
	p := inverseProjection.Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), 1, 1})
	if p.W() != 0 {
		p = p.Mul(1 / p.W())
	}
	d := inverseRotation.Mul4x1(mgl32.Vec4{p.X(), p.Y(), p.Z(), 0}).Vec3()
	if d.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

// reproject projects a world direction through a previous camera and
// returns the pixel it landed on. ok is false when the direction falls
// behind the camera or outside the frame.
func reproject(projection, rotation mgl32.Mat4, dir mgl32.Vec3, width, height int) (x, y int, ok bool) {
	clip := projection.Mul4(rotation).Mul4x1(dir.Vec4(0))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	nx, ny := clip.X()/clip.W(), clip.Y()/clip.W()
	if nx < -1 || nx > 1 || ny < -1 || ny > 1 {
		return 0, 0, false
	}
	x = min(int((nx+1)/2*float32(width)), width-1)
	y = min(int((ny+1)/2*float32(height)), height-1)
	return x, y, true
}
