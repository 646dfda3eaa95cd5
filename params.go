// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

import "github.com/go-gl/mathgl/mgl32"

// FrameParams is the complete parameter set for one frame of one view.
// The effect uses it to render a jittered subframe; the blender uses the
// same values to reproject history.
type FrameParams struct {
	// Projection and Rotation (world to view) of the current frame.
	Projection mgl32.Mat4
	Rotation   mgl32.Mat4

	// InverseProjection and InverseRotation (view to world).
	InverseProjection mgl32.Mat4
	InverseRotation   mgl32.Mat4

	// JitteredInverseProjection is InverseProjection pre-multiplied by the
	// jitter translation: it maps a subframe pixel's NDC position onto the
	// sub-pixel cell sampled this frame.
	JitteredInverseProjection mgl32.Mat4

	// JitteredProjection is the inverse of JitteredInverseProjection.
	JitteredProjection mgl32.Mat4

	// PreviousProjection and PreviousRotation are the matrices of the last
	// completed frame. On the first frame they equal the current ones.
	PreviousProjection mgl32.Mat4
	PreviousRotation   mgl32.Mat4

	// JitterIndex is the sub-pixel cell rendered this frame.
	JitterIndex int

	// JitterOffset is the NDC translation for JitterIndex.
	JitterOffset mgl32.Vec2

	// SubPixelGrid is N.
	SubPixelGrid int

	// Resolution holds the subframe and full-frame sizes in pixels.
	Resolution Resolution

	// Directions are the fixed stochastic sampling directions.
	Directions [DirectionCount]mgl32.Vec3

	// FirstFrame is true when history has no valid content yet.
	FirstFrame bool

	// Frame counts completed frames of the view.
	Frame uint64
}

// JitterCell returns the column and row of JitterIndex.
func (p *FrameParams) JitterCell() (cellX, cellY int) {
	return JitterCell(p.JitterIndex, p.SubPixelGrid)
}
