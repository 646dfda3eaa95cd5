// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"context"

	"github.com/gogpu/cloudtaa"
)

// Blender is a reprojecting temporal blend.
//
// Pixels in this frame's jitter cell take the fresh subframe sample. Every
// other pixel is reprojected through the previous camera and takes the
// history pixel it lands on; when it lands off-screen the upsampled
// subframe is used instead.
type Blender struct{}

// NewBlender returns a reprojecting blender.
func NewBlender() *Blender {
	return &Blender{}
}

// Blend implements cloudtaa.Blender.
func (b *Blender) Blend(ctx context.Context, sub, history, dst cloudtaa.Target, params *cloudtaa.FrameParams) error {
	s, err := asImage(sub)
	if err != nil {
		return err
	}
	h, err := asImage(history)
	if err != nil {
		return err
	}
	out, err := asImage(dst)
	if err != nil {
		return err
	}

	n := params.SubPixelGrid
	cx, cy := params.JitterCell()
	w, ht := out.Width(), out.Height()
	sw, sh := s.Width(), s.Height()
	for fy := range ht {
		if err := ctx.Err(); err != nil {
			return err
		}
		for fx := range w {
			sx, sy := min(fx/n, sw-1), min(fy/n, sh-1)
			if fx%n == cx && fy%n == cy {
				out.SetFloat(fx, fy, s.FloatAt(sx, sy))
				continue
			}
			dir := worldDirection(params.InverseProjection, params.InverseRotation, pixelNDC(fx, fy, w, ht))
			px, py, ok := reproject(params.PreviousProjection, params.PreviousRotation, dir, h.Width(), h.Height())
			if !ok {
				out.SetFloat(fx, fy, s.FloatAt(sx, sy))
				continue
			}
			out.SetFloat(fx, fy, h.FloatAt(px, py))
		}
	}
	return nil
}
