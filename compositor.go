// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

import (
	"context"
	"fmt"
)

// TemporalCompositor produces the next history frame from a new subframe and
// the current history.
//
// The blend itself is delegated to a Blender. The compositor validates the
// inputs, owns the full-resolution scratch target the blend writes to, and
// copies the result back into history. The scratch target lives for exactly
// one Composite call and is released on every return path.
type TemporalCompositor struct {
	device Device
}

// NewTemporalCompositor creates a compositor that allocates scratch targets
// from device.
func NewTemporalCompositor(device Device) *TemporalCompositor {
	return &TemporalCompositor{device: device}
}

// Composite blends sub into history in place.
func (c *TemporalCompositor) Composite(ctx context.Context, sub, history Target, params *FrameParams, blender Blender) error {
	if blender == nil {
		return ErrNilBlender
	}
	res := params.Resolution
	if sub.Width() != res.SubWidth || sub.Height() != res.SubHeight {
		return fmt.Errorf("%w: subframe is %dx%d, want %dx%d",
			ErrTargetMismatch, sub.Width(), sub.Height(), res.SubWidth, res.SubHeight)
	}
	if history.Width() != res.FrameWidth || history.Height() != res.FrameHeight {
		return fmt.Errorf("%w: history is %dx%d, want %dx%d",
			ErrTargetMismatch, history.Width(), history.Height(), res.FrameWidth, res.FrameHeight)
	}

	scratch, err := c.device.CreateTarget(TargetDescriptor{
		Label:  history.Label() + "_scratch",
		Width:  res.FrameWidth,
		Height: res.FrameHeight,
		Format: history.Format(),
	})
	if err != nil {
		return fmt.Errorf("%w: scratch %dx%d: %w", ErrAllocation, res.FrameWidth, res.FrameHeight, err)
	}
	defer c.device.DestroyTarget(scratch)

	if err := blender.Blend(ctx, sub, history, scratch, params); err != nil {
		return fmt.Errorf("blend: %w", err)
	}
	if err := c.device.Blit(ctx, scratch, history); err != nil {
		return fmt.Errorf("copy scratch to history: %w", err)
	}
	return nil
}
