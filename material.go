// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

import "context"

// Effect renders the expensive effect (for example volumetric clouds) into a
// low-resolution subframe at the sub-pixel position the params describe.
type Effect interface {
	Render(ctx context.Context, dst Target, params *FrameParams) error
}

// Blender reconciles a freshly rendered subframe with reprojected history
// and writes the full-resolution result to dst. dst is never sub or history.
type Blender interface {
	Blend(ctx context.Context, sub, history, dst Target, params *FrameParams) error
}

// EffectFunc adapts a function to the Effect interface.
type EffectFunc func(ctx context.Context, dst Target, params *FrameParams) error

// Render calls f.
func (f EffectFunc) Render(ctx context.Context, dst Target, params *FrameParams) error {
	return f(ctx, dst, params)
}

// BlenderFunc adapts a function to the Blender interface.
type BlenderFunc func(ctx context.Context, sub, history, dst Target, params *FrameParams) error

// Blend calls f.
func (f BlenderFunc) Blend(ctx context.Context, sub, history, dst Target, params *FrameParams) error {
	return f(ctx, sub, history, dst, params)
}
