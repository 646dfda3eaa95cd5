// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

import (
	"context"
	"fmt"
)

// TargetFormat is the pixel format of a render target.
type TargetFormat uint8

const (
	// FormatRGBA8 stores 8 bits per channel.
	FormatRGBA8 TargetFormat = iota

	// FormatRGBA16Float stores extended-range half floats per channel.
	FormatRGBA16Float
)

// FormatFor returns the target format for the highDynamicRange option.
func FormatFor(highDynamicRange bool) TargetFormat {
	if highDynamicRange {
		return FormatRGBA16Float
	}
	return FormatRGBA8
}

// String returns a human-readable name for the format.
func (f TargetFormat) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatRGBA16Float:
		return "RGBA16Float"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

// TargetDescriptor describes a render target to allocate.
type TargetDescriptor struct {
	// Label is a debug label.
	Label string

	// Width and Height are the size in pixels. Both must be positive.
	Width  int
	Height int

	// Format is the pixel format.
	Format TargetFormat
}

// Target is a GPU-resident (or CPU-emulated) 2D image that can be rendered
// into and sampled from.
type Target interface {
	Width() int
	Height() int
	Format() TargetFormat
	Label() string
}

// Device allocates render targets and copies between them.
//
// Targets created by a Device are single-mip and sampled with bilinear
// filtering. They are owned exclusively by the caller: a Device must not pool,
// cache or share them, and DestroyTarget must release the resource
// immediately.
type Device interface {
	// CreateTarget allocates a new render target.
	CreateTarget(desc TargetDescriptor) (Target, error)

	// DestroyTarget releases a target created by this device. Destroying a
	// nil or already destroyed target is a no-op.
	DestroyTarget(t Target)

	// Blit copies src into dst, resampling bilinearly when the sizes differ.
	Blit(ctx context.Context, src, dst Target) error
}
