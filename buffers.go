// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

import "fmt"

// FrameBufferSet owns the two render targets of one view: the low-resolution
// subframe and the full-resolution history frame.
//
// Allocation is all-or-nothing: after EnsureAllocated either both targets
// exist at the requested resolution or neither does.
type FrameBufferSet struct {
	device  Device
	label   string
	sub     Target
	history Target
	res     Resolution
	format  TargetFormat
}

// NewFrameBufferSet creates an empty buffer set. Nothing is allocated until
// EnsureAllocated is called.
func NewFrameBufferSet(device Device, label string) *FrameBufferSet {
	return &FrameBufferSet{device: device, label: label}
}

// EnsureAllocated creates both targets for res, or does nothing when they
// already exist with the same resolution and format. Existing targets of a
// different size or format are released first.
func (b *FrameBufferSet) EnsureAllocated(res Resolution, highDynamicRange bool) error {
	format := FormatFor(highDynamicRange)
	if b.Allocated() && b.res == res && b.format == format {
		return nil
	}
	b.Release()

	sub, err := b.device.CreateTarget(TargetDescriptor{
		Label:  b.label + "_subframe",
		Width:  res.SubWidth,
		Height: res.SubHeight,
		Format: format,
	})
	if err != nil {
		return fmt.Errorf("%w: subframe %dx%d: %w", ErrAllocation, res.SubWidth, res.SubHeight, err)
	}

	history, err := b.device.CreateTarget(TargetDescriptor{
		Label:  b.label + "_history",
		Width:  res.FrameWidth,
		Height: res.FrameHeight,
		Format: format,
	})
	if err != nil {
		b.device.DestroyTarget(sub)
		return fmt.Errorf("%w: history %dx%d: %w", ErrAllocation, res.FrameWidth, res.FrameHeight, err)
	}

	b.sub = sub
	b.history = history
	b.res = res
	b.format = format
	Logger().Debug("cloudtaa: frame buffers allocated",
		"label", b.label, "resolution", res.String(), "format", format.String())
	return nil
}

// Release destroys both targets. Safe to call multiple times.
func (b *FrameBufferSet) Release() {
	if b.history != nil {
		b.device.DestroyTarget(b.history)
		b.history = nil
	}
	if b.sub != nil {
		b.device.DestroyTarget(b.sub)
		b.sub = nil
	}
	b.res = Resolution{}
}

// Allocated reports whether both targets exist.
func (b *FrameBufferSet) Allocated() bool {
	return b.sub != nil && b.history != nil
}

// SubFrame returns the low-resolution target, or nil when released.
func (b *FrameBufferSet) SubFrame() Target {
	return b.sub
}

// History returns the full-resolution target, or nil when released.
func (b *FrameBufferSet) History() Target {
	return b.history
}

// Resolution returns the resolution of the allocated targets, or the zero
// Resolution when released.
func (b *FrameBufferSet) Resolution() Resolution {
	return b.res
}

// Format returns the pixel format of the allocated targets.
func (b *FrameBufferSet) Format() TargetFormat {
	return b.format
}
