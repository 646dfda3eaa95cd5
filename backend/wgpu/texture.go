// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/cloudtaa"
)

// targetUsage lets a target be drawn into, sampled and copied.
const targetUsage = gputypes.TextureUsageRenderAttachment |
	gputypes.TextureUsageTextureBinding |
	gputypes.TextureUsageCopySrc |
	gputypes.TextureUsageCopyDst

// Texture is a render target backed by a HAL texture and its default view.
type Texture struct {
	owner  *Device
	tex    hal.Texture
	view   hal.TextureView
	width  int
	height int
	format cloudtaa.TargetFormat
	label  string
}

// Width returns the width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the height in pixels.
func (t *Texture) Height() int { return t.height }

// Format returns the pixel format.
func (t *Texture) Format() cloudtaa.TargetFormat { return t.format }

// Label returns the debug label.
func (t *Texture) Label() string { return t.label }

// HalTexture returns the underlying HAL texture, or nil once destroyed.
func (t *Texture) HalTexture() hal.Texture { return t.tex }

// HalView returns the underlying HAL texture view, or nil once destroyed.
func (t *Texture) HalView() hal.TextureView { return t.view }

// IsDestroyed reports whether the texture was destroyed.
func (t *Texture) IsDestroyed() bool { return t.tex == nil }

// halFormat maps a target format to its texture format.
func halFormat(f cloudtaa.TargetFormat) (gputypes.TextureFormat, bool) {
	switch f {
	case cloudtaa.FormatRGBA8:
		return gputypes.TextureFormatRGBA8Unorm, true
	case cloudtaa.FormatRGBA16Float:
		return gputypes.TextureFormatRGBA16Float, true
	default:
		return 0, false
	}
}

// release destroys the view then the texture.
func (t *Texture) release(device hal.Device) {
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
}
