// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

import "errors"

// Errors returned by cloudtaa.
var (
	// ErrInvalidConfig is returned when the sub-pixel grid or the
	// downsample factor is smaller than one.
	ErrInvalidConfig = errors.New("cloudtaa: invalid configuration")

	// ErrInvalidViewport is returned for non-positive viewport dimensions.
	ErrInvalidViewport = errors.New("cloudtaa: invalid viewport dimensions")

	// ErrAllocation wraps a device failure while creating a render target.
	ErrAllocation = errors.New("cloudtaa: render target allocation failed")

	// ErrTargetMismatch is returned when a render target does not have the
	// dimensions the frame parameters describe.
	ErrTargetMismatch = errors.New("cloudtaa: render target size mismatch")

	// ErrNilDevice is returned when a nil Device is supplied.
	ErrNilDevice = errors.New("cloudtaa: nil device")

	// ErrNilEffect is returned when EndFrame has no effect to render with.
	ErrNilEffect = errors.New("cloudtaa: nil effect")

	// ErrNilBlender is returned when a composite is requested without a blender.
	ErrNilBlender = errors.New("cloudtaa: nil blender")

	// ErrFrameNotBegun is returned by EndFrame without a matching BeginFrame.
	ErrFrameNotBegun = errors.New("cloudtaa: EndFrame called without BeginFrame")

	// ErrFrameInProgress is returned when the sub-pixel grid is changed
	// between BeginFrame and EndFrame.
	ErrFrameInProgress = errors.New("cloudtaa: frame in progress")

	// ErrViewDisposed is returned by BeginFrame on a disposed view.
	ErrViewDisposed = errors.New("cloudtaa: view disposed")

	// ErrRendererClosed is returned when rendering through a closed Renderer.
	ErrRendererClosed = errors.New("cloudtaa: renderer closed")
)
