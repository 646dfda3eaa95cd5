// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import "errors"

// Package errors.
var (
	// ErrNilHAL is returned when a nil hal.Device or hal.Queue is supplied.
	ErrNilHAL = errors.New("wgpu: nil HAL device or queue")

	// ErrNoHALProvider is returned when a provider does not expose HAL types.
	ErrNoHALProvider = errors.New("wgpu: provider does not expose HAL types")

	// ErrBackendUnavailable is returned when the requested HAL backend is not registered.
	ErrBackendUnavailable = errors.New("wgpu: HAL backend not available")

	// ErrNoAdapter is returned when the HAL instance reports no adapters.
	ErrNoAdapter = errors.New("wgpu: no GPU adapters found")

	// ErrDeviceDestroyed is returned when using a destroyed Device.
	ErrDeviceDestroyed = errors.New("wgpu: device has been destroyed")

	// ErrInvalidDimensions is returned for non-positive target sizes.
	ErrInvalidDimensions = errors.New("wgpu: invalid dimensions")

	// ErrForeignTarget is returned for targets not created by this device.
	ErrForeignTarget = errors.New("wgpu: target not created by this device")

	// ErrTargetDestroyed is returned when using a destroyed target.
	ErrTargetDestroyed = errors.New("wgpu: target has been destroyed")

	// ErrUnknownFormat is returned for unsupported target formats.
	ErrUnknownFormat = errors.New("wgpu: unknown target format")
)
