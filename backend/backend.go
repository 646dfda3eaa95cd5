// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"

	"github.com/gogpu/cloudtaa"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU reference backend.
	BackendSoftware = "software"
	// BackendWGPU is the name of the GPU backend (gogpu/wgpu HAL).
	BackendWGPU = "wgpu"
)

// Backend bundles a cloudtaa.Device with the effect and blender that run
// on it. A backend is the unit the command line tool and applications pick
// at startup.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type Backend interface {
	// Name returns the backend identifier (e.g., "software", "wgpu").
	Name() string

	// Init acquires the device. It must be called before Device.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// Device returns the render target device. It is nil before Init.
	Device() cloudtaa.Device

	// NewEffect returns the backend's sky effect.
	NewEffect() (cloudtaa.Effect, error)

	// NewBlender returns the backend's reprojecting blender.
	NewBlender() (cloudtaa.Blender, error)
}

// NewRenderer wires an initialized backend into a cloudtaa.Renderer.
func NewRenderer(b Backend, opts ...cloudtaa.Option) (*cloudtaa.Renderer, error) {
	dev := b.Device()
	if dev == nil {
		return nil, ErrNotInitialized
	}
	effect, err := b.NewEffect()
	if err != nil {
		return nil, err
	}
	blender, err := b.NewBlender()
	if err != nil {
		return nil, err
	}
	return cloudtaa.NewRenderer(dev, effect, blender, opts...)
}
