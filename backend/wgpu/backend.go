// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"github.com/gogpu/gputypes"

	// Register the Vulkan HAL backend.
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/cloudtaa"
	"github.com/gogpu/cloudtaa/backend"
)

// Backend is the GPU backend. Init opens a device on the configured HAL
// backend variant.
type Backend struct {
	variant gputypes.Backend
	device  *Device
	effects []*Material
	blends  []*Blender
}

// init registers the wgpu backend on package import.
func init() {
	backend.Register(backend.BackendWGPU, func() backend.Backend {
		return NewBackend(gputypes.BackendVulkan)
	})
}

// NewBackend creates a backend that opens a device on variant.
func NewBackend(variant gputypes.Backend) *Backend {
	return &Backend{variant: variant}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendWGPU
}

// Init opens the GPU device.
func (b *Backend) Init() error {
	if b.device != nil {
		return nil
	}
	d, err := Open(b.variant)
	if err != nil {
		return err
	}
	b.device = d
	return nil
}

// Close destroys every material handed out and then the device.
func (b *Backend) Close() {
	for _, m := range b.effects {
		m.Destroy()
	}
	for _, bl := range b.blends {
		bl.Destroy()
	}
	b.effects, b.blends = nil, nil
	if b.device != nil {
		b.device.Destroy()
		b.device = nil
	}
}

// Device returns the GPU device, or nil before Init.
func (b *Backend) Device() cloudtaa.Device {
	if b.device == nil {
		return nil
	}
	return b.device
}

// HalDevice exposes the HAL device so other gogpu components can share it.
func (b *Backend) HalDevice() any {
	if b.device == nil {
		return nil
	}
	return b.device.HalDevice()
}

// HalQueue exposes the HAL queue so other gogpu components can share it.
func (b *Backend) HalQueue() any {
	if b.device == nil {
		return nil
	}
	return b.device.HalQueue()
}

// NewEffect returns the GPU sky effect.
func (b *Backend) NewEffect() (cloudtaa.Effect, error) {
	if b.device == nil {
		return nil, backend.ErrNotInitialized
	}
	m, err := NewSkyEffect(b.device)
	if err != nil {
		return nil, err
	}
	b.effects = append(b.effects, m)
	return m, nil
}

// NewBlender returns the GPU reprojecting blender.
func (b *Backend) NewBlender() (cloudtaa.Blender, error) {
	if b.device == nil {
		return nil, backend.ErrNotInitialized
	}
	bl, err := NewBlender(b.device)
	if err != nil {
		return nil, err
	}
	b.blends = append(b.blends, bl)
	return bl, nil
}
