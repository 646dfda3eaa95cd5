// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"github.com/gogpu/cloudtaa"
	"github.com/gogpu/cloudtaa/backend"
)

// Backend is the CPU reference backend.
type Backend struct {
	device *Device
}

// init registers the software backend on package import.
func init() {
	backend.Register(backend.BackendSoftware, func() backend.Backend {
		return NewBackend()
	})
}

// NewBackend creates a new software backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendSoftware
}

// Init creates the device. It never fails.
func (b *Backend) Init() error {
	if b.device == nil {
		b.device = NewDevice()
	}
	return nil
}

// Close drops the device.
func (b *Backend) Close() {
	b.device = nil
}

// Device returns the software device, or nil before Init.
func (b *Backend) Device() cloudtaa.Device {
	if b.device == nil {
		return nil
	}
	return b.device
}

// NewEffect returns a SkyEffect.
func (b *Backend) NewEffect() (cloudtaa.Effect, error) {
	return NewSkyEffect(), nil
}

// NewBlender returns a reprojecting Blender.
func (b *Backend) NewBlender() (cloudtaa.Blender, error) {
	return NewBlender(), nil
}
