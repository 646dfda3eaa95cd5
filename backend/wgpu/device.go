// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"context"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/cloudtaa"
)

// Device implements cloudtaa.Device on a HAL device.
//
// Device is safe for concurrent use. Passes are submitted and waited for
// one at a time.
type Device struct {
	mu       sync.Mutex
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	external bool // true when the HAL device is borrowed (don't destroy on Destroy)

	sampler hal.Sampler
	blit    *program

	live      int
	destroyed bool
}

var _ cloudtaa.Device = (*Device)(nil)

// New wraps an existing HAL device and queue. The caller keeps ownership of
// both; Destroy releases only what the Device created.
func New(device hal.Device, queue hal.Queue) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNilHAL
	}
	d := &Device{device: device, queue: queue, external: true}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewFromProvider shares the GPU device of a host application. The provider
// must implement HalDevice() any and HalQueue() any returning hal.Device and
// hal.Queue.
func NewFromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}
	d, err := New(device, queue)
	if err != nil {
		return nil, err
	}
	cloudtaa.Logger().Info("wgpu: using shared GPU device", "format", provider.SurfaceFormat())
	return d, nil
}

// Open creates an instance of the given HAL backend, picks a discrete or
// integrated GPU when one exists and opens a device on it. The backend
// package must have been imported for its side effects.
func Open(variant gputypes.Backend) (*Device, error) {
	backend, ok := hal.GetBackend(variant)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, variant)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	d := &Device{instance: instance, device: openDev.Device, queue: openDev.Queue}
	if err := d.init(); err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	cloudtaa.Logger().Info("wgpu: device opened", "adapter", selected.Info.Name, "backend", variant.String())
	return d, nil
}

// init creates the shared sampler and the blit program.
func (d *Device) init() error {
	sampler, err := d.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "cloudtaa_linear_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}
	d.sampler = sampler

	blit, err := newProgram(d.device, "cloudtaa_blit", BlitShaderSource(), []bindingKind{bindTexture, bindSampler})
	if err != nil {
		d.device.DestroySampler(sampler)
		d.sampler = nil
		return err
	}
	d.blit = blit
	return nil
}

// HalDevice returns the underlying HAL device.
func (d *Device) HalDevice() hal.Device { return d.device }

// HalQueue returns the underlying HAL queue.
func (d *Device) HalQueue() hal.Queue { return d.queue }

// CreateTarget implements cloudtaa.Device.
func (d *Device) CreateTarget(desc cloudtaa.TargetDescriptor) (cloudtaa.Target, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, desc.Width, desc.Height)
	}
	format, ok := halFormat(desc.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, desc.Format)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return nil, ErrDeviceDestroyed
	}

	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          hal.Extent3D{Width: uint32(desc.Width), Height: uint32(desc.Height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         targetUsage,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %s: %w", desc.Label, err)
	}
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: desc.Label + "_view",
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view %s: %w", desc.Label, err)
	}

	d.live++
	return &Texture{
		owner:  d,
		tex:    tex,
		view:   view,
		width:  desc.Width,
		height: desc.Height,
		format: desc.Format,
		label:  desc.Label,
	}, nil
}

// DestroyTarget implements cloudtaa.Device.
func (d *Device) DestroyTarget(t cloudtaa.Target) {
	tex, ok := t.(*Texture)
	if !ok || tex == nil || tex.owner != d {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if tex.IsDestroyed() {
		return
	}
	tex.release(d.device)
	d.live--
}

// Blit implements cloudtaa.Device. It draws src over all of dst through a
// bilinear sampler.
func (d *Device) Blit(ctx context.Context, src, dst cloudtaa.Target) error {
	s, err := d.texture(src)
	if err != nil {
		return fmt.Errorf("blit source: %w", err)
	}
	t, err := d.texture(dst)
	if err != nil {
		return fmt.Errorf("blit destination: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return ErrDeviceDestroyed
	}
	return d.drawFullscreen(ctx, d.blit, t, []passInput{
		{texture: s},
		{sampler: d.sampler},
	})
}

// texture unwraps a live target created by this device.
func (d *Device) texture(t cloudtaa.Target) (*Texture, error) {
	tex, ok := t.(*Texture)
	if !ok || tex == nil || tex.owner != d {
		return nil, ErrForeignTarget
	}
	if tex.IsDestroyed() {
		return nil, ErrTargetDestroyed
	}
	return tex, nil
}

// run executes a pass under the device lock.
func (d *Device) run(ctx context.Context, prog *program, dst *Texture, inputs []passInput) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return ErrDeviceDestroyed
	}
	return d.drawFullscreen(ctx, prog, dst, inputs)
}

// Live returns the number of targets created and not yet destroyed.
func (d *Device) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.live
}

// Destroy releases the blit program and sampler, and the HAL device and
// instance when the Device opened them itself. Targets still alive must be
// destroyed first. Safe to call multiple times.
func (d *Device) Destroy() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return
	}
	d.destroyed = true
	if d.live > 0 {
		cloudtaa.Logger().Warn("wgpu: device destroyed with live targets", "live", d.live)
	}
	if d.blit != nil {
		d.blit.destroy()
		d.blit = nil
	}
	if d.sampler != nil {
		d.device.DestroySampler(d.sampler)
		d.sampler = nil
	}
	if !d.external {
		d.device.Destroy()
		if d.instance != nil {
			d.instance.Destroy()
			d.instance = nil
		}
	}
}
