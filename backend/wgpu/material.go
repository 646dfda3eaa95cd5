// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"context"
	"fmt"

	"github.com/gogpu/cloudtaa"
)

// Material is a fullscreen WGSL program driven by FrameParams. Its source
// must contain the shared vertex stage and the FrameUniforms block at
// binding 0 (see FullscreenShaderSource and FrameShaderSource) plus an
// fs_main fragment entry point.
type Material struct {
	device *Device
	prog   *program
}

var _ cloudtaa.Effect = (*Material)(nil)

// NewMaterial compiles a material whose bind group holds the frame
// uniforms only. It can be used as a cloudtaa.Effect.
func NewMaterial(device *Device, label, source string) (*Material, error) {
	if device == nil {
		return nil, cloudtaa.ErrNilDevice
	}
	prog, err := newProgram(device.device, label, source, []bindingKind{bindUniform})
	if err != nil {
		return nil, err
	}
	return &Material{device: device, prog: prog}, nil
}

// Render implements cloudtaa.Effect.
func (m *Material) Render(ctx context.Context, dst cloudtaa.Target, params *cloudtaa.FrameParams) error {
	t, err := m.device.texture(dst)
	if err != nil {
		return fmt.Errorf("%s: %w", m.prog.label, err)
	}
	return m.device.run(ctx, m.prog, t, []passInput{
		{uniforms: PackUniforms(params)},
	})
}

// Destroy releases the material's GPU objects.
func (m *Material) Destroy() {
	m.prog.destroy()
}

// NewSkyEffect returns the procedural sky as a GPU effect.
func NewSkyEffect(device *Device) (*Material, error) {
	return NewMaterial(device, "cloudtaa_sky", SkyShaderSource())
}

// Blender is the reprojecting temporal blend on the GPU. Bindings are the
// frame uniforms, the subframe, history and a linear sampler.
type Blender struct {
	device *Device
	prog   *program
}

var _ cloudtaa.Blender = (*Blender)(nil)

// NewBlender compiles the reprojecting blend program.
func NewBlender(device *Device) (*Blender, error) {
	if device == nil {
		return nil, cloudtaa.ErrNilDevice
	}
	prog, err := newProgram(device.device, "cloudtaa_blend", BlendShaderSource(),
		[]bindingKind{bindUniform, bindTexture, bindTexture, bindSampler})
	if err != nil {
		return nil, err
	}
	return &Blender{device: device, prog: prog}, nil
}

// Blend implements cloudtaa.Blender.
func (b *Blender) Blend(ctx context.Context, sub, history, dst cloudtaa.Target, params *cloudtaa.FrameParams) error {
	s, err := b.device.texture(sub)
	if err != nil {
		return fmt.Errorf("blend subframe: %w", err)
	}
	h, err := b.device.texture(history)
	if err != nil {
		return fmt.Errorf("blend history: %w", err)
	}
	t, err := b.device.texture(dst)
	if err != nil {
		return fmt.Errorf("blend destination: %w", err)
	}
	return b.device.run(ctx, b.prog, t, []passInput{
		{uniforms: PackUniforms(params)},
		{texture: s},
		{texture: h},
		{sampler: b.device.sampler},
	})
}

// Destroy releases the blender's GPU objects.
func (b *Blender) Destroy() {
	b.prog.destroy()
}
