// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"context"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// passResources are the per-pass GPU objects released when the pass ends.
type passResources struct {
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
}

func (r *passResources) destroy(device hal.Device) {
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
}

// passInput is one bind group slot of a pass. Exactly one field is set.
type passInput struct {
	uniforms []byte
	texture  *Texture
	sampler  hal.Sampler
}

// drawFullscreen runs prog over all of dst with inputs bound in slot order,
// submits the work and waits for it to finish.
func (d *Device) drawFullscreen(ctx context.Context, prog *program, dst *Texture, inputs []passInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	format, ok := halFormat(dst.format)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, dst.format)
	}
	pipeline, err := prog.pipeline(format)
	if err != nil {
		return err
	}

	var res passResources
	defer res.destroy(d.device)

	entries := make([]gputypes.BindGroupEntry, len(inputs))
	for i, in := range inputs {
		entries[i].Binding = uint32(i)
		switch {
		case in.uniforms != nil:
			if res.uniformBuf != nil {
				return fmt.Errorf("%s: more than one uniform block", prog.label)
			}
			buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
				Label: prog.label + "_uniforms",
				Size:  uint64(len(in.uniforms)),
				Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
			})
			if err != nil {
				return fmt.Errorf("create %s uniform buffer: %w", prog.label, err)
			}
			res.uniformBuf = buf
			if err := d.queue.WriteBuffer(buf, 0, in.uniforms); err != nil {
				return fmt.Errorf("write %s uniforms: %w", prog.label, err)
			}
			entries[i].Resource = gputypes.BufferBinding{
				Buffer: buf.NativeHandle(),
				Offset: 0,
				Size:   uint64(len(in.uniforms)),
			}
		case in.texture != nil:
			entries[i].Resource = gputypes.TextureViewBinding{TextureView: in.texture.view.NativeHandle()}
		case in.sampler != nil:
			entries[i].Resource = gputypes.SamplerBinding{Sampler: in.sampler.NativeHandle()}
		}
	}

	bindGroup, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   prog.label + "_bind_group",
		Layout:  prog.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("create %s bind group: %w", prog.label, err)
	}
	res.bindGroup = bindGroup

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: prog.label + "_encoder",
	})
	if err != nil {
		return fmt.Errorf("create %s command encoder: %w", prog.label, err)
	}
	if err := encoder.BeginEncoding(prog.label); err != nil {
		return fmt.Errorf("begin %s encoding: %w", prog.label, err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: prog.label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       dst.view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{},
			},
		},
	})
	rp.SetPipeline(pipeline)
	rp.SetBindGroup(0, bindGroup, nil)
	rp.Draw(3, 1, 0, 0)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("end %s encoding: %w", prog.label, err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	if _, err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit %s: %w", prog.label, err)
	}
	// Per-pass resources are destroyed on return, so the GPU must be done.
	if err := d.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait %s: %w", prog.label, err)
	}
	return nil
}
