// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// bindingKind is the resource type of one bind group slot.
type bindingKind uint8

const (
	bindUniform bindingKind = iota
	bindTexture
	bindSampler
)

// program is a fullscreen shader with one bind group. Render pipelines are
// created lazily, one per target format.
type program struct {
	mu         sync.Mutex
	device     hal.Device
	label      string
	bindings   []bindingKind
	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipelines  map[gputypes.TextureFormat]hal.RenderPipeline
}

// newProgram compiles source and creates the bind group and pipeline
// layouts for bindings. Slot i of the bind group is bindings[i].
func newProgram(device hal.Device, label, source string, bindings []bindingKind) (*program, error) {
	p := &program{
		device:    device,
		label:     label,
		bindings:  bindings,
		pipelines: make(map[gputypes.TextureFormat]hal.RenderPipeline),
	}

	module, err := createShaderModule(device, label+"_shader", source)
	if err != nil {
		return nil, fmt.Errorf("create %s shader: %w", label, err)
	}
	p.module = module

	entries := make([]gputypes.BindGroupLayoutEntry, len(bindings))
	for i, kind := range bindings {
		entries[i] = gputypes.BindGroupLayoutEntry{
			Binding:    uint32(i),
			Visibility: gputypes.ShaderStageFragment,
		}
		switch kind {
		case bindUniform:
			entries[i].Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
		case bindTexture:
			entries[i].Texture = &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			}
		case bindSampler:
			entries[i].Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
		}
	}
	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   label + "_bind_layout",
		Entries: entries,
	})
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("create %s bind group layout: %w", label, err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		p.destroy()
		return nil, fmt.Errorf("create %s pipeline layout: %w", label, err)
	}
	p.pipeLayout = pipeLayout
	return p, nil
}

// pipeline returns the render pipeline writing format, creating it on
// first use.
func (p *program) pipeline(format gputypes.TextureFormat) (hal.RenderPipeline, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if rp, ok := p.pipelines[format]; ok {
		return rp, nil
	}
	rp, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%s_pipeline_%d", p.label, format),
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.module,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     p.module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline: %w", p.label, err)
	}
	p.pipelines[format] = rp
	return rp, nil
}

// destroy releases pipelines, layouts and the shader module.
func (p *program) destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for format, rp := range p.pipelines {
		p.device.DestroyRenderPipeline(rp)
		delete(p.pipelines, format)
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.module != nil {
		p.device.DestroyShaderModule(p.module)
		p.module = nil
	}
}
