// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu is the GPU backend for cloudtaa, built on the gogpu/wgpu
// hardware abstraction layer.
//
// Render targets are 2D textures with one mip level, usable both as render
// attachments and as sampled textures. Standard targets use RGBA8Unorm;
// high-dynamic-range targets use RGBA16Float.
//
// Every pass is a fullscreen triangle. Shaders are written in WGSL and
// compiled to SPIR-V with naga when a program is created.
//
// # Device Sharing
//
// A Device can own its HAL device (Open) or borrow one from a host
// application (New, NewFromProvider). Borrowed devices are never destroyed
// by Destroy.
//
//	dev, err := wgpu.NewFromProvider(app)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Destroy()
//
//	sky, _ := wgpu.NewSkyEffect(dev)
//	blend, _ := wgpu.NewBlender(dev)
//	r, _ := cloudtaa.NewRenderer(dev, sky, blend)
package wgpu
