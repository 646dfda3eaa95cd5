// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package backend provides a pluggable backend abstraction for cloudtaa.
//
// A backend pairs a cloudtaa.Device with the effect and blender that run on
// it. Two implementations exist: the CPU reference backend in
// backend/software and the GPU backend in backend/wgpu.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// Import the implementations you want for their side effects:
//
//	import (
//		_ "github.com/gogpu/cloudtaa/backend/software"
//		_ "github.com/gogpu/cloudtaa/backend/wgpu"
//	)
//
// # Backend Selection
//
// Use InitDefault() to get the best backend that initializes, or Get() to
// request a specific backend by name:
//
//	b, err := backend.InitDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	r, err := backend.NewRenderer(b, cloudtaa.WithSubPixelGrid(4))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//
// # Available Backends
//
//   - "software": CPU reference implementation (always available)
//   - "wgpu": GPU implementation via gogpu/wgpu HAL
package backend
