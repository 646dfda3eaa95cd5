// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cloudtaa manages per-view temporal supersampling and reprojection
// state for effects that are too expensive to render at full resolution
// every frame, such as volumetric clouds.
//
// # Overview
//
// Each frame an effect renders a low-resolution subframe at one of N×N
// sub-pixel positions. The subframe is blended into a full-resolution history
// frame that is reprojected using the camera motion between frames. After
// N*N frames every full-resolution pixel has received a fresh sample.
//
// # Quick Start
//
//	device := software.NewDevice()
//	r, err := cloudtaa.NewRenderer(device, software.NewSkyEffect(), software.NewBlender(),
//	    cloudtaa.WithSubPixelGrid(4),
//	    cloudtaa.WithDownsample(2),
//	)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	history, err := r.RenderView(ctx, cameraID, cloudtaa.Viewpoint{
//	    Width: 1920, Height: 1080,
//	    Projection:  proj,
//	    WorldToView: rot,
//	})
//
// # Architecture
//
//   - JitterScheduler: shuffled permutation of sub-pixel cells, one per frame
//   - Resolve: grid-aligned working resolution and change detection
//   - FrameBufferSet: subframe and history targets, all-or-nothing allocation
//   - ViewState: BeginFrame/EndFrame cycle and matrix bookkeeping
//   - ViewRegistry: one ViewState per view identity
//   - TemporalCompositor: scratch-target lifecycle around the external blend
//
// The GPU or CPU work is behind the Device, Effect and Blender interfaces.
// backend/wgpu implements them on gogpu/wgpu; backend/software is a CPU
// reference implementation.
package cloudtaa
