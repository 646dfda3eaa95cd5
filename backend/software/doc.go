// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software is a CPU reference backend for cloudtaa.
//
// Targets are in-memory images: image.RGBA for 8-bit targets and a float32
// FloatImage for high-dynamic-range targets. The float store keeps values
// above 1 through rendering, blitting and blending, like a GPU half-float
// target; only Snapshot and SavePNG clamp to [0, 1].
//
// Rows are stored bottom-up: row 0 is NDC y = -1. Use Snapshot to obtain a
// conventional top-down image, or SavePNG to write one to disk.
//
// Besides the Device the package provides SkyEffect, a procedural effect that
// is a pure function of the world-space view direction, and Blender, a
// reprojecting temporal blend. Together they make the whole supersampling
// cycle observable without a GPU.
package software
