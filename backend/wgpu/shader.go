// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/fullscreen.wgsl
var fullscreenShaderSource string

//go:embed shaders/frame.wgsl
var frameShaderSource string

//go:embed shaders/blit.wgsl
var blitFragmentSource string

//go:embed shaders/sky.wgsl
var skyFragmentSource string

//go:embed shaders/blend.wgsl
var blendFragmentSource string

// BlitShaderSource returns the complete WGSL of the bilinear blit pass.
func BlitShaderSource() string {
	return fullscreenShaderSource + "\n" + blitFragmentSource
}

// SkyShaderSource returns the complete WGSL of the procedural sky effect.
func SkyShaderSource() string {
	return fullscreenShaderSource + "\n" + frameShaderSource + "\n" + skyFragmentSource
}

// BlendShaderSource returns the complete WGSL of the reprojecting blend.
func BlendShaderSource() string {
	return fullscreenShaderSource + "\n" + frameShaderSource + "\n" + blendFragmentSource
}

// FrameShaderSource returns the WGSL declaring the per-frame uniform block
// and its helpers. Custom materials append their fragment stage to
// FullscreenShaderSource() + FrameShaderSource().
func FrameShaderSource() string {
	return frameShaderSource
}

// FullscreenShaderSource returns the WGSL of the shared vertex stage.
func FullscreenShaderSource() string {
	return fullscreenShaderSource
}

// compileShaderToSPIRV compiles WGSL source to SPIR-V words.
func compileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}

// createShaderModule compiles wgslSource and creates a HAL shader module.
func createShaderModule(device hal.Device, label, wgslSource string) (hal.ShaderModule, error) {
	spirv, err := compileShaderToSPIRV(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: spirv,
		},
	})
}
