// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cloudtaa"
)

// UniformSize is the byte size of the FrameUniforms block: five matrices,
// the sampling directions and three parameter vectors.
const UniformSize = 5*64 + cloudtaa.DirectionCount*16 + 3*16

// PackUniforms lays out params as the FrameUniforms WGSL struct (uniform
// address space, little-endian). Matrices are column-major like mgl32.
func PackUniforms(params *cloudtaa.FrameParams) []byte {
	buf := make([]byte, 0, UniformSize)
	for _, m := range []mgl32.Mat4{
		params.JitteredInverseProjection,
		params.InverseProjection,
		params.InverseRotation,
		params.PreviousProjection,
		params.PreviousRotation,
	} {
		buf = appendFloats(buf, m[:]...)
	}
	for _, d := range params.Directions {
		buf = appendFloats(buf, d.X(), d.Y(), d.Z(), 0)
	}

	cx, cy := params.JitterCell()
	buf = appendFloats(buf, params.JitterOffset.X(), params.JitterOffset.Y(), float32(cx), float32(cy))

	res := params.Resolution
	buf = appendFloats(buf,
		float32(res.FrameWidth), float32(res.FrameHeight),
		float32(res.SubWidth), float32(res.SubHeight))

	var first float32
	if params.FirstFrame {
		first = 1
	}
	buf = appendFloats(buf, float32(params.SubPixelGrid), first, float32(params.Frame), 0)
	return buf
}

func appendFloats(buf []byte, vs ...float32) []byte {
	for _, v := range vs {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}
