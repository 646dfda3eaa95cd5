// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

import "fmt"

// Resolution is the working size of one view: the full-resolution history
// frame and the low-resolution subframe, both aligned to the sub-pixel grid.
type Resolution struct {
	FrameWidth  int
	FrameHeight int
	SubWidth    int
	SubHeight   int
}

// IsZero reports whether r is the zero Resolution.
func (r Resolution) IsZero() bool {
	return r == Resolution{}
}

// String returns "WxH (sub SWxSH)".
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d (sub %dx%d)", r.FrameWidth, r.FrameHeight, r.SubWidth, r.SubHeight)
}

// Resolve computes the grid-aligned working resolution for a raw viewport.
//
// The viewport is divided by downsample with truncation, then each axis is
// rounded up to the next multiple of grid. An axis that truncates to zero is
// treated as one pixel so the result is always positive. changed is true
// when previous is nil or differs from the result.
func Resolve(rawWidth, rawHeight, downsample, grid int, previous *Resolution) (res Resolution, changed bool, err error) {
	if downsample < 1 {
		return Resolution{}, false, fmt.Errorf("%w: downsample %d < 1", ErrInvalidConfig, downsample)
	}
	if grid < 1 {
		return Resolution{}, false, fmt.Errorf("%w: sub-pixel grid %d < 1", ErrInvalidConfig, grid)
	}
	if rawWidth <= 0 || rawHeight <= 0 {
		return Resolution{}, false, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, rawWidth, rawHeight)
	}

	w := alignUp(max(rawWidth/downsample, 1), grid)
	h := alignUp(max(rawHeight/downsample, 1), grid)
	res = Resolution{
		FrameWidth:  w,
		FrameHeight: h,
		SubWidth:    w / grid,
		SubHeight:   h / grid,
	}
	changed = previous == nil || *previous != res
	return res, changed, nil
}

// alignUp rounds v up to a multiple of n.
func alignUp(v, n int) int {
	if r := v % n; r != 0 {
		return v + n - r
	}
	return v
}
