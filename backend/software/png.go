// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image/png"
	"os"

	"github.com/gogpu/cloudtaa"
)

// SavePNG writes a target created by this backend to a 16-bit PNG file,
// top row first.
func SavePNG(t cloudtaa.Target, path string) error {
	img, err := Snapshot(t)
	if err != nil {
		return err
	}

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, img)
}
