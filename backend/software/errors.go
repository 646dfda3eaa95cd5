// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import "errors"

// Package errors.
var (
	// ErrInvalidDimensions is returned for non-positive target sizes.
	ErrInvalidDimensions = errors.New("software: invalid dimensions")

	// ErrForeignTarget is returned for targets not created by this backend.
	ErrForeignTarget = errors.New("software: target not created by software device")

	// ErrTargetDestroyed is returned when using a destroyed target.
	ErrTargetDestroyed = errors.New("software: target has been destroyed")

	// ErrUnknownFormat is returned for unsupported target formats.
	ErrUnknownFormat = errors.New("software: unknown target format")
)
