// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/cloudtaa"
)

// Device is a CPU implementation of cloudtaa.Device.
//
// Device is safe for concurrent use; individual images are not.
type Device struct {
	mu        sync.Mutex
	live      map[*Image]struct{}
	created   int
	destroyed int
}

// NewDevice creates an empty software device.
func NewDevice() *Device {
	return &Device{live: make(map[*Image]struct{})}
}

// CreateTarget implements cloudtaa.Device.
func (d *Device) CreateTarget(desc cloudtaa.TargetDescriptor) (cloudtaa.Target, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, desc.Width, desc.Height)
	}
	m, err := newImage(desc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", err, desc.Format)
	}

	d.mu.Lock()
	d.live[m] = struct{}{}
	d.created++
	d.mu.Unlock()

	cloudtaa.Logger().Debug("software: target created",
		"label", desc.Label, "width", desc.Width, "height", desc.Height, "format", desc.Format.String())
	return m, nil
}

// DestroyTarget implements cloudtaa.Device.
func (d *Device) DestroyTarget(t cloudtaa.Target) {
	m, ok := t.(*Image)
	if !ok || m == nil || m.destroyed {
		return
	}
	m.destroyed = true
	m.pix = nil

	d.mu.Lock()
	delete(d.live, m)
	d.destroyed++
	d.mu.Unlock()
}

// Blit implements cloudtaa.Device. Equal sizes are copied exactly; other
// sizes are resampled with bilinear filtering. HDR sources keep values
// above 1 when the destination is HDR too.
func (d *Device) Blit(ctx context.Context, src, dst cloudtaa.Target) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s, err := asImage(src)
	if err != nil {
		return fmt.Errorf("blit source: %w", err)
	}
	t, err := asImage(dst)
	if err != nil {
		return fmt.Errorf("blit destination: %w", err)
	}
	if s == t {
		return nil
	}
	same := s.pix.Bounds().Size() == t.pix.Bounds().Size()
	switch {
	case same && s.IsHDR() && t.IsHDR():
		copy(t.hdr.Pix, s.hdr.Pix)
	case same:
		draw.Draw(t.pix, t.pix.Bounds(), s.pix, s.pix.Bounds().Min, draw.Src)
	case s.IsHDR():
		scaleFloat(t, s)
	default:
		draw.BiLinear.Scale(t.pix, t.pix.Bounds(), s.pix, s.pix.Bounds(), draw.Src, nil)
	}
	return nil
}

// Live returns the number of targets that are allocated and not destroyed.
func (d *Device) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.live)
}

// Created returns the total number of targets ever created.
func (d *Device) Created() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.created
}

// Destroyed returns the total number of targets destroyed.
func (d *Device) Destroyed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.destroyed
}
