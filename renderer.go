// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// Renderer drives temporal supersampling for any number of views that share
// one device, one effect and one blender.
//
// RenderView may be called concurrently for distinct view IDs. Calls for the
// same ID must not overlap. Unregister, SetEnabled and Close may run while
// frames are rendering; the affected frames are dropped.
type Renderer struct {
	device     Device
	effect     Effect
	blender    Blender
	registry   *ViewRegistry
	directions [DirectionCount]mgl32.Vec3

	mu   sync.RWMutex // guards opts.config
	opts options

	enabled atomic.Bool
	closed  atomic.Bool
}

// NewRenderer validates the configuration and creates an enabled renderer
// with no views.
func NewRenderer(device Device, effect Effect, blender Blender, opts ...Option) (*Renderer, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if effect == nil {
		return nil, ErrNilEffect
	}
	if blender == nil {
		return nil, ErrNilBlender
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		device:     device,
		effect:     effect,
		blender:    blender,
		opts:       o,
		directions: RandomDirections(o.seed),
	}
	r.registry = NewViewRegistry(r.newView)
	r.enabled.Store(true)
	return r, nil
}

// newView is the registry factory. Every view gets its own random stream
// derived from the seed and its ID, so shuffles do not depend on the order
// in which views first appear.
func (r *Renderer) newView(id ViewID) (*ViewState, error) {
	rng := rand.New(rand.NewPCG(r.opts.seed, uint64(id)))
	return NewViewState(id, r.Config(), r.device, rng, r.directions)
}

// RenderView runs one full frame for the view and returns its history frame.
//
// Preview views and a disabled renderer return a nil target and no error.
// A view that is unregistered while its frame is running is not an error
// either; the frame is dropped and the target is nil.
func (r *Renderer) RenderView(ctx context.Context, id ViewID, vp Viewpoint) (Target, error) {
	if r.closed.Load() {
		return nil, ErrRendererClosed
	}
	if vp.Preview || !r.enabled.Load() {
		return nil, nil
	}

	view, err := r.registry.Acquire(id)
	if err != nil {
		return nil, err
	}
	if _, err := view.BeginFrame(vp); err != nil {
		if errors.Is(err, ErrViewDisposed) {
			return nil, nil
		}
		return nil, err
	}
	if err := view.EndFrame(ctx, r.effect, r.blender); err != nil {
		return nil, err
	}

	out := view.Output()
	if out != nil && r.opts.output != nil {
		r.opts.output(id, out)
	}
	return out, nil
}

// Unregister disposes the view's state and buffers.
func (r *Renderer) Unregister(id ViewID) bool {
	return r.registry.Unregister(id)
}

// SetEnabled turns the effect on or off. Disabling disposes every view;
// views are recreated lazily once re-enabled.
func (r *Renderer) SetEnabled(enabled bool) {
	if r.enabled.Swap(enabled) == enabled {
		return
	}
	if !enabled {
		r.registry.Close()
	}
	Logger().Info("cloudtaa: renderer enabled state changed", "enabled", enabled)
}

// Enabled reports whether the renderer produces frames.
func (r *Renderer) Enabled() bool {
	return r.enabled.Load()
}

// SetSubPixelGrid changes N for new and existing views. The change is all
// or nothing: when any view has a frame open it fails with
// ErrFrameInProgress and no view is touched.
func (r *Renderer) SetSubPixelGrid(n int) error {
	cfg := r.Config()
	cfg.SubPixelGrid = n
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The registry lock keeps new views out until the config is stored.
	return r.registry.locked(func(views []*ViewState) error {
		for _, v := range views {
			v.mu.Lock()
		}
		defer func() {
			for _, v := range slices.Backward(views) {
				v.mu.Unlock()
			}
		}()
		for _, v := range views {
			if v.inFrame {
				return ErrFrameInProgress
			}
		}
		for _, v := range views {
			if v.phase == PhaseDisposed {
				continue
			}
			if err := v.setSubPixelGridLocked(n); err != nil {
				return err
			}
		}

		r.mu.Lock()
		r.opts.config.SubPixelGrid = n
		r.mu.Unlock()
		return nil
	})
}

// Config returns the active configuration.
func (r *Renderer) Config() Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.opts.config
}

// Directions returns the fixed sampling directions handed to the effect.
func (r *Renderer) Directions() [DirectionCount]mgl32.Vec3 {
	return r.directions
}

// Registry returns the view registry.
func (r *Renderer) Registry() *ViewRegistry {
	return r.registry
}

// Close disposes every view. The renderer cannot be used afterwards.
// Safe to call multiple times.
func (r *Renderer) Close() {
	if r.closed.Swap(true) {
		return
	}
	r.registry.Close()
}
