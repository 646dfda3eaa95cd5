// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// ViewID identifies a viewpoint (camera, eye, reflection probe) across frames.
type ViewID uint64

// Viewpoint is what the viewpoint source supplies for one frame.
type Viewpoint struct {
	// Width and Height are the raw viewport size in pixels.
	Width  int
	Height int

	// Projection is the camera projection matrix.
	Projection mgl32.Mat4

	// WorldToView is the camera rotation (world to view) matrix.
	WorldToView mgl32.Mat4

	// Preview marks preview or reflection views that bypass supersampling.
	Preview bool
}

// ViewPhase is the lifecycle phase of a ViewState.
type ViewPhase uint8

const (
	// PhaseUninitialized: no frame has been begun yet.
	PhaseUninitialized ViewPhase = iota

	// PhaseReady: buffers are allocated at the current resolution.
	PhaseReady

	// PhaseResizing: buffers are being reallocated for a new resolution.
	PhaseResizing

	// PhaseDisposed: buffers are released; the view accepts no more frames.
	PhaseDisposed
)

// String returns a human-readable name for the phase.
func (p ViewPhase) String() string {
	switch p {
	case PhaseUninitialized:
		return "Uninitialized"
	case PhaseReady:
		return "Ready"
	case PhaseResizing:
		return "Resizing"
	case PhaseDisposed:
		return "Disposed"
	default:
		return fmt.Sprintf("ViewPhase(%d)", p)
	}
}

// ViewState is the supersampling state of one viewpoint: its resolution,
// jitter schedule, frame buffers and the camera matrices of the current and
// previous frame.
//
// A frame is one BeginFrame followed by one EndFrame, driven by one
// goroutine. Dispose and the accessors may be called from any goroutine:
// Dispose waits for a running BeginFrame or EndFrame to return, and once it
// has run the rest of an open frame is dropped.
type ViewState struct {
	mu sync.Mutex

	id         ViewID
	config     Config
	device     Device
	buffers    *FrameBufferSet
	scheduler  *JitterScheduler
	compositor *TemporalCompositor
	directions [DirectionCount]mgl32.Vec3

	phase      ViewPhase
	res        Resolution
	resolved   bool
	firstFrame bool
	inFrame    bool
	frames     uint64

	projection     mgl32.Mat4
	rotation       mgl32.Mat4
	prevProjection mgl32.Mat4
	prevRotation   mgl32.Mat4
	hasPrevious    bool
	params         FrameParams
}

// NewViewState creates the state for one view. Views are normally created
// by a ViewRegistry; config must already be valid.
func NewViewState(id ViewID, config Config, device Device, rng *rand.Rand, directions [DirectionCount]mgl32.Vec3) (*ViewState, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	scheduler, err := NewJitterScheduler(config.SubPixelGrid, rng, config.CyclePolicy)
	if err != nil {
		return nil, err
	}
	return &ViewState{
		id:         id,
		config:     config,
		device:     device,
		buffers:    NewFrameBufferSet(device, fmt.Sprintf("view%d", id)),
		scheduler:  scheduler,
		compositor: NewTemporalCompositor(device),
		directions: directions,
	}, nil
}

// ID returns the view identity.
func (v *ViewState) ID() ViewID {
	return v.id
}

// Phase returns the lifecycle phase.
func (v *ViewState) Phase() ViewPhase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// Resolution returns the resolution of the last BeginFrame.
func (v *ViewState) Resolution() Resolution {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.res
}

// Scheduler returns the jitter schedule of the view.
func (v *ViewState) Scheduler() *JitterScheduler {
	return v.scheduler
}

// Buffers returns the frame buffers of the view.
func (v *ViewState) Buffers() *FrameBufferSet {
	return v.buffers
}

// IsFirstFrame reports whether the next EndFrame seeds history instead of
// blending into it.
func (v *ViewState) IsFirstFrame() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.firstFrame
}

// Frames returns the number of completed frames.
func (v *ViewState) Frames() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frames
}

// Output returns the history frame, or nil when the view holds no buffers.
func (v *ViewState) Output() Target {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.buffers.History()
}

// SetSubPixelGrid switches the view to an n×n grid. The permutation is
// reshuffled, the cursor reset and history reseeded on the next frame.
// Setting the current grid size is a no-op.
func (v *ViewState) SetSubPixelGrid(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: sub-pixel grid %d < 1", ErrInvalidConfig, n)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.inFrame {
		return ErrFrameInProgress
	}
	return v.setSubPixelGridLocked(n)
}

// setSubPixelGridLocked applies a valid n. v.mu must be held and no frame
// may be open.
func (v *ViewState) setSubPixelGridLocked(n int) error {
	if n == v.scheduler.Grid() {
		return nil
	}
	if err := v.scheduler.SetGrid(n); err != nil {
		return err
	}
	v.config.SubPixelGrid = n
	v.firstFrame = true
	return nil
}

// BeginFrame resolves the working resolution for vp, (re)allocates buffers
// when it changed, snapshots the camera matrices and computes this frame's
// jitter. The returned params are valid until EndFrame.
func (v *ViewState) BeginFrame(vp Viewpoint) (*FrameParams, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.phase == PhaseDisposed {
		return nil, ErrViewDisposed
	}

	var previous *Resolution
	if v.resolved {
		previous = &v.res
	}
	res, changed, err := Resolve(vp.Width, vp.Height, v.config.Downsample, v.scheduler.Grid(), previous)
	if err != nil {
		return nil, err
	}

	if changed || !v.buffers.Allocated() {
		if v.phase == PhaseReady {
			v.phase = PhaseResizing
		}
		if err := v.buffers.EnsureAllocated(res, v.config.HighDynamicRange); err != nil {
			v.resolved = false
			v.res = Resolution{}
			v.phase = PhaseUninitialized
			return nil, err
		}
		Logger().Debug("cloudtaa: view resized", "view", uint64(v.id), "resolution", res.String())
		v.res = res
		v.resolved = true
		v.firstFrame = true
	}
	v.phase = PhaseReady

	v.projection = vp.Projection
	v.rotation = vp.WorldToView
	if !v.hasPrevious {
		v.prevProjection = v.projection
		v.prevRotation = v.rotation
	}

	grid := v.scheduler.Grid()
	index := v.scheduler.Next()
	offset := JitterOffset(index, grid, res.FrameWidth, res.FrameHeight)
	inverseProjection := v.projection.Inv()
	jitter := mgl32.Translate3D(offset.X(), offset.Y(), 0)
	jitteredInverse := inverseProjection.Mul4(jitter)

	v.params = FrameParams{
		Projection:                v.projection,
		Rotation:                  v.rotation,
		InverseProjection:         inverseProjection,
		InverseRotation:           v.rotation.Inv(),
		JitteredInverseProjection: jitteredInverse,
		JitteredProjection:        mgl32.Translate3D(-offset.X(), -offset.Y(), 0).Mul4(v.projection),
		PreviousProjection:        v.prevProjection,
		PreviousRotation:          v.prevRotation,
		JitterIndex:               index,
		JitterOffset:              offset,
		SubPixelGrid:              grid,
		Resolution:                res,
		Directions:                v.directions,
		FirstFrame:                v.firstFrame,
		Frame:                     v.frames,
	}
	v.inFrame = true
	Logger().Debug("cloudtaa: frame begun", "view", uint64(v.id), "jitter", index, "first", v.firstFrame)

	params := v.params
	return &params, nil
}

// EndFrame renders the subframe with effect, folds it into history and
// advances the schedule. On a first frame the subframe is upsampled into
// history without blending; otherwise the TemporalCompositor blends with
// blender. EndFrame on a disposed view does nothing.
func (v *ViewState) EndFrame(ctx context.Context, effect Effect, blender Blender) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.phase == PhaseDisposed {
		Logger().Warn("cloudtaa: frame dropped for disposed view", "view", uint64(v.id))
		return nil
	}
	if !v.inFrame {
		return ErrFrameNotBegun
	}
	if effect == nil {
		return ErrNilEffect
	}
	if !v.firstFrame && blender == nil {
		return ErrNilBlender
	}
	v.inFrame = false

	sub, history := v.buffers.SubFrame(), v.buffers.History()
	if err := effect.Render(ctx, sub, &v.params); err != nil {
		return fmt.Errorf("cloudtaa: render subframe: %w", err)
	}

	if v.firstFrame {
		if err := v.device.Blit(ctx, sub, history); err != nil {
			return fmt.Errorf("cloudtaa: seed history: %w", err)
		}
		v.firstFrame = false
	} else {
		if err := v.compositor.Composite(ctx, sub, history, &v.params, blender); err != nil {
			return fmt.Errorf("cloudtaa: composite: %w", err)
		}
	}

	v.prevProjection = v.projection
	v.prevRotation = v.rotation
	v.hasPrevious = true
	v.scheduler.Advance()
	v.frames++
	return nil
}

// Dispose releases the buffers. Further BeginFrame calls fail with
// ErrViewDisposed and EndFrame calls are no-ops. Safe to call multiple times.
func (v *ViewState) Dispose() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.phase == PhaseDisposed {
		return
	}
	v.buffers.Release()
	v.phase = PhaseDisposed
	v.inFrame = false
	v.resolved = false
	v.res = Resolution{}
	Logger().Info("cloudtaa: view disposed", "view", uint64(v.id), "frames", v.frames)
}
