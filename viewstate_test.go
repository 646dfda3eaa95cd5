// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestView(t *testing.T, dev *fakeDevice, grid int) *ViewState {
	t.Helper()
	cfg := Config{SubPixelGrid: grid, Downsample: 1}
	v, err := NewViewState(1, cfg, dev, newTestRNG(11), RandomDirections(DefaultSeed))
	if err != nil {
		t.Fatalf("NewViewState() = %v", err)
	}
	return v
}

// runFrame performs one BeginFrame/EndFrame pair.
func runFrame(t *testing.T, v *ViewState, vp Viewpoint, effect Effect, blender Blender) *FrameParams {
	t.Helper()
	params, err := v.BeginFrame(vp)
	if err != nil {
		t.Fatalf("BeginFrame() = %v", err)
	}
	if err := v.EndFrame(context.Background(), effect, blender); err != nil {
		t.Fatalf("EndFrame() = %v", err)
	}
	return params
}

func TestNewViewStateErrors(t *testing.T) {
	dirs := RandomDirections(1)
	if _, err := NewViewState(1, DefaultConfig(), nil, nil, dirs); !errors.Is(err, ErrNilDevice) {
		t.Errorf("nil device: %v", err)
	}
	if _, err := NewViewState(1, Config{}, newFakeDevice(), nil, dirs); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero config: %v", err)
	}
}

func TestViewFirstFrameSeedsHistory(t *testing.T) {
	dev := newFakeDevice()
	v := newTestView(t, dev, 4)
	if v.Phase() != PhaseUninitialized {
		t.Fatalf("Phase() = %v", v.Phase())
	}

	effect, blender := &recordingEffect{}, &recordingBlender{}
	params := runFrame(t, v, testViewpoint(16, 16), effect, blender)

	if !params.FirstFrame {
		t.Error("first frame params should have FirstFrame set")
	}
	if v.Phase() != PhaseReady || v.Frames() != 1 || v.IsFirstFrame() {
		t.Errorf("phase %v frames %d first %v", v.Phase(), v.Frames(), v.IsFirstFrame())
	}
	if len(effect.calls) != 1 {
		t.Fatalf("effect rendered %d times", len(effect.calls))
	}
	if len(blender.calls) != 0 {
		t.Error("first frame must not blend")
	}
	if len(dev.blits) != 1 || dev.blits[0].src != v.Buffers().SubFrame() || dev.blits[0].dst != v.Output() {
		t.Errorf("first frame blits = %v, want subframe -> history", dev.blits)
	}
	if !params.PreviousProjection.ApproxEqual(params.Projection) || !params.PreviousRotation.ApproxEqual(params.Rotation) {
		t.Error("first frame previous matrices should equal the current ones")
	}
}

func TestViewSecondFrameBlends(t *testing.T) {
	dev := newFakeDevice()
	v := newTestView(t, dev, 4)
	effect, blender := &recordingEffect{}, &recordingBlender{}

	vp := testViewpoint(16, 16)
	runFrame(t, v, vp, effect, blender)

	turned := vp
	turned.WorldToView = mgl32.HomogRotate3DY(mgl32.DegToRad(5))
	params := runFrame(t, v, turned, effect, blender)

	if params.FirstFrame {
		t.Error("second frame should not be a first frame")
	}
	if len(blender.calls) != 1 {
		t.Fatalf("blender called %d times, want 1", len(blender.calls))
	}
	if !params.PreviousRotation.ApproxEqual(vp.WorldToView) {
		t.Error("PreviousRotation should be the rotation of the last frame")
	}
	if !params.Rotation.ApproxEqual(turned.WorldToView) {
		t.Error("Rotation should be the current rotation")
	}
	if len(dev.live) != 2 {
		t.Errorf("%d live targets after blending, want 2", len(dev.live))
	}
}

// matricesClose compares entry by entry with an absolute bound.
func matricesClose(a, b mgl32.Mat4, eps float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > eps || d < -eps {
			return false
		}
	}
	return true
}

func TestViewJitterMatrices(t *testing.T) {
	v := newTestView(t, newFakeDevice(), 4)
	effect, blender := &recordingEffect{}, &recordingBlender{}
	vp := testViewpoint(32, 16)

	for range 16 {
		params := runFrame(t, v, vp, effect, blender)
		want := JitterOffset(params.JitterIndex, 4, 32, 16)
		if params.JitterOffset != want {
			t.Fatalf("JitterOffset = %v, want %v", params.JitterOffset, want)
		}
		jittered := params.InverseProjection.Mul4(mgl32.Translate3D(want.X(), want.Y(), 0))
		if !matricesClose(params.JitteredInverseProjection, jittered, 1e-5) {
			t.Errorf("JitteredInverseProjection mismatch for cell %d", params.JitterIndex)
		}
		roundTrip := params.JitteredProjection.Mul4(params.JitteredInverseProjection)
		if !matricesClose(roundTrip, mgl32.Ident4(), 1e-5) {
			t.Errorf("JitteredProjection is not the inverse for cell %d", params.JitterIndex)
		}
		if params.Directions != RandomDirections(DefaultSeed) {
			t.Error("directions changed between frames")
		}
	}

	seen := make(map[int]bool)
	for _, p := range effect.calls {
		seen[p.JitterIndex] = true
	}
	if len(seen) != 16 {
		t.Errorf("visited %d cells in 16 frames, want 16", len(seen))
	}
}

func TestViewResizeReseeds(t *testing.T) {
	dev := newFakeDevice()
	v := newTestView(t, dev, 4)
	effect, blender := &recordingEffect{}, &recordingBlender{}

	runFrame(t, v, testViewpoint(16, 16), effect, blender)
	runFrame(t, v, testViewpoint(16, 16), effect, blender)

	params := runFrame(t, v, testViewpoint(32, 16), effect, blender)
	if !params.FirstFrame {
		t.Error("resize should reseed history")
	}
	if got := v.Resolution(); got.FrameWidth != 32 || got.SubWidth != 8 {
		t.Errorf("Resolution() = %v after resize", got)
	}
	if len(blender.calls) != 1 {
		t.Errorf("blender called %d times, want 1", len(blender.calls))
	}
	if dev.destroyed < 2 || len(dev.live) != 2 {
		t.Errorf("old buffers not released: destroyed %d live %d", dev.destroyed, len(dev.live))
	}
}

func TestViewAllocationFailure(t *testing.T) {
	dev := newFakeDevice()
	dev.failOn = 2
	v := newTestView(t, dev, 2)

	if _, err := v.BeginFrame(testViewpoint(8, 8)); !errors.Is(err, ErrAllocation) {
		t.Fatalf("BeginFrame() = %v, want ErrAllocation", err)
	}
	if v.Phase() != PhaseUninitialized || v.Output() != nil {
		t.Errorf("phase %v after failed allocation", v.Phase())
	}
	if err := v.EndFrame(context.Background(), &recordingEffect{}, nil); !errors.Is(err, ErrFrameNotBegun) {
		t.Errorf("EndFrame() after failed BeginFrame = %v", err)
	}

	// The next frame retries.
	runFrame(t, v, testViewpoint(8, 8), &recordingEffect{}, nil)
}

func TestViewEndFrameErrors(t *testing.T) {
	ctx := context.Background()
	v := newTestView(t, newFakeDevice(), 2)

	if err := v.EndFrame(ctx, &recordingEffect{}, &recordingBlender{}); !errors.Is(err, ErrFrameNotBegun) {
		t.Errorf("EndFrame() without BeginFrame = %v", err)
	}

	if _, err := v.BeginFrame(testViewpoint(8, 8)); err != nil {
		t.Fatal(err)
	}
	if err := v.EndFrame(ctx, nil, nil); !errors.Is(err, ErrNilEffect) {
		t.Errorf("nil effect: %v", err)
	}
	if err := v.EndFrame(ctx, &recordingEffect{}, nil); err != nil {
		t.Fatalf("first frame without blender: %v", err)
	}

	if _, err := v.BeginFrame(testViewpoint(8, 8)); err != nil {
		t.Fatal(err)
	}
	if err := v.EndFrame(ctx, &recordingEffect{}, nil); !errors.Is(err, ErrNilBlender) {
		t.Errorf("nil blender after first frame: %v", err)
	}

	failing := &recordingEffect{err: errInjected}
	if err := v.EndFrame(ctx, failing, &recordingBlender{}); !errors.Is(err, errInjected) {
		t.Errorf("failing effect: %v", err)
	}
}

func TestViewSetSubPixelGrid(t *testing.T) {
	v := newTestView(t, newFakeDevice(), 4)
	effect, blender := &recordingEffect{}, &recordingBlender{}
	vp := testViewpoint(16, 16)
	runFrame(t, v, vp, effect, blender)
	runFrame(t, v, vp, effect, blender)

	if _, err := v.BeginFrame(vp); err != nil {
		t.Fatal(err)
	}
	if err := v.SetSubPixelGrid(2); !errors.Is(err, ErrFrameInProgress) {
		t.Errorf("SetSubPixelGrid() during a frame = %v", err)
	}
	if err := v.EndFrame(context.Background(), effect, blender); err != nil {
		t.Fatal(err)
	}

	if err := v.SetSubPixelGrid(4); err != nil || v.IsFirstFrame() {
		t.Errorf("same grid: err %v first %v", err, v.IsFirstFrame())
	}
	if err := v.SetSubPixelGrid(0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SetSubPixelGrid(0) = %v", err)
	}
	if err := v.SetSubPixelGrid(2); err != nil {
		t.Fatal(err)
	}

	params := runFrame(t, v, vp, effect, blender)
	if params.SubPixelGrid != 2 || !params.FirstFrame {
		t.Errorf("after SetSubPixelGrid(2): grid %d first %v", params.SubPixelGrid, params.FirstFrame)
	}
	if params.Resolution.SubWidth != 8 {
		t.Errorf("SubWidth = %d, want 8", params.Resolution.SubWidth)
	}
	if v.Scheduler().Cursor() != 1 {
		t.Errorf("cursor = %d, want 1 after one frame on the new grid", v.Scheduler().Cursor())
	}
}

func TestViewDispose(t *testing.T) {
	ctx := context.Background()
	dev := newFakeDevice()
	v := newTestView(t, dev, 2)
	effect := &recordingEffect{}
	runFrame(t, v, testViewpoint(8, 8), effect, nil)

	if _, err := v.BeginFrame(testViewpoint(8, 8)); err != nil {
		t.Fatal(err)
	}
	v.Dispose()
	v.Dispose()

	if v.Phase() != PhaseDisposed || v.Output() != nil {
		t.Errorf("phase %v output %v", v.Phase(), v.Output())
	}
	if len(dev.live) != 0 {
		t.Errorf("%d targets still live after Dispose", len(dev.live))
	}
	if err := v.EndFrame(ctx, effect, &recordingBlender{}); err != nil {
		t.Errorf("EndFrame() on a disposed view = %v, want nil", err)
	}
	if len(effect.calls) != 1 {
		t.Error("disposed view rendered a frame")
	}
	if _, err := v.BeginFrame(testViewpoint(8, 8)); !errors.Is(err, ErrViewDisposed) {
		t.Errorf("BeginFrame() after Dispose = %v", err)
	}
}

func TestViewPhaseString(t *testing.T) {
	tests := []struct {
		p    ViewPhase
		want string
	}{
		{PhaseUninitialized, "Uninitialized"},
		{PhaseReady, "Ready"},
		{PhaseResizing, "Resizing"},
		{PhaseDisposed, "Disposed"},
		{ViewPhase(9), "ViewPhase(9)"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestViewDisposeWaitsForEndFrame(t *testing.T) {
	dev := newFakeDevice()
	v := newTestView(t, dev, 2)
	if _, err := v.BeginFrame(testViewpoint(8, 8)); err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{})
	release := make(chan struct{})
	effect := EffectFunc(func(_ context.Context, dst Target, _ *FrameParams) error {
		close(started)
		<-release
		return checkLive(dst)
	})

	done := make(chan error, 1)
	go func() {
		done <- v.EndFrame(context.Background(), effect, nil)
	}()
	<-started

	disposed := make(chan struct{})
	go func() {
		v.Dispose()
		close(disposed)
	}()

	select {
	case <-disposed:
		t.Fatal("Dispose() returned while EndFrame was rendering")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)

	if err := <-done; err != nil {
		t.Errorf("EndFrame() = %v", err)
	}
	<-disposed
	if v.Phase() != PhaseDisposed {
		t.Errorf("Phase() = %v, want Disposed", v.Phase())
	}
}
