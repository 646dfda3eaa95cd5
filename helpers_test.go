// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var errInjected = errors.New("injected failure")

// errDestroyedTarget is returned by the recording fakes when they are handed
// a target that was already destroyed.
var errDestroyedTarget = errors.New("target already destroyed")

func checkLive(targets ...Target) error {
	for _, t := range targets {
		if ft, ok := t.(*fakeTarget); !ok || ft == nil || ft.destroyed {
			return fmt.Errorf("%w: %v", errDestroyedTarget, t)
		}
	}
	return nil
}

// fakeTarget is a size-only render target.
type fakeTarget struct {
	desc      TargetDescriptor
	destroyed bool
}

func (t *fakeTarget) Width() int           { return t.desc.Width }
func (t *fakeTarget) Height() int          { return t.desc.Height }
func (t *fakeTarget) Format() TargetFormat { return t.desc.Format }
func (t *fakeTarget) Label() string        { return t.desc.Label }

type blitCall struct {
	src, dst Target
}

// fakeDevice counts allocations and records blits. failOn makes the n-th
// CreateTarget call (1-based) fail.
type fakeDevice struct {
	mu        sync.Mutex
	created   int
	destroyed int
	live      map[*fakeTarget]bool
	blits     []blitCall
	failOn    int
	blitErr   error
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{live: make(map[*fakeTarget]bool)}
}

func (d *fakeDevice) CreateTarget(desc TargetDescriptor) (Target, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failOn > 0 && d.created+1 == d.failOn {
		d.failOn = 0
		return nil, errInjected
	}
	d.created++
	t := &fakeTarget{desc: desc}
	d.live[t] = true
	return t, nil
}

func (d *fakeDevice) DestroyTarget(t Target) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ft, ok := t.(*fakeTarget)
	if !ok || ft == nil || ft.destroyed {
		return
	}
	ft.destroyed = true
	delete(d.live, ft)
	d.destroyed++
}

func (d *fakeDevice) Blit(_ context.Context, src, dst Target) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := checkLive(src, dst); err != nil {
		return err
	}
	if d.blitErr != nil {
		return d.blitErr
	}
	d.blits = append(d.blits, blitCall{src: src, dst: dst})
	return nil
}

// recordingEffect keeps a copy of the params of every Render call.
type recordingEffect struct {
	mu    sync.Mutex
	calls []FrameParams
	err   error
}

func (e *recordingEffect) Render(_ context.Context, dst Target, params *FrameParams) error {
	if e.err != nil {
		return e.err
	}
	if err := checkLive(dst); err != nil {
		return err
	}
	e.mu.Lock()
	e.calls = append(e.calls, *params)
	e.mu.Unlock()
	return nil
}

// recordingBlender keeps the targets of every Blend call.
type recordingBlender struct {
	mu    sync.Mutex
	calls []blendCall
	err   error
}

type blendCall struct {
	sub, history, dst Target
	params            FrameParams
}

func (b *recordingBlender) Blend(_ context.Context, sub, history, dst Target, params *FrameParams) error {
	if err := checkLive(sub, history, dst); err != nil {
		return err
	}
	b.mu.Lock()
	b.calls = append(b.calls, blendCall{sub: sub, history: history, dst: dst, params: *params})
	b.mu.Unlock()
	return b.err
}

func testViewpoint(w, h int) Viewpoint {
	return Viewpoint{
		Width:       w,
		Height:      h,
		Projection:  mgl32.Perspective(mgl32.DegToRad(60), float32(w)/float32(h), 0.1, 100),
		WorldToView: mgl32.Ident4(),
	}
}

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	r, err := NewRenderer(newFakeDevice(), &recordingEffect{}, &recordingBlender{}, opts...)
	if err != nil {
		t.Fatalf("NewRenderer() = %v", err)
	}
	t.Cleanup(r.Close)
	return r
}
