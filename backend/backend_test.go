// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/cloudtaa"
)

type fakeTarget struct {
	desc cloudtaa.TargetDescriptor
}

func (t *fakeTarget) Width() int                    { return t.desc.Width }
func (t *fakeTarget) Height() int                   { return t.desc.Height }
func (t *fakeTarget) Format() cloudtaa.TargetFormat { return t.desc.Format }
func (t *fakeTarget) Label() string                 { return t.desc.Label }

type fakeDevice struct{}

func (fakeDevice) CreateTarget(desc cloudtaa.TargetDescriptor) (cloudtaa.Target, error) {
	return &fakeTarget{desc: desc}, nil
}

func (fakeDevice) DestroyTarget(cloudtaa.Target) {}

func (fakeDevice) Blit(context.Context, cloudtaa.Target, cloudtaa.Target) error { return nil }

type fakeBackend struct {
	name    string
	initErr error
	dev     cloudtaa.Device
	closed  bool
}

func (b *fakeBackend) Name() string { return b.name }

func (b *fakeBackend) Init() error {
	if b.initErr != nil {
		return b.initErr
	}
	b.dev = fakeDevice{}
	return nil
}

func (b *fakeBackend) Close()                  { b.closed = true }
func (b *fakeBackend) Device() cloudtaa.Device { return b.dev }

func (b *fakeBackend) NewEffect() (cloudtaa.Effect, error) {
	return cloudtaa.EffectFunc(func(context.Context, cloudtaa.Target, *cloudtaa.FrameParams) error {
		return nil
	}), nil
}

func (b *fakeBackend) NewBlender() (cloudtaa.Blender, error) {
	return cloudtaa.BlenderFunc(func(context.Context, cloudtaa.Target, cloudtaa.Target, cloudtaa.Target, *cloudtaa.FrameParams) error {
		return nil
	}), nil
}

// withRegistry runs fn against a private registry and restores the global one.
func withRegistry(t *testing.T, fn func()) {
	t.Helper()
	registryMu.Lock()
	saved := backends
	backends = make(map[string]BackendFactory)
	registryMu.Unlock()
	defer func() {
		registryMu.Lock()
		backends = saved
		registryMu.Unlock()
	}()
	fn()
}

func TestRegistryRegisterAndGet(t *testing.T) {
	withRegistry(t, func() {
		Register("fake", func() Backend { return &fakeBackend{name: "fake"} })

		if !IsRegistered("fake") {
			t.Error("fake backend should be registered")
		}
		b := Get("fake")
		if b == nil {
			t.Fatal("Get(fake) returned nil")
		}
		if b.Name() != "fake" {
			t.Errorf("Name() = %q, want %q", b.Name(), "fake")
		}
		if Get("missing") != nil {
			t.Error("Get(missing) should return nil")
		}

		Unregister("fake")
		if IsRegistered("fake") {
			t.Error("fake backend should be unregistered")
		}
	})
}

func TestRegistryAvailableSorted(t *testing.T) {
	withRegistry(t, func() {
		for _, name := range []string{"zeta", BackendSoftware, "alpha"} {
			Register(name, func() Backend { return &fakeBackend{name: name} })
		}
		got := Available()
		want := []string{"alpha", BackendSoftware, "zeta"}
		if !slices.Equal(got, want) {
			t.Errorf("Available() = %v, want %v", got, want)
		}
	})
}

func TestDefaultPriority(t *testing.T) {
	withRegistry(t, func() {
		if Default() != nil {
			t.Error("Default() on empty registry should be nil")
		}
		Register("other", func() Backend { return &fakeBackend{name: "other"} })
		Register(BackendSoftware, func() Backend { return &fakeBackend{name: BackendSoftware} })
		if got := Default().Name(); got != BackendSoftware {
			t.Errorf("Default() = %q, want %q", got, BackendSoftware)
		}
		Register(BackendWGPU, func() Backend { return &fakeBackend{name: BackendWGPU} })
		if got := Default().Name(); got != BackendWGPU {
			t.Errorf("Default() = %q, want %q", got, BackendWGPU)
		}
	})
}

func TestMustDefaultPanics(t *testing.T) {
	withRegistry(t, func() {
		defer func() {
			if recover() == nil {
				t.Error("MustDefault() should panic with no backends")
			}
		}()
		MustDefault()
	})
}

func TestInitDefaultFallsThrough(t *testing.T) {
	withRegistry(t, func() {
		gpuErr := errors.New("no adapter")
		Register(BackendWGPU, func() Backend { return &fakeBackend{name: BackendWGPU, initErr: gpuErr} })
		Register(BackendSoftware, func() Backend { return &fakeBackend{name: BackendSoftware} })

		b, err := InitDefault()
		if err != nil {
			t.Fatalf("InitDefault() error = %v", err)
		}
		if b.Name() != BackendSoftware {
			t.Errorf("InitDefault() = %q, want %q", b.Name(), BackendSoftware)
		}

		Unregister(BackendSoftware)
		if _, err := InitDefault(); !errors.Is(err, gpuErr) {
			t.Errorf("InitDefault() error = %v, want %v", err, gpuErr)
		}

		Unregister(BackendWGPU)
		if _, err := InitDefault(); !errors.Is(err, ErrBackendNotAvailable) {
			t.Errorf("InitDefault() error = %v, want ErrBackendNotAvailable", err)
		}
	})
}

func TestNewRenderer(t *testing.T) {
	b := &fakeBackend{name: "fake"}
	if _, err := NewRenderer(b); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("NewRenderer before Init = %v, want ErrNotInitialized", err)
	}
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	r, err := NewRenderer(b, cloudtaa.WithSubPixelGrid(2))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Close()
	if r.Config().SubPixelGrid != 2 {
		t.Errorf("SubPixelGrid = %d, want 2", r.Config().SubPixelGrid)
	}
}
