// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

// DefaultSeed seeds the jitter shuffles and the sampling directions when
// no seed is configured.
const DefaultSeed uint64 = 0x5eed_c10d

// OutputFunc receives the accumulated history frame of a viewpoint once per
// rendered frame, for example to bind it as a sky lookup texture.
// The target stays owned by the renderer and is only valid until the next
// frame of the same view or until the view is disposed.
type OutputFunc func(id ViewID, history Target)

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := cloudtaa.NewRenderer(device, effect, blender,
//	    cloudtaa.WithSubPixelGrid(4),
//	    cloudtaa.WithDownsample(2),
//	)
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	config Config
	seed   uint64
	output OutputFunc
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		config: DefaultConfig(),
		seed:   DefaultSeed,
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option {
	return func(o *options) {
		o.config = c
	}
}

// WithSubPixelGrid sets N for the N×N sub-pixel grid.
func WithSubPixelGrid(n int) Option {
	return func(o *options) {
		o.config.SubPixelGrid = n
	}
}

// WithDownsample sets the viewport divisor.
func WithDownsample(d int) Option {
	return func(o *options) {
		o.config.Downsample = d
	}
}

// WithHighDynamicRange selects extended-range render targets.
func WithHighDynamicRange(hdr bool) Option {
	return func(o *options) {
		o.config.HighDynamicRange = hdr
	}
}

// WithCyclePolicy sets the permutation reuse policy.
func WithCyclePolicy(p CyclePolicy) Option {
	return func(o *options) {
		o.config.CyclePolicy = p
	}
}

// WithSeed makes jitter shuffles and sampling directions reproducible
// from the given seed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithOutput registers the downstream consumer of history frames.
func WithOutput(fn OutputFunc) Option {
	return func(o *options) {
		o.output = fn
	}
}
