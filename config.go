// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

import "fmt"

// CyclePolicy selects what happens to the jitter permutation once every
// cell of the sub-pixel grid has been visited.
type CyclePolicy uint8

const (
	// CycleReplay replays the same permutation every cycle. The permutation
	// is only reshuffled when the grid size changes.
	CycleReplay CyclePolicy = iota

	// CycleReshuffle draws a fresh permutation at the start of every cycle.
	CycleReshuffle
)

// String returns a human-readable name for the policy.
func (p CyclePolicy) String() string {
	switch p {
	case CycleReplay:
		return "Replay"
	case CycleReshuffle:
		return "Reshuffle"
	default:
		return fmt.Sprintf("CyclePolicy(%d)", p)
	}
}

// Config holds the recognized supersampling options.
type Config struct {
	// SubPixelGrid is N for an N×N grid of sub-pixel sample positions.
	// A value of 1 disables supersampling.
	SubPixelGrid int

	// Downsample divides the viewport size before grid alignment.
	Downsample int

	// HighDynamicRange selects an extended-range target format instead of
	// 8 bits per channel.
	HighDynamicRange bool

	// CyclePolicy controls permutation reuse across cycles.
	CyclePolicy CyclePolicy
}

// DefaultConfig returns a 4×4 grid at half resolution with 8-bit targets.
func DefaultConfig() Config {
	return Config{
		SubPixelGrid: 4,
		Downsample:   2,
		CyclePolicy:  CycleReplay,
	}
}

// Validate reports a wrapped ErrInvalidConfig for unusable settings.
func (c Config) Validate() error {
	if c.SubPixelGrid < 1 {
		return fmt.Errorf("%w: sub-pixel grid %d < 1", ErrInvalidConfig, c.SubPixelGrid)
	}
	if c.Downsample < 1 {
		return fmt.Errorf("%w: downsample %d < 1", ErrInvalidConfig, c.Downsample)
	}
	if c.CyclePolicy > CycleReshuffle {
		return fmt.Errorf("%w: unknown cycle policy %v", ErrInvalidConfig, c.CyclePolicy)
	}
	return nil
}

// SampleCount returns the number of frames in one full supersampling cycle.
func (c Config) SampleCount() int {
	return c.SubPixelGrid * c.SubPixelGrid
}
