// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// NewPermutation returns a uniformly shuffled permutation of [0, n*n)
// using a Fisher-Yates shuffle driven by rng. It returns nil for n < 1.
func NewPermutation(n int, rng *rand.Rand) []int {
	if n < 1 {
		return nil
	}
	size := n * n
	perm := make([]int, size)
	for i := range perm {
		perm[i] = i
	}
	for i := size - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// JitterScheduler hands out one sub-pixel cell index per frame so that
// every cell of the N×N grid is visited exactly once per cycle of N*N frames.
//
// Next may be called any number of times within a frame; the cursor only
// moves on Advance, which the view calls after a completed frame.
//
// JitterScheduler is not safe for concurrent use.
type JitterScheduler struct {
	grid   int
	perm   []int
	cursor int
	rng    *rand.Rand
	policy CyclePolicy
}

// NewJitterScheduler creates a scheduler for an n×n grid. The rng is owned
// by the scheduler from here on and drives every later shuffle.
func NewJitterScheduler(n int, rng *rand.Rand, policy CyclePolicy) (*JitterScheduler, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: sub-pixel grid %d < 1", ErrInvalidConfig, n)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(DefaultSeed, 0))
	}
	return &JitterScheduler{
		grid:   n,
		perm:   NewPermutation(n, rng),
		rng:    rng,
		policy: policy,
	}, nil
}

// Grid returns N.
func (s *JitterScheduler) Grid() int {
	return s.grid
}

// Cursor returns the position within the current permutation.
func (s *JitterScheduler) Cursor() int {
	return s.cursor
}

// Permutation returns a copy of the current permutation.
func (s *JitterScheduler) Permutation() []int {
	out := make([]int, len(s.perm))
	copy(out, s.perm)
	return out
}

// Next returns the cell index for the current frame.
func (s *JitterScheduler) Next() int {
	return s.perm[s.cursor]
}

// Advance moves to the next cell. At the end of a cycle the cursor wraps to
// zero and, under CycleReshuffle, a fresh permutation is drawn.
func (s *JitterScheduler) Advance() {
	s.cursor = (s.cursor + 1) % len(s.perm)
	if s.cursor == 0 && s.policy == CycleReshuffle {
		s.perm = NewPermutation(s.grid, s.rng)
	}
}

// SetGrid switches to an n×n grid. A different n reshuffles and resets the
// cursor; the same n leaves the schedule untouched.
func (s *JitterScheduler) SetGrid(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: sub-pixel grid %d < 1", ErrInvalidConfig, n)
	}
	if n == s.grid {
		return nil
	}
	s.grid = n
	s.perm = NewPermutation(n, s.rng)
	s.cursor = 0
	return nil
}

// JitterCell splits a cell index into its column and row in an n×n grid.
func JitterCell(index, n int) (cellX, cellY int) {
	return index % n, index / n
}

// JitterOffset converts a cell index into a translation in normalized
// device coordinates. One full-resolution pixel spans 2/frameWidth in x
// and 2/frameHeight in y.
func JitterOffset(index, n, frameWidth, frameHeight int) mgl32.Vec2 {
	cx, cy := JitterCell(index, n)
	return mgl32.Vec2{
		float32(cx) * 2 / float32(frameWidth),
		float32(cy) * 2 / float32(frameHeight),
	}
}
