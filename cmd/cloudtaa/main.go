// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command cloudtaa renders a slowly turning sky through the temporal
// supersampler and saves the accumulated history frame.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cloudtaa"
	"github.com/gogpu/cloudtaa/backend"
	"github.com/gogpu/cloudtaa/backend/software"
	_ "github.com/gogpu/cloudtaa/backend/wgpu"
)

func main() {
	var (
		backendName = flag.String("backend", backend.BackendSoftware, `backend name, or "auto" for the best available`)
		width       = flag.Int("width", 800, "viewport width")
		height      = flag.Int("height", 600, "viewport height")
		grid        = flag.Int("grid", 4, "sub-pixel grid size N")
		downsample  = flag.Int("downsample", 2, "viewport divisor")
		hdr         = flag.Bool("hdr", false, "use extended-range render targets")
		frames      = flag.Int("frames", 32, "number of frames to accumulate")
		turn        = flag.Float64("turn", 0.25, "camera yaw per frame in degrees")
		seed        = flag.Uint64("seed", cloudtaa.DefaultSeed, "jitter and direction seed")
		output      = flag.String("output", "sky.png", "output file")
		verbose     = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		cloudtaa.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	b, err := openBackend(*backendName)
	if err != nil {
		log.Fatalf("Failed to open backend %q: %v", *backendName, err)
	}
	defer b.Close()

	r, err := backend.NewRenderer(b,
		cloudtaa.WithSubPixelGrid(*grid),
		cloudtaa.WithDownsample(*downsample),
		cloudtaa.WithHighDynamicRange(*hdr),
		cloudtaa.WithSeed(*seed),
	)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Close()

	ctx := context.Background()
	projection := mgl32.Perspective(mgl32.DegToRad(70), float32(*width)/float32(*height), 0.1, 1000)
	pitch := mgl32.HomogRotate3DX(mgl32.DegToRad(-15))

	var history cloudtaa.Target
	for i := range *frames {
		yaw := mgl32.HomogRotate3DY(mgl32.DegToRad(float32(*turn) * float32(i)))
		history, err = r.RenderView(ctx, 0, cloudtaa.Viewpoint{
			Width:       *width,
			Height:      *height,
			Projection:  projection,
			WorldToView: pitch.Mul4(yaw),
		})
		if err != nil {
			log.Fatalf("Frame %d failed: %v", i, err)
		}
	}
	if history == nil {
		log.Fatal("No history frame produced")
	}

	if _, ok := history.(*software.Image); !ok {
		log.Printf("Rendered %d frames on %s; readback is only supported by the software backend", *frames, b.Name())
		return
	}
	if err := software.SavePNG(history, *output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Sky saved to %s (%dx%d, %d frames, %s)\n",
		*output, history.Width(), history.Height(), *frames, b.Name())
}

// openBackend initializes the named backend, or the best available one
// for "auto".
func openBackend(name string) (backend.Backend, error) {
	if name == "auto" {
		return backend.InitDefault()
	}
	b := backend.Get(name)
	if b == nil {
		return nil, backend.ErrBackendNotAvailable
	}
	if err := b.Init(); err != nil {
		return nil, err
	}
	return b, nil
}
