// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/cloudtaa"
)

// Image is a software render target.
type Image struct {
	label     string
	format    cloudtaa.TargetFormat
	width     int
	height    int
	pix       draw.RGBA64Image
	hdr       *FloatImage // same store as pix for FormatRGBA16Float, else nil
	destroyed bool
}

// newImage allocates the backing store for desc.
func newImage(desc cloudtaa.TargetDescriptor) (*Image, error) {
	r := image.Rect(0, 0, desc.Width, desc.Height)
	m := &Image{
		label:  desc.Label,
		format: desc.Format,
		width:  desc.Width,
		height: desc.Height,
	}
	switch desc.Format {
	case cloudtaa.FormatRGBA8:
		m.pix = image.NewRGBA(r)
	case cloudtaa.FormatRGBA16Float:
		m.hdr = NewFloatImage(r)
		m.pix = m.hdr
	default:
		return nil, ErrUnknownFormat
	}
	return m, nil
}

// Width returns the width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the height in pixels.
func (m *Image) Height() int { return m.height }

// Format returns the pixel format.
func (m *Image) Format() cloudtaa.TargetFormat { return m.format }

// Label returns the debug label.
func (m *Image) Label() string { return m.label }

// IsDestroyed reports whether the image was destroyed.
func (m *Image) IsDestroyed() bool { return m.destroyed }

// IsHDR reports whether the image keeps values outside [0, 1].
func (m *Image) IsHDR() bool { return m.hdr != nil }

// RGBA64At returns the pixel at (x, y), with y counted from the bottom.
// HDR values are clamped to [0, 1].
func (m *Image) RGBA64At(x, y int) color.RGBA64 {
	return m.pix.RGBA64At(x, y)
}

// SetRGBA64 stores the pixel at (x, y), with y counted from the bottom.
func (m *Image) SetRGBA64(x, y int, c color.RGBA64) {
	m.pix.SetRGBA64(x, y, c)
}

// FloatAt returns the pixel at (x, y) as linear RGBA. HDR images return the
// stored value unclamped.
func (m *Image) FloatAt(x, y int) mgl32.Vec4 {
	if m.hdr != nil {
		return m.hdr.At4(x, y)
	}
	c := m.pix.RGBA64At(x, y)
	return mgl32.Vec4{unorm16(c.R), unorm16(c.G), unorm16(c.B), unorm16(c.A)}
}

// SetFloat stores c at (x, y). 8-bit images clamp and quantize.
func (m *Image) SetFloat(x, y int, c mgl32.Vec4) {
	if m.hdr != nil {
		m.hdr.Set4(x, y, c)
		return
	}
	m.pix.SetRGBA64(x, y, quantize(c))
}

// Fill sets every pixel to c.
func (m *Image) Fill(c color.RGBA64) {
	draw.Draw(m.pix, m.pix.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Pixels returns the backing image. Rows are bottom-up.
func (m *Image) Pixels() image.Image {
	return m.pix
}

// Snapshot returns a top-down 16-bit copy of the target. HDR values are
// clamped to [0, 1].
func Snapshot(t cloudtaa.Target) (*image.RGBA64, error) {
	m, err := asImage(t)
	if err != nil {
		return nil, err
	}
	w, h := m.Width(), m.Height()
	out := image.NewRGBA64(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			out.SetRGBA64(x, h-1-y, m.pix.RGBA64At(x, y))
		}
	}
	return out, nil
}

// asImage unwraps a target created by this backend.
func asImage(t cloudtaa.Target) (*Image, error) {
	m, ok := t.(*Image)
	if !ok || m == nil {
		return nil, ErrForeignTarget
	}
	if m.destroyed {
		return nil, ErrTargetDestroyed
	}
	return m, nil
}

// FloatImage is an in-memory image of float32 RGBA pixels. Values are
// stored unclamped so radiance above 1 survives; the color.Color views
// clamp to [0, 1].
type FloatImage struct {
	// Pix holds the pixels in R, G, B, A order, four floats per pixel.
	Pix  []float32
	Rect image.Rectangle
}

// NewFloatImage returns a zeroed FloatImage with bounds r.
func NewFloatImage(r image.Rectangle) *FloatImage {
	return &FloatImage{
		Pix:  make([]float32, 4*r.Dx()*r.Dy()),
		Rect: r,
	}
}

// PixOffset returns the index of the first element of Pix for pixel (x, y).
func (p *FloatImage) PixOffset(x, y int) int {
	return ((y-p.Rect.Min.Y)*p.Rect.Dx() + (x - p.Rect.Min.X)) * 4
}

// At4 returns the stored value at (x, y), or zero outside the bounds.
func (p *FloatImage) At4(x, y int) mgl32.Vec4 {
	if !(image.Point{x, y}.In(p.Rect)) {
		return mgl32.Vec4{}
	}
	i := p.PixOffset(x, y)
	return mgl32.Vec4{p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3]}
}

// Set4 stores c at (x, y). Points outside the bounds are ignored.
func (p *FloatImage) Set4(x, y int, c mgl32.Vec4) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3] = c[0], c[1], c[2], c[3]
}

// Bounds implements image.Image.
func (p *FloatImage) Bounds() image.Rectangle { return p.Rect }

// ColorModel implements image.Image.
func (p *FloatImage) ColorModel() color.Model { return color.RGBA64Model }

// At implements image.Image.
func (p *FloatImage) At(x, y int) color.Color { return p.RGBA64At(x, y) }

// RGBA64At implements image.RGBA64Image.
func (p *FloatImage) RGBA64At(x, y int) color.RGBA64 {
	return quantize(p.At4(x, y))
}

// Set implements draw.Image.
func (p *FloatImage) Set(x, y int, c color.Color) {
	p.SetRGBA64(x, y, color.RGBA64Model.Convert(c).(color.RGBA64))
}

// SetRGBA64 implements draw.RGBA64Image.
func (p *FloatImage) SetRGBA64(x, y int, c color.RGBA64) {
	p.Set4(x, y, mgl32.Vec4{unorm16(c.R), unorm16(c.G), unorm16(c.B), unorm16(c.A)})
}

func unorm16(v uint16) float32 {
	return float32(v) / 0xffff
}

func quantize(c mgl32.Vec4) color.RGBA64 {
	q := func(v float32) uint16 {
		return uint16(mgl32.Clamp(v, 0, 1)*0xffff + 0.5)
	}
	return color.RGBA64{R: q(c[0]), G: q(c[1]), B: q(c[2]), A: q(c[3])}
}

// scaleFloat resamples src into dst with bilinear filtering on pixel
// centres, without clamping.
func scaleFloat(dst, src *Image) {
	sw, sh := src.Width(), src.Height()
	dw, dh := dst.Width(), dst.Height()
	for y := range dh {
		fy := (float32(y)+0.5)*float32(sh)/float32(dh) - 0.5
		y0, ty := splitCoord(fy, sh)
		for x := range dw {
			fx := (float32(x)+0.5)*float32(sw)/float32(dw) - 0.5
			x0, tx := splitCoord(fx, sw)
			x1, y1 := min(x0+1, sw-1), min(y0+1, sh-1)
			top := lerp4(src.FloatAt(x0, y0), src.FloatAt(x1, y0), tx)
			bot := lerp4(src.FloatAt(x0, y1), src.FloatAt(x1, y1), tx)
			dst.SetFloat(x, y, lerp4(top, bot, ty))
		}
	}
}

// splitCoord returns the lower sample index and the blend weight towards
// the next one, clamped to [0, n-1].
func splitCoord(f float32, n int) (int, float32) {
	if f <= 0 {
		return 0, 0
	}
	if f >= float32(n-1) {
		return n - 1, 0
	}
	i := int(f)
	return i, f - float32(i)
}

func lerp4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Mul(1 - t).Add(b.Mul(t))
}
