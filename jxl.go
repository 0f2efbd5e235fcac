// Package jxl implements a still-image codec: a VarDCT (lossy, XYB +
// 8x8 DCT + rANS) path and a modular (lossless, per-pixel predictive +
// rANS) path, framed in an ISO-BMFF-style container. Grounded in the
// shape of the teacher's Stream/Encoder split (see DESIGN.md): one root
// package exposing Open/Decode and Encode, backed by internal packages
// for bit I/O, entropy coding, transforms, and framing.
package jxl

import "github.com/mewkiz/jxl/internal/framer"

// ChannelLayout identifies the sample channels an image carries.
type ChannelLayout = framer.ChannelLayout

// Channel layouts.
const (
	Gray      = framer.Gray
	GrayAlpha = framer.GrayAlpha
	RGB       = framer.RGB
	RGBAlpha  = framer.RGBAlpha
)

// SampleKind identifies the integer or floating-point representation of
// one decoded sample.
type SampleKind = framer.SampleKind

// Sample kinds.
const (
	U8  = framer.SampleU8
	U16 = framer.SampleU16
	F16 = framer.SampleF16
	F32 = framer.SampleF32
)

// sampleMaxValue returns the largest integer sample value representable
// by an integer SampleKind; it panics for a floating-point kind.
func sampleMaxValue(s SampleKind) int32 {
	switch s {
	case U8:
		return 255
	case U16:
		return 65535
	default:
		panic("jxl: sampleMaxValue called on a floating-point sample kind")
	}
}

// ColorEncoding identifies the color space samples are expressed in.
type ColorEncoding = framer.ColorEncoding

// Color encodings.
const (
	ColorSRGB       = framer.ColorSRGB
	ColorLinearSRGB = framer.ColorLinearSRGB
	ColorXYB        = framer.ColorXYB
	ColorDisplayP3  = framer.ColorDisplayP3
	ColorRec2020    = framer.ColorRec2020
	ColorCustom     = framer.ColorCustom
)

// Image is an in-memory decoded (or about-to-be-encoded) raster: a
// rectangular pixel grid in one of the four channel layouts, with
// samples held as normalized floats in [0,1] regardless of the bit
// depth the caller eventually wants, the way the core's colorspace
// functions expect them.
type Image struct {
	Width, Height int
	Layout        ChannelLayout
	Sample        SampleKind
	Color         ColorEncoding

	// Pix holds interleaved channel samples in [0,1], Width*Height*
	// Layout.NumChannels() entries, row-major.
	Pix []float32
}

// NewImage allocates a zeroed image of the given size and layout.
func NewImage(w, h int, layout ChannelLayout, sample SampleKind) *Image {
	n := layout.NumChannels()
	return &Image{
		Width:  w,
		Height: h,
		Layout: layout,
		Sample: sample,
		Color:  ColorSRGB,
		Pix:    make([]float32, w*h*n),
	}
}

// NumChannels returns the number of interleaved channels per pixel.
func (img *Image) NumChannels() int { return img.Layout.NumChannels() }

// HasAlpha reports whether img's layout carries an alpha channel.
func (img *Image) HasAlpha() bool {
	return img.Layout == GrayAlpha || img.Layout == RGBAlpha
}

// channel extracts the plane for channel index c (0-based, in layout
// order) as a contiguous w*h slice.
func (img *Image) channel(c int) []float32 {
	n := img.NumChannels()
	out := make([]float32, img.Width*img.Height)
	for i := range out {
		out[i] = img.Pix[i*n+c]
	}
	return out
}

// setChannel writes a contiguous w*h plane back into channel index c.
func (img *Image) setChannel(c int, plane []float32) {
	n := img.NumChannels()
	for i, v := range plane {
		img.Pix[i*n+c] = v
	}
}
