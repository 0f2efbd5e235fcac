package jxl

import "math"

// Package-level pure batch color functions. These are the "external
// collaborator" contract described by the spec: the core consumes them
// without assuming any particular matrix values, only that
// XYBToRGB(RGBToXYB(c)) approximates the identity. Values are grounded on
// the production constants used by the original reference implementation
// (crates/jxl-color/src/{srgb,xyb}.rs), reproduced here as plain batch
// functions rather than a SIMD-dispatched pipeline, per the spec's
// explicit exclusion of SIMD dispatch shims from the core.

// opsinAbsorbanceMatrix models human cone-cell sensitivity for the
// perceptually uniform XYB mixing step.
var opsinAbsorbanceMatrix = [3][3]float32{
	{0.30, 0.622, 0.078},
	{0.23, 0.692, 0.078},
	{0.24342268924547819, 0.20476744424496821, 0.55180986650951361},
}

var opsinAbsorbanceInvMatrix = [3][3]float32{
	{11.031566901960783, -9.866943921568629, -0.16462299647058826},
	{-3.254147380392157, 4.418770392156863, -0.16462299647058826},
	{-3.6588512862745097, 2.7129230470588235, 1.9459282392156863},
}

const opsinAbsorbanceBias = 0.0037930732552754493

// SRGBToLinear converts a single sRGB-encoded component in [0,1] to
// linear light via gamma expansion.
func SRGBToLinear(srgb float32) float32 {
	if srgb <= 0.04045 {
		return srgb / 12.92
	}
	return float32(math.Pow(float64((srgb+0.055)/1.055), 2.4))
}

// LinearToSRGB converts a single linear-light component in [0,1] to
// sRGB-encoded via gamma compression.
func LinearToSRGB(linear float32) float32 {
	if linear <= 0.0031308 {
		return linear * 12.92
	}
	return 1.055*float32(math.Pow(float64(linear), 1.0/2.4)) - 0.055
}

// SRGBBufferToLinear applies SRGBToLinear pointwise to an interleaved
// buffer of any channel count.
func SRGBBufferToLinear(srgb []float32, linear []float32) {
	for i, s := range srgb {
		linear[i] = SRGBToLinear(s)
	}
}

// LinearBufferToSRGB applies LinearToSRGB pointwise to an interleaved
// buffer of any channel count.
func LinearBufferToSRGB(linear []float32, srgb []float32) {
	for i, l := range linear {
		srgb[i] = LinearToSRGB(l)
	}
}

func cbrt32(v float32) float32 {
	if v < 0 {
		return -float32(math.Cbrt(float64(-v)))
	}
	return float32(math.Cbrt(float64(v)))
}

// RGBToXYB converts one linear-light RGB triple to XYB: a 3x3 opsin mix
// with a small bias, followed by a cube-root "opsin" nonlinearity and a
// final remix into X = (m0-m1)/2 and Y = (m0+m1)/2. The third output is
// the cube-rooted third mix m2 itself; Y is not subtracted from it.
func RGBToXYB(r, g, b float32) (x, y, bMinusY float32) {
	m := opsinAbsorbanceMatrix
	mixed0 := m[0][0]*r + m[0][1]*g + m[0][2]*b + opsinAbsorbanceBias
	mixed1 := m[1][0]*r + m[1][1]*g + m[1][2]*b + opsinAbsorbanceBias
	mixed2 := m[2][0]*r + m[2][1]*g + m[2][2]*b + opsinAbsorbanceBias

	if mixed0 < 0 {
		mixed0 = 0
	}
	if mixed1 < 0 {
		mixed1 = 0
	}
	if mixed2 < 0 {
		mixed2 = 0
	}

	biasCbrt := cbrt32(opsinAbsorbanceBias)
	mixed0 = cbrt32(mixed0) - biasCbrt
	mixed1 = cbrt32(mixed1) - biasCbrt
	mixed2 = cbrt32(mixed2) - biasCbrt

	x = (mixed0 - mixed1) * 0.5
	y = (mixed0 + mixed1) * 0.5
	bMinusY = mixed2
	return x, y, bMinusY
}

// XYBToRGB inverts RGBToXYB.
func XYBToRGB(x, y, bMinusY float32) (r, g, b float32) {
	mixed0 := x + y
	mixed1 := y - x
	mixed2 := bMinusY

	biasCbrt := cbrt32(opsinAbsorbanceBias)
	mixed0 = cube32(mixed0+biasCbrt) - opsinAbsorbanceBias
	mixed1 = cube32(mixed1+biasCbrt) - opsinAbsorbanceBias
	mixed2 = cube32(mixed2+biasCbrt) - opsinAbsorbanceBias

	m := opsinAbsorbanceInvMatrix
	r = m[0][0]*mixed0 + m[0][1]*mixed1 + m[0][2]*mixed2
	g = m[1][0]*mixed0 + m[1][1]*mixed1 + m[1][2]*mixed2
	b = m[2][0]*mixed0 + m[2][1]*mixed1 + m[2][2]*mixed2
	return r, g, b
}

func cube32(v float32) float32 { return v * v * v }

// RGBBufferToXYB batch-converts an interleaved RGB buffer to XYB.
func RGBBufferToXYB(rgb []float32, xyb []float32) {
	for i := 0; i+2 < len(rgb); i += 3 {
		x, y, b := RGBToXYB(rgb[i], rgb[i+1], rgb[i+2])
		xyb[i], xyb[i+1], xyb[i+2] = x, y, b
	}
}

// XYBBufferToRGB batch-converts an interleaved XYB buffer to RGB.
func XYBBufferToRGB(xyb []float32, rgb []float32) {
	for i := 0; i+2 < len(xyb); i += 3 {
		r, g, b := XYBToRGB(xyb[i], xyb[i+1], xyb[i+2])
		rgb[i], rgb[i+1], rgb[i+2] = r, g, b
	}
}
