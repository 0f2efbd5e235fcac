package jxl

import (
	"bytes"
	"io"
	"math"

	"github.com/mewkiz/jxl/internal/bitio"
	"github.com/mewkiz/jxl/internal/container"
	"github.com/mewkiz/jxl/internal/framer"
	"github.com/mewkiz/jxl/internal/pool"
	"github.com/mewkiz/jxl/internal/predictive"
	"github.com/mewkiz/jxl/internal/quant"
	"github.com/mewkiz/jxl/internal/scheduler"
	"github.com/mewkiz/jxl/jxlerr"
)

// Options configures an Encoder.
type Options struct {
	// Quality is the VarDCT quality in [0,100]; ignored when Lossless.
	Quality float32
	// Lossless selects the modular (per-pixel predictive) path for every
	// channel, including RGB/RGBA color channels (coded through the
	// reversible YCoCg-R transform rather than XYB).
	Lossless bool
	// AdaptiveStrength blends the VarDCT per-block quantization scale map
	// toward each block's local AC energy; 0 disables adaptation.
	AdaptiveStrength float64
}

// DefaultOptions returns the encoder's default settings: quality 90,
// lossy VarDCT, moderate adaptive quantization.
func DefaultOptions() Options {
	return Options{Quality: 90, AdaptiveStrength: 0.3}
}

// Encoder encodes Images to the container-wrapped codestream format.
type Encoder struct {
	Options Options
}

// NewEncoder returns an Encoder configured by opts.
func NewEncoder(opts Options) *Encoder {
	return &Encoder{Options: opts}
}

// Encode writes img to w using opts.
func Encode(w io.Writer, img *Image, opts Options) error {
	return NewEncoder(opts).Encode(w, img)
}

// maxPixelDimension is the largest width or height Encode accepts up front
// (2^28). The ImageMetadata width and height are U32(9) fields, which
// carry at most 511+32767 = 33278; a larger dimension makes WriteU32 fail.
const maxPixelDimension = 1 << 28

// Encode writes img to w as a container-wrapped codestream.
func (e *Encoder) Encode(w io.Writer, img *Image) error {
	if img.Width < 1 || img.Height < 1 || img.Width > maxPixelDimension || img.Height > maxPixelDimension {
		return jxlerr.New(jxlerr.InvalidDimensions, "invalid image dimensions %dx%d", img.Width, img.Height)
	}

	useVarDCT := !e.Options.Lossless && (img.Layout == RGB || img.Layout == RGBAlpha)

	var body bytes.Buffer
	bw := bitio.NewWriter(&body)
	if err := framer.WriteSignature(bw); err != nil {
		return err
	}

	meta := &framer.ImageMetadata{
		Width:         uint32(img.Width),
		Height:        uint32(img.Height),
		ChannelLayout: img.Layout,
		Sample:        img.Sample,
		XYBEncoded:    useVarDCT,
		ColorEncoding: colorEncodingFor(useVarDCT, img.Color),
	}
	if err := framer.WriteImageMetadata(bw, meta); err != nil {
		return err
	}

	fh := &framer.FrameHeader{Type: framer.FrameRegular, Quality: clampQuality(e.Options.Quality)}
	if useVarDCT {
		fh.Encoding = framer.EncodingVarDCT
	} else {
		fh.Encoding = framer.EncodingModular
	}
	if err := framer.WriteFrameHeader(bw, fh); err != nil {
		return err
	}

	if err := framer.WriteScanConfiguration(bw, framer.DefaultScanConfiguration()); err != nil {
		return err
	}

	groups := scheduler.ACGroups(img.Width, img.Height)

	if useVarDCT {
		if err := e.encodeVarDCT(bw, img, groups); err != nil {
			return err
		}
		if img.Layout == RGBAlpha {
			if err := e.encodeModularChannel(bw, img, 3, groups); err != nil {
				return err
			}
		}
	} else {
		if err := e.encodeModular(bw, img, groups); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return err
	}
	return container.WriteContainer(w, body.Bytes())
}

func colorEncodingFor(useVarDCT bool, requested ColorEncoding) framer.ColorEncoding {
	if useVarDCT {
		return framer.ColorXYB
	}
	return requested
}

// rgbToXYBPlanes converts img's R,G,B channels (sRGB-encoded floats in
// [0,1]) into three full-image X, Y, B-Y planes.
func rgbToXYBPlanes(img *Image) [3][]float64 {
	n := img.Width * img.Height
	var out [3][]float64
	for i := range out {
		out[i] = make([]float64, n)
	}
	r, g, b := img.channel(0), img.channel(1), img.channel(2)
	for i := 0; i < n; i++ {
		rl := SRGBToLinear(r[i])
		gl := SRGBToLinear(g[i])
		bl := SRGBToLinear(b[i])
		x, y, by := RGBToXYB(rl, gl, bl)
		out[0][i] = float64(x)
		out[1][i] = float64(y)
		out[2][i] = float64(by)
	}
	return out
}

type varDCTGroupResult struct {
	scaleMap   []byte
	dcPayload  *framer.GroupPayload
	acPayload  *framer.GroupPayload
}

// encodeVarDCT writes the three X/Y/B-Y VarDCT channels, each as a
// sequence of per-AC-group (scale map, DC payload, AC payload) triples.
// Per-group work runs concurrently; the results are written to bw in
// deterministic group-index order regardless of completion order.
func (e *Encoder) encodeVarDCT(bw *bitio.Writer, img *Image, groups []scheduler.Group) error {
	matrices := quant.BuildMatrices(float32(clampQuality(e.Options.Quality)))
	planes := rgbToXYBPlanes(img)
	pl := pool.New()

	for c := 0; c < quant.NumChannels; c++ {
		plane := planes[c]
		results := make([]varDCTGroupResult, len(groups))
		err := scheduler.Run(groups, func(g scheduler.Group) error {
			sub := extractSubPlaneF64(plane, img.Width, g, pl)
			dcDiff, ac, scaleMap := forwardQuantizeGroup(sub, g.W, g.H, &matrices[c], e.Options.AdaptiveStrength)
			pl.ReleaseChannelF64(sub)
			dcPayload, err := encodeSymbolGroup(dcDiff)
			if err != nil {
				return err
			}
			acPayload, err := encodeSymbolGroup(ac)
			if err != nil {
				return err
			}
			results[g.Index] = varDCTGroupResult{scaleMap, dcPayload, acPayload}
			return nil
		})
		if err != nil {
			return err
		}
		for _, r := range results {
			if err := framer.WriteByteVector(bw, r.scaleMap); err != nil {
				return err
			}
			if err := framer.WriteGroupPayload(bw, r.dcPayload); err != nil {
				return err
			}
			if err := framer.WriteGroupPayload(bw, r.acPayload); err != nil {
				return err
			}
		}
	}
	return nil
}

// encodeModular writes every channel of img through the modular
// (lossless, per-pixel predictive) path. RGB/RGBA color channels go
// through the reversible YCoCg-R transform first.
func (e *Encoder) encodeModular(bw *bitio.Writer, img *Image, groups []scheduler.Group) error {
	switch img.Layout {
	case Gray:
		return e.encodeModularChannel(bw, img, 0, groups)
	case GrayAlpha:
		if err := e.encodeModularChannel(bw, img, 0, groups); err != nil {
			return err
		}
		return e.encodeModularChannel(bw, img, 1, groups)
	case RGB, RGBAlpha:
		maxVal := sampleMaxValue(img.Sample)
		r, g, b := img.channel(0), img.channel(1), img.channel(2)
		n := img.Width * img.Height
		y := make([]int32, n)
		co := make([]int32, n)
		cg := make([]int32, n)
		for i := 0; i < n; i++ {
			ri := toIntSample(r[i], maxVal)
			gi := toIntSample(g[i], maxVal)
			bi := toIntSample(b[i], maxVal)
			y[i], co[i], cg[i] = predictive.ForwardYCoCgR(ri, gi, bi)
		}
		for _, plane := range [][]int32{y, co, cg} {
			if err := e.encodeModularPlane(bw, plane, img.Width, groups); err != nil {
				return err
			}
		}
		if img.Layout == RGBAlpha {
			return e.encodeModularChannel(bw, img, 3, groups)
		}
		return nil
	default:
		return jxlerr.New(jxlerr.UnsupportedFeature, "unsupported channel layout for modular coding")
	}
}

func (e *Encoder) encodeModularChannel(bw *bitio.Writer, img *Image, channelIdx int, groups []scheduler.Group) error {
	maxVal := sampleMaxValue(img.Sample)
	samples := img.channel(channelIdx)
	ints := make([]int32, len(samples))
	for i, v := range samples {
		ints[i] = toIntSample(v, maxVal)
	}
	return e.encodeModularPlane(bw, ints, img.Width, groups)
}

func (e *Encoder) encodeModularPlane(bw *bitio.Writer, ints []int32, w int, groups []scheduler.Group) error {
	pl := pool.New()
	results := make([]*framer.GroupPayload, len(groups))
	err := scheduler.Run(groups, func(g scheduler.Group) error {
		sub := extractSubPlaneI32(ints, w, g, pl)
		residual := residualEncode(sub, g.W, g.H)
		pl.ReleaseChannelI32(sub)
		payload, err := encodeSymbolGroup(residual)
		if err != nil {
			return err
		}
		results[g.Index] = payload
		return nil
	})
	if err != nil {
		return err
	}
	for _, payload := range results {
		if err := framer.WriteGroupPayload(bw, payload); err != nil {
			return err
		}
	}
	return nil
}

func toIntSample(v float32, maxVal int32) int32 {
	return int32(math.Round(float64(v) * float64(maxVal)))
}

func clampQuality(q float32) uint8 {
	if q < 0 {
		q = 0
	}
	if q > 100 {
		q = 100
	}
	return uint8(q)
}
