package jxl

import (
	"bytes"
	"io"

	"github.com/mewkiz/jxl/internal/bitio"
	"github.com/mewkiz/jxl/internal/bufseekio"
	"github.com/mewkiz/jxl/internal/container"
	"github.com/mewkiz/jxl/internal/framer"
	"github.com/mewkiz/jxl/internal/predictive"
	"github.com/mewkiz/jxl/internal/quant"
	"github.com/mewkiz/jxl/internal/scheduler"
	"github.com/mewkiz/jxl/jxlerr"
)

// Open reads a container-wrapped or naked codestream from a seekable
// source and decodes it to an Image. The source is wrapped in a small
// buffered reader, the way the teacher's metadata reader wraps its
// underlying file.
func Open(r io.ReadSeeker) (*Image, error) {
	br := bufseekio.NewReaderSize(r, 4096)
	codestream, err := container.ExtractCodestream(br)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(codestream))
}

// Decode reads a naked codestream (no container framing) and returns the
// decoded Image.
func Decode(r io.Reader) (*Image, error) {
	br := bitio.NewReader(r)
	if err := framer.ReadSignature(br); err != nil {
		return nil, err
	}
	meta, err := framer.ReadImageMetadata(br)
	if err != nil {
		return nil, err
	}
	fh, err := framer.ReadFrameHeader(br)
	if err != nil {
		return nil, err
	}
	scanCfg, err := framer.ReadScanConfiguration(br)
	if err != nil {
		return nil, err
	}
	if !scanCfg.Validate() {
		return nil, jxlerr.New(jxlerr.InvalidBitstream, "scan configuration fails validation")
	}

	img := NewImage(int(meta.Width), int(meta.Height), meta.ChannelLayout, meta.Sample)
	img.Color = meta.ColorEncoding

	groups := scheduler.ACGroups(img.Width, img.Height)

	switch fh.Encoding {
	case framer.EncodingVarDCT:
		if err := decodeVarDCT(br, img, groups, fh.Quality); err != nil {
			return nil, err
		}
		if img.Layout == RGBAlpha {
			if err := decodeModularChannel(br, img, 3, groups); err != nil {
				return nil, err
			}
		}
	case framer.EncodingModular:
		if err := decodeModular(br, img, groups); err != nil {
			return nil, err
		}
	default:
		return nil, jxlerr.New(jxlerr.UnsupportedFeature, "unrecognized frame encoding %d", fh.Encoding)
	}

	return img, nil
}

func decodeVarDCT(br *bitio.Reader, img *Image, groups []scheduler.Group, quality uint8) error {
	matrices := quant.BuildMatrices(float32(quality))
	var planes [3][]float64
	for c := 0; c < quant.NumChannels; c++ {
		planes[c] = make([]float64, img.Width*img.Height)
		for _, g := range groups {
			scaleMap, err := framer.ReadByteVector(br)
			if err != nil {
				return err
			}
			dcPayload, err := framer.ReadGroupPayload(br)
			if err != nil {
				return err
			}
			acPayload, err := framer.ReadGroupPayload(br)
			if err != nil {
				return err
			}

			nb := len(scaleMap)
			dcDiff, err := decodeSymbolGroup(dcPayload, nb)
			if err != nil {
				return err
			}
			ac, err := decodeSymbolGroup(acPayload, nb*63)
			if err != nil {
				return err
			}
			sub := inverseDequantizeGroup(dcDiff, ac, scaleMap, g.W, g.H, &matrices[c])
			writeSubPlaneF64(planes[c], img.Width, g, sub)
		}
	}

	r, g, b := xybPlanesToSRGB(planes[0], planes[1], planes[2])
	img.setChannel(0, r)
	img.setChannel(1, g)
	img.setChannel(2, b)
	return nil
}

func xybPlanesToSRGB(x, y, by []float64) (r, g, b []float32) {
	n := len(x)
	r = make([]float32, n)
	g = make([]float32, n)
	b = make([]float32, n)
	for i := 0; i < n; i++ {
		rl, gl, bl := XYBToRGB(float32(x[i]), float32(y[i]), float32(by[i]))
		r[i] = LinearToSRGB(rl)
		g[i] = LinearToSRGB(gl)
		b[i] = LinearToSRGB(bl)
	}
	return r, g, b
}

func decodeModular(br *bitio.Reader, img *Image, groups []scheduler.Group) error {
	switch img.Layout {
	case Gray:
		return decodeModularChannel(br, img, 0, groups)
	case GrayAlpha:
		if err := decodeModularChannel(br, img, 0, groups); err != nil {
			return err
		}
		return decodeModularChannel(br, img, 1, groups)
	case RGB, RGBAlpha:
		maxVal := sampleMaxValue(img.Sample)
		n := img.Width * img.Height
		y, err := decodeModularPlane(br, img.Width, groups, n)
		if err != nil {
			return err
		}
		co, err := decodeModularPlane(br, img.Width, groups, n)
		if err != nil {
			return err
		}
		cg, err := decodeModularPlane(br, img.Width, groups, n)
		if err != nil {
			return err
		}
		r := make([]float32, n)
		g := make([]float32, n)
		b := make([]float32, n)
		for i := 0; i < n; i++ {
			ri, gi, bi := predictive.InverseYCoCgR(y[i], co[i], cg[i])
			r[i] = fromIntSample(ri, maxVal)
			g[i] = fromIntSample(gi, maxVal)
			b[i] = fromIntSample(bi, maxVal)
		}
		img.setChannel(0, r)
		img.setChannel(1, g)
		img.setChannel(2, b)
		if img.Layout == RGBAlpha {
			return decodeModularChannel(br, img, 3, groups)
		}
		return nil
	default:
		return jxlerr.New(jxlerr.UnsupportedFeature, "unsupported channel layout for modular decoding")
	}
}

func decodeModularChannel(br *bitio.Reader, img *Image, channelIdx int, groups []scheduler.Group) error {
	maxVal := sampleMaxValue(img.Sample)
	ints, err := decodeModularPlane(br, img.Width, groups, img.Width*img.Height)
	if err != nil {
		return err
	}
	samples := make([]float32, len(ints))
	for i, v := range ints {
		samples[i] = fromIntSample(v, maxVal)
	}
	img.setChannel(channelIdx, samples)
	return nil
}

func decodeModularPlane(br *bitio.Reader, w int, groups []scheduler.Group, total int) ([]int32, error) {
	plane := make([]int32, total)
	for _, g := range groups {
		payload, err := framer.ReadGroupPayload(br)
		if err != nil {
			return nil, err
		}
		residual, err := decodeSymbolGroup(payload, g.W*g.H)
		if err != nil {
			return nil, err
		}
		sub := residualDecode(residual, g.W, g.H)
		writeSubPlaneI32(plane, w, g, sub)
	}
	return plane, nil
}

func fromIntSample(v, maxVal int32) float32 {
	return float32(v) / float32(maxVal)
}
