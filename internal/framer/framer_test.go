package framer

import (
	"bytes"
	"testing"

	"github.com/mewkiz/jxl/internal/bitio"
	"github.com/mewkiz/jxl/jxlerr"
)

func TestSignatureRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if err := WriteSignature(w); err != nil {
		t.Fatalf("WriteSignature: %v", err)
	}
	w.Flush()

	r := bitio.NewReader(&buf)
	if err := ReadSignature(r); err != nil {
		t.Fatalf("ReadSignature: %v", err)
	}
}

func TestSignatureMismatch(t *testing.T) {
	r := bitio.NewReader(bytes.NewReader([]byte{0x00, 0x00}))
	err := ReadSignature(r)
	if !jxlerr.Is(err, jxlerr.InvalidSignature) {
		t.Fatalf("expected InvalidSignature, got %v", err)
	}
}

func TestImageMetadataRoundTripDefault(t *testing.T) {
	m := defaultImageMetadata(128, 64, RGB, SampleU8)
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if err := WriteImageMetadata(w, &m); err != nil {
		t.Fatalf("WriteImageMetadata: %v", err)
	}
	w.Flush()

	r := bitio.NewReader(&buf)
	got, err := ReadImageMetadata(r)
	if err != nil {
		t.Fatalf("ReadImageMetadata: %v", err)
	}
	if !got.AllDefault || got.BitDepthKind != BitDepth8 {
		t.Fatalf("got %+v", got)
	}
	if got.Width != 128 || got.Height != 64 || got.ChannelLayout != RGB {
		t.Fatalf("got %+v", got)
	}
}

func TestImageMetadataRoundTripFull(t *testing.T) {
	m := &ImageMetadata{
		Width:               640,
		Height:               480,
		ChannelLayout:        RGBAlpha,
		Sample:               SampleU16,
		Orientation:         5,
		HaveIntrinsicSize:   true,
		IntrinsicWidth:      640,
		IntrinsicHeight:     480,
		HavePreview:         true,
		HaveAnimation:       false,
		BitDepthKind:        BitDepthCustom,
		CustomBitDepth:      14,
		Modular16BitBuffers: true,
		NumExtraChannels:    2,
		XYBEncoded:          true,
		ColorEncoding:       ColorXYB,
	}
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if err := WriteImageMetadata(w, m); err != nil {
		t.Fatalf("WriteImageMetadata: %v", err)
	}
	w.Flush()

	r := bitio.NewReader(&buf)
	got, err := ReadImageMetadata(r)
	if err != nil {
		t.Fatalf("ReadImageMetadata: %v", err)
	}
	if got.AllDefault {
		t.Fatal("expected AllDefault false")
	}
	if got.Width != m.Width || got.Height != m.Height || got.ChannelLayout != m.ChannelLayout {
		t.Errorf("got width/height/layout = %d/%d/%v, want %d/%d/%v", got.Width, got.Height, got.ChannelLayout, m.Width, m.Height, m.ChannelLayout)
	}
	if got.Orientation != m.Orientation {
		t.Errorf("Orientation = %d, want %d", got.Orientation, m.Orientation)
	}
	if got.IntrinsicWidth != m.IntrinsicWidth || got.IntrinsicHeight != m.IntrinsicHeight {
		t.Errorf("intrinsic size = %dx%d, want %dx%d", got.IntrinsicWidth, got.IntrinsicHeight, m.IntrinsicWidth, m.IntrinsicHeight)
	}
	if got.BitDepthKind != BitDepthCustom || got.CustomBitDepth != 14 {
		t.Errorf("bit depth = %v/%d, want custom/14", got.BitDepthKind, got.CustomBitDepth)
	}
	if got.NumExtraChannels != 2 || !got.XYBEncoded || got.ColorEncoding != ColorXYB {
		t.Errorf("got %+v", got)
	}
}

func TestFrameHeaderRoundTripDefault(t *testing.T) {
	h := defaultFrameHeader()
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if err := WriteFrameHeader(w, &h); err != nil {
		t.Fatalf("WriteFrameHeader: %v", err)
	}
	w.Flush()

	r := bitio.NewReader(&buf)
	got, err := ReadFrameHeader(r)
	if err != nil {
		t.Fatalf("ReadFrameHeader: %v", err)
	}
	if !got.AllDefault || got.Type != FrameRegular || got.Encoding != EncodingVarDCT {
		t.Fatalf("got %+v", got)
	}
}

func TestFrameHeaderRoundTripFull(t *testing.T) {
	h := &FrameHeader{
		Type:         FrameLF,
		Encoding:     EncodingModular,
		Quality:      77,
		Flags:        0xDEADBEEF,
		HaveDuration: true,
		Duration:     42,
		HaveName:     true,
		Name:         "preview",
	}
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if err := WriteFrameHeader(w, h); err != nil {
		t.Fatalf("WriteFrameHeader: %v", err)
	}
	w.Flush()

	r := bitio.NewReader(&buf)
	got, err := ReadFrameHeader(r)
	if err != nil {
		t.Fatalf("ReadFrameHeader: %v", err)
	}
	if got.Type != h.Type || got.Encoding != h.Encoding || got.Flags != h.Flags || got.Quality != h.Quality {
		t.Errorf("got %+v, want %+v", got, h)
	}
	if got.Duration != h.Duration || got.Name != h.Name {
		t.Errorf("got duration=%d name=%q, want duration=%d name=%q", got.Duration, got.Name, h.Duration, h.Name)
	}
}

func TestScanConfigurationValidate(t *testing.T) {
	cases := []struct {
		cfg  ScanConfiguration
		want bool
	}{
		{DefaultScanConfiguration(), true},
		{ScanConfiguration{ACCoeffCounts: []int{16, 32, 63}}, true},
		{ScanConfiguration{ACCoeffCounts: []int{32, 16, 63}}, false},
		{ScanConfiguration{ACCoeffCounts: []int{63, 63}}, false},
		{ScanConfiguration{ACCoeffCounts: nil}, false},
		{ScanConfiguration{ACCoeffCounts: []int{62}}, false},
	}
	for i, c := range cases {
		if got := c.cfg.Validate(); got != c.want {
			t.Errorf("case %d: Validate() = %v, want %v", i, got, c.want)
		}
	}
}

func TestScanConfigurationWireRoundTrip(t *testing.T) {
	cfg := ScanConfiguration{ACCoeffCounts: []int{16, 32, 63}}
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if err := WriteScanConfiguration(w, cfg); err != nil {
		t.Fatalf("WriteScanConfiguration: %v", err)
	}
	w.Flush()

	r := bitio.NewReader(&buf)
	got, err := ReadScanConfiguration(r)
	if err != nil {
		t.Fatalf("ReadScanConfiguration: %v", err)
	}
	if len(got.ACCoeffCounts) != len(cfg.ACCoeffCounts) {
		t.Fatalf("got %v, want %v", got.ACCoeffCounts, cfg.ACCoeffCounts)
	}
	for i := range cfg.ACCoeffCounts {
		if got.ACCoeffCounts[i] != cfg.ACCoeffCounts[i] {
			t.Errorf("index %d: got %d, want %d", i, got.ACCoeffCounts[i], cfg.ACCoeffCounts[i])
		}
	}
}

func TestDistributionDescriptorRoundTrip(t *testing.T) {
	cases := []DistributionDescriptor{
		{AlphabetSize: 1, MinValue: 0},
		{AlphabetSize: 256, MinValue: -128},
		{AlphabetSize: 4095, MinValue: 32767},
		{AlphabetSize: 10, MinValue: -32768},
	}
	for _, d := range cases {
		var buf bytes.Buffer
		w := bitio.NewWriter(&buf)
		if err := WriteDistributionDescriptor(w, &d); err != nil {
			t.Fatalf("WriteDistributionDescriptor(%+v): %v", d, err)
		}
		w.Flush()

		r := bitio.NewReader(&buf)
		got, err := ReadDistributionDescriptor(r)
		if err != nil {
			t.Fatalf("ReadDistributionDescriptor: %v", err)
		}
		if *got != d {
			t.Errorf("got %+v, want %+v", got, d)
		}
	}
}

func TestUniformDistributionRejectsZeroAlphabet(t *testing.T) {
	_, err := UniformDistribution(0)
	if !jxlerr.Is(err, jxlerr.InvalidParameter) {
		t.Fatalf("expected InvalidParameter, got %v", err)
	}
}

func TestUniformDistributionSumsToM(t *testing.T) {
	d, err := UniformDistribution(37)
	if err != nil {
		t.Fatalf("UniformDistribution: %v", err)
	}
	if d.AlphabetSize() != 37 {
		t.Fatalf("AlphabetSize() = %d, want 37", d.AlphabetSize())
	}
	for s := 0; s < 37; s++ {
		if _, _, err := d.Freq(s); err != nil {
			t.Fatalf("Freq(%d): %v", s, err)
		}
	}
}

func TestGroupPayloadRoundTrip(t *testing.T) {
	p := &GroupPayload{
		Descriptor: DistributionDescriptor{AlphabetSize: 12, MinValue: -5},
		RANSData:   []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01},
	}
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if err := WriteGroupPayload(w, p); err != nil {
		t.Fatalf("WriteGroupPayload: %v", err)
	}
	w.Flush()

	r := bitio.NewReader(&buf)
	got, err := ReadGroupPayload(r)
	if err != nil {
		t.Fatalf("ReadGroupPayload: %v", err)
	}
	if got.Descriptor != p.Descriptor {
		t.Errorf("descriptor = %+v, want %+v", got.Descriptor, p.Descriptor)
	}
	if !bytes.Equal(got.RANSData, p.RANSData) {
		t.Errorf("data = %v, want %v", got.RANSData, p.RANSData)
	}
}

func TestGroupPayloadRejectsOversizedData(t *testing.T) {
	p := &GroupPayload{
		Descriptor: DistributionDescriptor{AlphabetSize: 1},
		RANSData:   make([]byte, MaxPayloadBytes+1),
	}
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	err := WriteGroupPayload(w, p)
	if !jxlerr.Is(err, jxlerr.BufferTooSmall) {
		t.Fatalf("expected BufferTooSmall, got %v", err)
	}
}

func TestByteVectorRoundTrip(t *testing.T) {
	data := []byte{1, 2, 3, 255, 0, 128}
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if err := WriteByteVector(w, data); err != nil {
		t.Fatalf("WriteByteVector: %v", err)
	}
	w.Flush()

	r := bitio.NewReader(&buf)
	got, err := ReadByteVector(r)
	if err != nil {
		t.Fatalf("ReadByteVector: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("got %v, want %v", got, data)
	}
}

func TestDCDiffRoundTrip(t *testing.T) {
	dc := []int32{100, 103, 97, 97, -50, 400}
	diffs := DiffEncodeDC(dc)
	if diffs[0] != dc[0] {
		t.Fatalf("first diff = %d, want %d", diffs[0], dc[0])
	}
	got := DiffDecodeDC(diffs)
	for i := range dc {
		if got[i] != dc[i] {
			t.Errorf("index %d: got %d, want %d", i, got[i], dc[i])
		}
	}
}
