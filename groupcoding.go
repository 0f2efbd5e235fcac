package jxl

import (
	"github.com/mewkiz/jxl/internal/framer"
	"github.com/mewkiz/jxl/internal/rans"
)

// maxDescriptorRange is the largest (max-min) a DistributionDescriptor's
// 12-bit alphabet size can address.
const maxDescriptorRange = 1<<12 - 2

// symbolRange returns the clamped [lo,hi] integer range a group's values
// are coded over. The wire format's distribution descriptor can only
// address a 12-bit alphabet, so a group whose values span more than 4095
// distinct integers has its extremes clamped to fit; this is a known,
// intentional loss of precision on pathological inputs; see the package
// doc on DistributionDescriptor.
func symbolRange(values []int32) (lo, hi int32) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if int64(hi)-int64(lo) > maxDescriptorRange {
		hi = lo + maxDescriptorRange
	}
	return lo, hi
}

func clamp32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// encodeSymbolGroup rANS-codes values against the uniform distribution
// implied by their observed range, the minimal wire scheme this codec's
// framer supports: it trades optimal entropy coding for a distribution
// the decoder can reconstruct from 28 bits of header rather than a
// transmitted frequency table.
func encodeSymbolGroup(values []int32) (*framer.GroupPayload, error) {
	lo, hi := symbolRange(values)
	alphabetSize := uint16(int64(hi)-int64(lo)) + 1

	if len(values) == 0 {
		return &framer.GroupPayload{
			Descriptor: framer.DistributionDescriptor{AlphabetSize: 1, MinValue: 0},
		}, nil
	}

	d, err := framer.UniformDistribution(alphabetSize)
	if err != nil {
		return nil, err
	}

	enc := rans.NewEncoder()
	for i := len(values) - 1; i >= 0; i-- {
		v := clamp32(values[i], lo, hi)
		if err := enc.Encode(d, int(v-lo)); err != nil {
			return nil, err
		}
	}

	return &framer.GroupPayload{
		Descriptor: framer.DistributionDescriptor{AlphabetSize: alphabetSize, MinValue: lo},
		RANSData:   enc.Finish(),
	}, nil
}

// decodeSymbolGroup inverts encodeSymbolGroup, producing exactly n
// values.
func decodeSymbolGroup(p *framer.GroupPayload, n int) ([]int32, error) {
	out := make([]int32, n)
	if n == 0 {
		return out, nil
	}

	d, err := framer.UniformDistribution(p.Descriptor.AlphabetSize)
	if err != nil {
		return nil, err
	}
	dec, err := rans.NewDecoder(p.RANSData)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		symbol, err := dec.Decode(d)
		if err != nil {
			return nil, err
		}
		out[i] = int32(symbol) + p.Descriptor.MinValue
	}
	return out, nil
}
