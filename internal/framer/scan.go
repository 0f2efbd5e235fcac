package framer

import "github.com/mewkiz/jxl/internal/bitio"

// ScanConfiguration describes the progressive pass ordering used by the
// framer. Per spec, progressive ordering must be DC first, then strictly
// increasing AC-coefficient counts; this package fixes the minimal scheme
// that satisfies that constraint: one DC pass, then one AC pass covering
// all 63 AC coefficients.
type ScanConfiguration struct {
	// ACCoeffCounts lists, for each AC pass after the DC pass, the
	// cumulative number of AC coefficients (in zig-zag order) that pass
	// contributes. It must be strictly increasing and end at 63.
	ACCoeffCounts []int
}

// DefaultScanConfiguration is the two-pass scheme: DC, then all 63 AC
// coefficients in a single pass.
func DefaultScanConfiguration() ScanConfiguration {
	return ScanConfiguration{ACCoeffCounts: []int{63}}
}

// Validate checks that the AC coefficient counts are strictly increasing
// and terminate at 63.
func (s ScanConfiguration) Validate() bool {
	prev := 0
	for _, c := range s.ACCoeffCounts {
		if c <= prev {
			return false
		}
		prev = c
	}
	return prev == 63
}

// WriteScanConfiguration writes an 8-bit pass count followed by one 8-bit
// cumulative AC coefficient count per pass.
func WriteScanConfiguration(bw *bitio.Writer, s ScanConfiguration) error {
	if err := bw.WriteBits(uint64(len(s.ACCoeffCounts)), 8); err != nil {
		return err
	}
	for _, c := range s.ACCoeffCounts {
		if err := bw.WriteBits(uint64(c), 8); err != nil {
			return err
		}
	}
	return nil
}

// ReadScanConfiguration reads a ScanConfiguration written by
// WriteScanConfiguration.
func ReadScanConfiguration(br *bitio.Reader) (ScanConfiguration, error) {
	n, err := br.ReadBits(8)
	if err != nil {
		return ScanConfiguration{}, err
	}
	counts := make([]int, n)
	for i := range counts {
		v, err := br.ReadBits(8)
		if err != nil {
			return ScanConfiguration{}, err
		}
		counts[i] = int(v)
	}
	return ScanConfiguration{ACCoeffCounts: counts}, nil
}
