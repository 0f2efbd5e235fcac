// Package dist implements frequency-table normalization, the rANS reverse
// lookup table, per-frequency-band context selection, and the hybrid-uint
// integer coding scheme. The normalization and fixup algorithm is grounded
// on BuildTable in ha1tch/unz's pkg/ans (normalize-to-table-size, bump
// zero-frequency survivors to 1, fix the remainder against the
// highest-frequency entries), cross-checked against the rounding and
// stable-sort tie-breaking of AnsDistribution::from_frequencies in the
// original Rust jxl-bitstream crate.
package dist

import (
	"sort"

	"github.com/mewkiz/jxl/jxlerr"
)

// LogM is log2 of the table denominator.
const LogM = 12

// M is the table denominator; every normalized distribution's frequencies
// sum to M.
const M = 1 << LogM

// Distribution is a normalized frequency table over an alphabet of size A,
// together with a dense reverse lookup from slot to symbol.
type Distribution struct {
	alphabetSize int
	cumul        []uint32 // prefix sum, length alphabetSize+1
	freq         []uint32 // length alphabetSize
	reverse      []uint16 // length M, slot -> symbol
}

// AlphabetSize returns the number of symbols in the distribution.
func (d *Distribution) AlphabetSize() int { return d.alphabetSize }

// Freq returns the (freq, cumul) pair for symbol, as required by the rANS
// encoder. It fails with InvalidParameter if the symbol has zero
// frequency, since encoding a zero-frequency symbol can never be decoded.
func (d *Distribution) Freq(symbol int) (f, c uint32, err error) {
	if symbol < 0 || symbol >= d.alphabetSize {
		return 0, 0, jxlerr.New(jxlerr.InvalidParameter, "symbol %d out of range [0,%d)", symbol, d.alphabetSize)
	}
	f = d.freq[symbol]
	if f == 0 {
		return 0, 0, jxlerr.New(jxlerr.InvalidParameter, "symbol %d has zero frequency", symbol)
	}
	return f, d.cumul[symbol], nil
}

// Lookup returns the symbol owning the given rANS slot, along with its
// (freq, cumul) pair.
func (d *Distribution) Lookup(slot uint32) (symbol int, f, c uint32, err error) {
	if slot >= M {
		return 0, 0, 0, jxlerr.New(jxlerr.InvalidBitstream, "rans slot %d out of range", slot)
	}
	s := int(d.reverse[slot])
	return s, d.freq[s], d.cumul[s], nil
}

// NewDistribution normalizes source frequencies F (Σ F > 0) into a table
// whose frequencies sum to exactly M, every originally positive entry
// getting at least freq 1, and builds the dense slot->symbol reverse
// lookup. This is a hard post-condition: violating it here is an internal
// bug, not a caller error, so NewDistribution panics rather than returning
// an error when the post-condition can't be met (which, given the
// algorithm below, happens only when more than M entries are positive).
func NewDistribution(freqs []uint64) (*Distribution, error) {
	if len(freqs) == 0 {
		return nil, jxlerr.New(jxlerr.InvalidParameter, "empty frequency table")
	}
	var total uint64
	for _, f := range freqs {
		total += f
	}
	if total == 0 {
		return nil, jxlerr.New(jxlerr.InvalidParameter, "sum of frequencies is zero")
	}

	n := make([]uint32, len(freqs))
	var sum uint64
	for i, f := range freqs {
		if f == 0 {
			continue
		}
		v := (f*M + total/2) / total
		if v == 0 {
			v = 1
		}
		n[i] = uint32(v)
		sum += uint64(n[i])
	}

	switch {
	case sum > M:
		reduceToM(n, sum-M)
	case sum < M:
		// Add the deficit to the single largest entry.
		n[argmax(n)] += uint32(M - sum)
	}

	if err := checkClosure(n, freqs); err != nil {
		panic("dist: normalization post-condition violated: " + err.Error())
	}

	d := &Distribution{
		alphabetSize: len(freqs),
		freq:         n,
		cumul:        make([]uint32, len(freqs)+1),
		reverse:      make([]uint16, M),
	}
	var cum uint32
	for i, f := range n {
		d.cumul[i] = cum
		for s := uint32(0); s < f; s++ {
			d.reverse[cum+s] = uint16(i)
		}
		cum += f
	}
	d.cumul[len(freqs)] = cum
	return d, nil
}

// reduceToM subtracts excess from the highest-freq entries whose n > 1,
// sorted descending by frequency, ties broken by ascending index (a stable
// sort over a descending key), then from the single largest entry down to
// at least 1 if still short.
func reduceToM(n []uint32, excess uint64) {
	idx := make([]int, len(n))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return n[idx[a]] > n[idx[b]]
	})
	for _, i := range idx {
		if excess == 0 {
			break
		}
		if n[i] <= 1 {
			continue
		}
		take := uint64(n[i] - 1)
		if take > excess {
			take = excess
		}
		n[i] -= uint32(take)
		excess -= take
	}
	for excess > 0 {
		i := argmax(n)
		if n[i] <= 1 {
			break
		}
		n[i]--
		excess--
	}
}

func argmax(n []uint32) int {
	best := 0
	for i, v := range n {
		if v > n[best] {
			best = i
		}
	}
	return best
}

func checkClosure(n []uint32, freqs []uint64) error {
	var sum uint32
	for i, f := range n {
		sum += f
		if freqs[i] > 0 && f < 1 {
			return jxlerr.New(jxlerr.InvalidBitstream, "symbol %d lost its required positive frequency", i)
		}
	}
	if sum != M {
		return jxlerr.New(jxlerr.InvalidBitstream, "normalized sum %d != %d", sum, M)
	}
	return nil
}
