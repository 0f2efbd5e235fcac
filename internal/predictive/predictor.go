// Package predictive implements the modular (lossless) coding path:
// per-pixel integer predictors, the YCoCg-R reversible color transform,
// and palette mode. Grounded on the teacher's frame/subframe.go Fixed
// predictor family for the shape of "a small enum of integer predictor
// kinds dispatched by a switch, operating on a handful of prior samples",
// and on deepteams/webp's VP8L predictor modes (internal/lossless
// encode_predictor.go) for the concrete Paeth/Select/gradient formulas:
// WebP's Select/ClampedAddSubtractFull/ClampedAddSubtractHalf modes are
// this package's Select/Gradient/Weighted, adapted from packed 32-bit ARGB
// arithmetic to this codec's per-channel int32 arithmetic.
package predictive

// Kind identifies a predictor.
type Kind int

// Predictor kinds.
const (
	Zero Kind = iota
	Left
	Top
	Average
	Paeth
	Select
	Gradient
	Weighted
)

// Neighbors holds the causal integer neighbor samples used by a
// predictor: Left, Top, and TopLeft.
type Neighbors struct {
	L, T, TL int32
}

// Predict returns the predicted value for the given kind and neighbors.
func Predict(kind Kind, n Neighbors) int32 {
	switch kind {
	case Zero:
		return 0
	case Left:
		return n.L
	case Top:
		return n.T
	case Average:
		return floorDiv2(n.L + n.T)
	case Paeth:
		return paeth(n.L, n.T, n.TL)
	case Select:
		return selectPredictor(n.L, n.T, n.TL)
	case Gradient:
		return n.L + n.T - n.TL
	case Weighted:
		return weighted(n.L, n.T, n.TL)
	default:
		panic("predictive: unknown predictor kind")
	}
}

func floorDiv2(v int32) int32 {
	if v >= 0 {
		return v / 2
	}
	return -((-v + 1) / 2)
}

// paeth picks the min-abs-error predictor among L, T, TL with respect to
// L+T-TL, the classic PNG/JPEG-LS Paeth predictor.
func paeth(l, t, tl int32) int32 {
	p := l + t - tl
	pl := abs32(p - l)
	pt := abs32(p - t)
	ptl := abs32(p - tl)
	if pl <= pt && pl <= ptl {
		return l
	}
	if pt <= ptl {
		return t
	}
	return tl
}

// selectPredictor returns L when it's closer to TL than T is, T when
// strictly farther, and their average otherwise.
func selectPredictor(l, t, tl int32) int32 {
	dl := abs32(l - tl)
	dt := abs32(t - tl)
	switch {
	case dl < dt:
		return l
	case dl > dt:
		return t
	default:
		return floorDiv2(l + t)
	}
}

// weighted blends Left and Top, giving weight 3 to whichever neighbor has
// the smaller delta to TL (the better local predictor of the two),
// weight 1 to the other.
func weighted(l, t, tl int32) int32 {
	dl := abs32(l - tl)
	dt := abs32(t - tl)
	if dl <= dt {
		return (3*l + t) / 4
	}
	return (l + 3*t) / 4
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
