package predictive

// ForwardYCoCgR applies the reversible YCoCg-R color transform to one
// integer RGB triple: Co=R-B, t=B+Co/2, Cg=G-t, Y=t+Cg/2. All arithmetic
// is exact integer arithmetic with floor division, matching the Gradient/
// Average predictors' own floor convention so this transform is applied
// before prediction without introducing rounding error.
func ForwardYCoCgR(r, g, b int32) (y, co, cg int32) {
	co = r - b
	t := b + floorDiv2(co)
	cg = g - t
	y = t + floorDiv2(cg)
	return y, co, cg
}

// InverseYCoCgR is the exact inverse of ForwardYCoCgR.
func InverseYCoCgR(y, co, cg int32) (r, g, b int32) {
	t := y - floorDiv2(cg)
	g = cg + t
	b = t - floorDiv2(co)
	r = b + co
	return r, g, b
}
