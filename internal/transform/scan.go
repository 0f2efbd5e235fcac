package transform

// ChannelScan applies fn to every 8x8 block of a W x H single-channel
// plane in raster order, zero-padding samples that fall outside [0,W) x
// [0,H) at the right/bottom edges. fn receives the extracted block and
// must return the transformed block (or the same buffer, in place);
// ChannelScan copies only the in-image samples back on return.
func ChannelScan(plane []float64, w, h int, fn func(block *[BlockLen]float64)) {
	for by := 0; by < h; by += BlockSize {
		for bx := 0; bx < w; bx += BlockSize {
			var block [BlockLen]float64
			for y := 0; y < BlockSize; y++ {
				py := by + y
				if py >= h {
					continue
				}
				for x := 0; x < BlockSize; x++ {
					px := bx + x
					if px >= w {
						continue
					}
					block[y*BlockSize+x] = plane[py*w+px]
				}
			}
			fn(&block)
			for y := 0; y < BlockSize; y++ {
				py := by + y
				if py >= h {
					continue
				}
				for x := 0; x < BlockSize; x++ {
					px := bx + x
					if px >= w {
						continue
					}
					plane[py*w+px] = block[y*BlockSize+x]
				}
			}
		}
	}
}

// NumBlocks returns the number of 8x8 blocks (including partial edge
// blocks) needed to cover a w x h plane.
func NumBlocks(w, h int) int {
	bw := (w + BlockSize - 1) / BlockSize
	bh := (h + BlockSize - 1) / BlockSize
	return bw * bh
}
