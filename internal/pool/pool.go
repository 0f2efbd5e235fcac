// Package pool implements the bounded, mutex-guarded buffer pool shared by
// the concurrent per-group workers of one encoder pass: per-group f64 and
// i32 plane scratch, plus 64-element DCT block scratch. Grounded on the
// teacher's internal/bufseekio package for "a small internal package
// wrapping a resource with an explicit acquire/release lifecycle tied to
// the owning Encoder/Decoder", generalized here from a single buffered
// reader to several bounded free lists sized for this codec's group and
// block buffers rather than audio sample blocks.
package pool

import "sync"

const (
	maxChannelBuffers = 8
	maxBlockBuffers   = 16
)

// Pool is a bounded set of free lists for the scratch buffers reused
// across groups within one encoder pass (encodeVarDCT or
// encodeModularPlane each create their own): Release on every exit path, never held
// past one group's work, since scheduler.Run's workers share a single
// Pool concurrently.
type Pool struct {
	mu sync.Mutex

	channelF64 [][]float64
	channelI32 [][]int32
	blocks     [][64]float64
}

// New returns an empty pool. Buffers are allocated lazily on first
// AcquireX miss and recycled via ReleaseX thereafter.
func New() *Pool {
	return &Pool{}
}

// AcquireChannelF64 returns a float64 slice of length n, reusing a pooled
// buffer of sufficient capacity when available.
func (p *Pool) AcquireChannelF64(n int) []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if k := len(p.channelF64); k > 0 {
		buf := p.channelF64[k-1]
		p.channelF64 = p.channelF64[:k-1]
		if cap(buf) >= n {
			return buf[:n]
		}
	}
	return make([]float64, n)
}

// ReleaseChannelF64 returns buf to the pool, dropping it if the pool is
// already at its bound.
func (p *Pool) ReleaseChannelF64(buf []float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.channelF64) >= maxChannelBuffers {
		return
	}
	p.channelF64 = append(p.channelF64, buf)
}

// AcquireChannelI32 returns an int32 slice of length n.
func (p *Pool) AcquireChannelI32(n int) []int32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if k := len(p.channelI32); k > 0 {
		buf := p.channelI32[k-1]
		p.channelI32 = p.channelI32[:k-1]
		if cap(buf) >= n {
			return buf[:n]
		}
	}
	return make([]int32, n)
}

// ReleaseChannelI32 returns buf to the pool.
func (p *Pool) ReleaseChannelI32(buf []int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.channelI32) >= maxChannelBuffers {
		return
	}
	p.channelI32 = append(p.channelI32, buf)
}

// AcquireBlock returns a zeroed 64-element block scratch buffer.
func (p *Pool) AcquireBlock() *[64]float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if k := len(p.blocks); k > 0 {
		b := p.blocks[k-1]
		p.blocks = p.blocks[:k-1]
		for i := range b {
			b[i] = 0
		}
		return &b
	}
	return &[64]float64{}
}

// ReleaseBlock returns a block buffer to the pool.
func (p *Pool) ReleaseBlock(b *[64]float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.blocks) >= maxBlockBuffers {
		return
	}
	p.blocks = append(p.blocks, *b)
}
