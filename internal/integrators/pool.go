package integrators

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r2"
)

// ForcePool recycles per-tick net-force accumulators so a long run does
// not allocate one slice per tick.
type ForcePool struct {
	pool sync.Pool
}

func NewForcePool() *ForcePool {
	return &ForcePool{
		pool: sync.Pool{
			New: func() interface{} {
				s := make([]r2.Vec, 0)
				return &s
			},
		},
	}
}

// Get returns a zeroed accumulator of length n.
func (p *ForcePool) Get(n int) []r2.Vec {
	s := *p.pool.Get().(*[]r2.Vec)
	if cap(s) < n {
		return make([]r2.Vec, n)
	}
	s = s[:n]
	for i := range s {
		s[i] = r2.Vec{}
	}
	return s
}

// Put hands an accumulator back. The caller must not use it afterwards.
func (p *ForcePool) Put(s []r2.Vec) {
	s = s[:0]
	p.pool.Put(&s)
}
