package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedSource []float64

func (f *fixedSource) Float64() float64 {
	v := (*f)[0]
	*f = (*f)[1:]
	return v
}

func TestRNGIsDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}

	first := NewRNG(7).Float64()
	a.Seed(7)
	assert.Equal(t, first, a.Float64())
}

func TestIntBetweenIsInclusive(t *testing.T) {
	src := &fixedSource{0, 0.999999, 0.5}
	assert.Equal(t, 1, IntBetween(src, 1, 4))
	assert.Equal(t, 4, IntBetween(src, 1, 4))
	assert.Equal(t, 3, IntBetween(src, 1, 4))

	assert.Equal(t, 6, IntBetween(&fixedSource{}, 6, 6))
	assert.Equal(t, 6, IntBetween(&fixedSource{}, 6, 2))

	r := NewRNG(3)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		n := IntBetween(r, 6, 8)
		assert.GreaterOrEqual(t, n, 6)
		assert.LessOrEqual(t, n, 8)
		seen[n] = true
	}
	assert.Len(t, seen, 3)
}

func TestJitterAndBetween(t *testing.T) {
	src := &fixedSource{0, 0.5, 0.75, 0.25}
	assert.Equal(t, -10.0, Jitter(src, 10))
	assert.Equal(t, 0.0, Jitter(src, 10))
	assert.Equal(t, 5.0, Jitter(src, 10))
	assert.Equal(t, 1.5, Between(src, 1, 3))
}
