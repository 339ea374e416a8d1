package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpec_Sparse(t *testing.T) {
	rng := NewRNG(4711)
	s := rng.Spec("tensor(x{},y{})", 50, 5)
	assert.LessOrEqual(t, s.Len(), 25)
	assert.Positive(t, s.Len())
	for _, c := range s.Cells() {
		assert.Len(t, c.Address, 2)
		assert.GreaterOrEqual(t, c.Value, -100.0)
		assert.LessOrEqual(t, c.Value, 100.0)
	}
}

func TestSpec_Mixed(t *testing.T) {
	rng := NewRNG(4711)
	s := rng.Spec("tensor<int8>(x{},y[3])", 4, 100)
	assert.Equal(t, 0, s.Len()%3)
	for _, c := range s.Cells() {
		assert.Contains(t, []string{"0", "1", "2"}, c.Address["y"])
	}
}

func TestSpec_Dense(t *testing.T) {
	rng := NewRNG(4711)
	s := rng.Spec("tensor(x[2],y[2])", 10, 1)
	assert.Equal(t, 4, s.Len())
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := rng.Spec("tensor(x{})", 10, 1000)
	rng.Reset()
	b := rng.Spec("tensor(x{})", 10, 1000)
	assert.True(t, a.Equal(b))
	assert.Equal(t, int64(4711), rng.Seed())
}
