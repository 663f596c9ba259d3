package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandom_Extremes(t *testing.T) {
	r := NewRandom(1)
	for i := 0; i < 100; i++ {
		assert.Equal(t, 5.0, r.Sample(5, -1, 1))
		assert.Equal(t, -1.0, r.Sample(5, -1, 0))
	}
}

func TestRandom_FrequencyTracksProb(t *testing.T) {
	r := NewRandom(42)
	hits := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if r.Sample(1, 0, 0.3) == 1 {
			hits++
		}
	}
	assert.InDelta(t, 0.3, float64(hits)/n, 0.03)
}

func TestRandom_SeedIsDeterministic(t *testing.T) {
	a, b := NewRandom(7), NewRandom(7)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Sample(1, 0, 0.5), b.Sample(1, 0, 0.5))
	}
}

func TestFixedSamplers(t *testing.T) {
	assert.Equal(t, 3.0, Always.Sample(3, -2, 0))
	assert.Equal(t, -2.0, Never.Sample(3, -2, 1))
}
