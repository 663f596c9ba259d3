// Package reward provides the payout samplers used when an agent reaches an object.
package reward

import (
	"math/rand"
)

// Sampler returns reward with probability prob, else punish.
type Sampler interface {
	Sample(reward, punish, prob float64) float64
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func(reward, punish, prob float64) float64

func (f SamplerFunc) Sample(reward, punish, prob float64) float64 {
	return f(reward, punish, prob)
}

// Always pays the reward regardless of prob.
var Always = SamplerFunc(func(reward, _, _ float64) float64 { return reward })

// Never pays the punishment regardless of prob.
var Never = SamplerFunc(func(_, punish, _ float64) float64 { return punish })

// Random draws from a seeded source. Not safe for concurrent use.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random sampler seeded with seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Sample(reward, punish, prob float64) float64 {
	if r.rng.Float64() < prob {
		return reward
	}
	return punish
}
