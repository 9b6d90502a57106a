package config

import (
	"fmt"
	"math"
)

// DecayFn maps a rush count (1-based) to a multiplier in [0,1] applied to
// the continuation win probability. The first continuation of a rush is
// drawn at count 1.
type DecayFn func(rushCount int) float64

// GeometricDecay returns ratio^(n-1): full strength on the first
// continuation draw, shrinking by ratio every round after.
func GeometricDecay(ratio float64) DecayFn {
	return func(rushCount int) float64 {
		return math.Pow(ratio, float64(rushCount-1))
	}
}

// HarmonicDecay returns 1/(1+rate*(n-1)), a slower tail than geometric.
func HarmonicDecay(rate float64) DecayFn {
	return func(rushCount int) float64 {
		return 1 / (1 + rate*float64(rushCount-1))
	}
}

// NoDecay keeps the continuation probability flat for the whole rush.
func NoDecay() DecayFn {
	return func(int) float64 { return 1 }
}

// DecayCurve resolves a profile curve name to a DecayFn. Geometric and
// harmonic take ratio as their parameter; constant ignores it.
func DecayCurve(name string, ratio float64) (DecayFn, error) {
	switch name {
	case "geometric":
		if ratio < 0 || ratio > 1 {
			return nil, fmt.Errorf("geometric decay ratio out of range: %v", ratio)
		}
		return GeometricDecay(ratio), nil
	case "harmonic":
		if ratio < 0 {
			return nil, fmt.Errorf("harmonic decay rate must be non-negative: %v", ratio)
		}
		return HarmonicDecay(ratio), nil
	case "constant":
		return NoDecay(), nil
	default:
		return nil, fmt.Errorf("unknown decay curve %q", name)
	}
}
