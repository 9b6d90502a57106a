// Package config defines the machine parameters for a pachislo session:
// the ball economy, the per-mode win and fake-tell probabilities, and the
// rush continuation decay curve. A Config is assembled once, validated,
// and never mutated after the engine is constructed.
package config

import "fmt"

// maxRushDepth bounds the domain over which the decay curve is validated.
const maxRushDepth = 64

// BallsConfig sets the ball economy: the starting stock and the payouts
// awarded for a normal-mode win and a rush-mode win.
type BallsConfig struct {
	Init              int
	IncrementalNormal int
	IncrementalRush   int
}

// SlotProbability parameterizes a single lottery: the real win chance plus
// the chances that the displayed result lies about a win or about a loss.
type SlotProbability struct {
	Win      float64
	FakeWin  float64
	FakeLose float64
}

// ProbabilityConfig groups every chance the machine rolls: the start-hole
// gate, the three lottery parameter sets, and the continuation decay.
// RushContinueFn takes the current rush count (starting at 1) and returns
// the multiplier applied to RushContinue.Win for that continuation draw.
type ProbabilityConfig struct {
	StartHole      float64
	Normal         SlotProbability
	Rush           SlotProbability
	RushContinue   SlotProbability
	RushContinueFn DecayFn
}

// Config is the immutable parameter bundle for one machine.
type Config struct {
	Balls       BallsConfig
	Probability ProbabilityConfig
}

// Default returns the documented example machine: 1000 starting balls,
// a 12% start hole, 16%/48% normal/rush win rates, and a 0.6^(n-1)
// continuation decay.
func Default() Config {
	return Config{
		Balls: BallsConfig{
			Init:              1000,
			IncrementalNormal: 15,
			IncrementalRush:   300,
		},
		Probability: ProbabilityConfig{
			StartHole:      0.12,
			Normal:         SlotProbability{Win: 0.16, FakeWin: 0.3, FakeLose: 0.15},
			Rush:           SlotProbability{Win: 0.48, FakeWin: 0.2, FakeLose: 0.05},
			RushContinue:   SlotProbability{Win: 0.8, FakeWin: 0.25, FakeLose: 0.1},
			RushContinueFn: GeometricDecay(0.6),
		},
	}
}

// Validate checks every numeric bound the engine relies on. It must pass
// before a Config reaches the engine; construction fails otherwise.
func (c Config) Validate() error {
	if c.Balls.Init < 0 {
		return fmt.Errorf("balls: init must be non-negative, got %d", c.Balls.Init)
	}
	if c.Balls.IncrementalNormal < 0 {
		return fmt.Errorf("balls: incremental_normal must be non-negative, got %d", c.Balls.IncrementalNormal)
	}
	if c.Balls.IncrementalRush < 0 {
		return fmt.Errorf("balls: incremental_rush must be non-negative, got %d", c.Balls.IncrementalRush)
	}
	if !validProbability(c.Probability.StartHole) {
		return fmt.Errorf("probability: start_hole out of range: %v", c.Probability.StartHole)
	}
	if err := c.Probability.Normal.validate("normal"); err != nil {
		return err
	}
	if err := c.Probability.Rush.validate("rush"); err != nil {
		return err
	}
	if err := c.Probability.RushContinue.validate("rush_continue"); err != nil {
		return err
	}
	if c.Probability.RushContinueFn == nil {
		return fmt.Errorf("probability: rush continue decay function must be set")
	}
	for n := 1; n <= maxRushDepth; n++ {
		if v := c.Probability.RushContinueFn(n); !validProbability(v) {
			return fmt.Errorf("probability: decay function out of range at rush count %d: %v", n, v)
		}
	}
	return nil
}

func (p SlotProbability) validate(name string) error {
	if !validProbability(p.Win) {
		return fmt.Errorf("probability: %s win out of range: %v", name, p.Win)
	}
	if !validProbability(p.FakeWin) {
		return fmt.Errorf("probability: %s fake_win out of range: %v", name, p.FakeWin)
	}
	if !validProbability(p.FakeLose) {
		return fmt.Errorf("probability: %s fake_lose out of range: %v", name, p.FakeLose)
	}
	return nil
}

// validProbability rejects NaN along with anything outside [0,1].
func validProbability(v float64) bool {
	return v >= 0 && v <= 1
}
