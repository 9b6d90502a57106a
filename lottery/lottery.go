// Package lottery implements the probability-weighted outcome resolver.
// Every resolution carries two layers: the real outcome, which is the only
// thing game state may react to, and a displayed outcome that can
// deliberately disagree with it to tease the player before the true result
// is revealed. The displayed layer must never feed back into state.
package lottery

import "github.com/hanamachi/pachislo/config"

// Outcome is a single win/lose decision.
type Outcome int

const (
	Lose Outcome = iota
	Win
)

func (o Outcome) String() string {
	if o == Win {
		return "win"
	}
	return "lose"
}

// Rand supplies uniform draws in [0,1). A draw strictly below the
// probability counts as a hit, so a probability of 0 can never win and a
// probability of 1 always wins.
type Rand interface {
	Float64() float64
}

// Result pairs the real outcome with the displayed one. Fake is set when
// the two disagree.
type Result struct {
	Real      Outcome
	Displayed Outcome
	Fake      bool
}

// Resolve runs one lottery: the first draw decides the real outcome, the
// second decides whether the displayed outcome lies about it. Exactly two
// draws are consumed, in that order, on every call.
func Resolve(p config.SlotProbability, rng Rand) Result {
	won := rng.Float64() < p.Win
	tell := rng.Float64()

	res := Result{Real: outcomeOf(won)}
	if won {
		res.Displayed = Win
		if tell < p.FakeWin {
			res.Displayed = Lose
		}
	} else {
		res.Displayed = Lose
		if tell < p.FakeLose {
			res.Displayed = Win
		}
	}
	res.Fake = res.Displayed != res.Real
	return res
}

// ResolveContinuation runs the rush continuation lottery at the given rush
// count: the win probability is scaled by the decay curve and clamped to
// [0,1], then a full two-draw Resolve runs with the fake-tell chances
// unchanged.
func ResolveContinuation(p config.SlotProbability, decay config.DecayFn, rushCount int, rng Rand) Result {
	scaled := p
	scaled.Win = clamp01(p.Win * decay(rushCount))
	return Resolve(scaled, rng)
}

func outcomeOf(won bool) Outcome {
	if won {
		return Win
	}
	return Lose
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
