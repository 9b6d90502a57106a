package lottery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanamachi/pachislo/config"
	"github.com/hanamachi/pachislo/internal/randutil"
	"github.com/hanamachi/pachislo/internal/statistics"
)

func TestResolveScriptedDraws(t *testing.T) {
	p := config.SlotProbability{Win: 0.5, FakeWin: 0.3, FakeLose: 0.2}

	tests := []struct {
		name      string
		draws     []float64
		real      Outcome
		displayed Outcome
		fake      bool
	}{
		{"clean win", []float64{0.4, 0.9}, Win, Win, false},
		{"win with fake lose tell", []float64{0.4, 0.2}, Win, Lose, true},
		{"clean lose", []float64{0.6, 0.9}, Lose, Lose, false},
		{"lose with fake win tell", []float64{0.6, 0.1}, Lose, Win, true},
		{"win draw on boundary loses", []float64{0.5, 0.9}, Lose, Lose, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := randutil.NewScript(tt.draws...)
			res := Resolve(p, rng)
			assert.Equal(t, tt.real, res.Real, "real outcome")
			assert.Equal(t, tt.displayed, res.Displayed, "displayed outcome")
			assert.Equal(t, tt.fake, res.Fake, "fake flag")
			assert.Equal(t, 0, rng.Remaining(), "resolve must consume exactly two draws")
		})
	}
}

func TestResolveConsumesTwoDrawsEvenWithoutTell(t *testing.T) {
	// The tell draw happens even when the fake probabilities are zero, so
	// replayed draw sequences stay aligned.
	p := config.SlotProbability{Win: 1, FakeWin: 0, FakeLose: 0}
	rng := randutil.NewScript(0.0, 0.99)
	res := Resolve(p, rng)
	assert.Equal(t, Win, res.Real)
	assert.False(t, res.Fake)
	assert.Equal(t, 0, rng.Remaining())
}

func TestResolveHonorsProbabilityBounds(t *testing.T) {
	t.Run("zero never wins", func(t *testing.T) {
		p := config.SlotProbability{Win: 0}
		for _, draw := range []float64{0, 0.0001, 0.5, 0.9999} {
			res := Resolve(p, randutil.NewScript(draw, 0.5))
			require.Equal(t, Lose, res.Real, "draw %v", draw)
		}
	})

	t.Run("one always wins", func(t *testing.T) {
		p := config.SlotProbability{Win: 1}
		for _, draw := range []float64{0, 0.5, 0.9999999} {
			res := Resolve(p, randutil.NewScript(draw, 0.5))
			require.Equal(t, Win, res.Real, "draw %v", draw)
		}
	})
}

func TestResolveEmpiricalWinRate(t *testing.T) {
	const trials = 20000
	// Margin of a few standard errors at this sample size.
	const margin = 0.02

	for _, p := range []float64{0, 0.16, 0.48, 0.8, 1} {
		t.Run(fmt.Sprintf("p=%v", p), func(t *testing.T) {
			rng := randutil.New(1234)
			prob := config.SlotProbability{Win: p, FakeWin: 0.3, FakeLose: 0.15}

			var wins statistics.Proportion
			for i := 0; i < trials; i++ {
				wins.Add(Resolve(prob, rng).Real == Win)
			}

			switch p {
			case 0:
				assert.Equal(t, 0, wins.Hits)
			case 1:
				assert.Equal(t, trials, wins.Hits)
			default:
				assert.InDelta(t, p, wins.Rate(), margin)
			}
		})
	}
}

func TestResolveEmpiricalFakeRates(t *testing.T) {
	const trials = 20000
	const margin = 0.02

	t.Run("fake win tell on forced wins", func(t *testing.T) {
		rng := randutil.New(99)
		prob := config.SlotProbability{Win: 1, FakeWin: 0.3}

		var fakes statistics.Proportion
		for i := 0; i < trials; i++ {
			res := Resolve(prob, rng)
			require.Equal(t, Win, res.Real)
			fakes.Add(res.Fake)
		}
		assert.InDelta(t, 0.3, fakes.Rate(), margin)
	})

	t.Run("fake lose tell on forced losses", func(t *testing.T) {
		rng := randutil.New(99)
		prob := config.SlotProbability{Win: 0, FakeLose: 0.15}

		var fakes statistics.Proportion
		for i := 0; i < trials; i++ {
			res := Resolve(prob, rng)
			require.Equal(t, Lose, res.Real)
			fakes.Add(res.Fake)
		}
		assert.InDelta(t, 0.15, fakes.Rate(), margin)
	})
}

func TestResolveContinuationScalesWinProbability(t *testing.T) {
	p := config.SlotProbability{Win: 0.8, FakeWin: 0.25, FakeLose: 0.1}
	decay := config.GeometricDecay(0.6)

	tests := []struct {
		name      string
		rushCount int
		draw      float64
		real      Outcome
	}{
		{"full strength at count 1", 1, 0.79, Win},
		{"count 1 boundary", 1, 0.8, Lose},
		{"decayed at count 2", 2, 0.47, Win},
		{"decayed at count 2 misses", 2, 0.49, Lose},
		{"deep decay at count 5", 5, 0.11, Lose},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := randutil.NewScript(tt.draw, 0.99)
			res := ResolveContinuation(p, decay, tt.rushCount, rng)
			assert.Equal(t, tt.real, res.Real)
			assert.Equal(t, 0, rng.Remaining(), "continuation is a full two-draw lottery")
		})
	}
}

func TestResolveContinuationClampsEffectiveProbability(t *testing.T) {
	p := config.SlotProbability{Win: 0.9}
	inflate := func(int) float64 { return 1.5 }
	res := ResolveContinuation(p, inflate, 1, randutil.NewScript(0.999999, 0.5))
	assert.Equal(t, Win, res.Real, "effective probability clamps to 1")

	deflate := func(int) float64 { return -0.5 }
	res = ResolveContinuation(p, deflate, 1, randutil.NewScript(0, 0.5))
	assert.Equal(t, Lose, res.Real, "effective probability clamps to 0")
}

func TestResolveContinuationKeepsFakeTells(t *testing.T) {
	p := config.SlotProbability{Win: 0.8, FakeWin: 0.25, FakeLose: 0.1}

	res := ResolveContinuation(p, config.NoDecay(), 3, randutil.NewScript(0.1, 0.2))
	assert.Equal(t, Win, res.Real)
	assert.Equal(t, Lose, res.Displayed, "a win is disguised when the tell lands below FakeWin")
	assert.True(t, res.Fake)

	res = ResolveContinuation(p, config.NoDecay(), 3, randutil.NewScript(0.9, 0.05))
	assert.Equal(t, Lose, res.Real)
	assert.Equal(t, Win, res.Displayed, "a loss is disguised when the tell lands below FakeLose")
	assert.True(t, res.Fake)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "win", Win.String())
	assert.Equal(t, "lose", Lose.String())
}
