package config

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesDocumentedMachine(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1000, cfg.Balls.Init)
	assert.Equal(t, 15, cfg.Balls.IncrementalNormal)
	assert.Equal(t, 300, cfg.Balls.IncrementalRush)

	assert.Equal(t, 0.12, cfg.Probability.StartHole)
	assert.Equal(t, SlotProbability{Win: 0.16, FakeWin: 0.3, FakeLose: 0.15}, cfg.Probability.Normal)
	assert.Equal(t, SlotProbability{Win: 0.48, FakeWin: 0.2, FakeLose: 0.05}, cfg.Probability.Rush)
	assert.Equal(t, SlotProbability{Win: 0.8, FakeWin: 0.25, FakeLose: 0.1}, cfg.Probability.RushContinue)

	require.NotNil(t, cfg.Probability.RushContinueFn)
	assert.Equal(t, 1.0, cfg.Probability.RushContinueFn(1))
	assert.InDelta(t, 0.6, cfg.Probability.RushContinueFn(2), 1e-12)
	assert.InDelta(t, 0.36, cfg.Probability.RushContinueFn(3), 1e-12)
}

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative init balls", func(c *Config) { c.Balls.Init = -1 }},
		{"negative incremental normal", func(c *Config) { c.Balls.IncrementalNormal = -5 }},
		{"negative incremental rush", func(c *Config) { c.Balls.IncrementalRush = -1 }},
		{"start hole above one", func(c *Config) { c.Probability.StartHole = 1.2 }},
		{"start hole negative", func(c *Config) { c.Probability.StartHole = -0.1 }},
		{"start hole NaN", func(c *Config) { c.Probability.StartHole = math.NaN() }},
		{"normal win above one", func(c *Config) { c.Probability.Normal.Win = 1.01 }},
		{"rush fake win negative", func(c *Config) { c.Probability.Rush.FakeWin = -0.2 }},
		{"continue fake lose above one", func(c *Config) { c.Probability.RushContinue.FakeLose = 2 }},
		{"nil decay function", func(c *Config) { c.Probability.RushContinueFn = nil }},
		{"decay escapes range", func(c *Config) {
			c.Probability.RushContinueFn = func(n int) float64 { return float64(n) / 10 }
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateAcceptsBoundaryProbabilities(t *testing.T) {
	cfg := Default()
	cfg.Probability.StartHole = 0
	cfg.Probability.Normal = SlotProbability{Win: 1, FakeWin: 0, FakeLose: 1}
	cfg.Probability.RushContinueFn = NoDecay()
	assert.NoError(t, cfg.Validate())
}

func TestDecayCurves(t *testing.T) {
	t.Run("geometric", func(t *testing.T) {
		fn, err := DecayCurve("geometric", 0.5)
		require.NoError(t, err)
		assert.Equal(t, 1.0, fn(1))
		assert.Equal(t, 0.5, fn(2))
		assert.Equal(t, 0.25, fn(3))
	})

	t.Run("harmonic", func(t *testing.T) {
		fn, err := DecayCurve("harmonic", 1)
		require.NoError(t, err)
		assert.Equal(t, 1.0, fn(1))
		assert.InDelta(t, 0.5, fn(2), 1e-12)
		assert.InDelta(t, 1.0/3, fn(3), 1e-12)
	})

	t.Run("constant", func(t *testing.T) {
		fn, err := DecayCurve("constant", 0)
		require.NoError(t, err)
		for n := 1; n <= 10; n++ {
			assert.Equal(t, 1.0, fn(n))
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := DecayCurve("exponential", 0.5)
		assert.Error(t, err)
	})

	t.Run("geometric ratio out of range", func(t *testing.T) {
		_, err := DecayCurve("geometric", 1.5)
		assert.Error(t, err)
	})

	t.Run("harmonic negative rate", func(t *testing.T) {
		_, err := DecayCurve("harmonic", -1)
		assert.Error(t, err)
	})
}

func TestDecayStaysInRangeAcrossDomain(t *testing.T) {
	curves := map[string]DecayFn{
		"geometric 0.6": GeometricDecay(0.6),
		"harmonic 2":    HarmonicDecay(2),
		"constant":      NoDecay(),
	}
	for name, fn := range curves {
		t.Run(name, func(t *testing.T) {
			for n := 1; n <= maxRushDepth; n++ {
				v := fn(n)
				assert.GreaterOrEqual(t, v, 0.0, "count %d", n)
				assert.LessOrEqual(t, v, 1.0, "count %d", n)
			}
		})
	}
}
