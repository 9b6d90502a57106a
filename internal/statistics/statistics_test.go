package statistics

import (
	"math"
	"testing"
)

func TestSample_Empty(t *testing.T) {
	var s Sample

	if s.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty sample, got %f", s.Mean())
	}
	if s.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty sample, got %f", s.Variance())
	}
	if s.StdDev() != 0 {
		t.Errorf("Expected stddev of 0 for empty sample, got %f", s.StdDev())
	}
	if s.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty sample, got %f", s.StdError())
	}
}

func TestSample_SingleValue(t *testing.T) {
	var s Sample
	s.Add(3)

	if s.Count != 1 {
		t.Errorf("Expected 1 observation, got %d", s.Count)
	}
	if s.Mean() != 3 {
		t.Errorf("Expected mean of 3, got %f", s.Mean())
	}
	if s.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", s.Variance())
	}
	if s.Min != 3 || s.Max != 3 {
		t.Errorf("Expected min and max of 3, got %f and %f", s.Min, s.Max)
	}
}

func TestSample_KnownSpread(t *testing.T) {
	var s Sample
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Add(v)
	}

	if s.Count != 8 {
		t.Errorf("Expected 8 observations, got %d", s.Count)
	}
	if s.Mean() != 5 {
		t.Errorf("Expected mean of 5, got %f", s.Mean())
	}
	if math.Abs(s.Variance()-4.571428571) > 1e-6 {
		t.Errorf("Expected sample variance of ~4.5714, got %f", s.Variance())
	}
	if s.Min != 2 || s.Max != 9 {
		t.Errorf("Expected min 2 and max 9, got %f and %f", s.Min, s.Max)
	}

	lo, hi := s.ConfidenceInterval95()
	if lo >= s.Mean() || hi <= s.Mean() {
		t.Errorf("Expected interval to straddle the mean, got [%f, %f]", lo, hi)
	}
}

func TestProportion_RateAndInterval(t *testing.T) {
	var p Proportion
	for i := 0; i < 1000; i++ {
		p.Add(i%4 == 0)
	}

	if p.Trials != 1000 || p.Hits != 250 {
		t.Errorf("Expected 250/1000 hits, got %d/%d", p.Hits, p.Trials)
	}
	if p.Rate() != 0.25 {
		t.Errorf("Expected rate of 0.25, got %f", p.Rate())
	}

	se := math.Sqrt(0.25 * 0.75 / 1000)
	lo, hi := p.ConfidenceInterval95()
	if math.Abs(lo-(0.25-1.96*se)) > 1e-9 || math.Abs(hi-(0.25+1.96*se)) > 1e-9 {
		t.Errorf("Unexpected interval [%f, %f]", lo, hi)
	}
	if !p.Covers(0.25) {
		t.Error("Expected interval to cover the true rate")
	}
	if p.Covers(0.5) {
		t.Error("Expected interval to exclude a far-off rate")
	}
}

func TestProportion_Edges(t *testing.T) {
	var zero Proportion
	for i := 0; i < 100; i++ {
		zero.Add(false)
	}
	if !zero.Covers(0) {
		t.Error("Expected all-miss proportion to cover 0")
	}
	if zero.Covers(0.01) {
		t.Error("Expected collapsed interval to exclude nonzero rates")
	}

	var one Proportion
	for i := 0; i < 100; i++ {
		one.Add(true)
	}
	if !one.Covers(1) {
		t.Error("Expected all-hit proportion to cover 1")
	}

	var empty Proportion
	if empty.Rate() != 0 {
		t.Errorf("Expected zero rate with no trials, got %f", empty.Rate())
	}
}
