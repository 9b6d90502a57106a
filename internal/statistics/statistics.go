// Package statistics provides the running aggregates the simulator and
// the empirical tests use to judge rates and spreads.
package statistics

import "math"

// Sample accumulates float64 observations with running sums so mean and
// spread come out without a second pass over the data.
type Sample struct {
	Count int
	Sum   float64
	Sum2  float64
	Min   float64
	Max   float64
}

// Add incorporates one observation.
func (s *Sample) Add(v float64) {
	if s.Count == 0 || v < s.Min {
		s.Min = v
	}
	if s.Count == 0 || v > s.Max {
		s.Max = v
	}
	s.Count++
	s.Sum += v
	s.Sum2 += v * v
}

// Mean returns the arithmetic mean of all observations.
func (s *Sample) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Variance returns the sample variance.
func (s *Sample) Variance() float64 {
	if s.Count < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Count)*mean*mean) / float64(s.Count-1)
}

// StdDev returns the sample standard deviation.
func (s *Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Sample) StdError() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Count))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Sample) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Proportion tracks a hit rate over boolean trials.
type Proportion struct {
	Trials int
	Hits   int
}

// Add incorporates one trial.
func (p *Proportion) Add(hit bool) {
	p.Trials++
	if hit {
		p.Hits++
	}
}

// Rate returns the observed hit rate.
func (p *Proportion) Rate() float64 {
	if p.Trials == 0 {
		return 0
	}
	return float64(p.Hits) / float64(p.Trials)
}

// ConfidenceInterval95 returns the 95% interval for the rate using the
// normal approximation to the binomial.
func (p *Proportion) ConfidenceInterval95() (float64, float64) {
	if p.Trials == 0 {
		return 0, 0
	}
	rate := p.Rate()
	margin := 1.96 * math.Sqrt(rate*(1-rate)/float64(p.Trials))
	return rate - margin, rate + margin
}

// Covers reports whether the 95% interval contains the expected rate. At
// the distribution's edges the interval collapses to a point, which still
// covers an exact 0 or 1.
func (p *Proportion) Covers(expected float64) bool {
	lo, hi := p.ConfidenceInterval95()
	return expected >= lo && expected <= hi
}
