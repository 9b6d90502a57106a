package randutil

import "fmt"

// Script replays a fixed sequence of draws, letting tests force exact
// engine decisions and assert how many draws a step consumes.
type Script struct {
	draws []float64
	next  int
}

// NewScript returns a source that yields the given draws in order.
func NewScript(draws ...float64) *Script {
	return &Script{draws: draws}
}

// Float64 pops the next scripted draw. It panics once the script is
// exhausted; in a test that points at a draw missing from the setup.
func (s *Script) Float64() float64 {
	if s.next >= len(s.draws) {
		panic(fmt.Sprintf("randutil: script exhausted after %d draws", len(s.draws)))
	}
	v := s.draws[s.next]
	s.next++
	return v
}

// Remaining reports how many scripted draws are left unconsumed.
func (s *Script) Remaining() int {
	return len(s.draws) - s.next
}
