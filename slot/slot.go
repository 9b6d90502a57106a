// Package slot renders resolved lottery outcomes as reel symbol lines. A
// winning line repeats one symbol across every reel; a losing line always
// contains at least two distinct symbols so it can never be mistaken for a
// win. Symbol draws come from their own random source, separate from the
// engine's, so presentation never disturbs the engine's replayable draw
// order.
package slot

import (
	"fmt"

	"github.com/hanamachi/pachislo/lottery"
)

// Rand supplies uniform draws in [0,1) for symbol selection.
type Rand interface {
	Float64() float64
}

// Result is one rendered reel line. Matched reports whether the line
// depicts a win, which tracks the displayed outcome it was produced for.
type Result[S comparable] struct {
	Symbols []S
	Matched bool
}

// Reveal is the full presentation of one resolved lottery. First matches
// the displayed outcome; when the result is fake, Second shows the real
// outcome the machine settles on.
type Reveal[S comparable] struct {
	First  Result[S]
	Second *Result[S]
}

// Producer generates reel lines over a fixed symbol set.
type Producer[S comparable] struct {
	reelCount int
	symbols   []S
}

// NewProducer builds a producer with reelCount reels drawing from symbols.
// Duplicates in symbols are dropped. At least two reels and two distinct
// symbols are required, otherwise losing lines could degenerate into an
// accidental all-match.
func NewProducer[S comparable](reelCount int, symbols []S) (*Producer[S], error) {
	if reelCount < 2 {
		return nil, fmt.Errorf("slot: reel count must be at least 2, got %d", reelCount)
	}
	distinct := dedupe(symbols)
	if len(distinct) < 2 {
		return nil, fmt.Errorf("slot: need at least 2 distinct symbols, got %d", len(distinct))
	}
	return &Producer[S]{reelCount: reelCount, symbols: distinct}, nil
}

// ReelCount returns the number of reels per line.
func (p *Producer[S]) ReelCount() int {
	return p.reelCount
}

// Symbols returns the distinct symbol set in first-seen order.
func (p *Producer[S]) Symbols() []S {
	out := make([]S, len(p.symbols))
	copy(out, p.symbols)
	return out
}

// Produce renders one line for the given displayed outcome.
func (p *Producer[S]) Produce(displayed lottery.Outcome, rng Rand) Result[S] {
	if displayed == lottery.Win {
		return Result[S]{Symbols: p.winLine(rng), Matched: true}
	}
	return Result[S]{Symbols: p.loseLine(rng), Matched: false}
}

// Reveal renders the full presentation for a lottery result: a line for
// the displayed outcome, then a second line for the real outcome when the
// two disagree.
func (p *Producer[S]) Reveal(res lottery.Result, rng Rand) Reveal[S] {
	rev := Reveal[S]{First: p.Produce(res.Displayed, rng)}
	if res.Fake {
		second := p.Produce(res.Real, rng)
		rev.Second = &second
	}
	return rev
}

// winLine repeats one uniformly drawn symbol across every reel.
func (p *Producer[S]) winLine(rng Rand) []S {
	choice := p.symbols[intn(rng, len(p.symbols))]
	line := make([]S, p.reelCount)
	for i := range line {
		line[i] = choice
	}
	return line
}

// loseLine fills the reels from two disjoint symbol groups so the line
// holds at least two distinct symbols, then shuffles their positions.
func (p *Producer[S]) loseLine(rng Rand) []S {
	choices := make([]S, len(p.symbols))
	copy(choices, p.symbols)
	shuffle(rng, choices)

	// Split the shuffled symbols into two non-empty groups and the reels
	// into two non-empty runs, one per group.
	cut := 1 + intn(rng, len(choices)-1)
	group1, group2 := choices[:cut], choices[cut:]

	take1 := 1 + intn(rng, p.reelCount-1)

	line := make([]S, 0, p.reelCount)
	for i := 0; i < take1; i++ {
		line = append(line, group1[intn(rng, len(group1))])
	}
	for i := take1; i < p.reelCount; i++ {
		line = append(line, group2[intn(rng, len(group2))])
	}
	shuffle(rng, line)
	return line
}

func dedupe[S comparable](symbols []S) []S {
	seen := make(map[S]struct{}, len(symbols))
	out := make([]S, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func intn(rng Rand, n int) int {
	return int(rng.Float64() * float64(n))
}

func shuffle[S any](rng Rand, xs []S) {
	for i := len(xs) - 1; i > 0; i-- {
		j := intn(rng, i+1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}
