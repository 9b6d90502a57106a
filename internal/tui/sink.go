package tui

import (
	"fmt"
	"strings"

	"github.com/hanamachi/pachislo/game"
	"github.com/hanamachi/pachislo/lottery"
	"github.com/hanamachi/pachislo/slot"
)

// Sink collects engine notices for the model to drain after each
// command. Commands apply on the tea goroutine and the sink is read
// there too, so no locking is needed.
type Sink struct {
	pending []string
	reels   []int
	matched bool
}

// NewSink creates an empty notice sink. Wire it as the game's output
// (alone or inside game.MultiOutput) and hand it to New.
func NewSink() *Sink {
	return &Sink{}
}

// drain returns and clears the pending log lines.
func (s *Sink) drain() []string {
	lines := s.pending
	s.pending = nil
	return lines
}

func (s *Sink) add(line string) {
	s.pending = append(s.pending, line)
}

func (s *Sink) StateChanged(t game.Transition) {
	switch {
	case t.Before.Mode == game.ModeUninitialized && t.After.Mode == game.ModeNormal:
		s.add(SuccessStyle.Render(fmt.Sprintf("Game started with %d balls", t.After.Balls)))
	case t.Before.Mode == game.ModeNormal && t.After.Mode == game.ModeRush:
		s.add(ModeRushStyle.Render(" RUSH start! "))
	case t.Before.Mode == game.ModeRush && t.After.Mode == game.ModeRush &&
		t.After.RushCount > t.Before.RushCount:
		s.add(WarnStyle.Render(fmt.Sprintf("RUSH continues! Round %d", t.After.RushCount)))
	case t.Before.Mode == game.ModeRush && t.After.Mode == game.ModeNormal:
		s.add(WarnStyle.Render(fmt.Sprintf("RUSH finished! Rounds: %d", t.Before.RushCount)))
	}
}

func (s *Sink) GameFinished(final game.State) {
	s.reels = nil
	s.add(SuccessStyle.Render("Game finished!") + " " + InfoStyle.Render("Final: "+final.String()))
}

func (s *Sink) LotteryNormal(res lottery.Result, rev slot.Reveal[int]) {
	s.reveal(rev)
}

func (s *Sink) LotteryRush(res lottery.Result, rev slot.Reveal[int]) {
	s.reveal(rev)
}

func (s *Sink) LotteryRushContinue(res lottery.Result) {
	s.add(InfoStyle.Render("Continue draw: " + res.Displayed.String()))
}

func (s *Sink) CommandRejected(cmd game.Command, err error) {
	s.add(ErrorStyle.Render(fmt.Sprintf("Rejected %s: %v", cmd, err)))
}

// reveal logs the displayed line, then the true line when the displayed
// one lied. The reel row keeps showing the displayed line; that lie is
// the machine's tell.
func (s *Sink) reveal(rev slot.Reveal[int]) {
	s.reels = rev.First.Symbols
	s.matched = rev.First.Matched
	s.add(lineFor("Slot: ", rev.First))
	if rev.Second != nil {
		s.add(lineFor("But:  ", *rev.Second))
	}
}

func lineFor(prefix string, res slot.Result[int]) string {
	line := prefix + formatSymbols(res.Symbols)
	if res.Matched {
		return SuccessStyle.Render(line)
	}
	return ErrorStyle.Render(line)
}

func formatSymbols(symbols []int) string {
	parts := make([]string, len(symbols))
	for i, sym := range symbols {
		parts[i] = fmt.Sprint(sym)
	}
	return strings.Join(parts, " ")
}
