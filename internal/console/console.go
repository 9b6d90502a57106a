// Package console renders engine notices as plain terminal lines, one
// per notice. It is the non-TUI surface, used for piped output or when
// the terminal cannot host the interactive view. Colors degrade through
// termenv's profile detection down to bare ASCII.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/hanamachi/pachislo/game"
	"github.com/hanamachi/pachislo/lottery"
	"github.com/hanamachi/pachislo/slot"
)

const (
	colorWin    = "10" // green
	colorLose   = "9"  // red
	colorRush   = "13" // magenta
	colorNotice = "11" // yellow
)

// Renderer implements game.Output by printing one line per notice.
type Renderer[S comparable] struct {
	w   io.Writer
	out *termenv.Output
}

// NewRenderer creates a renderer writing to w. Pass
// termenv.WithProfile(termenv.Ascii) to force undecorated output.
func NewRenderer[S comparable](w io.Writer, opts ...termenv.OutputOption) *Renderer[S] {
	return &Renderer[S]{
		w:   w,
		out: termenv.NewOutput(w, opts...),
	}
}

func (r *Renderer[S]) StateChanged(t game.Transition) {
	switch {
	case t.Before.Mode == game.ModeUninitialized && t.After.Mode == game.ModeNormal:
		r.println(r.out.String(fmt.Sprintf("Game started with %d balls", t.After.Balls)).Bold())
	case t.Before.Mode == game.ModeNormal && t.After.Mode == game.ModeRush:
		r.println(r.out.String("RUSH start!").Bold().Foreground(r.out.Color(colorRush)))
	case t.Before.Mode == game.ModeRush && t.After.Mode == game.ModeRush &&
		t.After.RushCount > t.Before.RushCount:
		r.println(r.out.String(fmt.Sprintf("RUSH continues! Round %d", t.After.RushCount)).
			Bold().Foreground(r.out.Color(colorRush)))
	case t.Before.Mode == game.ModeRush && t.After.Mode == game.ModeNormal:
		r.println(r.out.String(fmt.Sprintf("RUSH finished! Rounds: %d", t.Before.RushCount)).
			Foreground(r.out.Color(colorRush)))
	}
	r.println(r.out.String(fmt.Sprintf("Balls: %d", t.After.Balls)).Faint())
}

func (r *Renderer[S]) GameFinished(final game.State) {
	r.println(r.out.String("Game finished!").Bold())
	r.println(r.out.String("Final state: " + final.String()))
}

func (r *Renderer[S]) LotteryNormal(res lottery.Result, rev slot.Reveal[S]) {
	r.renderReveal(rev)
}

func (r *Renderer[S]) LotteryRush(res lottery.Result, rev slot.Reveal[S]) {
	r.renderReveal(rev)
}

func (r *Renderer[S]) LotteryRushContinue(res lottery.Result) {
	r.println(r.out.String("Continue draw: " + res.Displayed.String()).Faint())
}

func (r *Renderer[S]) CommandRejected(cmd game.Command, err error) {
	r.println(r.out.String(fmt.Sprintf("Rejected %s: %v", cmd, err)).
		Foreground(r.out.Color(colorNotice)))
}

// renderReveal prints the displayed line, then the true line when the
// displayed one lied.
func (r *Renderer[S]) renderReveal(rev slot.Reveal[S]) {
	r.println(r.out.String("Slot: " + formatLine(rev.First.Symbols)).
		Foreground(r.lineColor(rev.First.Matched)))
	if rev.Second != nil {
		r.println(r.out.String("But:  " + formatLine(rev.Second.Symbols)).
			Bold().Foreground(r.lineColor(rev.Second.Matched)))
	}
}

func (r *Renderer[S]) lineColor(matched bool) termenv.Color {
	if matched {
		return r.out.Color(colorWin)
	}
	return r.out.Color(colorLose)
}

func (r *Renderer[S]) println(v ...any) {
	_, _ = fmt.Fprintln(r.w, v...)
}

func formatLine[S comparable](symbols []S) string {
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = fmt.Sprint(s)
	}
	return strings.Join(parts, " ")
}
