package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanamachi/pachislo/game"
	"github.com/hanamachi/pachislo/lottery"
	"github.com/hanamachi/pachislo/slot"
)

// plainRenderer writes undecorated lines so assertions see raw text.
func plainRenderer() (*Renderer[int], *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRenderer[int](&buf, termenv.WithProfile(termenv.Ascii)), &buf
}

func TestStateChanged_GameStart(t *testing.T) {
	r, buf := plainRenderer()

	r.StateChanged(game.Transition{
		Before: game.Uninitialized(),
		After:  game.NormalState(1000),
	})

	out := buf.String()
	assert.Contains(t, out, "Game started with 1000 balls")
	assert.Contains(t, out, "Balls: 1000")
}

func TestStateChanged_LaunchShowsBalls(t *testing.T) {
	r, buf := plainRenderer()

	r.StateChanged(game.Transition{
		Before: game.NormalState(1000),
		After:  game.NormalState(999),
	})

	out := buf.String()
	assert.Contains(t, out, "Balls: 999")
	assert.NotContains(t, out, "RUSH")
}

func TestStateChanged_RushLifecycle(t *testing.T) {
	r, buf := plainRenderer()

	r.StateChanged(game.Transition{
		Before: game.NormalState(10),
		After:  game.RushState(24, 1),
	})
	r.StateChanged(game.Transition{
		Before: game.RushState(24, 1),
		After:  game.RushState(323, 2),
	})
	r.StateChanged(game.Transition{
		Before: game.RushState(323, 2),
		After:  game.NormalState(622),
	})

	out := buf.String()
	assert.Contains(t, out, "RUSH start!")
	assert.Contains(t, out, "RUSH continues! Round 2")
	assert.Contains(t, out, "RUSH finished! Rounds: 2")
}

func TestRenderReveal_Genuine(t *testing.T) {
	r, buf := plainRenderer()

	r.LotteryNormal(
		lottery.Result{Real: lottery.Win, Displayed: lottery.Win},
		slot.Reveal[int]{First: slot.Result[int]{Symbols: []int{7, 7, 7}, Matched: true}},
	)

	out := buf.String()
	assert.Contains(t, out, "Slot: 7 7 7")
	assert.NotContains(t, out, "But:")
}

func TestRenderReveal_FakeShowsTrueLine(t *testing.T) {
	r, buf := plainRenderer()

	r.LotteryRush(
		lottery.Result{Real: lottery.Win, Displayed: lottery.Lose, Fake: true},
		slot.Reveal[int]{
			First:  slot.Result[int]{Symbols: []int{1, 5, 2}, Matched: false},
			Second: &slot.Result[int]{Symbols: []int{3, 3, 3}, Matched: true},
		},
	)

	out := buf.String()
	assert.Contains(t, out, "Slot: 1 5 2")
	assert.Contains(t, out, "But:  3 3 3")
}

func TestLotteryRushContinue(t *testing.T) {
	r, buf := plainRenderer()

	r.LotteryRushContinue(lottery.Result{Real: lottery.Win, Displayed: lottery.Win})

	assert.Contains(t, buf.String(), "Continue draw: win")
}

func TestGameFinished(t *testing.T) {
	r, buf := plainRenderer()

	r.GameFinished(game.NormalState(123))

	out := buf.String()
	assert.Contains(t, out, "Game finished!")
	assert.Contains(t, out, "Final state: normal(balls=123)")
}

func TestCommandRejected(t *testing.T) {
	r, buf := plainRenderer()

	r.CommandRejected(game.LaunchBall, game.ErrInsufficientBalls)

	out := buf.String()
	assert.Contains(t, out, "launch_ball")
	assert.Contains(t, out, "insufficient balls")
}

func TestUnicodeSymbolsRenderAsText(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer[string](&buf, termenv.WithProfile(termenv.Ascii))

	r.LotteryNormal(
		lottery.Result{Real: lottery.Win, Displayed: lottery.Win},
		slot.Reveal[string]{First: slot.Result[string]{
			Symbols: []string{"七", "七", "七"}, Matched: true,
		}},
	)

	assert.Contains(t, buf.String(), "Slot: 七 七 七")
}

func TestFullSessionTranscript(t *testing.T) {
	r, buf := plainRenderer()

	r.StateChanged(game.Transition{Before: game.Uninitialized(), After: game.NormalState(3)})
	r.StateChanged(game.Transition{Before: game.NormalState(3), After: game.NormalState(2)})
	r.CommandRejected(game.StartGame, game.ErrInvalidCommand)
	r.GameFinished(game.NormalState(2))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Game started with 3 balls", lines[0])
	assert.Equal(t, "Balls: 3", lines[1])
	assert.Equal(t, "Balls: 2", lines[2])
	assert.Contains(t, lines[3], "Rejected start_game")
	assert.Equal(t, "Game finished!", lines[4])
	assert.Equal(t, "Final state: normal(balls=2)", lines[5])
}
