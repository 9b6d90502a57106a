package game

import "fmt"

// Mode is the machine's operating mode.
type Mode int

const (
	ModeUninitialized Mode = iota
	ModeNormal
	ModeRush
)

func (m Mode) String() string {
	switch m {
	case ModeUninitialized:
		return "uninitialized"
	case ModeNormal:
		return "normal"
	case ModeRush:
		return "rush"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// State is a snapshot of the machine. Balls is meaningful outside
// Uninitialized and never goes negative. RushCount is positive exactly in
// Rush mode and counts consecutive continuations, starting at 1 on entry.
type State struct {
	Mode      Mode
	Balls     int
	RushCount int
}

// Uninitialized returns the state before StartGame.
func Uninitialized() State {
	return State{Mode: ModeUninitialized}
}

// NormalState returns a Normal-mode state holding balls.
func NormalState(balls int) State {
	return State{Mode: ModeNormal, Balls: balls}
}

// RushState returns a Rush-mode state holding balls at the given
// continuation count.
func RushState(balls, rushCount int) State {
	return State{Mode: ModeRush, Balls: balls, RushCount: rushCount}
}

func (s State) String() string {
	switch s.Mode {
	case ModeNormal:
		return fmt.Sprintf("normal(balls=%d)", s.Balls)
	case ModeRush:
		return fmt.Sprintf("rush(balls=%d, count=%d)", s.Balls, s.RushCount)
	default:
		return s.Mode.String()
	}
}
