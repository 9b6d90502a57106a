package game

import "fmt"

// Command is the closed set of operations the engine accepts. The
// engine's correctness rests on handling this small set exhaustively in
// every mode, so application-level commands (autoplay toggles, quit keys
// and the like) are mapped onto these three by the drivers, never added
// here.
type Command int

const (
	StartGame Command = iota
	LaunchBall
	FinishGame
)

func (c Command) String() string {
	switch c {
	case StartGame:
		return "start_game"
	case LaunchBall:
		return "launch_ball"
	case FinishGame:
		return "finish_game"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}
