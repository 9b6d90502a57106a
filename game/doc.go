// Package game implements the pachislo state machine and its command
// surface.
//
// The main type is Game, which owns the machine state across the
// Uninitialized, Normal and Rush modes and drives each launched ball
// end-to-end: the ball cost, the start-hole gate, the lottery, the reel
// line, the state transition and the output notifications.
//
// # Basic Usage
//
// Build a game over a symbol type and apply commands:
//
//	prod, _ := slot.NewProducer(3, []int{1, 2, 3, 4, 5, 6, 7, 8, 9})
//	g, err := game.New(config.Default(), prod, out)
//	if err != nil {
//	    // invalid configuration
//	}
//	g.Apply(game.StartGame)
//	g.Apply(game.LaunchBall)
//	g.Apply(game.FinishGame)
//
// Or drive it from a polled command source:
//
//	g.Run(in)
//
// # Deterministic Testing
//
// All randomness is injected through the Rand interface (anything with a
// Float64 method, such as a seeded math/rand/v2 source). Pass fixed
// sources to replay exact runs:
//
//	g, err := game.New(cfg, prod, out,
//	    game.WithRand[int](engineSrc), game.WithSlotRand[int](reelSrc))
//
// The engine consumes engine draws in a fixed order per launch: the
// start-hole gate (Normal mode only), the real outcome, the fake tell,
// and after a Rush win the continuation's real and fake draws. Reel
// symbol draws come from the separate slot source, so a recorded engine
// sequence replays identically whatever the presentation does.
//
// # Two result layers
//
// Every lottery resolves a real outcome and a displayed outcome. State
// reacts to the real outcome only; the displayed outcome exists to tease
// the player and flows to the Output collaborator, never back into state.
package game
