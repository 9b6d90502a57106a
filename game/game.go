package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/hanamachi/pachislo/config"
	"github.com/hanamachi/pachislo/internal/randutil"
	"github.com/hanamachi/pachislo/lottery"
	"github.com/hanamachi/pachislo/slot"
)

var (
	// ErrInvalidCommand reports a command the current mode cannot accept.
	ErrInvalidCommand = errors.New("game: invalid command for current state")
	// ErrInsufficientBalls reports a launch attempted with an empty stock.
	ErrInsufficientBalls = errors.New("game: insufficient balls")
)

// Rand supplies uniform draws in [0,1).
type Rand interface {
	Float64() float64
}

// Game owns the machine state and applies commands against it. It is not
// safe for concurrent use; one command runs to completion before the
// next, and a launch either fully resolves or fails before any mutation.
type Game[S comparable] struct {
	cfg     config.Config
	prod    *slot.Producer[S]
	out     Output[S]
	rng     Rand
	slotRng Rand
	state   State
	final   *State
}

// Option configures a Game at construction.
type Option[S comparable] func(*Game[S])

// WithRand sets the source for the engine's own draws: the start-hole
// gate and every lottery.
func WithRand[S comparable](rng Rand) Option[S] {
	return func(g *Game[S]) { g.rng = rng }
}

// WithSlotRand sets the source for reel symbol draws.
func WithSlotRand[S comparable](rng Rand) Option[S] {
	return func(g *Game[S]) { g.slotRng = rng }
}

// New builds a Game over the given machine configuration, reel producer
// and output sink. Construction fails on an invalid configuration or a
// missing collaborator; once constructed, the engine has no fatal
// runtime errors. Without explicit sources the engine and reel streams
// are seeded from the wall clock.
func New[S comparable](cfg config.Config, prod *slot.Producer[S], out Output[S], opts ...Option[S]) (*Game[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if prod == nil {
		return nil, errors.New("game: slot producer must not be nil")
	}
	if out == nil {
		return nil, errors.New("game: output must not be nil")
	}

	g := &Game[S]{
		cfg:   cfg,
		prod:  prod,
		out:   out,
		state: Uninitialized(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil || g.slotRng == nil {
		engine, reels := randutil.NewPair(time.Now().UnixNano())
		if g.rng == nil {
			g.rng = engine
		}
		if g.slotRng == nil {
			g.slotRng = reels
		}
	}
	return g, nil
}

// State returns a snapshot of the current machine state.
func (g *Game[S]) State() State {
	return g.state
}

// Apply executes one command against the current state. Recoverable
// rejections (ErrInvalidCommand, ErrInsufficientBalls) are returned to
// the caller and reported through the output; the state is untouched in
// those cases.
func (g *Game[S]) Apply(cmd Command) error {
	var err error
	switch cmd {
	case StartGame:
		err = g.start()
	case LaunchBall:
		err = g.launch()
	case FinishGame:
		err = g.finish()
	default:
		err = fmt.Errorf("%w: unknown command %v", ErrInvalidCommand, cmd)
	}
	if err != nil {
		g.out.CommandRejected(cmd, err)
	}
	return err
}

func (g *Game[S]) start() error {
	if g.state.Mode != ModeUninitialized {
		return fmt.Errorf("%w: game already started", ErrInvalidCommand)
	}
	before := g.state
	g.state = NormalState(g.cfg.Balls.Init)
	g.final = nil
	g.out.StateChanged(Transition{Before: before, After: g.state})
	return nil
}

// finish ends the session from any state. It is idempotent: the first
// call records the final state, later calls re-emit the same notice
// without touching the record. A following StartGame begins a fresh
// session.
func (g *Game[S]) finish() error {
	if g.final == nil {
		final := g.state
		g.final = &final
		g.state = Uninitialized()
	}
	g.out.GameFinished(*g.final)
	return nil
}

func (g *Game[S]) launch() error {
	switch g.state.Mode {
	case ModeUninitialized:
		return fmt.Errorf("%w: game not started", ErrInvalidCommand)
	case ModeNormal:
		return g.launchNormal()
	default:
		return g.launchRush()
	}
}

// launchNormal spends one ball, rolls the start-hole gate and, when the
// ball scores, the normal lottery. A real win pays the normal award and
// enters Rush at count 1. A gate miss resolves as a no-event round with
// no lottery notice.
func (g *Game[S]) launchNormal() error {
	if g.state.Balls <= 0 {
		return ErrInsufficientBalls
	}
	before := g.state
	g.state.Balls--

	if !ReachedStartHole(g.cfg.Probability.StartHole, g.rng) {
		g.out.StateChanged(Transition{Before: before, After: g.state})
		return nil
	}

	res := lottery.Resolve(g.cfg.Probability.Normal, g.rng)
	g.out.LotteryNormal(res, g.prod.Reveal(res, g.slotRng))

	if res.Real == lottery.Win {
		g.state = RushState(g.state.Balls+g.cfg.Balls.IncrementalNormal, 1)
	}
	g.out.StateChanged(Transition{Before: before, After: g.state})
	return nil
}

// launchRush spends one ball and rolls the rush lottery directly; the
// start-hole gate does not apply inside a rush. A real win pays the rush
// award, then the continuation lottery decides whether the rush deepens
// or drops back to Normal. A real loss ends the rush immediately.
func (g *Game[S]) launchRush() error {
	if g.state.Balls <= 0 {
		return ErrInsufficientBalls
	}
	before := g.state
	g.state.Balls--

	res := lottery.Resolve(g.cfg.Probability.Rush, g.rng)
	g.out.LotteryRush(res, g.prod.Reveal(res, g.slotRng))

	if res.Real != lottery.Win {
		g.state = NormalState(g.state.Balls)
		g.out.StateChanged(Transition{Before: before, After: g.state})
		return nil
	}

	g.state.Balls += g.cfg.Balls.IncrementalRush

	cont := lottery.ResolveContinuation(
		g.cfg.Probability.RushContinue,
		g.cfg.Probability.RushContinueFn,
		before.RushCount,
		g.rng,
	)
	g.out.LotteryRushContinue(cont)

	if cont.Real == lottery.Win {
		g.state = RushState(g.state.Balls, before.RushCount+1)
	} else {
		g.state = NormalState(g.state.Balls)
	}
	g.out.StateChanged(Transition{Before: before, After: g.state})
	return nil
}
