// Package autoplay drives a game at a fixed cadence, the way a player
// holding the launch lever down would. The clock is injected so tests
// advance time explicitly instead of sleeping.
package autoplay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/hanamachi/pachislo/game"
)

// errSessionOver stops the ticker without reporting a failure.
var errSessionOver = errors.New("autoplay: session over")

// Player launches balls on a timer until the stock runs dry, the launch
// budget is spent, or the context is canceled. The session is always
// finished before Play returns.
type Player[S comparable] struct {
	game     *game.Game[S]
	clock    quartz.Clock
	interval time.Duration
	budget   int // 0 means play until exhaustion
	logger   *log.Logger
}

// Option configures a Player.
type Option[S comparable] func(*Player[S])

// WithClock substitutes the clock, usually a quartz mock in tests.
func WithClock[S comparable](c quartz.Clock) Option[S] {
	return func(p *Player[S]) { p.clock = c }
}

// WithBudget caps the number of launches in one session.
func WithBudget[S comparable](n int) Option[S] {
	return func(p *Player[S]) { p.budget = n }
}

// WithLogger attaches a logger for session lifecycle events.
func WithLogger[S comparable](l *log.Logger) Option[S] {
	return func(p *Player[S]) { p.logger = l }
}

// New creates a player that fires one launch per interval.
func New[S comparable](g *game.Game[S], interval time.Duration, opts ...Option[S]) (*Player[S], error) {
	if g == nil {
		return nil, errors.New("autoplay: game is required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("autoplay: interval must be positive, got %s", interval)
	}
	p := &Player[S]{
		game:     g,
		clock:    quartz.NewReal(),
		interval: interval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Play starts a session and runs it to completion, returning how many
// balls were launched. A canceled context stops play cleanly; the
// machine is still moved to its finished state.
func (p *Player[S]) Play(ctx context.Context) (int, error) {
	if err := p.game.Apply(game.StartGame); err != nil {
		return 0, err
	}
	if p.logger != nil {
		p.logger.Info("autoplay started", "interval", p.interval, "budget", p.budget)
	}

	launches := 0
	waiter := p.clock.TickerFunc(ctx, p.interval, func() error {
		err := p.game.Apply(game.LaunchBall)
		if errors.Is(err, game.ErrInsufficientBalls) {
			return errSessionOver
		}
		if err != nil {
			return err
		}
		launches++
		if p.budget > 0 && launches >= p.budget {
			return errSessionOver
		}
		return nil
	}, "autoplay")

	err := waiter.Wait()
	finishErr := p.game.Apply(game.FinishGame)

	if p.logger != nil {
		p.logger.Info("autoplay finished", "launches", launches)
	}
	switch {
	case errors.Is(err, errSessionOver):
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
	case err != nil:
		return launches, err
	}
	return launches, finishErr
}
