package main

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hanamachi/pachislo/cmd/pachislo/shared"
	"github.com/hanamachi/pachislo/game"
	"github.com/hanamachi/pachislo/internal/autoplay"
	"github.com/hanamachi/pachislo/internal/monitor"
	"github.com/hanamachi/pachislo/internal/randutil"
	"github.com/hanamachi/pachislo/slot"
)

// ServeCmd autoplays a machine and broadcasts every notice to websocket
// observers. Observation is one-way; nothing an observer sends reaches
// the machine.
type ServeCmd struct {
	Addr     string        `default:":8484" help:"Address for the observation feed"`
	Profile  string        `short:"p" help:"Path to an HCL machine profile"`
	Seed     int64         `help:"RNG seed (0 derives one from the clock)"`
	Reels    int           `default:"3" help:"Number of slot reels"`
	Interval time.Duration `default:"500ms" help:"Launch interval"`
	Budget   int           `help:"Per-session launch cap (0 plays until the stock is gone)"`
	Once     bool          `help:"Exit after one session instead of starting fresh ones"`
	LogLevel string        `default:"info" help:"Log level (debug|info|warn|error)"`
}

func (c *ServeCmd) Run() error {
	machine, err := loadMachine(c.Profile)
	if err != nil {
		return err
	}
	prod, err := slot.NewProducer(c.Reels, defaultSymbols())
	if err != nil {
		return err
	}
	seed := resolveSeed(c.Seed)
	logger := shared.SetupLogger(c.LogLevel)

	hub := monitor.NewHub(c.Addr, logger)
	feed := monitor.NewFeed[int](hub, logger)

	engineRng, slotRng := randutil.NewPair(seed)
	g, err := game.New(machine, prod, feed,
		game.WithRand[int](engineRng),
		game.WithSlotRand[int](slotRng),
	)
	if err != nil {
		return err
	}

	logger.Info("Serving observation feed",
		"addr", c.Addr,
		"session", feed.Session(),
		"seed", seed,
		"interval", c.Interval)

	ctx := shared.SetupSignalHandlerWithLogger(logger)

	// Start blocks in the listener; an error here means the feed never
	// came up. Stop tears down the observers and the process exit
	// releases the listener.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- hub.Start()
	}()

	playErr := make(chan error, 1)
	go func() {
		playErr <- c.play(ctx, g, logger)
	}()

	select {
	case <-ctx.Done():
		return hub.Stop()
	case err := <-serverErr:
		return err
	case err := <-playErr:
		stopErr := hub.Stop()
		if err != nil {
			return err
		}
		return stopErr
	}
}

// play runs autoplayed sessions until the context is cancelled, or until
// the first one ends when Once is set.
func (c *ServeCmd) play(ctx context.Context, g *game.Game[int], logger *log.Logger) error {
	opts := []autoplay.Option[int]{autoplay.WithLogger[int](logger)}
	if c.Budget > 0 {
		opts = append(opts, autoplay.WithBudget[int](c.Budget))
	}
	player, err := autoplay.New(g, c.Interval, opts...)
	if err != nil {
		return err
	}

	for {
		launches, err := player.Play(ctx)
		if err != nil {
			return err
		}
		logger.Info("Session over", "launches", launches)

		if c.Once || ctx.Err() != nil {
			return nil
		}
	}
}
