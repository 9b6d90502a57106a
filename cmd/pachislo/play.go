package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hanamachi/pachislo/cmd/pachislo/shared"
	"github.com/hanamachi/pachislo/config"
	"github.com/hanamachi/pachislo/game"
	"github.com/hanamachi/pachislo/internal/autoplay"
	"github.com/hanamachi/pachislo/internal/console"
	"github.com/hanamachi/pachislo/internal/randutil"
	"github.com/hanamachi/pachislo/internal/tui"
	"github.com/hanamachi/pachislo/slot"
)

// PlayCmd runs one session on the machine, interactive TUI by default.
type PlayCmd struct {
	Profile  string        `short:"p" help:"Path to an HCL machine profile"`
	Seed     int64         `help:"RNG seed (0 derives one from the clock)"`
	Reels    int           `default:"3" help:"Number of slot reels"`
	Plain    bool          `help:"Line-oriented console output instead of the TUI"`
	Auto     bool          `help:"Autoplay the session"`
	Interval time.Duration `default:"500ms" help:"Autoplay launch interval"`
	Budget   int           `help:"Autoplay launch cap (0 plays until the stock is gone)"`
	LogLevel string        `default:"info" help:"Log level (debug|info|warn|error)"`
	LogFile  string        `default:"pachislo.log" help:"Debug log path for the TUI"`
}

func (c *PlayCmd) Run() error {
	machine, err := loadMachine(c.Profile)
	if err != nil {
		return err
	}
	prod, err := slot.NewProducer(c.Reels, defaultSymbols())
	if err != nil {
		return err
	}
	seed := resolveSeed(c.Seed)

	if c.Plain {
		return c.runPlain(machine, prod, seed)
	}
	return c.runTUI(machine, prod, seed)
}

func (c *PlayCmd) runPlain(machine config.Config, prod *slot.Producer[int], seed int64) error {
	logger := shared.SetupLogger(c.LogLevel)
	engineRng, slotRng := randutil.NewPair(seed)

	renderer := console.NewRenderer[int](os.Stdout)
	g, err := game.New(machine, prod, renderer,
		game.WithRand[int](engineRng),
		game.WithSlotRand[int](slotRng),
	)
	if err != nil {
		return err
	}

	logger.Info("Starting session", "seed", seed)

	if c.Auto {
		ctx := shared.SetupSignalHandlerWithLogger(logger)

		opts := []autoplay.Option[int]{autoplay.WithLogger[int](logger)}
		if c.Budget > 0 {
			opts = append(opts, autoplay.WithBudget[int](c.Budget))
		}
		player, err := autoplay.New(g, c.Interval, opts...)
		if err != nil {
			return err
		}
		_, err = player.Play(ctx)
		return err
	}

	fmt.Println("Commands: s=start  l (or enter)=launch  f=finish  q=quit")
	g.Run(&stdinInput{scanner: bufio.NewScanner(os.Stdin)})
	return nil
}

func (c *PlayCmd) runTUI(machine config.Config, prod *slot.Producer[int], seed int64) error {
	// Bubble Tea owns the terminal, so logs go to a file.
	logger, logFile, err := shared.SetupFileLogger(c.LogFile, c.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	engineRng, slotRng := randutil.NewPair(seed)
	sink := tui.NewSink()
	g, err := game.New(machine, prod, sink,
		game.WithRand[int](engineRng),
		game.WithSlotRand[int](slotRng),
	)
	if err != nil {
		return err
	}

	logger.Info("Starting TUI session", "seed", seed)

	opts := []tui.Option{
		tui.WithAutoInterval(c.Interval),
		tui.WithReelCount(c.Reels),
	}
	if c.Auto {
		opts = append(opts, tui.WithAutoplay())
	}
	model := tui.New(g, sink, logger, opts...)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// stdinInput feeds the run loop from single-letter command lines. A bare
// enter launches, so holding the key down plays like pulling the lever.
type stdinInput struct {
	scanner *bufio.Scanner
}

func (in *stdinInput) Poll() ([]game.Command, bool) {
	for in.scanner.Scan() {
		switch strings.TrimSpace(in.scanner.Text()) {
		case "s":
			return []game.Command{game.StartGame}, true
		case "l", "":
			return []game.Command{game.LaunchBall}, true
		case "f":
			return []game.Command{game.FinishGame}, true
		case "q":
			return nil, false
		default:
			fmt.Println("Commands: s=start  l (or enter)=launch  f=finish  q=quit")
		}
	}
	return nil, false
}
