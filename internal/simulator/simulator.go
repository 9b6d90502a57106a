// Package simulator plays full pachislo sessions against the real engine
// and aggregates what happened: how long the stock survives, how often
// rushes start, how deep they run. Sessions are seeded individually so a
// run reproduces exactly regardless of worker count.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hanamachi/pachislo/config"
	"github.com/hanamachi/pachislo/game"
	"github.com/hanamachi/pachislo/internal/randutil"
	"github.com/hanamachi/pachislo/internal/statistics"
	"github.com/hanamachi/pachislo/lottery"
	"github.com/hanamachi/pachislo/slot"
)

const (
	defaultMaxLaunches = 100000
	reelCount          = 3
)

// Config holds configuration for a simulation run.
type Config struct {
	Machine     config.Config
	Sessions    int
	MaxLaunches int // per-session launch cap; 0 means the default cap
	Workers     int // 0 picks a worker per CPU, capped at 8
	Seed        int64
	Logger      *log.Logger
}

// Simulator runs pachislo session simulations.
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration.
func New(cfg Config) *Simulator {
	return &Simulator{config: cfg}
}

// sessionResult holds what one full session produced.
type sessionResult struct {
	launches    int
	finalBalls  int
	peakBalls   int
	rushEntries int
	maxRush     int
	exhausted   bool
	normalWins  statistics.Proportion
	rushWins    statistics.Proportion
	fakes       statistics.Proportion
}

// Report aggregates a whole run.
type Report struct {
	RunID    string
	Seed     int64
	Sessions int
	Elapsed  time.Duration

	Survival    statistics.Sample // launches per session
	FinalBalls  statistics.Sample
	PeakBalls   statistics.Sample
	RushEntries statistics.Sample
	RushDepth   statistics.Sample // deepest continuation count per session

	Exhausted     statistics.Proportion // sessions that ran the stock dry
	NormalWinRate statistics.Proportion
	RushWinRate   statistics.Proportion
	FakeRate      statistics.Proportion
}

// Run plays every session and aggregates the results. Session i is
// seeded with Seed+i, so reports reproduce bit-for-bit across worker
// counts.
func (s *Simulator) Run() (*Report, error) {
	cfg := s.config
	if cfg.Sessions <= 0 {
		return nil, fmt.Errorf("simulator: sessions must be positive, got %d", cfg.Sessions)
	}
	maxLaunches := cfg.MaxLaunches
	if maxLaunches <= 0 {
		maxLaunches = defaultMaxLaunches
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > 8 {
			workers = 8
		}
	}
	if workers > cfg.Sessions {
		workers = cfg.Sessions
	}
	if err := cfg.Machine.Validate(); err != nil {
		return nil, fmt.Errorf("simulator: %w", err)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("starting simulation",
			"sessions", cfg.Sessions, "workers", workers, "seed", cfg.Seed)
	}
	start := time.Now()

	g, ctx := errgroup.WithContext(context.Background())
	jobs := make(chan int)
	results := make(chan sessionResult, workers)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < cfg.Sessions; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for idx := range jobs {
				res, err := playSession(cfg.Machine, cfg.Seed+int64(idx), maxLaunches)
				if err != nil {
					return fmt.Errorf("session %d: %w", idx, err)
				}
				select {
				case results <- res:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		defer close(results)
		_ = g.Wait()
	}()

	report := &Report{
		RunID:    uuid.NewString(),
		Seed:     cfg.Seed,
		Sessions: cfg.Sessions,
	}
	for res := range results {
		report.Survival.Add(float64(res.launches))
		report.FinalBalls.Add(float64(res.finalBalls))
		report.PeakBalls.Add(float64(res.peakBalls))
		report.RushEntries.Add(float64(res.rushEntries))
		report.RushDepth.Add(float64(res.maxRush))
		report.Exhausted.Add(res.exhausted)
		merge(&report.NormalWinRate, res.normalWins)
		merge(&report.RushWinRate, res.rushWins)
		merge(&report.FakeRate, res.fakes)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Elapsed = time.Since(start)
	if cfg.Logger != nil {
		cfg.Logger.Info("simulation complete",
			"run_id", report.RunID, "elapsed", report.Elapsed,
			"mean_survival", report.Survival.Mean())
	}
	return report, nil
}

// playSession drives one engine from StartGame to exhaustion or the
// launch cap, validating the ball invariant on every transition.
func playSession(machine config.Config, seed int64, maxLaunches int) (sessionResult, error) {
	prod, err := slot.NewProducer(reelCount, defaultSymbols())
	if err != nil {
		return sessionResult{}, err
	}
	coll := &collector{}
	engineRng, reelRng := randutil.NewPair(seed)
	g, err := game.New(machine, prod, coll,
		game.WithRand[int](engineRng),
		game.WithSlotRand[int](reelRng),
	)
	if err != nil {
		return sessionResult{}, err
	}
	if err := g.Apply(game.StartGame); err != nil {
		return sessionResult{}, err
	}

	res := sessionResult{}
	for res.launches < maxLaunches {
		err := g.Apply(game.LaunchBall)
		if errors.Is(err, game.ErrInsufficientBalls) {
			res.exhausted = true
			break
		}
		if err != nil {
			return sessionResult{}, err
		}
		res.launches++
	}
	if err := g.Apply(game.FinishGame); err != nil {
		return sessionResult{}, err
	}
	if coll.invariantErr != nil {
		return sessionResult{}, coll.invariantErr
	}

	res.finalBalls = coll.final.Balls
	res.peakBalls = coll.peakBalls
	res.rushEntries = coll.rushEntries
	res.maxRush = coll.maxRush
	res.normalWins = coll.normalWins
	res.rushWins = coll.rushWins
	res.fakes = coll.fakes
	return res, nil
}

func defaultSymbols() []int {
	symbols := make([]int, 9)
	for i := range symbols {
		symbols[i] = i + 1
	}
	return symbols
}

// collector observes one session through the engine's output interface.
type collector struct {
	peakBalls    int
	rushEntries  int
	maxRush      int
	normalWins   statistics.Proportion
	rushWins     statistics.Proportion
	fakes        statistics.Proportion
	final        game.State
	invariantErr error
}

func (c *collector) StateChanged(t game.Transition) {
	if t.After.Balls < 0 && c.invariantErr == nil {
		c.invariantErr = fmt.Errorf("ball count went negative: %v", t.After)
	}
	if t.After.Balls > c.peakBalls {
		c.peakBalls = t.After.Balls
	}
	if t.Before.Mode != game.ModeRush && t.After.Mode == game.ModeRush {
		c.rushEntries++
	}
	if t.After.Mode == game.ModeRush && t.After.RushCount > c.maxRush {
		c.maxRush = t.After.RushCount
	}
}

func (c *collector) GameFinished(final game.State) {
	c.final = final
}

func (c *collector) LotteryNormal(res lottery.Result, _ slot.Reveal[int]) {
	c.normalWins.Add(res.Real == lottery.Win)
	c.fakes.Add(res.Fake)
}

func (c *collector) LotteryRush(res lottery.Result, _ slot.Reveal[int]) {
	c.rushWins.Add(res.Real == lottery.Win)
	c.fakes.Add(res.Fake)
}

func (c *collector) LotteryRushContinue(res lottery.Result) {
	c.fakes.Add(res.Fake)
}

func (c *collector) CommandRejected(cmd game.Command, err error) {
	// Exhaustion is detected through the Apply error in the session loop.
}

func merge(dst *statistics.Proportion, src statistics.Proportion) {
	dst.Trials += src.Trials
	dst.Hits += src.Hits
}

// Summary renders the report for terminal output.
func (r *Report) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== SIMULATION RESULTS ===\n")
	fmt.Fprintf(&b, "Run: %s (seed %d)\n", r.RunID, r.Seed)
	fmt.Fprintf(&b, "Sessions: %d in %s\n", r.Sessions, r.Elapsed.Round(time.Millisecond))

	lo, hi := r.Survival.ConfidenceInterval95()
	fmt.Fprintf(&b, "\n=== SURVIVAL ===\n")
	fmt.Fprintf(&b, "Launches/session: mean %.1f (95%% CI [%.1f, %.1f]), min %.0f, max %.0f\n",
		r.Survival.Mean(), lo, hi, r.Survival.Min, r.Survival.Max)
	fmt.Fprintf(&b, "Sessions exhausted: %d/%d (%.1f%%)\n",
		r.Exhausted.Hits, r.Exhausted.Trials, r.Exhausted.Rate()*100)

	fmt.Fprintf(&b, "\n=== BALLS ===\n")
	fmt.Fprintf(&b, "Final: mean %.1f, stddev %.1f\n", r.FinalBalls.Mean(), r.FinalBalls.StdDev())
	fmt.Fprintf(&b, "Peak: mean %.1f, max %.0f\n", r.PeakBalls.Mean(), r.PeakBalls.Max)

	fmt.Fprintf(&b, "\n=== RUSH ===\n")
	fmt.Fprintf(&b, "Entries/session: mean %.2f\n", r.RushEntries.Mean())
	fmt.Fprintf(&b, "Deepest continuation: mean %.2f, max %.0f\n", r.RushDepth.Mean(), r.RushDepth.Max)

	fmt.Fprintf(&b, "\n=== LOTTERIES ===\n")
	fmt.Fprintf(&b, "Normal win rate: %.4f over %d draws\n", r.NormalWinRate.Rate(), r.NormalWinRate.Trials)
	fmt.Fprintf(&b, "Rush win rate: %.4f over %d draws\n", r.RushWinRate.Rate(), r.RushWinRate.Trials)
	fmt.Fprintf(&b, "Fake tell rate: %.4f over %d draws\n", r.FakeRate.Rate(), r.FakeRate.Trials)

	return b.String()
}
