package main

import (
	"fmt"

	"github.com/hanamachi/pachislo/cmd/pachislo/shared"
	"github.com/hanamachi/pachislo/internal/fileutil"
	"github.com/hanamachi/pachislo/internal/simulator"
)

// SimulateCmd estimates machine dynamics over many independent sessions.
type SimulateCmd struct {
	Sessions    int    `default:"10000" help:"Number of sessions to simulate"`
	MaxLaunches int    `default:"100000" help:"Per-session launch cap"`
	Workers     int    `help:"Parallel workers (0 picks one per CPU)"`
	Seed        int64  `help:"RNG seed (0 derives one from the clock)"`
	Profile     string `short:"p" help:"Path to an HCL machine profile"`
	Out         string `short:"o" help:"Also write the report to this file"`
	LogLevel    string `default:"warn" help:"Log level (debug|info|warn|error)"`
}

func (c *SimulateCmd) Run() error {
	machine, err := loadMachine(c.Profile)
	if err != nil {
		return err
	}
	seed := resolveSeed(c.Seed)
	logger := shared.SetupLogger(c.LogLevel)

	fmt.Printf("Simulating %d sessions (seed %d)\n\n", c.Sessions, seed)

	sim := simulator.New(simulator.Config{
		Machine:     machine,
		Sessions:    c.Sessions,
		MaxLaunches: c.MaxLaunches,
		Workers:     c.Workers,
		Seed:        seed,
		Logger:      logger,
	})
	report, err := sim.Run()
	if err != nil {
		return err
	}

	summary := report.Summary()
	fmt.Print(summary)

	if c.Out != "" {
		if err := fileutil.WriteAtomic(c.Out, []byte(summary), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote report", "path", c.Out)
	}
	return nil
}
