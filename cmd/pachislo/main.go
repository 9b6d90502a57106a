package main

import (
	"time"

	"github.com/alecthomas/kong"

	"github.com/hanamachi/pachislo/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play a session on the machine"`
	Simulate SimulateCmd      `cmd:"" help:"Run Monte Carlo session simulations"`
	Serve    ServeCmd         `cmd:"" help:"Autoplay a machine and broadcast it over websocket"`
	Watch    WatchCmd         `cmd:"" help:"Attach to a serve feed and print its notices"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pachislo"),
		kong.Description("Pachislo machine engine: play it, simulate it, watch it"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// loadMachine returns the default machine config, or the profile at path
// when one is given.
func loadMachine(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadProfile(path)
}

// resolveSeed substitutes a clock-derived seed for the zero value.
func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// defaultSymbols is the machine's reel alphabet: digits 1 through 9.
func defaultSymbols() []int {
	return []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
}
