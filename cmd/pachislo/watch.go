package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/hanamachi/pachislo/cmd/pachislo/shared"
	"github.com/hanamachi/pachislo/internal/monitor"
)

// WatchCmd attaches to a running serve feed and prints every notice.
type WatchCmd struct {
	Addr     string `arg:"" optional:"" default:"localhost:8484" help:"Feed address (host:port or ws URL)"`
	LogLevel string `default:"warn" help:"Log level (debug|info|warn|error)"`
}

func (c *WatchCmd) Run() error {
	logger := shared.SetupLogger(c.LogLevel)

	obs, err := monitor.Dial(c.Addr, logger)
	if err != nil {
		return err
	}
	defer func() { _ = obs.Close() }()

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	go func() {
		<-ctx.Done()
		_ = obs.Close()
	}()

	out := termenv.NewOutput(os.Stdout)
	for {
		msg, err := obs.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		fmt.Println(formatEnvelope(out, msg))
	}
}

// formatEnvelope renders one observation as a log line. Decode failures
// fall back to the raw payload rather than dropping the notice.
func formatEnvelope(out *termenv.Output, msg *monitor.Message) string {
	stamp := out.String(msg.Timestamp.Format("15:04:05")).Faint().String()

	body := func() string {
		switch msg.Type {
		case monitor.MessageTypeHello:
			var d monitor.HelloData
			if err := json.Unmarshal(msg.Data, &d); err != nil {
				break
			}
			return fmt.Sprintf("Watching session %s (up since %s)",
				d.Session, d.StartedAt.Format("15:04:05"))
		case monitor.MessageTypeStateChanged:
			var d monitor.StateChangedData
			if err := json.Unmarshal(msg.Data, &d); err != nil {
				break
			}
			return fmt.Sprintf("%s -> %s", formatStateInfo(out, d.Before), formatStateInfo(out, d.After))
		case monitor.MessageTypeLotteryNormal, monitor.MessageTypeLotteryRush:
			var d monitor.LotteryData[int]
			if err := json.Unmarshal(msg.Data, &d); err != nil {
				break
			}
			return formatLottery(out, msg.Type, d)
		case monitor.MessageTypeRushContinue:
			var d monitor.RushContinueData
			if err := json.Unmarshal(msg.Data, &d); err != nil {
				break
			}
			return fmt.Sprintf("Continue draw: %s", d.Displayed)
		case monitor.MessageTypeCommandRejected:
			var d monitor.CommandRejectedData
			if err := json.Unmarshal(msg.Data, &d); err != nil {
				break
			}
			return out.String(fmt.Sprintf("Rejected %s: %s", d.Command, d.Reason)).
				Foreground(out.Color("11")).String()
		case monitor.MessageTypeGameFinished:
			var d monitor.GameFinishedData
			if err := json.Unmarshal(msg.Data, &d); err != nil {
				break
			}
			return fmt.Sprintf("Game finished: %s", formatStateInfo(out, d.Final))
		}
		return fmt.Sprintf("%s %s", msg.Type, string(msg.Data))
	}()

	return stamp + " " + body
}

func formatStateInfo(out *termenv.Output, s monitor.StateInfo) string {
	switch s.Mode {
	case "rush":
		badge := out.String("rush").Bold().Foreground(out.Color("13")).String()
		return fmt.Sprintf("%s(balls=%d, count=%d)", badge, s.Balls, s.RushCount)
	case "normal":
		return fmt.Sprintf("normal(balls=%d)", s.Balls)
	default:
		return s.Mode
	}
}

func formatLottery(out *termenv.Output, mt monitor.MessageType, d monitor.LotteryData[int]) string {
	mode := "Normal"
	if mt == monitor.MessageTypeLotteryRush {
		mode = "Rush"
	}

	line := formatWatchLine(d.Line.Symbols)
	if d.Line.Matched {
		line = out.String(line).Bold().Foreground(out.Color("10")).String()
	}

	s := fmt.Sprintf("%s draw: %s  [%s]", mode, d.Displayed, line)
	if d.TrueLine != nil {
		s += fmt.Sprintf("  (really %s: [%s])", d.Real, formatWatchLine(d.TrueLine.Symbols))
	}
	return s
}

func formatWatchLine(symbols []int) string {
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = fmt.Sprint(s)
	}
	return strings.Join(parts, " ")
}
