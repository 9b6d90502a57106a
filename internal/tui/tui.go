// Package tui is the interactive machine face: a reel row, a mode
// badge, the ball counter and a scrolling event log. The model owns the
// engine; every command applies inside Update on the tea goroutine, so
// the engine's single-threaded contract holds even with autoplay on.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/hanamachi/pachislo/game"
)

const defaultAutoInterval = 500 * time.Millisecond

// autoTickMsg paces autoplay launches.
type autoTickMsg struct{}

// Model is the Bubble Tea model for an interactive session.
type Model struct {
	game   *game.Game[int]
	sink   *Sink
	logger *log.Logger

	logViewport viewport.Model
	history     []string

	auto      bool
	interval  time.Duration
	reelCount int
	quitting  bool

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithAutoInterval sets the autoplay launch pace.
func WithAutoInterval(d time.Duration) Option {
	return func(m *Model) { m.interval = d }
}

// WithReelCount sets how many reel slots the idle row shows.
func WithReelCount(n int) Option {
	return func(m *Model) { m.reelCount = n }
}

// WithAutoplay starts the session with the autoplay lever already on.
func WithAutoplay() Option {
	return func(m *Model) { m.auto = true }
}

// New creates a model around a game whose output includes sink.
func New(g *game.Game[int], sink *Sink, logger *log.Logger, opts ...Option) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	m := &Model{
		game:        g,
		sink:        sink,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		interval:    defaultAutoInterval,
		reelCount:   3,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.auto {
		_ = m.applyCommand(game.StartGame)
		return m.tickCmd()
	}
	return nil
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case autoTickMsg:
		if m.auto && !m.quitting {
			if err := m.applyCommand(game.LaunchBall); err != nil {
				// Stock is empty or the session ended; stop the lever.
				m.auto = false
			} else {
				cmds = append(cmds, m.tickCmd())
			}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.auto = false
			_ = m.applyCommand(game.FinishGame)
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "s":
			_ = m.applyCommand(game.StartGame)
		case "l", " ", "enter":
			_ = m.applyCommand(game.LaunchBall)
		case "f":
			m.auto = false
			_ = m.applyCommand(game.FinishGame)
		case "a":
			m.auto = !m.auto
			if m.auto {
				cmds = append(cmds, m.tickCmd())
			}
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	reels := m.renderReels()
	help := HelpStyle.Render("s start · l/space launch · a autoplay · f finish · q quit")

	chrome := lipgloss.Height(header) + lipgloss.Height(reels) + lipgloss.Height(help) + 2
	logWidth := m.width - 2
	logHeight := m.height - chrome
	if logWidth < 1 {
		logWidth = 1
	}
	if logHeight < 1 {
		logHeight = 1
	}
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight

	logPane := LogBorderStyle.Width(logWidth).Height(logHeight).Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, reels, logPane, help)
}

func (m *Model) renderHeader() string {
	st := m.game.State()

	var badge string
	switch st.Mode {
	case game.ModeNormal:
		badge = ModeNormalStyle.Render(" NORMAL ")
	case game.ModeRush:
		badge = ModeRushStyle.Render(fmt.Sprintf(" RUSH %d ", st.RushCount))
	default:
		badge = ModeIdleStyle.Render(" IDLE ")
	}

	info := fmt.Sprintf(" Balls: %d", st.Balls)
	if m.auto {
		info += "  " + WarnStyle.Render("AUTO")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		TitleStyle.Render(" PACHISLO "), " ", badge, InfoStyle.Render(info))
}

func (m *Model) renderReels() string {
	symbols := m.sink.reels
	style := ReelStyle
	var parts []string
	switch {
	case symbols == nil:
		for i := 0; i < m.reelCount; i++ {
			parts = append(parts, "·")
		}
	default:
		if m.sink.matched {
			style = ReelWinStyle
		}
		for _, sym := range symbols {
			parts = append(parts, fmt.Sprint(sym))
		}
	}
	return style.Render(strings.Join(parts, " │ "))
}

// applyCommand runs one engine command and folds its notices into the
// log pane.
func (m *Model) applyCommand(cmd game.Command) error {
	err := m.game.Apply(cmd)
	if err != nil {
		m.logger.Debug("command rejected", "command", cmd, "error", err)
	}
	m.drainNotices()
	return err
}

func (m *Model) drainNotices() {
	lines := m.sink.drain()
	if len(lines) == 0 {
		return
	}
	m.history = append(m.history, lines...)
	m.logViewport.SetContent(strings.Join(m.history, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return autoTickMsg{} })
}
