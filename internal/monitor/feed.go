package monitor

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/hanamachi/pachislo/game"
	"github.com/hanamachi/pachislo/lottery"
	"github.com/hanamachi/pachislo/slot"
)

// Feed translates engine notices into hub broadcasts. It implements
// game.Output and is typically combined with other sinks through
// game.MultiOutput. Each feed carries a fresh session identity.
type Feed[S comparable] struct {
	hub     *Hub
	session string
	logger  *log.Logger
}

// NewFeed creates a feed and installs its greeting on the hub.
func NewFeed[S comparable](hub *Hub, logger *log.Logger) *Feed[S] {
	f := &Feed[S]{
		hub:     hub,
		session: uuid.NewString(),
		logger:  logger.WithPrefix("feed"),
	}

	hello, err := NewMessage(f.session, MessageTypeHello, HelloData{
		Session:   f.session,
		StartedAt: time.Now(),
	})
	if err != nil {
		f.logger.Error("Failed to encode greeting", "error", err)
		return f
	}
	hub.SetGreeting(hello)
	return f
}

// Session returns the feed's session identity.
func (f *Feed[S]) Session() string {
	return f.session
}

func (f *Feed[S]) StateChanged(t game.Transition) {
	f.send(MessageTypeStateChanged, StateChangedData{
		Before: stateInfoFrom(t.Before),
		After:  stateInfoFrom(t.After),
	})
}

func (f *Feed[S]) GameFinished(final game.State) {
	f.send(MessageTypeGameFinished, GameFinishedData{Final: stateInfoFrom(final)})
}

func (f *Feed[S]) LotteryNormal(res lottery.Result, rev slot.Reveal[S]) {
	f.send(MessageTypeLotteryNormal, lotteryDataFrom(res, rev))
}

func (f *Feed[S]) LotteryRush(res lottery.Result, rev slot.Reveal[S]) {
	f.send(MessageTypeLotteryRush, lotteryDataFrom(res, rev))
}

func (f *Feed[S]) LotteryRushContinue(res lottery.Result) {
	f.send(MessageTypeRushContinue, RushContinueData{
		Real:      res.Real.String(),
		Displayed: res.Displayed.String(),
		Fake:      res.Fake,
	})
}

func (f *Feed[S]) CommandRejected(cmd game.Command, err error) {
	f.send(MessageTypeCommandRejected, CommandRejectedData{
		Command: cmd.String(),
		Reason:  err.Error(),
	})
}

func (f *Feed[S]) send(mt MessageType, data any) {
	msg, err := NewMessage(f.session, mt, data)
	if err != nil {
		f.logger.Error("Failed to encode notice", "type", mt, "error", err)
		return
	}
	f.hub.Broadcast(msg)
}
