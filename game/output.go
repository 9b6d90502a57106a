package game

import (
	"github.com/hanamachi/pachislo/lottery"
	"github.com/hanamachi/pachislo/slot"
)

// Transition records one state change as observed through the output.
type Transition struct {
	Before State
	After  State
}

// Output receives the engine's notifications. Lottery notices carry the
// displayed outcome a player should see; the real outcome rides along for
// diagnostics. A resolved launch produces at most one of LotteryNormal or
// LotteryRush, possibly one LotteryRushContinue after a rush win, and
// exactly one StateChanged. Rejected commands produce CommandRejected and
// nothing else.
type Output[S comparable] interface {
	StateChanged(t Transition)
	GameFinished(final State)
	LotteryNormal(res lottery.Result, rev slot.Reveal[S])
	LotteryRush(res lottery.Result, rev slot.Reveal[S])
	LotteryRushContinue(res lottery.Result)
	CommandRejected(cmd Command, err error)
}

// Input supplies queued commands to the run loop. Poll blocks until at
// least one command is available and returns them in application order;
// ok is false once the source is closed.
type Input interface {
	Poll() (cmds []Command, ok bool)
}

// MultiOutput fans every notification out to each sink in order.
func MultiOutput[S comparable](outs ...Output[S]) Output[S] {
	return multiOutput[S](outs)
}

type multiOutput[S comparable] []Output[S]

func (m multiOutput[S]) StateChanged(t Transition) {
	for _, o := range m {
		o.StateChanged(t)
	}
}

func (m multiOutput[S]) GameFinished(final State) {
	for _, o := range m {
		o.GameFinished(final)
	}
}

func (m multiOutput[S]) LotteryNormal(res lottery.Result, rev slot.Reveal[S]) {
	for _, o := range m {
		o.LotteryNormal(res, rev)
	}
}

func (m multiOutput[S]) LotteryRush(res lottery.Result, rev slot.Reveal[S]) {
	for _, o := range m {
		o.LotteryRush(res, rev)
	}
}

func (m multiOutput[S]) LotteryRushContinue(res lottery.Result) {
	for _, o := range m {
		o.LotteryRushContinue(res)
	}
}

func (m multiOutput[S]) CommandRejected(cmd Command, err error) {
	for _, o := range m {
		o.CommandRejected(cmd, err)
	}
}
