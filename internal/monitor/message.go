package monitor

import (
	"encoding/json"
	"time"

	"github.com/hanamachi/pachislo/game"
	"github.com/hanamachi/pachislo/lottery"
	"github.com/hanamachi/pachislo/slot"
)

// MessageType labels an observation envelope.
type MessageType string

// Hub to observer messages. The feed is one-way, so there is no
// client-to-server vocabulary.
const (
	MessageTypeHello           MessageType = "hello"
	MessageTypeStateChanged    MessageType = "state_changed"
	MessageTypeLotteryNormal   MessageType = "lottery_normal"
	MessageTypeLotteryRush     MessageType = "lottery_rush"
	MessageTypeRushContinue    MessageType = "rush_continue"
	MessageTypeCommandRejected MessageType = "command_rejected"
	MessageTypeGameFinished    MessageType = "game_finished"
)

// String returns the string representation of the message type.
func (mt MessageType) String() string {
	return string(mt)
}

// Message is the envelope every observation travels in.
type Message struct {
	Type      MessageType     `json:"type"`
	Session   string          `json:"session"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates an envelope with the current timestamp.
func NewMessage(session string, messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Session:   session,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// HelloData greets an observer with the session identity.
type HelloData struct {
	Session   string    `json:"session"`
	StartedAt time.Time `json:"startedAt"`
}

// StateInfo is the wire shape of a machine state.
type StateInfo struct {
	Mode      string `json:"mode"`
	Balls     int    `json:"balls"`
	RushCount int    `json:"rushCount,omitempty"`
}

type StateChangedData struct {
	Before StateInfo `json:"before"`
	After  StateInfo `json:"after"`
}

// LineData is the wire shape of one reel line.
type LineData[S comparable] struct {
	Symbols []S  `json:"symbols"`
	Matched bool `json:"matched"`
}

// LotteryData carries a scored lottery with its reel reveal. TrueLine is
// present only when the displayed line lied.
type LotteryData[S comparable] struct {
	Real      string       `json:"real"`
	Displayed string       `json:"displayed"`
	Fake      bool         `json:"fake"`
	Line      LineData[S]  `json:"line"`
	TrueLine  *LineData[S] `json:"trueLine,omitempty"`
}

type RushContinueData struct {
	Real      string `json:"real"`
	Displayed string `json:"displayed"`
	Fake      bool   `json:"fake"`
}

type CommandRejectedData struct {
	Command string `json:"command"`
	Reason  string `json:"reason"`
}

type GameFinishedData struct {
	Final StateInfo `json:"final"`
}

func stateInfoFrom(s game.State) StateInfo {
	return StateInfo{
		Mode:      s.Mode.String(),
		Balls:     s.Balls,
		RushCount: s.RushCount,
	}
}

func lineFrom[S comparable](res slot.Result[S]) LineData[S] {
	return LineData[S]{Symbols: res.Symbols, Matched: res.Matched}
}

func lotteryDataFrom[S comparable](res lottery.Result, rev slot.Reveal[S]) LotteryData[S] {
	data := LotteryData[S]{
		Real:      res.Real.String(),
		Displayed: res.Displayed.String(),
		Fake:      res.Fake,
		Line:      lineFrom(rev.First),
	}
	if rev.Second != nil {
		trueLine := lineFrom(*rev.Second)
		data.TrueLine = &trueLine
	}
	return data
}
