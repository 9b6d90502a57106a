package monitor

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Observer is the read side of an observation feed: it dials a hub and
// yields envelopes until the feed closes. Observers never write.
type Observer struct {
	conn      *websocket.Conn
	logger    *log.Logger
	closeOnce sync.Once
}

// FeedURL normalizes an address into the hub's websocket endpoint.
// Accepts host:port, http(s) URLs, and ws(s) URLs; the path defaults
// to /ws.
func FeedURL(raw string) (string, error) {
	if !strings.Contains(raw, "://") {
		raw = "ws://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid feed address: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return u.String(), nil
}

// Dial connects an observer to the hub at addr.
func Dial(addr string, logger *log.Logger) (*Observer, error) {
	target, err := FeedURL(addr)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.Dial(target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	obs := &Observer{
		conn:   conn,
		logger: logger.WithPrefix("observer"),
	}
	obs.logger.Info("Connected to feed", "url", target)
	return obs, nil
}

// Next blocks until the next envelope arrives. It fails once the feed
// closes, including when Close is called from another goroutine.
func (o *Observer) Next() (*Message, error) {
	var msg Message
	if err := o.conn.ReadJSON(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Close shuts the connection down.
func (o *Observer) Close() error {
	var err error
	o.closeOnce.Do(func() {
		err = o.conn.Close()
	})
	return err
}
