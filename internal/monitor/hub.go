// Package monitor broadcasts engine notices to websocket observers.
// Observation is strictly one-way: clients watch a session, they cannot
// drive it.
package monitor

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Hub fans observation messages out to every connected client.
type Hub struct {
	addr        string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	greeting    *Message
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewHub creates a hub listening on addr once started.
func NewHub(addr string, logger *log.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Observation feed carries no commands, any origin may watch
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("monitor"),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start runs the hub and serves /ws and /health until the listener fails.
func (h *Hub) Start() error {
	go h.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)
	mux.HandleFunc("/health", h.handleHealth)

	h.logger.Info("Starting monitor hub", "addr", h.addr)
	return http.ListenAndServe(h.addr, mux)
}

// Stop closes every connection and stops the hub loop.
func (h *Hub) Stop() error {
	h.cancel()

	h.mu.Lock()
	for conn := range h.connections {
		_ = conn.Close()
	}
	h.mu.Unlock()

	return nil
}

// SetGreeting installs a message replayed to each observer on connect,
// so late joiners still learn the session identity.
func (h *Hub) SetGreeting(msg *Message) {
	h.mu.Lock()
	h.greeting = msg
	h.mu.Unlock()
}

// run handles connection lifecycle
func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.connections[conn] = true
			greeting := h.greeting
			total := len(h.connections)
			h.mu.Unlock()

			if greeting != nil {
				_ = conn.SendMessage(greeting)
			}
			h.logger.Info("Observer connected", "total", total)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.connections[conn]; ok {
				delete(h.connections, conn)
				_ = conn.Close()
			}
			total := len(h.connections)
			h.mu.Unlock()
			h.logger.Info("Observer disconnected", "total", total)

		case <-h.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, h.logger)
	h.register <- client
	client.Start()

	go func() {
		<-client.ctx.Done()
		select {
		case h.unregister <- client:
		case <-h.ctx.Done():
		}
	}()
}

// handleHealth handles health check requests
func (h *Hub) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// Broadcast queues a message on every live connection.
func (h *Hub) Broadcast(msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.connections {
		if err := conn.SendMessage(msg); err != nil {
			h.logger.Debug("Failed to send to observer", "error", err)
		}
	}
}

// ClientCount reports how many observers are connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}
