// Package stream pushes published match state to websocket clients.
package stream

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/matches-service/internal/logging"
	"github.com/preston-bernstein/matches-service/internal/matchstore"
	"github.com/preston-bernstein/matches-service/internal/metrics"
)

const (
	// MessageTypeState carries a full State snapshot.
	MessageTypeState = "state"
	// MessageTypeSnapshot is the client request for a fresh state message.
	MessageTypeSnapshot = "snapshot"
)

// Message is the envelope written to every client.
type Message struct {
	Type      string           `json:"type"`
	Data      matchstore.State `json:"data"`
	Timestamp time.Time        `json:"timestamp"`
}

// Hub tracks connected clients and fans state changes out to them.
// Publish never blocks: a client whose buffer is full is dropped.
type Hub struct {
	// publishMu serializes Publish with snapshot queueing so a client never
	// receives an older state after a newer one.
	publishMu sync.Mutex

	mu             sync.RWMutex
	clients        map[*Client]struct{}
	maxConnections int
	closed         bool

	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewHub builds a Hub. maxConnections <= 0 means unlimited.
func NewHub(maxConnections int, logger *slog.Logger, recorder *metrics.Recorder) *Hub {
	return &Hub{
		clients:        make(map[*Client]struct{}),
		maxConnections: maxConnections,
		logger:         logger,
		metrics:        recorder,
		now:            time.Now,
	}
}

// Publish broadcasts st to every client. It matches the Store.Subscribe callback.
func (h *Hub) Publish(st matchstore.State) {
	h.publishMu.Lock()
	defer h.publishMu.Unlock()

	payload, err := h.encode(st)
	if err != nil {
		logging.Error(h.logger, "stream encode failed", err)
		return
	}

	var slow []*Client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		logging.Warn(h.logger, "dropping slow stream client", slog.String("remote", c.remote))
		h.unregister(c)
	}
}

// CanAccept reports whether another client fits under the connection limit.
func (h *Hub) CanAccept() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return false
	}
	return h.maxConnections <= 0 || len(h.clients) < h.maxConnections
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.unregister(c)
	}
}

func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	if h.closed || (h.maxConnections > 0 && len(h.clients) >= h.maxConnections) {
		h.mu.Unlock()
		return false
	}
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.metrics.RecordStreamClients(1)
	logging.Debug(h.logger, "stream client connected",
		slog.String("remote", c.remote),
		slog.Int(logging.FieldCount, total),
	)
	return true
}

// sendTo queues payload for c if it is still registered. Holding the read
// lock keeps unregister from closing c.send mid-send.
func (h *Hub) sendTo(c *Client, payload []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	total := len(h.clients)
	h.mu.Unlock()

	c.closeSend()
	h.metrics.RecordStreamClients(-1)
	logging.Debug(h.logger, "stream client disconnected",
		slog.String("remote", c.remote),
		slog.Int(logging.FieldCount, total),
	)
}

func (h *Hub) encode(st matchstore.State) ([]byte, error) {
	return json.Marshal(Message{
		Type:      MessageTypeState,
		Data:      st,
		Timestamp: h.now().UTC(),
	})
}
