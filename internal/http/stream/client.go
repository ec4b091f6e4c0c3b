package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/matches-service/internal/http/requestutil"
	"github.com/preston-bernstein/matches-service/internal/logging"
	"github.com/preston-bernstein/matches-service/internal/matchstore"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one websocket connection fed by the Hub.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	remote string

	snapshot  func() matchstore.State
	closeOnce sync.Once
}

type clientMessage struct {
	Type string `json:"type"`
}

// Handler upgrades requests to websocket clients. The current state is sent
// on connect; afterwards clients receive every published change.
func (h *Hub) Handler(snapshot func() matchstore.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.CanAccept() {
			http.Error(w, "stream at capacity", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Warn(h.logger, "stream upgrade failed", slog.Any("err", err))
			return
		}

		c := &Client{
			hub:      h,
			conn:     conn,
			send:     make(chan []byte, sendBufferSize),
			remote:   requestutil.ClientIP(r),
			snapshot: snapshot,
		}
		if !h.register(c) {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "stream at capacity"),
				time.Now().Add(writeWait))
			_ = conn.Close()
			return
		}
		c.queueSnapshot()

		go c.writePump()
		go c.readPump()
	}
}

// queueSnapshot reads and queues the current state under publishMu, so any
// Publish already waiting lands after it and carries the same or newer state.
func (c *Client) queueSnapshot() {
	if c.snapshot == nil {
		return
	}
	c.hub.publishMu.Lock()
	defer c.hub.publishMu.Unlock()

	payload, err := c.hub.encode(c.snapshot())
	if err != nil {
		logging.Error(c.hub.logger, "stream encode failed", err)
		return
	}
	c.hub.sendTo(c, payload)
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug(c.hub.logger, "stream read ended", slog.Any("err", err))
			}
			return
		}
		var msg clientMessage
		if json.Unmarshal(raw, &msg) == nil && msg.Type == MessageTypeSnapshot {
			c.queueSnapshot()
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
