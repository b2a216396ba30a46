// Package server exposes the dashboard session over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pulse-board/internal/domain"
	"pulse-board/internal/observability"
	"pulse-board/internal/session"
	"pulse-board/internal/view"
)

const (
	// writeWait is the maximum time to wait for a write to complete.
	writeWait = 10 * time.Second

	// pongWait is the maximum time to wait for a pong from the client.
	pongWait = 60 * time.Second

	// pingPeriod sends pings at this interval. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize is the maximum size of an incoming message.
	maxMessageSize = 4096

	// sendBufferSize is the channel buffer for outgoing messages per client.
	sendBufferSize = 256

	// defaultPushInterval is the snapshot push cadence when none is given.
	defaultPushInterval = 250 * time.Millisecond
)

// upgrader configures the WebSocket upgrade parameters.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins. In production, restrict this to known origins.
		return true
	},
}

// viewport is one client's scroll state for a category column.
type viewport struct {
	ScrollTop      int `json:"scrollTop"`
	ViewportHeight int `json:"viewportHeight"`
}

// client represents a single WebSocket connection.
type client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	mu        sync.RWMutex
	viewports map[domain.Status]viewport
}

// clientMsg is the JSON message a client sends to drive the dashboard.
type clientMsg struct {
	Action   string               `json:"action"` // set_filter, set_sort, toggle_sort, reset_sort, set_chain, viewport
	Category string               `json:"category,omitempty"`
	Field    string               `json:"field,omitempty"`
	Chain    string               `json:"chain,omitempty"`
	Filter   *domain.FilterConfig `json:"filter,omitempty"`
	Viewport *viewport            `json:"viewport,omitempty"`
}

// columnSnapshot is one category's slice of the pushed frame.
type columnSnapshot struct {
	Total  int                    `json:"total"`
	Sort   domain.ColumnSort      `json:"sort"`
	Layout view.Layout            `json:"layout"`
	Rows   []view.MaterializedRow `json:"rows"`
}

// frameMsg is the envelope pushed to every client on the push cadence.
type frameMsg struct {
	Type    string                           `json:"type"` // "columns"
	Chain   domain.Chain                     `json:"chain"`
	Loading bool                             `json:"loading"`
	Now     int64                            `json:"now"` // Unix milliseconds
	Columns map[domain.Status]columnSnapshot `json:"columns"`
}

// Hub manages connected WebSocket clients and pushes per-category column
// snapshots derived from the session on a fixed cadence.
type Hub struct {
	sess         *session.Session
	pushInterval time.Duration
	logger       *log.Logger

	mu         sync.RWMutex
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	done       chan struct{} // closed when Run exits
}

// NewHub creates a hub serving one dashboard session.
func NewHub(sess *session.Session, pushInterval time.Duration, logger *log.Logger) *Hub {
	if pushInterval <= 0 {
		pushInterval = defaultPushInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		sess:         sess,
		pushInterval: pushInterval,
		logger:       logger,
		clients:      make(map[*client]bool),
		register:     make(chan *client),
		unregister:   make(chan *client),
		done:         make(chan struct{}),
	}
}

// Run starts the hub's main event loop. It handles client registration,
// unregistration, and periodic snapshot pushes, and exits when the
// context is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.pushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			observability.UpdateConnectedClients(0)
			return ctx.Err()

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.mu.Unlock()
			observability.UpdateConnectedClients(n)
			h.logger.Printf("ws: client connected (total=%d)", n)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			observability.UpdateConnectedClients(n)
			h.logger.Printf("ws: client disconnected (total=%d)", n)

		case <-ticker.C:
			h.pushSnapshots()
		}
	}
}

// pushSnapshots derives each client's visible columns and queues one
// frame per client, dropping frames for clients with full buffers.
func (h *Hub) pushSnapshots() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		data, err := json.Marshal(h.frameFor(c))
		if err != nil {
			h.logger.Printf("ws: marshal frame: %v", err)
			continue
		}
		select {
		case c.send <- data:
			observability.RecordSnapshotPushed()
		default:
			// Client's send buffer is full; drop the frame.
			h.logger.Printf("ws: dropping frame for slow client")
		}
	}
}

// frameFor builds one client's frame from the session using the client's
// viewports.
func (h *Hub) frameFor(c *client) frameMsg {
	frame := frameMsg{
		Type:    "columns",
		Chain:   h.sess.Chain(),
		Loading: h.sess.Loading(),
		Now:     time.Now().UnixMilli(),
		Columns: make(map[domain.Status]columnSnapshot, len(domain.Statuses)),
	}

	sorts := h.sess.SortConfig()
	for _, status := range domain.Statuses {
		vp := c.viewportFor(status)
		layout, rows := h.sess.Rows(status, vp.ScrollTop, vp.ViewportHeight)
		frame.Columns[status] = columnSnapshot{
			Total:  len(h.sess.Column(status)),
			Sort:   sorts.For(status),
			Layout: layout,
			Rows:   rows,
		}
	}
	return frame
}

// HandleWS upgrades an HTTP request to a WebSocket connection and
// registers the client with the hub.
// GET /ws
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("ws: upgrade failed: %v", err)
		return
	}

	c := &client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBufferSize),
		viewports: make(map[domain.Status]viewport),
	}

	select {
	case h.register <- c:
	case <-h.done:
		// The hub already shut down; refuse the connection.
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// clientCount returns the number of currently connected clients.
func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (c *client) viewportFor(status domain.Status) viewport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if vp, ok := c.viewports[status]; ok {
		return vp
	}
	// Default viewport shows the full capped column.
	return viewport{ScrollTop: 0, ViewportHeight: view.DefaultMaxRows * view.DefaultRowHeight}
}

// readPump reads control messages from the WebSocket connection.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Printf("ws: unexpected close error: %v", err)
			}
			return
		}

		var msg clientMsg
		if err := json.Unmarshal(message, &msg); err != nil {
			c.hub.logger.Printf("ws: bad client message: %v", err)
			continue
		}
		c.handleMessage(msg)
	}
}

// handleMessage applies one client control message. Filter, sort, and
// chain changes affect the shared session; viewports are per-client.
func (c *client) handleMessage(msg clientMsg) {
	switch msg.Action {
	case "set_filter":
		if msg.Filter != nil {
			c.hub.sess.SetFilter(*msg.Filter)
		}

	case "set_sort":
		status := domain.Status(msg.Category)
		field := domain.SortField(msg.Field)
		if status.IsValid() && field.IsValid() {
			c.hub.sess.SetSortField(status, field)
		}

	case "toggle_sort":
		if status := domain.Status(msg.Category); status.IsValid() {
			c.hub.sess.ToggleSortDirection(status)
		}

	case "reset_sort":
		if msg.Category == "" {
			c.hub.sess.ResetAllSorts()
		} else if status := domain.Status(msg.Category); status.IsValid() {
			c.hub.sess.ResetSort(status)
		}

	case "set_chain":
		if chain := domain.Chain(msg.Chain); chain.IsValid() {
			if err := c.hub.sess.SwitchChain(chain); err != nil {
				c.hub.logger.Printf("ws: chain switch: %v", err)
			}
		}

	case "viewport":
		status := domain.Status(msg.Category)
		if msg.Viewport != nil && status.IsValid() {
			c.mu.Lock()
			c.viewports[status] = *msg.Viewport
			c.mu.Unlock()
		}

	default:
		c.hub.logger.Printf("ws: unknown action %q", msg.Action)
	}
}

// writePump pumps frames from the hub to the WebSocket connection and
// sends periodic pings for keepalive.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
