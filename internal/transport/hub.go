package transport

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"wayfinder-engine/internal/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// client is one open session's websocket connection. Only Hub
// constructs one, hence the unexported type.
type client struct {
	hub       *Hub
	conn      *websocket.Conn
	sessionID string
	send      chan []byte
}

// Hub owns every open client and the SessionCoordinator each inbound
// message is dispatched through. Registration and teardown flow through
// channels so Run's goroutine is the sole owner of the clients map.
type Hub struct {
	coordinator *session.SessionCoordinator

	clients    map[*client]bool
	register   chan *client
	unregister chan *client
}

// NewHub wires a Hub to the coordinator it dispatches messages through.
func NewHub(coordinator *session.SessionCoordinator) *Hub {
	return &Hub{
		coordinator: coordinator,
		clients:     make(map[*client]bool),
		register:    make(chan *client),
		unregister:  make(chan *client),
	}
}

// Run owns the clients map; callers start it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		}
	}
}

// ServeWs upgrades the request to a websocket connection, opens a
// session for it, and starts its read/write pumps.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("transport: upgrade failed: %v", err)
		return
	}

	sessionID := newSessionID()
	c := &client{hub: h, conn: conn, sessionID: sessionID, send: make(chan []byte, 32)}
	h.register <- c

	c.send <- h.coordinator.Open(sessionID)

	go c.writePump()
	go c.readPump()
}

// readPump is the only reader of c.conn; it owns the session's lifetime
// end (on any read error it unregisters, closes the coordinator session,
// and closes the socket).
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.hub.coordinator.Close(c.sessionID)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("transport: session %s closed unexpectedly: %v", c.sessionID, err)
			}
			break
		}
		resp := c.hub.coordinator.HandleMessage(c.sessionID, raw, time.Now().UnixMilli())
		select {
		case c.send <- resp:
		default:
			// Slow reader; drop rather than block the pump.
		}
	}
}

// writePump is the only writer of c.conn, draining c.send and sending
// keepalive pings on pingPeriod.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
