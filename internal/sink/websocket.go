package sink

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var broadcastUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsClient owns one live connection's write path. Each client gets a
// buffered channel so one slow browser tab can't stall delivery to the
// rest; a full channel drops the detection rather than blocking the
// broadcaster.
type wsClient struct {
	conn    *websocket.Conn
	send    chan []byte
	closeMu sync.Mutex
	closed  bool
}

func (c *wsClient) writeLoop() {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.shutdown()
			return
		}
	}
}

func (c *wsClient) shutdown() {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.conn.Close()
}

// WebSocketBroadcaster fans out each detection to every currently
// connected websocket client as a JSON text frame. It also implements
// http.Handler so it can be mounted directly on a mux to accept
// incoming connections.
type WebSocketBroadcaster struct {
	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

// NewWebSocketBroadcaster returns an empty broadcaster ready to accept
// connections and emit detections.
func NewWebSocketBroadcaster() *WebSocketBroadcaster {
	return &WebSocketBroadcaster{clients: make(map[*wsClient]struct{})}
}

// ServeHTTP upgrades the request to a websocket and registers the
// resulting connection as a broadcast recipient until it disconnects.
func (b *WebSocketBroadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := broadcastUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("sink: websocket upgrade failed: %v", err)
		return
	}

	c := &wsClient{conn: conn, send: make(chan []byte, 16)}
	b.register(c)
	go c.writeLoop()

	// Drain and discard inbound frames; this is a push-only feed. The
	// read loop's only job is to notice when the client goes away.
	go func() {
		defer b.unregister(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (b *WebSocketBroadcaster) register(c *wsClient) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[c] = struct{}{}
}

func (b *WebSocketBroadcaster) unregister(c *wsClient) {
	b.mu.Lock()
	_, ok := b.clients[c]
	delete(b.clients, c)
	b.mu.Unlock()
	if ok {
		close(c.send)
		c.shutdown()
	}
}

// Emit marshals d and enqueues it to every connected client, dropping
// the frame for any client whose outbound buffer is full rather than
// blocking the decode loop.
func (b *WebSocketBroadcaster) Emit(d Detection) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		select {
		case c.send <- payload:
		default:
			log.Printf("sink: dropping detection frame for slow websocket client")
		}
	}
	return nil
}

// Close disconnects every connected client.
func (b *WebSocketBroadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		close(c.send)
		c.shutdown()
		delete(b.clients, c)
	}
	return nil
}
