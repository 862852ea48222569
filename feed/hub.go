package feed

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/inamrestro/restaurant-app/utils"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 32
)

type client struct {
	conn     *websocket.Conn
	username string
	send     chan []byte
}

// Hub keeps the websocket connections of staff screens and broadcasts
// feed messages to all of them. Every client has its own send queue, so a
// slow screen never holds up the request that published.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

func (h *Hub) register(conn *websocket.Conn, username string) *client {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	cl := &client{conn: conn, username: username, send: make(chan []byte, sendBuffer)}
	h.clients[conn] = cl
	return cl
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.drop(conn)
}

// drop must be called with the mutex held.
func (h *Hub) drop(conn *websocket.Conn) {
	if cl, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(cl.send)
		conn.Close()
	}
}

func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Serve registers conn and blocks reading (and discarding) client frames
// until the connection fails.
func (h *Hub) Serve(conn *websocket.Conn, username string) {
	cl := h.register(conn, username)
	go writePump(cl)
	defer h.Unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump drains the client's queue until it is closed. A failed write
// closes the connection, which ends the read loop in Serve.
func writePump(cl *client) {
	for data := range cl.send {
		cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("feed: write to %s: %v", cl.username, err)
			cl.conn.Close()
			return
		}
	}
}

// Publish queues msg for every client without blocking; a client whose
// queue is full is disconnected.
func (h *Hub) Publish(_ context.Context, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("feed: marshal %s: %v", msg.Event, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, cl := range h.clients {
		select {
		case cl.send <- data:
		default:
			utils.ErrorLogger.Printf("feed: dropping slow client %s", cl.username)
			h.drop(conn)
		}
	}
	utils.InfoLogger.Debugf("feed: %s queued for %d clients", msg.Event, len(h.clients))
}
