package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/hoopform/internal/stats"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StatsFeed pushes shot statistics to WebSocket clients: the current
// snapshot on connect and a fresh one after every update.
type StatsFeed struct {
	tracker *stats.Tracker
	clients map[*websocket.Conn]bool
	// mu also serializes writes, which a websocket.Conn does not allow
	// concurrently.
	mu sync.Mutex
}

// NewStatsFeed creates a StatsFeed subscribed to the tracker.
func NewStatsFeed(t *stats.Tracker) *StatsFeed {
	f := &StatsFeed{
		tracker: t,
		clients: make(map[*websocket.Conn]bool),
	}
	t.Subscribe(f.broadcast)
	return f
}

// ServeHTTP handles WebSocket upgrade requests.
func (f *StatsFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	f.mu.Lock()
	err = f.send(conn, f.tracker.Snapshot())
	if err == nil {
		f.clients[conn] = true
	}
	f.mu.Unlock()
	if err != nil {
		return
	}

	defer func() {
		f.mu.Lock()
		delete(f.clients, conn)
		f.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Clients returns the number of connected clients.
func (f *StatsFeed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// broadcast sends snap to all connected clients.
func (f *StatsFeed) broadcast(snap stats.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for conn := range f.clients {
		if err := f.send(conn, snap); err != nil {
			log.Printf("websocket write error: %v", err)
			conn.Close()
			delete(f.clients, conn)
		}
	}
}

func (f *StatsFeed) send(conn *websocket.Conn, snap stats.Snapshot) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(snap)
}
