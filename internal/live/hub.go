// Package live implements a broadcast hub for pushing score updates to
// connected clients the moment a match result is recorded, grouped per
// match so watchers only receive updates for the fixture they follow.
package live

import "sync"

// Client is one connected watcher of a single match.
type Client struct {
	MatchID uint
	Send    chan []byte
}

// Message carries one payload to every client watching a match.
type Message struct {
	MatchID uint
	Data    []byte
}

// Hub tracks the connected clients per match and fans broadcasts out to
// them. All map mutation happens on the Run goroutine; the mutex only
// guards the snapshot taken during a broadcast.
type Hub struct {
	clients map[uint]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

// NewHub builds an empty hub. The broadcast channel is buffered so score
// handlers never block on a busy hub; register and unregister stay
// synchronous.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the hub's event loop; call it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.MatchID] == nil {
				h.clients[client.MatchID] = make(map[*Client]bool)
			}
			h.clients[client.MatchID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.drop(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			watchers := make([]*Client, 0, len(h.clients[msg.MatchID]))
			for client := range h.clients[msg.MatchID] {
				watchers = append(watchers, client)
			}
			h.mu.RUnlock()

			for _, client := range watchers {
				select {
				case client.Send <- msg.Data:
				default:
					// Slow consumer: drop it instead of stalling the loop.
					h.mu.Lock()
					h.drop(client)
					h.mu.Unlock()
				}
			}
		}
	}
}

// drop removes a client and closes its channel. Callers hold the write
// lock.
func (h *Hub) drop(client *Client) {
	watchers, ok := h.clients[client.MatchID]
	if !ok {
		return
	}
	if _, ok := watchers[client]; !ok {
		return
	}
	delete(watchers, client)
	close(client.Send)
	if len(watchers) == 0 {
		delete(h.clients, client.MatchID)
	}
}

// BroadcastToMatch sends data to everyone watching the given match.
func (h *Hub) BroadcastToMatch(matchID uint, data []byte) {
	h.broadcast <- &Message{MatchID: matchID, Data: data}
}

// Register adds a watcher for its match.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a watcher when its connection goes away.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
