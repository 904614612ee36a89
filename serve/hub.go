package serve

import "sync"

// Hub fans reload messages out to connected browsers. It is safe for
// concurrent use.
type Hub struct {
	mu      sync.Mutex
	clients map[chan string]struct{}
	closed  bool
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[chan string]struct{})}
}

// Subscribe registers a new client and returns the channel its messages
// arrive on. The channel is closed by [Hub.Unsubscribe] or [Hub.Close].
func (h *Hub) Subscribe() chan string {
	ch := make(chan string, 1)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(ch)

		return ch
	}

	h.clients[ch] = struct{}{}

	return ch
}

// Unsubscribe removes ch and closes it. Unknown channels are ignored.
func (h *Hub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
}

// Broadcast sends msg to every client. A client that has not consumed its
// previous message is skipped.
func (h *Hub) Broadcast(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

// Close disconnects every client. Later subscribers receive a closed
// channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.clients {
		close(ch)
	}

	clear(h.clients)
	h.closed = true
}
