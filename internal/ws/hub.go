package ws

import (
	"context"
	"log"
	"sync/atomic"
)

type outbound struct {
	userID  string
	payload []byte
}

// Hub fans events out to connected websocket clients. Messages addressed to a
// user only reach that user's connections. All client bookkeeping happens on
// the Run goroutine.
type Hub struct {
	clients map[*Client]struct{}
	byUser  map[string]map[*Client]struct{}
	count   atomic.Int64

	outbox     chan outbound
	register   chan *Client
	unregister chan *Client
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		byUser:     make(map[string]map[*Client]struct{}),
		outbox:     make(chan outbound, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return
		case c := <-h.register:
			h.add(c)
		case c := <-h.unregister:
			if h.drop(c) {
				h.logf("WS disconnected | user=%s total_clients=%d", c.userID, len(h.clients))
			}
		case msg := <-h.outbox:
			h.deliver(msg)
		}
	}
}

func (h *Hub) add(c *Client) {
	if c == nil {
		return
	}
	h.clients[c] = struct{}{}
	if c.userID != "" {
		set, ok := h.byUser[c.userID]
		if !ok {
			set = make(map[*Client]struct{})
			h.byUser[c.userID] = set
		}
		set[c] = struct{}{}
	}
	h.count.Store(int64(len(h.clients)))
	h.logf("WS connected | user=%s total_clients=%d", c.userID, len(h.clients))
}

// drop closes the client's send channel; its write pump then sends a close
// frame. It reports whether the client was still registered.
func (h *Hub) drop(c *Client) bool {
	if _, ok := h.clients[c]; !ok {
		return false
	}
	delete(h.clients, c)
	if set := h.byUser[c.userID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.byUser, c.userID)
		}
	}
	close(c.send)
	h.count.Store(int64(len(h.clients)))
	return true
}

// deliver never blocks. A client whose buffer is full is disconnected and is
// expected to reconnect and reload.
func (h *Hub) deliver(msg outbound) {
	targets := h.clients
	if msg.userID != "" {
		targets = h.byUser[msg.userID]
	}

	var slow []*Client
	for c := range targets {
		select {
		case c.send <- msg.payload:
		default:
			slow = append(slow, c)
		}
	}
	for _, c := range slow {
		h.drop(c)
		h.logf("WS dropped slow client | user=%s", c.userID)
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Broadcast sends payload to every client.
func (h *Hub) Broadcast(payload []byte) {
	h.enqueue(outbound{payload: payload})
}

// SendToUser sends payload to the connections of one user.
func (h *Hub) SendToUser(userID string, payload []byte) {
	if userID == "" {
		return
	}
	h.enqueue(outbound{userID: userID, payload: payload})
}

func (h *Hub) enqueue(msg outbound) {
	if h == nil {
		return
	}
	select {
	case h.outbox <- msg:
	default:
		h.logf("WS event dropped | reason=buffer_full user=%s", msg.userID)
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	return int(h.count.Load())
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
