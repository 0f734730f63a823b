package sse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// typeSet is a stream filter. The empty set lets everything through.
type typeSet map[string]struct{}

func newTypeSet(raw []string) typeSet {
	set := typeSet{}
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

func (s typeSet) allows(eventType string) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[eventType]
	return ok
}

// Client is one open event stream
type Client struct {
	ID     string
	Events chan Event
	filter typeSet
}

// Hub fans tracker events out to every open stream
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	inbox chan Event
	seq   atomic.Uint64
	now   func() time.Time

	quit     chan struct{}
	stopOnce sync.Once
	done     sync.WaitGroup
}

// NewHub creates a hub. Call Start before broadcasting.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		inbox:   make(chan Event, BroadcastBufferSize),
		now:     time.Now,
		quit:    make(chan struct{}),
	}
}

// Start runs the fan-out loop
func (h *Hub) Start() {
	h.done.Add(1)
	go func() {
		defer h.done.Done()
		for {
			select {
			case evt := <-h.inbox:
				h.deliver(evt)
			case <-h.quit:
				return
			}
		}
	}()
}

// Stop ends the loop and closes every client's channel. Idempotent.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.quit)
		h.done.Wait()

		h.mu.Lock()
		defer h.mu.Unlock()
		for id, c := range h.clients {
			close(c.Events)
			delete(h.clients, id)
		}
	})
}

// deliver never blocks: a client whose buffer is full misses the event
func (h *Hub) deliver(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		if !c.filter.allows(evt.Type) {
			continue
		}
		select {
		case c.Events <- evt:
		default:
		}
	}
}

// Register opens a stream limited to eventTypes, or to everything when none are given
func (h *Hub) Register(eventTypes []string) *Client {
	c := &Client{
		ID:     uuid.NewString(),
		Events: make(chan Event, ClientEventBuffer),
		filter: newTypeSet(eventTypes),
	}

	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()
	return c
}

// Unregister closes and forgets a stream. Unknown IDs are ignored.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[clientID]; ok {
		close(c.Events)
		delete(h.clients, clientID)
	}
}

// Broadcast queues an event for delivery. Events carry increasing IDs.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	evt := Event{
		ID:        strconv.FormatUint(h.seq.Add(1), 10),
		Type:      eventType,
		Timestamp: h.now().Unix(),
		Payload:   payload,
	}

	select {
	case h.inbox <- evt:
	default:
		slog.Warn(LogMsgEventDropped, "event_type", eventType)
	}
}

// ClientCount returns the number of open streams
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage renders evt in text/event-stream framing
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if evt.ID != "" {
		fmt.Fprintf(&buf, "id: %s\n", evt.ID)
	}
	fmt.Fprintf(&buf, "event: %s\ndata: %s\n\n", evt.Type, data)
	return buf.Bytes(), nil
}
