package sse

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PackBattle_Go/internal/logger"
)

// Client is one connected stream
type Client struct {
	ID           string
	EventChannel chan Event
	filter       Filter
}

// Hub fans events out to connected clients. Slow clients miss events
// rather than blocking the broadcaster.
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan string
	mu         sync.RWMutex
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	dropped    atomic.Int64
}

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the broadcast loop and closes every client channel. Safe to
// call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for _, client := range h.clients {
			close(client.EventChannel)
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[clientID]; ok {
				close(client.EventChannel)
				delete(h.clients, clientID)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				if !client.filter.matches(event) {
					continue
				}
				select {
				case client.EventChannel <- event:
				default:
					h.dropped.Add(1)
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register adds a client. After Stop the returned client's channel is
// already closed.
func (h *Hub) Register(filter Filter) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		EventChannel: make(chan Event, ClientEventBuffer),
		filter:       filter,
	}

	select {
	case <-h.shutdown:
		close(client.EventChannel)
		return client
	default:
	}

	select {
	case h.register <- client:
	case <-h.shutdown:
		close(client.EventChannel)
	}
	return client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for every interested client
func (h *Hub) Broadcast(eventType string, battleID uuid.UUID, payload interface{}) {
	event := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}
	if battleID != uuid.Nil {
		event.BattleID = battleID.String()
	}

	select {
	case h.broadcast <- event:
	default:
		h.dropped.Add(1)
		logger.Warn(LogMsgEventDropped, "event_type", eventType)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped is the number of events lost to full buffers
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// FormatSSEMessage renders an event in text/event-stream framing
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	msg := make([]byte, 0, len(data)+len(event.ID)+len(event.Type)+24)
	if event.ID != "" {
		msg = append(msg, "id: "+event.ID+"\n"...)
	}
	msg = append(msg, "event: "+event.Type+"\n"...)
	msg = append(msg, "data: "...)
	msg = append(msg, data...)
	msg = append(msg, "\n\n"...)
	return msg, nil
}
