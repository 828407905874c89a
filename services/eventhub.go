// Package services provides business logic services
package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
)

// EventHub fans gadget lifecycle events from the bus out to WebSocket clients
type EventHub struct {
	natsConn *nats.Conn
	natsSub  *nats.Subscription

	clients   map[*EventClient]bool
	clientsMu sync.RWMutex

	register   chan *EventClient
	unregister chan *EventClient
	stop       chan struct{}
	stopOnce   sync.Once

	delivered uint64
	dropped   uint64
}

// EventClient represents a WebSocket client watching gadget events
type EventClient struct {
	hub        *EventHub
	conn       *websocket.Conn
	send       chan []byte
	gadgets    map[string]bool // empty means every gadget
	gadgetsMu  sync.RWMutex
	userID     string
	remoteAddr string
}

// EventMessage is a message sent to/from clients
type EventMessage struct {
	Type     string          `json:"type"` // subscribe, unsubscribe, ping, event
	GadgetID string          `json:"gadgetId,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// HubStats holds hub statistics
type HubStats struct {
	Clients   int    `json:"clients"`
	Delivered uint64 `json:"delivered"`
	Dropped   uint64 `json:"dropped"`
}

// NewEventHub creates a new event hub. natsConn may be nil when the bus
// is disabled; the hub then only serves events passed to Broadcast.
func NewEventHub(natsConn *nats.Conn) *EventHub {
	return &EventHub{
		natsConn:   natsConn,
		clients:    make(map[*EventClient]bool),
		register:   make(chan *EventClient),
		unregister: make(chan *EventClient),
		stop:       make(chan struct{}),
	}
}

// Start subscribes the hub to every gadget lifecycle subject
func (h *EventHub) Start() error {
	if h.natsConn == nil {
		return nil
	}
	sub, err := h.natsConn.Subscribe(SubjectGadgetAll, func(msg *nats.Msg) {
		h.Broadcast(msg.Data)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", SubjectGadgetAll, err)
	}
	h.natsSub = sub
	return nil
}

// Run starts the hub's main loop. It returns after Stop.
func (h *EventHub) Run() {
	log.Println("📺 [EVENTHUB] Event hub started")

	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client] = true
			h.clientsMu.Unlock()
			log.Printf("📺 [EVENTHUB] Client connected: %s (%s)", client.remoteAddr, client.userID)

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMu.Unlock()
			log.Printf("📺 [EVENTHUB] Client disconnected: %s", client.remoteAddr)

		case <-h.stop:
			h.clientsMu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMu.Unlock()
			log.Println("📺 [EVENTHUB] Event hub stopped")
			return
		}
	}
}

// Stop unsubscribes from the bus and ends Run
func (h *EventHub) Stop() {
	h.stopOnce.Do(func() {
		if h.natsSub != nil {
			if err := h.natsSub.Unsubscribe(); err != nil {
				log.Printf("⚠️ [EVENTHUB] Unsubscribe failed: %v", err)
			}
		}
		close(h.stop)
	})
}

// Register adds a client to the hub
func (h *EventHub) Register(client *EventClient) {
	h.register <- client
}

// Broadcast delivers an encoded GadgetEvent to every interested client
func (h *EventHub) Broadcast(data []byte) {
	var ev GadgetEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		log.Printf("⚠️ [EVENTHUB] Failed to decode event: %v", err)
		return
	}

	msgBytes, err := json.Marshal(EventMessage{
		Type:     "event",
		GadgetID: ev.GadgetID,
		Data:     data,
	})
	if err != nil {
		log.Printf("⚠️ [EVENTHUB] Failed to encode event message: %v", err)
		return
	}

	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	for client := range h.clients {
		if !client.Watching(ev.GadgetID) {
			continue
		}
		select {
		case client.send <- msgBytes:
			atomic.AddUint64(&h.delivered, 1)
		default:
			// Client buffer full, skip
			atomic.AddUint64(&h.dropped, 1)
		}
	}
}

// Stats returns hub statistics
func (h *EventHub) Stats() HubStats {
	h.clientsMu.RLock()
	clientCount := len(h.clients)
	h.clientsMu.RUnlock()

	return HubStats{
		Clients:   clientCount,
		Delivered: atomic.LoadUint64(&h.delivered),
		Dropped:   atomic.LoadUint64(&h.dropped),
	}
}
