package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4 * 1024

	// Send buffer size
	sendBufferSize = 64
)

// NewEventClient creates a new event client
func NewEventClient(hub *EventHub, conn *websocket.Conn, userID, remoteAddr string) *EventClient {
	return &EventClient{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufferSize),
		gadgets:    make(map[string]bool),
		userID:     userID,
		remoteAddr: remoteAddr,
	}
}

// Watching reports whether the client wants events for gadgetID
func (c *EventClient) Watching(gadgetID string) bool {
	c.gadgetsMu.RLock()
	defer c.gadgetsMu.RUnlock()
	return len(c.gadgets) == 0 || c.gadgets[gadgetID]
}

// Watch narrows the client's stream to include gadgetID
func (c *EventClient) Watch(gadgetID string) {
	c.gadgetsMu.Lock()
	c.gadgets[gadgetID] = true
	c.gadgetsMu.Unlock()
}

// Unwatch removes gadgetID from the client's stream
func (c *EventClient) Unwatch(gadgetID string) {
	c.gadgetsMu.Lock()
	delete(c.gadgets, gadgetID)
	c.gadgetsMu.Unlock()
}

// handleMessage applies a control message read from the peer
func (c *EventClient) handleMessage(message []byte) {
	var msg EventMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("⚠️ [EVENTHUB] Invalid message from %s: %v", c.remoteAddr, err)
		c.sendControl(map[string]string{"type": "error", "error": "invalid message"})
		return
	}

	switch msg.Type {
	case "subscribe":
		if msg.GadgetID != "" {
			c.Watch(msg.GadgetID)
		}
	case "unsubscribe":
		if msg.GadgetID != "" {
			c.Unwatch(msg.GadgetID)
		}
	case "ping":
		c.sendControl(map[string]string{"type": "pong"})
	default:
		log.Printf("⚠️ [EVENTHUB] Unknown message type: %s", msg.Type)
	}
}

// ReadPump pumps messages from the WebSocket connection to the hub
func (c *EventClient) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("⚠️ [EVENTHUB] WebSocket error: %v", err)
			}
			break
		}
		c.handleMessage(message)
	}
}

// WritePump pumps messages from the hub to the WebSocket connection
func (c *EventClient) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

func (c *EventClient) sendControl(msg map[string]string) {
	msgBytes, _ := json.Marshal(msg)
	select {
	case c.send <- msgBytes:
	default:
	}
}
