package handlers

import (
	"log"
	"net/http"

	"github.com/Imdachu/imf-gadget/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // token auth gates the route, not origin
	},
}

// HandleGadgetEventsWebSocket streams gadget lifecycle events
// GET /ws/gadgets
func HandleGadgetEventsWebSocket(c *gin.Context) {
	if eventHub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Event stream not enabled"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ [EVENTHUB] WebSocket upgrade failed: %v", err)
		return
	}

	client := services.NewEventClient(eventHub, conn, c.GetString(ContextUserID), c.ClientIP())
	eventHub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// GetEventStats returns event hub and bus statistics
// GET /events/stats
func GetEventStats(c *gin.Context) {
	if eventHub == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	resp := gin.H{
		"enabled": true,
		"hub":     eventHub.Stats(),
	}
	if eventBus != nil {
		resp["bus"] = eventBus.GetStats()
	}
	c.JSON(http.StatusOK, resp)
}
