package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/Imdachu/imf-gadget/models"
)

// Lifecycle event subjects published on the event bus
const (
	SubjectGadgetCreated        = "gadgets.created"
	SubjectGadgetUpdated        = "gadgets.updated"
	SubjectGadgetDecommissioned = "gadgets.decommissioned"
	SubjectGadgetSelfDestruct   = "gadgets.self_destruct"

	// SubjectGadgetAll matches every lifecycle subject
	SubjectGadgetAll = "gadgets.>"
)

// EventPublisher publishes raw messages to a subject
type EventPublisher interface {
	Publish(subject string, data []byte) error
}

// GadgetEvent is the payload of every lifecycle message
type GadgetEvent struct {
	Type             string              `json:"type"`
	GadgetID         string              `json:"gadgetId"`
	Name             string              `json:"name"`
	Status           models.GadgetStatus `json:"status"`
	ConfirmationCode string              `json:"confirmationCode,omitempty"`
	Actor            string              `json:"actor,omitempty"`
	At               time.Time           `json:"at"`
}

func newGadgetEvent(subject string, g *models.Gadget, actor string, at time.Time) GadgetEvent {
	return GadgetEvent{
		Type:     subject,
		GadgetID: g.ID,
		Name:     g.Name,
		Status:   g.Status,
		Actor:    actor,
		At:       at,
	}
}

// publish sends ev if a publisher is configured. Failures are logged and
// never reach the caller since the store write already succeeded.
func publish(p EventPublisher, ev GadgetEvent) {
	if p == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("⚠️ [EVENTS] Failed to encode %s event: %v", ev.Type, err)
		return
	}
	if err := p.Publish(ev.Type, data); err != nil {
		log.Printf("⚠️ [EVENTS] Failed to publish %s for gadget %s: %v", ev.Type, ev.GadgetID, err)
	}
}
