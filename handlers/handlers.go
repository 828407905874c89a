package handlers

import (
	"github.com/Imdachu/imf-gadget/natsserver"
	"github.com/Imdachu/imf-gadget/services"
)

var (
	credentials *services.CredentialManager
	gadgets     *services.GadgetManager
	eventHub    *services.EventHub
	eventBus    *natsserver.EmbeddedNATS
)

// Deps are the collaborators the handlers serve. EventHub and EventBus
// may be nil when the event bus is disabled.
type Deps struct {
	Credentials *services.CredentialManager
	Gadgets     *services.GadgetManager
	EventHub    *services.EventHub
	EventBus    *natsserver.EmbeddedNATS
}

// Init sets the collaborators used by every handler. It is called once at
// start-up, before the router serves requests.
func Init(deps Deps) {
	credentials = deps.Credentials
	gadgets = deps.Gadgets
	eventHub = deps.EventHub
	eventBus = deps.EventBus
}
