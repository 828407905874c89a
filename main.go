package main

import (
	"log"

	"github.com/Imdachu/imf-gadget/config"
	"github.com/Imdachu/imf-gadget/database"
	"github.com/Imdachu/imf-gadget/handlers"
	"github.com/Imdachu/imf-gadget/natsserver"
	"github.com/Imdachu/imf-gadget/services"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load environment variables
	config.LoadDotenv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
	defer database.Close()

	credentialManager, err := services.NewCredentialManager(database.DB, services.CredentialOptions{
		Secret:     cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialise credentials: %v", err)
	}

	deps := handlers.Deps{Credentials: credentialManager}

	// Start embedded NATS server as the lifecycle event bus
	var publisher services.EventPublisher
	if cfg.NATSPort > 0 {
		natsCfg := natsserver.DefaultConfig()
		natsCfg.Port = cfg.NATSPort
		bus, err := natsserver.New(natsCfg)
		if err != nil {
			log.Fatalf("❌ Failed to start NATS server: %v", err)
		}
		defer bus.Shutdown()

		// Fan lifecycle events out to WebSocket clients
		hub := services.NewEventHub(bus.Conn())
		if err := hub.Start(); err != nil {
			log.Fatalf("❌ Failed to start event hub: %v", err)
		}
		go hub.Run()
		defer hub.Stop()

		publisher = bus
		deps.EventBus = bus
		deps.EventHub = hub
	} else {
		log.Println("📡 [NATS] Event bus disabled (NATS_PORT=0)")
	}

	deps.Gadgets = services.NewGadgetManager(database.DB, publisher)
	handlers.Init(deps)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(cfg.CORSOrigins)

	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
