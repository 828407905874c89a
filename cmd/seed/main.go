package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"log"
	mathrand "math/rand"
	"os"

	"github.com/Imdachu/imf-gadget/config"
	"github.com/Imdachu/imf-gadget/database"
	"github.com/Imdachu/imf-gadget/models"
	"github.com/Imdachu/imf-gadget/services"
)

const seedEmail = "agent@imf.gov"

// statuses is weighted toward Available so a fresh roster has usable kit
var statuses = []models.GadgetStatus{
	models.GadgetAvailable,
	models.GadgetAvailable,
	models.GadgetAvailable,
	models.GadgetDeployed,
	models.GadgetDeployed,
	models.GadgetDestroyed,
	models.GadgetDecommissioned,
}

func main() {
	count := flag.Int("n", 10, "number of gadgets to create")
	flag.Parse()

	// Load environment variables
	config.LoadDotenv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	fmt.Println("🌱 Starting gadget seed...")

	creds, err := services.NewCredentialManager(database.DB, services.CredentialOptions{
		Secret:     cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
	})
	if err != nil {
		log.Fatalf("Failed to initialise credentials: %v", err)
	}

	password := os.Getenv("SEED_PASSWORD")
	generated := password == ""
	if generated {
		password = randomPassword()
	}

	_, err = creds.Register(seedEmail, password)
	switch {
	case err == nil:
		fmt.Printf("✅ Created user %s\n", seedEmail)
		if generated {
			fmt.Printf("   Password: %s\n", password)
		}
	case errors.Is(err, services.ErrConflict):
		fmt.Printf("⚠️  User %s already exists, leaving it unchanged\n", seedEmail)
	default:
		log.Fatalf("Failed to create user: %v", err)
	}

	gadgets := services.NewGadgetManager(database.DB, nil)
	ctx := context.Background()
	created := 0
	for i := 0; i < *count; i++ {
		status := statuses[mathrand.Intn(len(statuses))]
		g, err := gadgets.Create(ctx, services.GadgetInput{Status: &status})
		if err != nil {
			log.Printf("Failed to create gadget: %v", err)
			continue
		}
		fmt.Printf("   %s  %-28s %s\n", g.ID, g.Name, g.Status)
		created++
	}

	fmt.Printf("🎉 Seed completed: %d gadgets created\n", created)
}

func randomPassword() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("Failed to generate password: %v", err)
	}
	return hex.EncodeToString(b)
}
