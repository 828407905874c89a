package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Imdachu/imf-gadget/config"
	"github.com/Imdachu/imf-gadget/database"
	"github.com/Imdachu/imf-gadget/models"
	"gorm.io/gorm"
)

func main() {
	withUsers := flag.Bool("users", false, "also delete all users")
	flag.Parse()

	// Load environment variables
	config.LoadDotenv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("❌ Refusing to clean up a production database")
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	fmt.Println("Start cleanup...")

	// Delete all gadgets
	result := database.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Gadget{})
	if result.Error != nil {
		log.Fatalf("Failed to delete gadgets: %v", result.Error)
	}
	fmt.Printf("✅ Deleted %d gadgets\n", result.RowsAffected)

	if *withUsers {
		result := database.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{})
		if result.Error != nil {
			log.Fatalf("Failed to delete users: %v", result.Error)
		}
		fmt.Printf("✅ Deleted %d users\n", result.RowsAffected)
	}

	fmt.Println("Cleanup finished successfully")
}
