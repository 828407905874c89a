package main

import (
	"fmt"
	"log"

	"github.com/Imdachu/imf-gadget/config"
	"github.com/Imdachu/imf-gadget/database"
	"github.com/Imdachu/imf-gadget/models"
)

type statusCount struct {
	Status models.GadgetStatus
	Count  int64
}

func main() {
	// Load .env explicitly
	config.LoadDotenv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	if err := database.Connect(cfg); err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	var now string
	database.DB.Raw("SELECT CURRENT_TIMESTAMP").Scan(&now)
	fmt.Printf("DB Time: %s\n", now)

	if cfg.DBDriver == "postgres" {
		var tz string
		database.DB.Raw("SHOW timezone").Scan(&tz)
		fmt.Printf("DB Configured Timezone: %s\n", tz)
	}

	var users int64
	if err := database.DB.Model(&models.User{}).Count(&users).Error; err != nil {
		log.Fatalf("Failed to count users: %v", err)
	}
	fmt.Printf("Users: %d\n", users)

	var counts []statusCount
	if err := database.DB.Model(&models.Gadget{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&counts).Error; err != nil {
		log.Fatalf("Failed to count gadgets: %v", err)
	}
	for _, c := range counts {
		fmt.Printf("Gadgets %-15s %d\n", c.Status+":", c.Count)
	}
}
