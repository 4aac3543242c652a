// Command seed populates the development database with demo data.
package main

import (
	"flag"
	"log"

	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/seed"
)

func main() {
	users := flag.Int("users", seed.DefaultOptions.Users, "number of users to create")
	messages := flag.Int("messages", seed.DefaultOptions.MessagesPerUser, "max messages per user")
	follows := flag.Int("follows", seed.DefaultOptions.FollowsPerUser, "follow edges per user")
	likes := flag.Int("likes", seed.DefaultOptions.LikesPerUser, "likes per user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		Users:           *users,
		MessagesPerUser: *messages,
		FollowsPerUser:  *follows,
		LikesPerUser:    *likes,
	}
	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	log.Println("Seed complete")
}
