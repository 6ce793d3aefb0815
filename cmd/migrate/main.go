package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"realtime-chat/config"
	"realtime-chat/internal/domain/chat"
	"realtime-chat/internal/domain/contact"
	"realtime-chat/internal/domain/message"
	"realtime-chat/internal/domain/user"
	"realtime-chat/pkg/database"
)

const usage = `
Realtime Chat - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Run GORM migrations
  status      Show database connection status
  seed        Seed the database with demo data

Flags:
  -seed-pass string   Password for seeded demo users (default "Demo@123")
  -seed-users int     Number of demo users to create (default 5)

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed
`

func main() {
	seedPass := flag.String("seed-pass", "Demo@123", "Password for seeded demo users")
	seedUsers := flag.Int("seed-users", 5, "Number of demo users to create")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg := config.LoadConfig()
	database.Connect(cfg)

	switch command {
	case "up":
		if err := migrateUp(); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations applied")
	case "status":
		if err := database.HealthCheck(); err != nil {
			log.Fatalf("Database unreachable: %v", err)
		}
		log.Println("Database connection OK")
	case "seed":
		if err := migrateUp(); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		if _, err := database.Seed(&database.SeedConfig{
			Password:      *seedPass,
			DemoUserCount: *seedUsers,
		}); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	default:
		flag.Usage()
		os.Exit(1)
	}
}

func migrateUp() error {
	return database.DB.AutoMigrate(
		&user.User{},
		&contact.List{},
		&contact.Entry{},
		&chat.Chat{},
		&chat.Member{},
		&message.Message{},
		&message.Seen{},
	)
}
