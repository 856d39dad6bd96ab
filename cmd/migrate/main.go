package main

import (
	"flag"
	"log"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/database"
)

func main() {
	migrationsDir := flag.String("dir", "migrations", "directory containing SQL migration files")
	auto := flag.Bool("auto", false, "use GORM auto-migration instead of SQL files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *auto {
		if err := database.AutoMigrate(db.Gorm); err != nil {
			log.Fatalf("Auto-migration failed: %v", err)
		}
		log.Println("Auto-migration complete")
		return
	}

	if err := database.RunMigrations(db.Gorm, *migrationsDir); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("All migrations applied")
}
