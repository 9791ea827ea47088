// Command migrate applies, rolls back or reports the schema migrations.
package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/propmitra/propmitra-backend/pkg/database"
)

func main() {
	action := flag.String("action", "up", "Migration action: up, down, version")
	path := flag.String("path", "migrations", "Path to migration files")
	flag.Parse()

	_ = godotenv.Load()

	databaseURL := database.DatabaseURL()

	switch *action {
	case "up":
		log.Println("running migrations...")
		if err := database.RunMigrations(databaseURL, *path); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		log.Println("migrations completed")
	case "down":
		log.Println("rolling back last migration...")
		if err := database.RollbackMigrations(databaseURL, *path); err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
		log.Println("rollback completed")
	case "version":
		version, dirty, err := database.MigrationVersion(databaseURL, *path)
		if err != nil {
			log.Fatalf("version check failed: %v", err)
		}
		log.Printf("schema version: %d dirty: %v", version, dirty)
	default:
		log.Fatalf("unknown action: %s", *action)
	}
}
