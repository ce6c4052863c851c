// Command seed creates the schema and loads the default venue into an
// empty database.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/theater-ticketing/internal/config"
	"github.com/iliyamo/theater-ticketing/internal/database"
	"github.com/iliyamo/theater-ticketing/internal/logger"
	"github.com/iliyamo/theater-ticketing/internal/repository"
	"github.com/iliyamo/theater-ticketing/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	lg := logger.New(cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.Open(ctx, database.Options{
		User: cfg.DBUser, Pass: cfg.DBPass,
		Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrations: %v", err)
	}
	if _, err := seed.Apply(ctx, repository.NewLedger(db), lg); err != nil {
		log.Fatal(err)
	}
}
