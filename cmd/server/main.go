package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/iliyamo/theater-ticketing/internal/app"
	"github.com/iliyamo/theater-ticketing/internal/config"
)

func main() {
	_ = godotenv.Load() // .env is optional; real environment wins

	cfg := config.Load()
	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatal(err)
	}
}
