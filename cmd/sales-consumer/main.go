// Command sales-consumer appends every confirmed sale published on the
// sale.confirmed queue to a local log file.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iliyamo/theater-ticketing/internal/config"
	"github.com/iliyamo/theater-ticketing/internal/logger"
	"github.com/iliyamo/theater-ticketing/internal/queue"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConsumerConfig()
	lg := logger.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lg.Info("sales consumer starting", slog.String("dir", cfg.SalesLogDir))
	err := queue.NewConsumer(cfg.RabbitMQURL, cfg.SalesLogDir, lg).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
	lg.Info("sales consumer stopped")
}
