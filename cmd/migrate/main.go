package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aaravmahajanofficial/storefront-api/internal/config"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
)

const migrateTimeout = time.Minute

// Applies the embedded schema to the configured database.
func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.MustLoad()

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	repos, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = repository.Migrate(ctx, repos.DB)
	repos.Close()

	if err != nil {
		slog.Error("❌ Migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("✅ Schema applied", slog.String("database", cfg.Database.Name))
}
