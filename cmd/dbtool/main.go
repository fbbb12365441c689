package main

import (
	"context"
	"database/sql"
	"quote-intake-service/internal/adapters/repositories"
	"quote-intake-service/internal/config"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/platform/db"
	"quote-intake-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	obs.InitLogger(cfg.LogLevel, cfg.IsProduction())

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer sqlDB.Close()

	if err := initAndSeed(ctx, sqlDB); err != nil {
		log.Fatal().Err(err).Msg("dbtool")
	}
}

func initAndSeed(ctx context.Context, db *sql.DB) error {
	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, db); err != nil {
		return err
	}
	log.Info().Msg("schema ready")

	log.Info().Msg("seeding default settings")
	if err := repositories.SeedSettings(ctx, db, domain.DefaultSettings()); err != nil {
		return err
	}
	log.Info().Msg("seeding complete")

	return nil
}
