package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/pageza/recipify/backend/config"
	"github.com/pageza/recipify/backend/internal/database"
	"github.com/pageza/recipify/backend/internal/server"
)

func main() {
	dsn := flag.String("dsn", "", "PostgreSQL DSN, overrides DATABASE_URL and DB_*")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if *dsn != "" {
		cfg.DatabaseURL = *dsn
	}
	logger := server.NewLogger(cfg)

	if !cfg.DatabaseEnabled() {
		logger.Fatal().Msg("no database configured: set DATABASE_URL or DB_HOST, or pass -dsn")
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, logger); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
	logger.Info().Msg("migrations complete")
}
