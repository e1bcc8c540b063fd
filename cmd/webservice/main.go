package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/offer-fe/offer-be/config"
	"github.com/offer-fe/offer-be/internal/app"
	"github.com/rs/zerolog/log"

	postgresDriver "github.com/offer-fe/offer-be/internal/infrastructure/database/postgres"
)

func main() {
	config := config.CreateNewConfig()
	db, err := postgresDriver.GetDBInstance(config.PostgreSQLConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}

	server := app.App{
		DB:     db,
		Config: config,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Server stopped")
		}
	case <-quit:
		log.Info().Msg("Shutting down")
	}

	if err := server.StopServer(); err != nil {
		log.Error().Err(err).Msg("Failed to stop server")
	}
}
