package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Mofathy183/beggy-sub000/internal/config"
	"github.com/Mofathy183/beggy-sub000/internal/database"
	"github.com/Mofathy183/beggy-sub000/internal/services"
)

// Container probe: prints the health report as JSON and exits non-zero when
// the service dependencies are unreachable.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	result := services.HealthCheck(cfg, db)

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to marshal health check result")
	}

	fmt.Println(string(output))

	if result.Status != "healthy" {
		os.Exit(1)
	}
}
