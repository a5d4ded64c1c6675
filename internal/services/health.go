package services

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Mofathy183/beggy-sub000/internal/config"
	"github.com/Mofathy183/beggy-sub000/internal/utils"
)

// HealthCheckResult reports the state of the service and its collaborators.
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Autofill     string            `json:"autofill"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck pings the database pool and the auto-fill endpoint. The
// auto-fill backend being down degrades the report but only the database
// makes the service unhealthy.
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("database connection error: %v", err)
		log.Error().Err(err).Msg("health check failed: database connection")
	} else if err := sqlDB.Ping(); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("database ping failed: %v", err)
		log.Error().Err(err).Msg("health check failed: database ping")
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	if cfg.AutofillURL == "" {
		result.Autofill = "disabled"
	} else if err := utils.PingAutofill(cfg.AutofillURL); err != nil {
		result.Autofill = "unreachable"
		result.Details["autofill_error"] = err.Error()
		log.Warn().Err(err).Msg("health check: autofill ping failed")
	} else {
		result.Autofill = "ok"
		result.Details["autofill_url"] = cfg.AutofillURL
	}

	return result
}
