// Package providers contains dependency injection providers for the SummerPlan server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/summerplanapp/summerplan-server/internal/bus"
	"github.com/summerplanapp/summerplan-server/internal/config"
	"github.com/summerplanapp/summerplan-server/internal/logger"
	"github.com/summerplanapp/summerplan-server/internal/validation"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	log.Info("Starting SummerPlan Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Data.BasePath,
		"catalog_path", cfg.Catalog.Path,
	)

	return log, nil
}

// ProvideBus provides the in-process refresh bus.
func ProvideBus(i do.Injector) (*bus.Bus, error) {
	return bus.New(), nil
}

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
