// Package di provides dependency injection configuration for the SummerPlan server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/summerplanapp/summerplan-server/internal/auth"
	"github.com/summerplanapp/summerplan-server/internal/bus"
	"github.com/summerplanapp/summerplan-server/internal/config"
	"github.com/summerplanapp/summerplan-server/internal/di/providers"
	"github.com/summerplanapp/summerplan-server/internal/logger"
	"github.com/summerplanapp/summerplan-server/internal/service"
	"github.com/summerplanapp/summerplan-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideBus)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideSSEManager)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideJoinLimiter)
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvideChildService)
	do.Provide(injector, providers.ProvideScheduleService)
	do.Provide(injector, providers.ProvideInterestService)
	do.Provide(injector, providers.ProvideSquadService)
	do.Provide(injector, providers.ProvideCampService)
	do.Provide(injector, providers.ProvidePlannerService)
	do.Provide(injector, providers.ProvidePreviewService)
	do.Provide(injector, providers.ProvideFavoriteService)
	do.Provide(injector, providers.ProvideSampleService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services. This triggers lazy initialization of
// every provider so misconfiguration fails at startup, not on first request.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*bus.Bus](injector)
	_ = do.MustInvoke[*validation.Validator](injector)

	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.CatalogHandle](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	_ = do.MustInvoke[*service.ProfileService](injector)
	_ = do.MustInvoke[*service.ChildService](injector)
	_ = do.MustInvoke[*service.ScheduleService](injector)
	_ = do.MustInvoke[*service.InterestService](injector)
	_ = do.MustInvoke[*service.SquadService](injector)
	_ = do.MustInvoke[*service.CampService](injector)
	_ = do.MustInvoke[*service.PlannerService](injector)
	_ = do.MustInvoke[*service.PreviewService](injector)
	_ = do.MustInvoke[*service.FavoriteService](injector)
	_ = do.MustInvoke[*service.SampleService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
