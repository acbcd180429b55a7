package providers

import (
	"github.com/samber/do/v2"

	"github.com/summerplanapp/summerplan-server/internal/config"
	"github.com/summerplanapp/summerplan-server/internal/logger"
	"github.com/summerplanapp/summerplan-server/internal/ratelimit"
	"github.com/summerplanapp/summerplan-server/internal/service"
	"github.com/summerplanapp/summerplan-server/internal/validation"
)

// JoinLimiterHandle wraps the squad join rate limiter with its sweeper lifecycle.
type JoinLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *JoinLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideJoinLimiter provides the per-account rate limiter for squad joins.
func ProvideJoinLimiter(i do.Injector) (*JoinLimiterHandle, error) {
	return &JoinLimiterHandle{KeyedRateLimiter: ratelimit.New(1, 5)}, nil
}

// ProvideProfileService provides the account profile service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProfileService(st.Store, v, cfg.Season, log.Logger), nil
}

// ProvideChildService provides the child service.
func ProvideChildService(i do.Injector) (*service.ChildService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewChildService(st.Store, v, log.Logger), nil
}

// ProvideScheduleService provides the scheduled item service.
func ProvideScheduleService(i do.Injector) (*service.ScheduleService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewScheduleService(st.Store, v, log.Logger), nil
}

// ProvideInterestService provides the camp interest service.
func ProvideInterestService(i do.Injector) (*service.InterestService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewInterestService(st.Store, v, log.Logger), nil
}

// ProvideSquadService provides the squad service.
func ProvideSquadService(i do.Injector) (*service.SquadService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	cat := do.MustInvoke[*CatalogHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	limiter := do.MustInvoke[*JoinLimiterHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSquadService(st.Store, cat.Catalog, v, limiter.KeyedRateLimiter, log.Logger), nil
}

// ProvideCampService provides the camp directory service.
func ProvideCampService(i do.Injector) (*service.CampService, error) {
	cat := do.MustInvoke[*CatalogHandle](i)
	profiles := do.MustInvoke[*service.ProfileService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCampService(cat.Catalog, profiles, log.Logger), nil
}

// ProvidePlannerService provides the plan derivation service.
func ProvidePlannerService(i do.Injector) (*service.PlannerService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	cat := do.MustInvoke[*CatalogHandle](i)
	profiles := do.MustInvoke[*service.ProfileService](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPlannerService(st.Store, cat.Catalog, profiles, cfg.Season, log.Logger), nil
}

// ProvidePreviewService provides the what-if preview service.
func ProvidePreviewService(i do.Injector) (*service.PreviewService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	planner := do.MustInvoke[*service.PlannerService](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPreviewService(st.Store, planner, v, log.Logger), nil
}

// ProvideFavoriteService provides the favorites service.
func ProvideFavoriteService(i do.Injector) (*service.FavoriteService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	cat := do.MustInvoke[*CatalogHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFavoriteService(st.Store, cat.Catalog, log.Logger), nil
}

// ProvideSampleService provides the sample data service.
func ProvideSampleService(i do.Injector) (*service.SampleService, error) {
	st := do.MustInvoke[*StoreHandle](i)
	profiles := do.MustInvoke[*service.ProfileService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSampleService(st.Store, profiles, log.Logger), nil
}
