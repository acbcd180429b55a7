package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/summerplanapp/summerplan-server/internal/api"
	"github.com/summerplanapp/summerplan-server/internal/auth"
	"github.com/summerplanapp/summerplan-server/internal/config"
	"github.com/summerplanapp/summerplan-server/internal/logger"
	"github.com/summerplanapp/summerplan-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	api *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.api.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Child:    do.MustInvoke[*service.ChildService](i),
		Schedule: do.MustInvoke[*service.ScheduleService](i),
		Interest: do.MustInvoke[*service.InterestService](i),
		Squad:    do.MustInvoke[*service.SquadService](i),
		Profile:  do.MustInvoke[*service.ProfileService](i),
		Camp:     do.MustInvoke[*service.CampService](i),
		Planner:  do.MustInvoke[*service.PlannerService](i),
		Preview:  do.MustInvoke[*service.PreviewService](i),
		Favorite: do.MustInvoke[*service.FavoriteService](i),
		Sample:   do.MustInvoke[*service.SampleService](i),
	}

	handler := api.NewServer(cfg, storeHandle.Store, services, tokens, sseHandle.Manager, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv, api: handler}, nil
}
