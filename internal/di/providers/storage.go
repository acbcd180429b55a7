package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/summerplanapp/summerplan-server/internal/bus"
	"github.com/summerplanapp/summerplan-server/internal/catalog"
	"github.com/summerplanapp/summerplan-server/internal/config"
	"github.com/summerplanapp/summerplan-server/internal/logger"
	"github.com/summerplanapp/summerplan-server/internal/sse"
	"github.com/summerplanapp/summerplan-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the entity store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	refreshBus := do.MustInvoke[*bus.Bus](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	st, err := store.New(dbPath, log.Logger, refreshBus)
	if err != nil {
		return nil, err
	}

	log.Info("Store opened", "path", dbPath)

	return &StoreHandle{Store: st}, nil
}

// CatalogHandle wraps the catalog with its watcher lifecycle.
type CatalogHandle struct {
	*catalog.Catalog
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *CatalogHandle) Shutdown() error {
	if h.cancel != nil {
		h.cancel()
	}
	return h.Close()
}

// ProvideCatalog provides the camp directory, hot-reloading on file changes
// when configured.
func ProvideCatalog(i do.Injector) (*CatalogHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	refreshBus := do.MustInvoke[*bus.Bus](i)

	cat, err := catalog.New(cfg.Catalog.Path, log.Logger, refreshBus)
	if err != nil {
		return nil, err
	}

	handle := &CatalogHandle{Catalog: cat}

	if cfg.Catalog.Watch && cfg.Catalog.Path != "" {
		ctx, cancel := context.WithCancel(context.Background())
		handle.cancel = cancel
		go func() {
			if err := cat.Watch(ctx); err != nil && ctx.Err() == nil {
				log.Warn("Catalog watcher stopped", "error", err)
			}
		}()
		log.Info("Catalog watcher started", "path", cfg.Catalog.Path)
	}

	log.Info("Catalog loaded", "path", cfg.Catalog.Path, "camps", cat.Len())

	return handle, nil
}

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager, bound to the
// refresh bus so store mutations reach connected clients.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	refreshBus := do.MustInvoke[*bus.Bus](i)

	manager := sse.NewManager(log.Logger)
	manager.Bind(refreshBus)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}
