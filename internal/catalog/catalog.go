// Package catalog serves the externally managed camp directory. Camps are
// loaded from JSON files on disk, indexed for full-text search, and hot
// reloaded when the files change. The catalog is read-only to the rest of
// the application.
package catalog

import (
	"encoding/json/v2"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/summerplanapp/summerplan-server/internal/bus"
	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
)

// Publisher broadcasts invalidation topics after a reload.
type Publisher interface {
	Publish(topic string)
}

// Catalog holds the current camp directory in memory.
//
// Thread safety: all public methods are safe for concurrent use. The mutex
// protects the camp map and search index during reloads.
type Catalog struct {
	dir       string
	logger    *slog.Logger
	publisher Publisher

	mu    sync.RWMutex
	camps map[string]*domain.Camp
	index bleve.Index
}

// New creates a catalog from the JSON files in dir. Each file holds an
// array of camps. A missing directory yields an empty catalog rather than
// an error, so a fresh install starts clean.
func New(dir string, logger *slog.Logger, publisher Publisher) (*Catalog, error) {
	c := &Catalog{
		dir:       dir,
		logger:    logger,
		publisher: publisher,
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// Close releases the search index.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index != nil {
		return c.index.Close()
	}
	return nil
}

// Get returns a camp by ID, or ErrNotFound.
func (c *Catalog) Get(id string) (*domain.Camp, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	camp, ok := c.camps[id]
	if !ok {
		return nil, errors.NotFound("camp not found")
	}
	return camp, nil
}

// Camps returns the full directory keyed by ID. The map is shared with the
// catalog; callers must not modify it.
func (c *Catalog) Camps() map[string]*domain.Camp {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.camps
}

// All returns every camp sorted by name, then ID.
func (c *Catalog) All() []*domain.Camp {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*domain.Camp, 0, len(c.camps))
	for _, camp := range c.camps {
		out = append(out, camp)
	}
	slices.SortFunc(out, func(a, b *domain.Camp) int {
		if n := strings.Compare(a.Name, b.Name); n != 0 {
			return n
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Len returns the number of camps currently loaded.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.camps)
}

// Reload re-reads the directory and swaps in the new camp set atomically.
// On failure the previous set keeps serving.
func (c *Catalog) Reload() error {
	if err := c.load(); err != nil {
		if c.logger != nil {
			c.logger.Error("catalog reload failed, keeping previous set", "error", err)
		}
		return err
	}
	if c.publisher != nil {
		c.publisher.Publish(bus.TopicCamps)
	}
	return nil
}

func (c *Catalog) load() error {
	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		entries = nil
	} else if err != nil {
		return errors.Store("failed to read catalog directory", err)
	}

	camps := make(map[string]*domain.Camp)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(c.dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			if c.logger != nil {
				c.logger.Warn("skipping unreadable catalog file", "path", path, "error", err)
			}
			continue
		}

		var fileCamps []domain.Camp
		if err := json.Unmarshal(data, &fileCamps); err != nil {
			if c.logger != nil {
				c.logger.Warn("skipping malformed catalog file", "path", path, "error", err)
			}
			continue
		}

		for i := range fileCamps {
			camp := fileCamps[i]
			if camp.ID == "" || camp.Name == "" {
				continue
			}
			camps[camp.ID] = &camp
		}
	}

	index, err := buildIndex(camps)
	if err != nil {
		return err
	}

	c.mu.Lock()
	old := c.index
	c.camps = camps
	c.index = index
	c.mu.Unlock()

	if old != nil {
		old.Close()
	}
	if c.logger != nil {
		c.logger.Info("camp catalog loaded", "dir", c.dir, "camps", len(camps))
	}
	return nil
}
