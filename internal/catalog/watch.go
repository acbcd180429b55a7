package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/summerplanapp/summerplan-server/internal/errors"
)

// debounceWindow batches bursts of file events into one reload. Editors and
// sync tools often rewrite catalog files in several quick operations.
const debounceWindow = 500 * time.Millisecond

// Watch reloads the catalog whenever a JSON file in its directory changes.
// It blocks until the context is cancelled.
func (c *Catalog) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Internal("failed to create catalog watcher", err)
	}
	defer watcher.Close()

	if err := watcher.Add(c.dir); err != nil {
		return errors.Internal("failed to watch catalog directory", err)
	}
	if c.logger != nil {
		c.logger.Info("watching camp catalog", "dir", c.dir)
	}

	debounce := time.NewTimer(debounceWindow)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if pending {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
			}
			debounce.Reset(debounceWindow)
			pending = true

		case <-debounce.C:
			pending = false
			if err := c.Reload(); err != nil && c.logger != nil {
				c.logger.Warn("catalog reload after file change failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if c.logger != nil {
				c.logger.Warn("catalog watcher error", "error", err)
			}
		}
	}
}
