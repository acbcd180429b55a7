// Package store persists planning data in Badger. Each collection is a
// typed Entity with its own key prefix; cross-collection routines (child
// cascade delete, sample purge) run in a single transaction.
package store

import (
	"context"
	"encoding/json/v2"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/summerplanapp/summerplan-server/internal/bus"
	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
)

// Publisher is the interface for broadcasting invalidation topics.
// Store uses this to announce committed changes without depending on the
// event bus implementation.
type Publisher interface {
	Publish(topic string)
}

// NoopPublisher is a no-op implementation of Publisher for testing.
type NoopPublisher struct{}

// Publish implements Publisher.Publish as a no-op.
func (NoopPublisher) Publish(string) {}

// Store wraps a Badger database instance.
type Store struct {
	db        *badger.DB
	logger    *slog.Logger
	publisher Publisher

	// Generic entities
	Children  *Entity[domain.Child]
	Items     *Entity[domain.ScheduledItem]
	Interests *Entity[domain.CampInterest]
	Squads    *Entity[domain.Squad]
	Favorites *Entity[domain.Favorite]
	Profiles  *Entity[domain.Profile]
}

// New creates a new Store instance with the given database path and
// publisher. The publisher is notified after every committed mutation.
func New(path string, logger *slog.Logger, publisher Publisher) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes hit disk to survive crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Store("failed to open badger db", err)
	}

	store := &Store{
		db:        db,
		logger:    logger,
		publisher: publisher,
	}

	store.initChildren()
	store.initItems()
	store.initInterests()
	store.initSquads()
	store.initFavorites()
	store.initProfiles()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

func (s *Store) publish(topic string) {
	if s.publisher != nil {
		s.publisher.Publish(topic)
	}
}

func (s *Store) initChildren() {
	s.Children = NewEntity[domain.Child](s, "child:", bus.TopicChildren).
		WithIndex("owner", func(c *domain.Child) []string {
			return []string{c.OwnerID}
		})
}

func (s *Store) initItems() {
	s.Items = NewEntity[domain.ScheduledItem](s, "item:", bus.TopicItems).
		WithIndex("owner", func(i *domain.ScheduledItem) []string {
			return []string{i.OwnerID}
		}).
		WithIndex("child", func(i *domain.ScheduledItem) []string {
			return []string{i.ChildID}
		})
}

// initInterests indexes interests by owner for snapshot assembly and by
// their natural (owner, child, camp, week) key for upserts.
func (s *Store) initInterests() {
	s.Interests = NewEntity[domain.CampInterest](s, "interest:", bus.TopicInterests).
		WithIndex("owner", func(ci *domain.CampInterest) []string {
			return []string{ci.OwnerID}
		}).
		WithUniqueIndex("key", func(ci *domain.CampInterest) []string {
			return []string{ci.Key()}
		})
}

// initSquads indexes squads by invite code (case-insensitive) and by member
// account, so a user's squads are one index scan away.
func (s *Store) initSquads() {
	s.Squads = NewEntity[domain.Squad](s, "squad:", bus.TopicSquads).
		WithUniqueIndexTransform("invite_code",
			func(sq *domain.Squad) []string {
				return []string{strings.ToUpper(sq.InviteCode)}
			},
			strings.ToUpper,
		).
		WithIndex("member", func(sq *domain.Squad) []string {
			keys := make([]string, 0, len(sq.Members))
			for _, m := range sq.Members {
				keys = append(keys, m.UserID)
			}
			return keys
		})
}

func (s *Store) initFavorites() {
	s.Favorites = NewEntity[domain.Favorite](s, "fav:", bus.TopicFavorites).
		WithIndex("owner", func(f *domain.Favorite) []string {
			return []string{f.OwnerID}
		}).
		WithUniqueIndex("owner_camp", func(f *domain.Favorite) []string {
			return []string{f.OwnerID + "|" + f.CampID}
		})
}

// initProfiles keys profiles by owner ID directly, one per account.
func (s *Store) initProfiles() {
	s.Profiles = NewEntity[domain.Profile](s, "profile:", bus.TopicProfile)
}

// DeleteChildCascade removes a child along with every scheduled item and
// interest that references it, in one transaction. Returns ErrNotFound if
// the child does not exist and ErrNotOwner if it belongs to another account.
func (s *Store) DeleteChildCascade(ctx context.Context, ownerID, childID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var items, interests int
	err := s.db.Update(func(txn *badger.Txn) error {
		child, err := s.Children.getInTxn(txn, childID)
		if err != nil {
			return err
		}
		if child.OwnerID != ownerID {
			return errors.NotOwner("child belongs to another account")
		}

		items, err = deleteWhere(txn, s.Items, func(i *domain.ScheduledItem) bool {
			return i.ChildID == childID
		})
		if err != nil {
			return err
		}
		interests, err = deleteWhere(txn, s.Interests, func(ci *domain.CampInterest) bool {
			return ci.ChildID == childID
		})
		if err != nil {
			return err
		}

		return s.Children.deleteInTxn(txn, childID)
	})
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("child deleted with cascade",
			"child_id", childID, "items", items, "interests", interests)
	}

	s.publish(bus.TopicChildren)
	if items > 0 {
		s.publish(bus.TopicItems)
	}
	if interests > 0 {
		s.publish(bus.TopicInterests)
	}
	return nil
}

// PurgeSampleData removes every sample-flagged row belonging to the account
// in a single transaction, so readers never observe a half-purged plan.
// Returns the number of rows removed.
func (s *Store) PurgeSampleData(ctx context.Context, ownerID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var children, items, interests, favorites int
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		children, err = deleteWhere(txn, s.Children, func(c *domain.Child) bool {
			return c.Sample && c.OwnerID == ownerID
		})
		if err != nil {
			return err
		}
		items, err = deleteWhere(txn, s.Items, func(i *domain.ScheduledItem) bool {
			return i.Sample && i.OwnerID == ownerID
		})
		if err != nil {
			return err
		}
		interests, err = deleteWhere(txn, s.Interests, func(ci *domain.CampInterest) bool {
			return ci.Sample && ci.OwnerID == ownerID
		})
		if err != nil {
			return err
		}
		favorites, err = deleteWhere(txn, s.Favorites, func(f *domain.Favorite) bool {
			return f.Sample && f.OwnerID == ownerID
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	total := children + items + interests + favorites
	if s.logger != nil {
		s.logger.Info("sample data purged", "owner_id", ownerID,
			"children", children, "items", items, "interests", interests, "favorites", favorites)
	}

	if children > 0 {
		s.publish(bus.TopicChildren)
	}
	if items > 0 {
		s.publish(bus.TopicItems)
	}
	if interests > 0 {
		s.publish(bus.TopicInterests)
	}
	if favorites > 0 {
		s.publish(bus.TopicFavorites)
	}
	return total, nil
}

// deleteWhere removes all entities matching the predicate within an open
// transaction, including their index keys. IDs are collected before any
// delete so the iterator never walks keys it just removed.
func deleteWhere[T any](txn *badger.Txn, e *Entity[T], match func(*T) bool) (int, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(e.prefix)
	opts.PrefetchValues = true

	var ids []string
	it := txn.NewIterator(opts)
	for it.Seek([]byte(e.prefix)); it.ValidForPrefix([]byte(e.prefix)); it.Next() {
		key := string(it.Item().Key())
		remainder := key[len(e.prefix):]
		if strings.HasPrefix(remainder, "idx:") {
			continue
		}

		var entity T
		err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &entity)
		})
		if err != nil {
			it.Close()
			return 0, errors.Store("failed to unmarshal entity", err)
		}
		if match(&entity) {
			ids = append(ids, remainder)
		}
	}
	it.Close()

	for _, id := range ids {
		if err := e.deleteInTxn(txn, id); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}
