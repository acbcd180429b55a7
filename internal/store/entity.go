package store

import (
	"context"
	"encoding/json/v2"
	"iter"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/summerplanapp/summerplan-server/internal/errors"
)

// Entity provides generic CRUD operations for any domain type.
// Mutations publish the entity's invalidation topic after commit.
type Entity[T any] struct {
	store   *Store
	prefix  string
	topic   string
	indexes []index[T]
}

// index defines a secondary index on an entity. Unique indexes map one
// key to one entity and reject conflicts on write; multi indexes append
// the entity ID to the stored key so many entities can share a value.
type index[T any] struct {
	name            string
	keyGen          func(*T) []string
	unique          bool
	lookupTransform func(string) string
}

// NewEntity creates a new Entity instance for type T.
func NewEntity[T any](s *Store, prefix, topic string) *Entity[T] {
	return &Entity[T]{
		store:  s,
		prefix: prefix,
		topic:  topic,
	}
}

// WithIndex adds a non-unique secondary index to the entity.
func (e *Entity[T]) WithIndex(name string, keyGen func(*T) []string) *Entity[T] {
	e.indexes = append(e.indexes, index[T]{name: name, keyGen: keyGen})
	return e
}

// WithUniqueIndex adds a unique secondary index. Writes that would map a
// second entity to the same key fail with ErrAlreadyExists.
func (e *Entity[T]) WithUniqueIndex(name string, keyGen func(*T) []string) *Entity[T] {
	e.indexes = append(e.indexes, index[T]{name: name, keyGen: keyGen, unique: true})
	return e
}

// WithUniqueIndexTransform adds a unique index with a lookup transformation.
// The transform is applied to search values before lookup, enabling
// case-insensitive matching.
func (e *Entity[T]) WithUniqueIndexTransform(name string, keyGen func(*T) []string, lookupTransform func(string) string) *Entity[T] {
	e.indexes = append(e.indexes, index[T]{
		name:            name,
		keyGen:          keyGen,
		unique:          true,
		lookupTransform: lookupTransform,
	})
	return e
}

// indexKeys returns every stored index key for the entity under the given ID.
func (e *Entity[T]) indexKeys(id string, entity *T) []string {
	var keys []string
	for _, idx := range e.indexes {
		for _, val := range idx.keyGen(entity) {
			keys = append(keys, e.indexKey(idx, id, val))
		}
	}
	return keys
}

func (e *Entity[T]) indexKey(idx index[T], id, value string) string {
	if idx.unique {
		return e.prefix + "idx:" + idx.name + ":" + value
	}
	return e.prefix + "idx:" + idx.name + ":" + value + ":" + id
}

// Create creates a new entity with the given ID.
// Returns ErrAlreadyExists if an entity with this ID already exists or a
// unique index would conflict.
func (e *Entity[T]) Create(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return errors.Store("failed to marshal entity", err)
	}

	err = e.store.db.Update(func(txn *badger.Txn) error {
		return e.createInTxn(txn, id, entity, data)
	})
	if err != nil {
		return err
	}

	e.store.publish(e.topic)
	return nil
}

func (e *Entity[T]) createInTxn(txn *badger.Txn, id string, entity *T, data []byte) error {
	key := e.prefix + id

	_, err := txn.Get([]byte(key))
	if err == nil {
		return errors.ErrAlreadyExists
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return errors.Store("failed to check existing key", err)
	}

	for _, idx := range e.indexes {
		if !idx.unique {
			continue
		}
		for _, val := range idx.keyGen(entity) {
			_, err := txn.Get([]byte(e.indexKey(idx, id, val)))
			if err == nil {
				return errors.ErrAlreadyExists
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return errors.Store("failed to check index key", err)
			}
		}
	}

	if err := txn.Set([]byte(key), data); err != nil {
		return errors.Store("failed to set key", err)
	}
	for _, idxKey := range e.indexKeys(id, entity) {
		if err := txn.Set([]byte(idxKey), []byte(id)); err != nil {
			return errors.Store("failed to set index key", err)
		}
	}
	return nil
}

// Get retrieves an entity by ID.
// Returns ErrNotFound if the entity does not exist.
func (e *Entity[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entity T
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(e.prefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrNotFound
		}
		if err != nil {
			return errors.Store("failed to get key", err)
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &entity); err != nil {
				return errors.Store("failed to unmarshal entity", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetByIndex retrieves an entity via a unique secondary index.
func (e *Entity[T]) GetByIndex(ctx context.Context, indexName, value string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	transformed := value
	for _, idx := range e.indexes {
		if idx.name == indexName && idx.lookupTransform != nil {
			transformed = idx.lookupTransform(value)
			break
		}
	}
	indexKey := []byte(e.prefix + "idx:" + indexName + ":" + transformed)

	var id string
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(indexKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrNotFound
		}
		if err != nil {
			return errors.Store("failed to get index key", err)
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return e.Get(ctx, id)
}

// Update updates an existing entity, rewriting its index keys.
// Returns ErrNotFound if the entity does not exist.
func (e *Entity[T]) Update(ctx context.Context, id string, entity *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := e.prefix + id
	data, err := json.Marshal(entity)
	if err != nil {
		return errors.Store("failed to marshal entity", err)
	}

	err = e.store.db.Update(func(txn *badger.Txn) error {
		var oldEntity T
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrNotFound
		}
		if err != nil {
			return errors.Store("failed to get existing key", err)
		}
		err = item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &oldEntity); err != nil {
				return errors.Store("failed to unmarshal old entity", err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		oldKeys := make(map[string]bool)
		for _, k := range e.indexKeys(id, &oldEntity) {
			oldKeys[k] = true
			if err := txn.Delete([]byte(k)); err != nil {
				return errors.Store("failed to delete old index key", err)
			}
		}

		for _, idx := range e.indexes {
			if !idx.unique {
				continue
			}
			for _, val := range idx.keyGen(entity) {
				idxKey := e.indexKey(idx, id, val)
				if oldKeys[idxKey] {
					continue
				}
				_, err := txn.Get([]byte(idxKey))
				if err == nil {
					return errors.ErrAlreadyExists
				}
				if !errors.Is(err, badger.ErrKeyNotFound) {
					return errors.Store("failed to check index key", err)
				}
			}
		}

		if err := txn.Set([]byte(key), data); err != nil {
			return errors.Store("failed to set key", err)
		}
		for _, idxKey := range e.indexKeys(id, entity) {
			if err := txn.Set([]byte(idxKey), []byte(id)); err != nil {
				return errors.Store("failed to set index key", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.store.publish(e.topic)
	return nil
}

// Delete deletes an entity by ID. Idempotent.
func (e *Entity[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := e.store.db.Update(func(txn *badger.Txn) error {
		return e.deleteInTxn(txn, id)
	})
	if err != nil {
		return err
	}

	e.store.publish(e.topic)
	return nil
}

func (e *Entity[T]) deleteInTxn(txn *badger.Txn, id string) error {
	key := e.prefix + id

	var entity T
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return errors.Store("failed to get key", err)
	}
	err = item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, &entity); err != nil {
			return errors.Store("failed to unmarshal entity", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, idxKey := range e.indexKeys(id, &entity) {
		if err := txn.Delete([]byte(idxKey)); err != nil {
			return errors.Store("failed to delete index key", err)
		}
	}
	if err := txn.Delete([]byte(key)); err != nil {
		return errors.Store("failed to delete key", err)
	}
	return nil
}

// List returns an iterator over all entities, in key order.
func (e *Entity[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		e.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(e.prefix)
			opts.PrefetchValues = true

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek([]byte(e.prefix)); it.ValidForPrefix([]byte(e.prefix)); it.Next() {
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return ctx.Err()
				}

				key := string(it.Item().Key())
				if strings.HasPrefix(key[len(e.prefix):], "idx:") {
					continue
				}

				var entity T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &entity)
				})
				if err != nil {
					yield(nil, errors.Store("failed to unmarshal entity", err))
					return err
				}
				if !yield(&entity, nil) {
					return nil
				}
			}
			return nil
		})
	}
}

// ListByIndex returns an iterator over entities matching a non-unique
// index value.
func (e *Entity[T]) ListByIndex(ctx context.Context, indexName, value string) iter.Seq2[*T, error] {
	prefix := []byte(e.prefix + "idx:" + indexName + ":" + value + ":")

	return func(yield func(*T, error) bool) {
		e.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = prefix
			opts.PrefetchValues = true

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return ctx.Err()
				}

				var id string
				err := it.Item().Value(func(val []byte) error {
					id = string(val)
					return nil
				})
				if err != nil {
					yield(nil, errors.Store("failed to read index entry", err))
					return err
				}

				entity, err := e.getInTxn(txn, id)
				if err != nil {
					yield(nil, err)
					return err
				}
				if !yield(entity, nil) {
					return nil
				}
			}
			return nil
		})
	}
}

func (e *Entity[T]) getInTxn(txn *badger.Txn, id string) (*T, error) {
	item, err := txn.Get([]byte(e.prefix + id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Store("failed to get key", err)
	}

	var entity T
	err = item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, &entity); err != nil {
			return errors.Store("failed to unmarshal entity", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entity, nil
}
