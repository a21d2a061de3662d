// Package store implements JSON document collections on top of a repository.KeyValueStore.
//
// Each collection lives under one key as a JSON array. Read-then-write operations
// hold the store mutex, so concurrent callers in one process never lose updates.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"bookswap/internal/domain/repository"
	"bookswap/internal/errors"

	"github.com/google/uuid"
)

// Store serializes access to the underlying key-value store.
type Store struct {
	kv    repository.KeyValueStore
	mu    sync.Mutex
	newID func() (string, error)
}

// New wraps kv.
func New(kv repository.KeyValueStore) *Store {
	return &Store{kv: kv, newID: newUUIDv7}
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", errors.Wrap(err, "generate id")
	}

	return id.String(), nil
}

// ReadValue returns the scalar stored under key and whether it was present.
func (s *Store) ReadValue(ctx context.Context, key string) (string, bool, error) {
	value, err := s.kv.Get(ctx, key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return string(value), true, nil
}

// WriteValue stores a scalar under key.
func (s *Store) WriteValue(ctx context.Context, key, value string) error {
	return s.kv.Set(ctx, key, []byte(value))
}

// ClearValue removes the scalar under key. Clearing an absent key is a no-op.
func (s *Store) ClearValue(ctx context.Context, key string) error {
	return s.kv.Delete(ctx, key)
}

// Record is the constraint on collection element pointers.
type Record[T any] interface {
	*T
	GetID() string
	SetID(id string)
}

// Collection is a typed view over the JSON array stored under one key.
type Collection[T any, P Record[T]] struct {
	store *Store
	key   string
}

// NewCollection binds a collection of T to key.
func NewCollection[T any, P Record[T]](s *Store, key string) *Collection[T, P] {
	return &Collection[T, P]{store: s, key: key}
}


// InitializeIfAbsent writes seed only when nothing is stored under the key yet.
// It reports whether the seed was written.
func (c *Collection[T, P]) InitializeIfAbsent(ctx context.Context, seed []T) (bool, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if seed == nil {
		seed = []T{}
	}

	data, err := json.Marshal(seed)
	if err != nil {
		return false, errors.Wrapf(err, "marshal %s seed", c.key)
	}

	written, err := c.store.kv.SetNX(ctx, c.key, data)
	if err != nil {
		return false, errors.Wrapf(err, "seed %s", c.key)
	}

	return written, nil
}

// ReadAll returns every record in stored order. A missing key reads as empty.
func (c *Collection[T, P]) ReadAll(ctx context.Context) ([]P, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	return pointers[T, P](items), nil
}

// ReadByID returns the record with the given id or repository.ErrRecordNotFound.
func (c *Collection[T, P]) ReadByID(ctx context.Context, id string) (P, error) {
	return c.FindOne(ctx, func(item P) bool { return item.GetID() == id })
}

// FindOne returns the first record matching predicate or repository.ErrRecordNotFound.
func (c *Collection[T, P]) FindOne(ctx context.Context, predicate func(P) bool) (P, error) {
	items, err := c.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if predicate(item) {
			return item, nil
		}
	}

	return nil, repository.ErrRecordNotFound
}

// Filter returns every record matching predicate in stored order.
func (c *Collection[T, P]) Filter(ctx context.Context, predicate func(P) bool) ([]P, error) {
	items, err := c.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]P, 0, len(items))
	for _, item := range items {
		if predicate(item) {
			matched = append(matched, item)
		}
	}

	return matched, nil
}

// Create assigns a fresh id to a copy of item, stores it ahead of all existing
// records and returns the stored copy.
func (c *Collection[T, P]) Create(ctx context.Context, item P) (P, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	id, err := c.store.newID()
	if err != nil {
		return nil, err
	}

	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	created := *item
	P(&created).SetID(id)

	items = append([]T{created}, items...)
	if err := c.save(ctx, items); err != nil {
		return nil, err
	}

	return P(&created), nil
}

// Remove deletes the record with the given id and reports whether anything changed.
func (c *Collection[T, P]) Remove(ctx context.Context, id string) (bool, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]T, 0, len(items))
	for i := range items {
		if P(&items[i]).GetID() != id {
			kept = append(kept, items[i])
		}
	}

	if len(kept) == len(items) {
		return false, nil
	}

	if err := c.save(ctx, kept); err != nil {
		return false, err
	}

	return true, nil
}

func (c *Collection[T, P]) load(ctx context.Context) ([]T, error) {
	data, err := c.store.kv.Get(ctx, c.key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", c.key)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrapf(err, "decode %s", c.key)
	}

	return items, nil
}

func (c *Collection[T, P]) save(ctx context.Context, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "encode %s", c.key)
	}

	return errors.Wrapf(c.store.kv.Set(ctx, c.key, data), "write %s", c.key)
}

func pointers[T any, P Record[T]](items []T) []P {
	out := make([]P, len(items))
	for i := range items {
		out[i] = P(&items[i])
	}

	return out
}
