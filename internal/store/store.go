// Package store persists the users, chats and webhooks collections as whole
// JSON documents of the shape {"<collection>": [...]}.
//
// Reads never fail: a missing document is created empty, and a document that
// cannot be decoded reads as an empty collection.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
)

type Collection string

const (
	Users    Collection = "users"
	Chats    Collection = "chats"
	Webhooks Collection = "webhooks"
)

// ErrNotExist is returned by a Backend when a collection has never been saved.
var ErrNotExist = errors.New("store: document does not exist")

// Backend loads and saves one raw document per collection.
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

type Store struct {
	backend Backend

	mu    sync.Mutex
	locks map[Collection]*sync.Mutex
}

func New(b Backend) *Store {
	return &Store{backend: b, locks: make(map[Collection]*sync.Mutex)}
}

func (s *Store) lock(c Collection) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[c]
	if !ok {
		l = &sync.Mutex{}
		s.locks[c] = l
	}
	return l
}

// records returns the raw array stored under the collection key. Callers
// hold the collection lock.
func (s *Store) records(ctx context.Context, c Collection) json.RawMessage {
	data, err := s.backend.Load(ctx, string(c))
	if errors.Is(err, ErrNotExist) {
		if err := s.save(ctx, c, []json.RawMessage{}); err != nil {
			log.Printf("[store] init %s: %v", c, err)
		}
		return nil
	}
	if err != nil {
		log.Printf("[store] load %s: %v", c, err)
		return nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("[store] %s is not a valid document, treating as empty: %v", c, err)
		return nil
	}

	if c == Webhooks {
		if legacy, ok := doc[legacyWebhookKey]; ok {
			return s.migrateLegacyWebhook(ctx, legacy)
		}
	}
	return doc[string(c)]
}

func (s *Store) save(ctx context.Context, c Collection, records any) error {
	b, err := json.MarshalIndent(map[string]any{string(c): records}, "", "    ")
	if err != nil {
		return err
	}
	return s.backend.Save(ctx, string(c), b)
}

// Read returns every record of c in stored order. It holds the collection
// lock because a first read may create or migrate the document.
func Read[T any](ctx context.Context, s *Store, c Collection) []T {
	l := s.lock(c)
	l.Lock()
	defer l.Unlock()
	return read[T](ctx, s, c)
}

func read[T any](ctx context.Context, s *Store, c Collection) []T {
	raw := s.records(ctx, c)
	if len(raw) == 0 || string(raw) == "null" {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("[store] decode %s: %v", c, err)
		return []T{}
	}
	return out
}

// Write replaces the whole collection.
func Write[T any](ctx context.Context, s *Store, c Collection, records []T) error {
	l := s.lock(c)
	l.Lock()
	defer l.Unlock()
	return write(ctx, s, c, records)
}

func write[T any](ctx context.Context, s *Store, c Collection, records []T) error {
	if records == nil {
		records = []T{}
	}
	return s.save(ctx, c, records)
}

// Update runs one read-modify-write cycle on c. fn returns the new record set
// and whether anything changed; unchanged sets are not written back.
// Reads, writes and cycles on the same collection are serialized within the
// process.
func Update[T any](ctx context.Context, s *Store, c Collection, fn func([]T) ([]T, bool)) error {
	l := s.lock(c)
	l.Lock()
	defer l.Unlock()

	next, changed := fn(read[T](ctx, s, c))
	if !changed {
		return nil
	}
	return write(ctx, s, c, next)
}
