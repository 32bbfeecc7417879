// Package store persists solved lots so they can be fetched again by ID.
//
// [MemoryStore] keeps records for the life of the process; [MongoStore]
// keeps them in a MongoDB collection. Record IDs are random UUIDs.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/sardine/pkg/errors"
	"github.com/matzehuels/sardine/pkg/lot"
)

// DefaultListLimit caps List when the caller passes no limit.
const DefaultListLimit = 50

// Record is one stored solve.
type Record struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	RequestHash string    `json:"request_hash" bson:"request_hash"`
	Stats       lot.Stats `json:"stats" bson:"stats"`
	// Lot is the lot document as written by package io.
	Lot []byte `json:"-" bson:"lot"`
}

// Store persists records.
type Store interface {
	// Save assigns rec a new ID and creation time and stores it.
	Save(ctx context.Context, rec *Record) (*Record, error)
	// Get returns the record with id, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)
	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)
	// Delete removes the record with id, or returns a NOT_FOUND error.
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

// ParseID checks that id is a record ID.
func ParseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid lot id %q", id)
	}
	return u.String(), nil
}

func stamp(rec *Record) *Record {
	out := *rec
	out.ID = uuid.NewString()
	out.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	return &out
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "lot %s not found", id)
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Save stores a copy of rec under a new ID.
func (s *MemoryStore) Save(ctx context.Context, rec *Record) (*Record, error) {
	out := stamp(rec)
	out.Lot = append([]byte(nil), rec.Lot...)
	s.mu.Lock()
	s.records[out.ID] = *out
	s.mu.Unlock()
	return out, nil
}

// Get returns a copy of the record with id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	return &rec, nil
}

// List returns records newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	s.mu.RLock()
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes the record with id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	id, err := ParseID(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return notFound(id)
	}
	delete(s.records, id)
	return nil
}

// Close does nothing.
func (s *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
