package db

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// MemoryStore is an in-memory Store used by tests and local runs without a
// MongoDB instance. Ids are uuids; a non-uuid id is treated as malformed the
// same way a non-hex id is by the Mongo store.
type MemoryStore struct {
	mu    sync.Mutex
	colls map[string]map[string]bson.M
	order map[string][]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		colls: make(map[string]map[string]bson.M),
		order: make(map[string][]string),
	}
}

func (s *MemoryStore) coll(name string) map[string]bson.M {
	c, ok := s.colls[name]
	if !ok {
		c = make(map[string]bson.M)
		s.colls[name] = c
	}
	return c
}

func copyDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// Insert stores a copy of the document and returns its assigned id.
func (s *MemoryStore) Insert(ctx context.Context, collection string, doc bson.M) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	stored := copyDoc(doc)
	stored["_id"] = id
	s.coll(collection)[id] = stored
	s.order[collection] = append(s.order[collection], id)
	return id, nil
}

// FindOne retrieves a copy of a document by id.
func (s *MemoryStore) FindOne(ctx context.Context, collection, id string) (bson.M, error) {
	if !s.ValidID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.coll(collection)[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDoc(doc), nil
}

// FindMany retrieves documents matching an equality filter in insertion
// order, optionally re-sorted ascending by sortField.
func (s *MemoryStore) FindMany(ctx context.Context, collection string, filter bson.M, limit int64, sortField string) ([]bson.M, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var docs []bson.M
	for _, id := range s.order[collection] {
		doc := s.coll(collection)[id]
		if doc == nil || !matches(doc, filter) {
			continue
		}
		docs = append(docs, copyDoc(doc))
	}
	if sortField != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			return lessValue(docs[i][sortField], docs[j][sortField])
		})
	}
	if limit > 0 && int64(len(docs)) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// Update merges a field patch into a document by id.
func (s *MemoryStore) Update(ctx context.Context, collection, id string, patch bson.M) error {
	if !s.ValidID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.coll(collection)[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range patch {
		doc[k] = v
	}
	return nil
}

// ValidID reports whether the id parses as a uuid.
func (s *MemoryStore) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		if !reflect.DeepEqual(doc[k], want) {
			return false
		}
	}
	return true
}

func lessValue(a, b interface{}) bool {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Before(bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			return av < bv
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return av < bv
		}
	case int:
		if bv, ok := b.(int); ok {
			return av < bv
		}
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}
