package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names used by the backend.
const (
	VehicleCollection = "vehicle"
	EventCollection   = "event"
	PartCollection    = "part"
)

var (
	// ErrNotFound is returned when no document matches the given id.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID is returned when an id cannot be parsed by the store.
	ErrInvalidID = errors.New("invalid document id")
)

// Store defines the capability interface over a schemaless, collection
// oriented document store. The reconciler and rule engine only depend on
// this interface so they can run against an in-memory store in tests.
type Store interface {
	Insert(ctx context.Context, collection string, doc bson.M) (string, error)
	FindOne(ctx context.Context, collection, id string) (bson.M, error)
	FindMany(ctx context.Context, collection string, filter bson.M, limit int64, sortField string) ([]bson.M, error)
	Update(ctx context.Context, collection, id string, patch bson.M) error
	ValidID(id string) bool
}

// Serialize maps a stored document to its client-facing shape: the store
// internal _id becomes a plain string field "id", and any nested ObjectIDs
// are rendered as hex strings.
func Serialize(doc bson.M) bson.M {
	if doc == nil {
		return nil
	}
	out := make(bson.M, len(doc))
	for k, v := range doc {
		if oid, ok := v.(primitive.ObjectID); ok {
			if k == "_id" {
				out["id"] = oid.Hex()
			} else {
				out[k] = oid.Hex()
			}
			continue
		}
		if k == "_id" {
			if s, ok := v.(string); ok {
				out["id"] = s
				continue
			}
		}
		out[k] = v
	}
	return out
}
