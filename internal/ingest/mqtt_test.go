package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/addissalvage/elv-tracking/internal/db"
	"github.com/addissalvage/elv-tracking/internal/rules"
)

func newBridge(store db.Store) *Bridge {
	return &Bridge{store: store, engine: rules.NewEngine(store)}
}

func TestIngest_RecordsLocationUpdate(t *testing.T) {
	store := db.NewMemoryStore()
	bridge := newBridge(store)

	vehicleID, err := store.Insert(context.Background(), db.VehicleCollection, bson.M{"status": "active"})
	assert.NoError(t, err)

	id, err := bridge.Ingest(context.Background(), vehicleID, []byte(`{"lat": 9.03, "lon": 38.74}`))
	assert.NoError(t, err)
	assert.NotEmpty(t, id)

	event, err := store.FindOne(context.Background(), db.EventCollection, id)
	assert.NoError(t, err)
	assert.Equal(t, "location_update", event["event_type"])
	assert.Equal(t, vehicleID, event["vehicle_id"])
	assert.NotNil(t, event["occurred_at"])

	loc, ok := event["location"].(bson.M)
	assert.True(t, ok)
	assert.Equal(t, 9.03, loc["lat"])
	assert.Equal(t, 38.74, loc["lon"])

	// location_update carries no derived status effect.
	vehicle, err := store.FindOne(context.Background(), db.VehicleCollection, vehicleID)
	assert.NoError(t, err)
	assert.Equal(t, "active", vehicle["status"])
}

func TestIngest_UnresolvableVehicleStillRecords(t *testing.T) {
	store := db.NewMemoryStore()
	bridge := newBridge(store)

	id, err := bridge.Ingest(context.Background(), "unit-without-record", []byte(`{"lat": 1, "lon": 2}`))
	assert.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestIngest_RejectsBadPayload(t *testing.T) {
	store := db.NewMemoryStore()
	bridge := newBridge(store)

	_, err := bridge.Ingest(context.Background(), "v1", []byte("not json"))
	assert.Error(t, err)

	events, ferr := store.FindMany(context.Background(), db.EventCollection, bson.M{}, 0, "")
	assert.NoError(t, ferr)
	assert.Empty(t, events)
}
