package rules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/addissalvage/elv-tracking/internal/db"
)

func newVehicle(t *testing.T, store db.Store) string {
	t.Helper()
	id, err := store.Insert(context.Background(), db.VehicleCollection, bson.M{"status": "active"})
	assert.NoError(t, err)
	return id
}

func TestApply_DismantlingSetsStatus(t *testing.T) {
	store := db.NewMemoryStore()
	engine := NewEngine(store)
	vehicleID := newVehicle(t, store)

	err := engine.Apply(context.Background(), bson.M{
		"event_type": "dismantling",
		"vehicle_id": vehicleID,
	})
	assert.NoError(t, err)

	vehicle, err := store.FindOne(context.Background(), db.VehicleCollection, vehicleID)
	assert.NoError(t, err)
	assert.Equal(t, "dismantled", vehicle["status"])
	assert.NotNil(t, vehicle["updated_at"])
}

func TestApply_ScrapSetsStatus(t *testing.T) {
	store := db.NewMemoryStore()
	engine := NewEngine(store)
	vehicleID := newVehicle(t, store)

	err := engine.Apply(context.Background(), bson.M{
		"event_type": "scrap",
		"vehicle_id": vehicleID,
	})
	assert.NoError(t, err)

	vehicle, err := store.FindOne(context.Background(), db.VehicleCollection, vehicleID)
	assert.NoError(t, err)
	assert.Equal(t, "scrapped", vehicle["status"])
}

func TestApply_OtherEventTypesHaveNoEffect(t *testing.T) {
	store := db.NewMemoryStore()
	engine := NewEngine(store)
	vehicleID := newVehicle(t, store)

	for _, eventType := range []string{"ownership_change", "recycling", "inspection", "location_update", "note"} {
		err := engine.Apply(context.Background(), bson.M{
			"event_type": eventType,
			"vehicle_id": vehicleID,
		})
		assert.NoError(t, err)
	}

	vehicle, err := store.FindOne(context.Background(), db.VehicleCollection, vehicleID)
	assert.NoError(t, err)
	assert.Equal(t, "active", vehicle["status"])
	_, touched := vehicle["updated_at"]
	assert.False(t, touched)
}

func TestApply_MissingVehicleRefSkipsSilently(t *testing.T) {
	store := db.NewMemoryStore()
	engine := NewEngine(store)

	err := engine.Apply(context.Background(), bson.M{"event_type": "dismantling"})
	assert.NoError(t, err)
}

func TestApply_UnresolvableVehicleRefSkipsSilently(t *testing.T) {
	store := db.NewMemoryStore()
	engine := NewEngine(store)

	// Malformed id
	err := engine.Apply(context.Background(), bson.M{
		"event_type": "scrap",
		"vehicle_id": "not-a-valid-id",
	})
	assert.NoError(t, err)

	// Well-formed but nonexistent id
	phantom, insertErr := store.Insert(context.Background(), db.PartCollection, bson.M{"name": "door"})
	assert.NoError(t, insertErr)
	err = engine.Apply(context.Background(), bson.M{
		"event_type": "scrap",
		"vehicle_id": phantom,
	})
	assert.NoError(t, err)
}

func TestApply_Idempotent(t *testing.T) {
	store := db.NewMemoryStore()
	engine := NewEngine(store)
	vehicleID := newVehicle(t, store)

	first := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(2 * time.Hour)

	engine.now = func() time.Time { return first }
	err := engine.Apply(context.Background(), bson.M{"event_type": "dismantling", "vehicle_id": vehicleID})
	assert.NoError(t, err)

	engine.now = func() time.Time { return second }
	err = engine.Apply(context.Background(), bson.M{"event_type": "dismantling", "vehicle_id": vehicleID})
	assert.NoError(t, err)

	vehicle, err := store.FindOne(context.Background(), db.VehicleCollection, vehicleID)
	assert.NoError(t, err)
	assert.Equal(t, "dismantled", vehicle["status"])
	assert.Equal(t, second, vehicle["updated_at"], "updated_at reflects the later event")
}
