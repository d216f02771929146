package rules

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/addissalvage/elv-tracking/internal/db"
	"github.com/addissalvage/elv-tracking/internal/models"
)

// statusEffects maps event types to the vehicle status they force. Event
// types outside this table have no derived effect.
var statusEffects = map[models.EventType]models.VehicleStatus{
	models.EventDismantling: models.StatusDismantled,
	models.EventScrap:       models.StatusScrapped,
}

// Engine applies derived-state side effects triggered by persisted events.
// It is the only cross-entity coupling in the system and runs synchronously,
// so a read of the vehicle later in the same batch sees the updated status.
type Engine struct {
	store db.Store
	now   func() time.Time
}

// NewEngine creates a rule engine over the given store.
func NewEngine(store db.Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// Apply inspects a persisted event document and updates the related vehicle
// when the event type demands it. An absent or unresolvable vehicle
// reference skips the update silently; the event itself stays recorded, and
// clients converge through later events.
func (e *Engine) Apply(ctx context.Context, event bson.M) error {
	eventType, _ := event["event_type"].(string)
	status, ok := statusEffects[models.EventType(eventType)]
	if !ok {
		return nil
	}
	vehicleID, _ := event["vehicle_id"].(string)
	if vehicleID == "" {
		return nil
	}
	if _, err := e.store.FindOne(ctx, db.VehicleCollection, vehicleID); err != nil {
		if errors.Is(err, db.ErrNotFound) || errors.Is(err, db.ErrInvalidID) {
			log.WithFields(log.Fields{
				"vehicle_id": vehicleID,
				"event_type": eventType,
			}).Debug("skipping status update, vehicle reference did not resolve")
			return nil
		}
		return err
	}
	patch := bson.M{
		"status":     string(status),
		"updated_at": e.now(),
	}
	if err := e.store.Update(ctx, db.VehicleCollection, vehicleID, patch); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"vehicle_id": vehicleID,
		"status":     string(status),
	}).Info("vehicle status derived from event")
	return nil
}
