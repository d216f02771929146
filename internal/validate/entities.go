package validate

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/addissalvage/elv-tracking/internal/models"
)

// enumOrUnknown keeps an explicitly supplied value and defaults absence to
// "unknown". Out-of-set values never reach here; validation rejects them.
func enumOrUnknown(val *string) string {
	if val == nil || *val == "" {
		return "unknown"
	}
	return *val
}

// Vehicle normalizes and validates a raw vehicle payload. Absent condition
// and status fields default to "unknown"; present values outside their enum
// are a validation error, never coerced.
func Vehicle(data map[string]interface{}) (bson.M, error) {
	var p models.VehiclePayload
	if err := decode(data, &p); err != nil {
		return nil, err
	}
	if err := check(&p); err != nil {
		return nil, err
	}
	doc := bson.M{
		"engine_condition": enumOrUnknown(p.EngineCondition),
		"body_condition":   enumOrUnknown(p.BodyCondition),
		"damage_level":     enumOrUnknown(p.DamageLevel),
		"status":           enumOrUnknown(p.Status),
	}
	if p.VIN != nil {
		doc["vin"] = *p.VIN
	}
	if p.Make != nil {
		doc["make"] = *p.Make
	}
	if p.Model != nil {
		doc["model"] = *p.Model
	}
	if p.Year != nil {
		doc["year"] = *p.Year
	}
	if len(p.Photos) > 0 {
		doc["photos"] = p.Photos
	}
	if p.LastKnownLocation != nil {
		doc["last_known_location"] = bson.M(p.LastKnownLocation)
	}
	if p.OwnerID != nil {
		doc["owner_id"] = *p.OwnerID
	}
	return doc, nil
}

// Event normalizes and validates a raw event payload. A missing occurred_at
// defaults to now, which offline clients rely on during sync replay.
func Event(data map[string]interface{}, now time.Time) (bson.M, error) {
	var p models.EventPayload
	if err := decode(data, &p); err != nil {
		return nil, err
	}
	if err := check(&p); err != nil {
		return nil, err
	}
	doc := bson.M{
		"event_type": p.EventType,
	}
	if p.OccurredAt != nil {
		doc["occurred_at"] = *p.OccurredAt
	} else {
		doc["occurred_at"] = now
	}
	if p.VehicleID != nil {
		doc["vehicle_id"] = *p.VehicleID
	}
	if p.ActorID != nil {
		doc["actor_id"] = *p.ActorID
	}
	if p.Notes != nil {
		doc["notes"] = *p.Notes
	}
	if p.Metadata != nil {
		doc["metadata"] = bson.M(p.Metadata)
	}
	if p.Location != nil {
		doc["location"] = bson.M(p.Location)
	}
	return doc, nil
}

// Part normalizes and validates a raw part payload.
func Part(data map[string]interface{}) (bson.M, error) {
	var p models.PartPayload
	if err := decode(data, &p); err != nil {
		return nil, err
	}
	if err := check(&p); err != nil {
		return nil, err
	}
	doc := bson.M{
		"name":      p.Name,
		"condition": enumOrUnknown(p.Condition),
	}
	if p.VehicleID != nil {
		doc["vehicle_id"] = *p.VehicleID
	}
	if p.SerialNumber != nil {
		doc["serial_number"] = *p.SerialNumber
	}
	if p.Location != nil {
		doc["location"] = *p.Location
	}
	if p.PriceETB != nil {
		doc["price_etb"] = *p.PriceETB
	}
	return doc, nil
}
