package models

import "time"

// EventType represents the kind of lifecycle event recorded for a vehicle.
type EventType string

const (
	EventOwnershipChange EventType = "ownership_change"
	EventDismantling     EventType = "dismantling"
	EventRecycling       EventType = "recycling"
	EventScrap           EventType = "scrap"
	EventInspection      EventType = "inspection"
	EventLocationUpdate  EventType = "location_update"
	EventNote            EventType = "note"
)

// IsValidEventType checks if an event type is in the allowed set.
func IsValidEventType(e EventType) bool {
	switch e {
	case EventOwnershipChange, EventDismantling, EventRecycling, EventScrap,
		EventInspection, EventLocationUpdate, EventNote:
		return true
	default:
		return false
	}
}

// EventPayload is the client-supplied shape for logging a lifecycle event.
// Events are immutable once created; occurred_at defaults to ingestion time
// when absent, which is what offline clients rely on.
type EventPayload struct {
	VehicleID  *string                `json:"vehicle_id,omitempty"`
	EventType  string                 `json:"event_type" validate:"required,oneof=ownership_change dismantling recycling scrap inspection location_update note"`
	ActorID    *string                `json:"actor_id,omitempty"`
	Notes      *string                `json:"notes,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Location   map[string]interface{} `json:"location,omitempty"`
	OccurredAt *time.Time             `json:"occurred_at,omitempty"`
}
