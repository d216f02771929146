package models

// VehicleStatus represents the lifecycle status of an end-of-life vehicle.
type VehicleStatus string

const (
	StatusImported   VehicleStatus = "imported"
	StatusActive     VehicleStatus = "active"
	StatusDismantled VehicleStatus = "dismantled"
	StatusScrapped   VehicleStatus = "scrapped"
	StatusSold       VehicleStatus = "sold"
	StatusUnknown    VehicleStatus = "unknown"
)

// ConditionLevel represents the assessed condition of an engine or body.
type ConditionLevel string

const (
	ConditionGood    ConditionLevel = "good"
	ConditionFair    ConditionLevel = "fair"
	ConditionPoor    ConditionLevel = "poor"
	ConditionUnknown ConditionLevel = "unknown"
)

// DamageLevel represents the overall damage level of a vehicle.
type DamageLevel string

const (
	DamageNone     DamageLevel = "none"
	DamageMinor    DamageLevel = "minor"
	DamageModerate DamageLevel = "moderate"
	DamageSevere   DamageLevel = "severe"
	DamageUnknown  DamageLevel = "unknown"
)

// IsValidVehicleStatus checks if a vehicle status is in the allowed set.
func IsValidVehicleStatus(s VehicleStatus) bool {
	switch s {
	case StatusImported, StatusActive, StatusDismantled, StatusScrapped, StatusSold, StatusUnknown:
		return true
	default:
		return false
	}
}

// IsValidConditionLevel checks if a condition level is in the allowed set.
func IsValidConditionLevel(c ConditionLevel) bool {
	switch c {
	case ConditionGood, ConditionFair, ConditionPoor, ConditionUnknown:
		return true
	default:
		return false
	}
}

// IsValidDamageLevel checks if a damage level is in the allowed set.
func IsValidDamageLevel(d DamageLevel) bool {
	switch d {
	case DamageNone, DamageMinor, DamageModerate, DamageSevere, DamageUnknown:
		return true
	default:
		return false
	}
}

// VehiclePayload is the client-supplied shape for creating a vehicle. The
// data model accepts incomplete or uncertain data, so every field is
// optional; absent enum fields default to "unknown" during validation.
type VehiclePayload struct {
	VIN               *string                `json:"vin,omitempty"`
	Make              *string                `json:"make,omitempty"`
	Model             *string                `json:"model,omitempty"`
	Year              *int                   `json:"year,omitempty"`
	EngineCondition   *string                `json:"engine_condition,omitempty" validate:"omitempty,oneof=good fair poor unknown"`
	BodyCondition     *string                `json:"body_condition,omitempty" validate:"omitempty,oneof=good fair poor unknown"`
	DamageLevel       *string                `json:"damage_level,omitempty" validate:"omitempty,oneof=none minor moderate severe unknown"`
	Photos            []string               `json:"photos,omitempty"`
	LastKnownLocation map[string]interface{} `json:"last_known_location,omitempty"`
	OwnerID           *string                `json:"owner_id,omitempty"`
	Status            *string                `json:"status,omitempty" validate:"omitempty,oneof=imported active dismantled scrapped sold unknown"`
}
