package models

// PartCondition represents the condition of a salvaged part.
type PartCondition string

const (
	PartNew     PartCondition = "new"
	PartUsed    PartCondition = "used"
	PartDamaged PartCondition = "damaged"
	PartUnknown PartCondition = "unknown"
)

// IsValidPartCondition checks if a part condition is in the allowed set.
func IsValidPartCondition(c PartCondition) bool {
	switch c {
	case PartNew, PartUsed, PartDamaged, PartUnknown:
		return true
	default:
		return false
	}
}

// PartPayload is the client-supplied shape for registering a salvaged part.
type PartPayload struct {
	VehicleID    *string  `json:"vehicle_id,omitempty"`
	Name         string   `json:"name" validate:"required"`
	SerialNumber *string  `json:"serial_number,omitempty"`
	Condition    *string  `json:"condition,omitempty" validate:"omitempty,oneof=new used damaged unknown"`
	Location     *string  `json:"location,omitempty"`
	PriceETB     *float64 `json:"price_etb,omitempty"`
}
