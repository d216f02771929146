package models

import "time"

// Mutation operations accepted by the sync reconciler.
const (
	OpCreateVehicle = "createVehicle"
	OpLogEvent      = "logEvent"
	OpRegisterPart  = "registerPart"
)

// Mutation statuses reported back per mutation.
const (
	MutationOK      = "ok"
	MutationIgnored = "ignored"
	MutationError   = "error"
)

// Mutation is a single client-recorded write replayed during offline sync.
// ClientTimestamp is the field the reconciler orders by; the data payload is
// left schemaless here and validated per entity kind at apply time.
type Mutation struct {
	Op              string                 `json:"op"`
	Data            map[string]interface{} `json:"data"`
	ClientID        string                 `json:"client_id"`
	ClientTimestamp time.Time              `json:"client_timestamp"`
}

// SyncEnvelope is an offline batch of mutations submitted together. Envelope
// order is irrelevant; only client_timestamp determines apply order.
type SyncEnvelope struct {
	Mutations []Mutation `json:"mutations"`
}

// MutationResult reports the outcome of applying one mutation.
type MutationResult struct {
	Op     string `json:"op"`
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

// SyncResponse is the full reconciliation outcome for one batch.
type SyncResponse struct {
	Results    []MutationResult `json:"results"`
	ServerTime time.Time        `json:"server_time"`
}
