package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/addissalvage/elv-tracking/internal/db"
	"github.com/addissalvage/elv-tracking/internal/models"
	"github.com/addissalvage/elv-tracking/internal/validate"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// VehicleHandler handles vehicle requests
type VehicleHandler struct {
	store db.Store
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(store db.Store) *VehicleHandler {
	return &VehicleHandler{store: store}
}

// Create handles POST /api/vehicles
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	doc, err := validate.Vehicle(data)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	id, err := h.store.Insert(r.Context(), db.VehicleCollection, doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store vehicle")
		return
	}
	stored, err := h.store.FindOne(r.Context(), db.VehicleCollection, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read back vehicle")
		return
	}
	writeJSON(w, http.StatusOK, db.Serialize(stored))
}

// List handles GET /api/vehicles with optional status filter and limit.
// The limit is checked before any store call.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultListLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		if n < 1 || n > maxListLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = n
	}
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.IsValidVehicleStatus(models.VehicleStatus(status)) {
			writeError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		filter["status"] = status
	}
	docs, err := h.store.FindMany(r.Context(), db.VehicleCollection, filter, limit, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list vehicles")
		return
	}
	out := make([]bson.M, 0, len(docs))
	for _, d := range docs {
		out = append(out, db.Serialize(d))
	}
	writeJSON(w, http.StatusOK, out)
}

// History handles GET /api/vehicles/{id}/history, returning all events for
// the vehicle ordered by occurred_at ascending.
func (h *VehicleHandler) History(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.store.ValidID(id) {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	docs, err := h.store.FindMany(r.Context(), db.EventCollection, bson.M{"vehicle_id": id}, 0, "occurred_at")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load vehicle history")
		return
	}
	out := make([]bson.M, 0, len(docs))
	for _, d := range docs {
		out = append(out, db.Serialize(d))
	}
	writeJSON(w, http.StatusOK, out)
}
