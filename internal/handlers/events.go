package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/addissalvage/elv-tracking/internal/db"
	"github.com/addissalvage/elv-tracking/internal/rules"
	"github.com/addissalvage/elv-tracking/internal/validate"
)

// EventHandler handles lifecycle event requests
type EventHandler struct {
	store  db.Store
	engine *rules.Engine
}

// NewEventHandler creates a new event handler
func NewEventHandler(store db.Store, engine *rules.Engine) *EventHandler {
	return &EventHandler{store: store, engine: engine}
}

// Create handles POST /api/events. Persisting a dismantling or scrap event
// with a resolvable vehicle reference also updates the vehicle's status
// through the rule engine.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	doc, err := validate.Event(data, time.Now().UTC())
	if err != nil {
		writeValidationError(w, err)
		return
	}
	id, err := h.store.Insert(r.Context(), db.EventCollection, doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store event")
		return
	}
	if err := h.engine.Apply(r.Context(), doc); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to apply event side effects")
		return
	}
	stored, err := h.store.FindOne(r.Context(), db.EventCollection, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read back event")
		return
	}
	writeJSON(w, http.StatusOK, db.Serialize(stored))
}
