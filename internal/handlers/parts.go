package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/addissalvage/elv-tracking/internal/db"
	"github.com/addissalvage/elv-tracking/internal/validate"
)

// PartHandler handles salvaged part requests
type PartHandler struct {
	store db.Store
}

// NewPartHandler creates a new part handler
func NewPartHandler(store db.Store) *PartHandler {
	return &PartHandler{store: store}
}

// Create handles POST /api/parts
func (h *PartHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	doc, err := validate.Part(data)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	id, err := h.store.Insert(r.Context(), db.PartCollection, doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store part")
		return
	}
	stored, err := h.store.FindOne(r.Context(), db.PartCollection, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read back part")
		return
	}
	writeJSON(w, http.StatusOK, db.Serialize(stored))
}
