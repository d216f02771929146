package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/addissalvage/elv-tracking/internal/validate"
)

// errorResponse is the JSON error body for the API. Validation failures
// carry field-level detail so clients can point at the offending input.
type errorResponse struct {
	Error  string                    `json:"error"`
	Fields validate.ValidationErrors `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeValidationError renders a validation failure as a 400 with field
// detail, and anything else as a plain 400.
func writeValidationError(w http.ResponseWriter, err error) {
	var verrs validate.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verrs})
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
