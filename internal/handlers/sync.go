package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/addissalvage/elv-tracking/internal/models"
	"github.com/addissalvage/elv-tracking/internal/reconcile"
)

// SyncHandler handles offline batch sync requests
type SyncHandler struct {
	reconciler *reconcile.Reconciler
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(reconciler *reconcile.Reconciler) *SyncHandler {
	return &SyncHandler{reconciler: reconciler}
}

// Sync handles POST /api/sync. The envelope is applied as a whole; partial
// failure shows up per mutation in the result list, never as a request
// error, so offline clients can resubmit only what failed.
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	var envelope models.SyncEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	// A submitted batch always runs to completion, even if the client
	// disconnects mid-flight; offline clients resubmit by result, not by
	// guessing how far a dropped request got.
	results, serverTime := h.reconciler.Reconcile(context.WithoutCancel(r.Context()), envelope.Mutations)
	log.WithFields(log.Fields{
		"mutations": len(envelope.Mutations),
	}).Info("sync batch reconciled")
	writeJSON(w, http.StatusOK, models.SyncResponse{Results: results, ServerTime: serverTime})
}
