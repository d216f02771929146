package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler serves the liveness and diagnostic endpoints.
type HealthHandler struct {
	db *mongo.Database
}

// NewHealthHandler creates a new health handler. db may be nil when the
// backend runs without a MongoDB connection.
func NewHealthHandler(db *mongo.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "ELV Tracking Backend is running",
	})
}

// Test handles GET /test, reporting database availability for diagnostics.
func (h *HealthHandler) Test(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"backend":           "running",
		"database":          "not available",
		"connection_status": "not connected",
		"mongo_uri_set":     os.Getenv("MONGO_URI") != "",
		"mongo_db_set":      os.Getenv("MONGO_DB") != "",
		"collections":       []string{},
	}
	if h.db != nil {
		response["database"] = "available"
		response["database_name"] = h.db.Name()
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		names, err := h.db.ListCollectionNames(ctx, bson.M{})
		if err != nil {
			response["database"] = "connected but error: " + err.Error()
		} else {
			response["database"] = "connected"
			response["connection_status"] = "connected"
			if len(names) > 10 {
				names = names[:10]
			}
			response["collections"] = names
		}
	}
	writeJSON(w, http.StatusOK, response)
}
