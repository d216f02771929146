package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Mutation mirrors the sync API request shape.
type Mutation struct {
	Op              string                 `json:"op"`
	Data            map[string]interface{} `json:"data"`
	ClientID        string                 `json:"client_id"`
	ClientTimestamp time.Time              `json:"client_timestamp"`
}

// SyncEnvelope is one offline batch submitted to /api/sync.
type SyncEnvelope struct {
	Mutations []Mutation `json:"mutations"`
}

// MutationResult mirrors the per-mutation outcome in the sync response.
type MutationResult struct {
	Op     string `json:"op"`
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

type syncResponse struct {
	Results    []MutationResult `json:"results"`
	ServerTime time.Time        `json:"server_time"`
}

var makes = []string{"BMW", "Toyota", "Nissan", "Hyundai", "Isuzu"}

var modelsByMake = map[string][]string{
	"BMW":     {"316i", "520d", "X5", "E30"},
	"Toyota":  {"Corolla", "Hilux", "Land Cruiser", "Vitz"},
	"Nissan":  {"Sunny", "Patrol", "Hardbody"},
	"Hyundai": {"Accent", "Elantra", "H-1"},
	"Isuzu":   {"D-Max", "NPR", "FSR"},
}

var conditions = []string{"good", "fair", "poor", "unknown"}
var damageLevels = []string{"none", "minor", "moderate", "severe", "unknown"}
var eventTypes = []string{"ownership_change", "dismantling", "recycling", "scrap", "inspection", "location_update", "note"}
var partNames = []string{"engine", "door", "gearbox", "alternator", "radiator", "seat", "bumper"}
var partConditions = []string{"new", "used", "damaged", "unknown"}

func randomVIN() string {
	const charset = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"
	vin := make([]byte, 17)
	for i := range vin {
		vin[i] = charset[rand.Intn(len(charset))]
	}
	return string(vin)
}

func randomVehicle() map[string]interface{} {
	mk := makes[rand.Intn(len(makes))]
	return map[string]interface{}{
		"vin":              randomVIN(),
		"make":             mk,
		"model":            modelsByMake[mk][rand.Intn(len(modelsByMake[mk]))],
		"year":             1990 + rand.Intn(30),
		"engine_condition": conditions[rand.Intn(len(conditions))],
		"body_condition":   conditions[rand.Intn(len(conditions))],
		"damage_level":     damageLevels[rand.Intn(len(damageLevels))],
		"status":           "imported",
	}
}

func randomEvent(vehicleID string) map[string]interface{} {
	data := map[string]interface{}{
		"event_type": eventTypes[rand.Intn(len(eventTypes))],
		"notes":      "generated by simulator",
	}
	if vehicleID != "" {
		data["vehicle_id"] = vehicleID
	}
	return data
}

func randomPart(vehicleID string) map[string]interface{} {
	data := map[string]interface{}{
		"name":      partNames[rand.Intn(len(partNames))],
		"condition": partConditions[rand.Intn(len(partConditions))],
		"price_etb": float64(500 + rand.Intn(20000)),
	}
	if vehicleID != "" {
		data["vehicle_id"] = vehicleID
	}
	return data
}

// buildBatch simulates a client that worked offline for a while: a few
// vehicles, then events and parts recorded against earlier results. Event
// and part vehicle refs stay empty here since the ids only exist after the
// server applies the batch; a follow-up batch references them.
func buildBatch(clientID string, size int, knownVehicles []string) SyncEnvelope {
	base := time.Now().Add(-time.Duration(rand.Intn(3600)) * time.Second)
	var mutations []Mutation
	for i := 0; i < size; i++ {
		ts := base.Add(time.Duration(i) * time.Second)
		var vehicleID string
		if len(knownVehicles) > 0 {
			vehicleID = knownVehicles[rand.Intn(len(knownVehicles))]
		}
		var m Mutation
		switch rand.Intn(4) {
		case 0:
			m = Mutation{Op: "createVehicle", Data: randomVehicle()}
		case 1:
			m = Mutation{Op: "logEvent", Data: randomEvent(vehicleID)}
		case 2:
			m = Mutation{Op: "registerPart", Data: randomPart(vehicleID)}
		default:
			// Occasionally replay an op this server version does not know,
			// the way a newer client would.
			if rand.Intn(10) == 0 {
				m = Mutation{Op: "archiveVehicle", Data: map[string]interface{}{"vehicle_id": vehicleID}}
			} else {
				m = Mutation{Op: "logEvent", Data: randomEvent(vehicleID)}
			}
		}
		m.ClientID = clientID
		m.ClientTimestamp = ts
		mutations = append(mutations, m)
	}
	return SyncEnvelope{Mutations: mutations}
}

func postSync(apiURL string, envelope SyncEnvelope) (*syncResponse, error) {
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(apiURL+"/api/sync", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sync returned %d: %s", resp.StatusCode, string(raw))
	}
	var out syncResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func envInt(name string, fallback int) int {
	if raw := os.Getenv(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	batches := envInt("BATCHES", 5)
	batchSize := envInt("BATCH_SIZE", 8)
	interval := time.Duration(envInt("INTERVAL_SECONDS", 2)) * time.Second

	clientID := uuid.NewString()
	log.WithFields(log.Fields{
		"api_url":   apiURL,
		"client_id": clientID,
		"batches":   batches,
	}).Info("starting offline client simulator")

	var knownVehicles []string
	for i := 0; i < batches; i++ {
		envelope := buildBatch(clientID, batchSize, knownVehicles)
		resp, err := postSync(apiURL, envelope)
		if err != nil {
			log.WithError(err).Error("sync batch failed")
			time.Sleep(interval)
			continue
		}
		var ok, ignored, failed int
		for _, res := range resp.Results {
			switch res.Status {
			case "ok":
				ok++
				if res.Op == "createVehicle" {
					knownVehicles = append(knownVehicles, res.ID)
				}
			case "ignored":
				ignored++
			case "error":
				failed++
				log.WithFields(log.Fields{"op": res.Op, "error": res.Error}).Warn("mutation rejected")
			}
		}
		log.WithFields(log.Fields{
			"batch":       i + 1,
			"ok":          ok,
			"ignored":     ignored,
			"errors":      failed,
			"server_time": resp.ServerTime,
		}).Info("batch reconciled")
		time.Sleep(interval)
	}
}
