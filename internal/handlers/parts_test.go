package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/addissalvage/elv-tracking/internal/db"
)

func TestPartHandler_Create(t *testing.T) {
	handler := NewPartHandler(db.NewMemoryStore())

	body := []byte(`{"name": "engine", "condition": "used", "price_etb": 35000}`)
	req := httptest.NewRequest("POST", "/api/parts", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, "engine", resp["name"])
	assert.Equal(t, "used", resp["condition"])
	assert.Equal(t, 35000.0, resp["price_etb"])
}

func TestPartHandler_CreateRequiresName(t *testing.T) {
	handler := NewPartHandler(db.NewMemoryStore())

	body := []byte(`{"condition": "used"}`)
	req := httptest.NewRequest("POST", "/api/parts", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	fields := resp["fields"].([]interface{})
	field := fields[0].(map[string]interface{})
	assert.Equal(t, "name", field["field"])
}

func TestPartHandler_CreateDefaultsCondition(t *testing.T) {
	handler := NewPartHandler(db.NewMemoryStore())

	body := []byte(`{"name": "door"}`)
	req := httptest.NewRequest("POST", "/api/parts", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Create(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unknown", resp["condition"])
}
