package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	resp := Response{
		Status:  "success",
		Message: "test message",
	}

	err := WriteJSON(w, http.StatusOK, resp)
	if err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", w.Header().Get("Content-Type"))
	}

	var result Response
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.Status != "success" {
		t.Errorf("Expected status 'success', got '%s'", result.Status)
	}

	if result.Message != "test message" {
		t.Errorf("Expected message 'test message', got '%s'", result.Message)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteError(w, http.StatusInternalServerError, "test error")
	if err != nil {
		t.Fatalf("WriteError failed: %v", err)
	}

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}

	var result Response
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.Status != "error" {
		t.Errorf("Expected status 'error', got '%s'", result.Status)
	}

	if result.Error != "test error" {
		t.Errorf("Expected error 'test error', got '%s'", result.Error)
	}
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()

	data := map[string]string{"key": "value"}
	err := WriteSuccess(w, "operation successful", data)
	if err != nil {
		t.Fatalf("WriteSuccess failed: %v", err)
	}

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var result Response
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.Status != "success" {
		t.Errorf("Expected status 'success', got '%s'", result.Status)
	}

	// Check data field
	dataMap, ok := result.Data.(map[string]interface{})
	if !ok {
		t.Error("Expected data to be a map")
	} else if dataMap["key"] != "value" {
		t.Errorf("Expected data.key 'value', got '%v'", dataMap["key"])
	}
}

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()

	if err := WriteCreated(w, "created", nil); err != nil {
		t.Fatalf("WriteCreated failed: %v", err)
	}

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
}

func TestWriteUnauthorized(t *testing.T) {
	w := httptest.NewRecorder()

	if err := WriteUnauthorized(w, "no token"); err != nil {
		t.Fatalf("WriteUnauthorized failed: %v", err)
	}

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}

	var result Response
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.Error != "no token" {
		t.Errorf("Expected error 'no token', got '%s'", result.Error)
	}
}

func TestWriteNotFound(t *testing.T) {
	w := httptest.NewRecorder()

	if err := WriteNotFound(w, "missing"); err != nil {
		t.Fatalf("WriteNotFound failed: %v", err)
	}

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}
