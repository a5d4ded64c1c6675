package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mofathy183/beggy-sub000/internal/config"
	"github.com/Mofathy183/beggy-sub000/internal/services"
	"github.com/Mofathy183/beggy-sub000/internal/types"
)

func TestAutofillUnconfigured(t *testing.T) {
	_, err := services.Autofill(context.Background(), &config.Config{}, services.AutofillInput{
		Resource: "ITEM",
		Known:    map[string]interface{}{"name": "Camera"},
		Fields:   []string{"category"},
	})
	if !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Expected ErrNotFound without a configured URL, got %v", err)
	}
}

func TestAutofillValidatesInput(t *testing.T) {
	_, err := services.Autofill(context.Background(), &config.Config{}, services.AutofillInput{
		Resource: "SPACESHIP",
		Known:    map[string]interface{}{"name": "Camera"},
		Fields:   []string{"category"},
	})
	if !errors.Is(err, types.ErrValidation) {
		t.Errorf("Expected ErrValidation for unknown resource, got %v", err)
	}
}

func TestAutofillFiltersToRequestedFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Expected bearer key forwarded, got %q", got)
		}
		var req struct {
			Resource string `json:"resource"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Resource != "ITEM" {
			t.Errorf("Expected normalized ITEM resource, got %q", req.Resource)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"suggestions": map[string]interface{}{
				"category": "ELECTRONICS",
				"color":    "black",
			},
			"model": "test-model",
		})
	}))
	defer server.Close()

	cfg := &config.Config{AutofillURL: server.URL, AutofillAPIKey: "test-key"}

	result, err := services.Autofill(context.Background(), cfg, services.AutofillInput{
		Resource: "item",
		Known:    map[string]interface{}{"name": "Camera"},
		Fields:   []string{"category"},
	})
	if err != nil {
		t.Fatalf("Autofill failed: %v", err)
	}

	if result.Model != "test-model" {
		t.Errorf("Expected model passed through, got %q", result.Model)
	}
	if result.Suggestions["category"] != "ELECTRONICS" {
		t.Errorf("Expected category suggestion, got %+v", result.Suggestions)
	}
	if _, ok := result.Suggestions["color"]; ok {
		t.Error("Suggestions must be filtered to the requested fields")
	}
}

func TestAutofillUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := services.Autofill(context.Background(), &config.Config{AutofillURL: server.URL}, services.AutofillInput{
		Resource: "BAG",
		Known:    map[string]interface{}{"name": "Duffel"},
		Fields:   []string{"material"},
	})
	if err == nil {
		t.Error("Expected an error for a non-OK upstream status")
	}
}
