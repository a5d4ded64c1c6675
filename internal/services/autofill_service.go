package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Mofathy183/beggy-sub000/internal/config"
	"github.com/Mofathy183/beggy-sub000/internal/types"
	"github.com/Mofathy183/beggy-sub000/internal/validation"
)

const autofillTimeout = 10 * time.Second

// AutofillInput asks the completion endpoint to suggest values for the named
// fields of a partially described resource.
type AutofillInput struct {
	Resource string                 `json:"resource" validate:"required,oneof=ITEM BAG SUITCASE"`
	Known    map[string]interface{} `json:"known" validate:"required,min=1"`
	Fields   []string               `json:"fields" validate:"required,min=1,dive,min=1"`
}

// AutofillResult carries the suggested field values and the upstream model id.
type AutofillResult struct {
	Suggestions map[string]interface{} `json:"suggestions"`
	Model       string                 `json:"model,omitempty"`
}

type autofillRequest struct {
	Resource string                 `json:"resource"`
	Known    map[string]interface{} `json:"known"`
	Fields   []string               `json:"fields"`
}

type autofillResponse struct {
	Suggestions map[string]interface{} `json:"suggestions"`
	Model       string                 `json:"model"`
	Error       string                 `json:"error"`
}

// Autofill calls the completion endpoint for field suggestions. The endpoint
// being unconfigured or unreachable is the caller's problem to report, never a
// reason to fail the owning request pipeline.
func Autofill(ctx context.Context, cfg *config.Config, input AutofillInput) (*AutofillResult, error) {
	input.Resource = validation.Normalize(input.Resource)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	if cfg.AutofillURL == "" {
		return nil, fmt.Errorf("%w: auto-fill endpoint is not configured", types.ErrNotFound)
	}

	body, err := json.Marshal(autofillRequest{
		Resource: input.Resource,
		Known:    input.Known,
		Fields:   input.Fields,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, autofillTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.AutofillURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.AutofillAPIKey != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.AutofillAPIKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("resource", input.Resource).Msg("auto-fill request failed")
		return nil, fmt.Errorf("auto-fill request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("auto-fill response read failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("auto-fill endpoint returned non-OK")
		return nil, fmt.Errorf("auto-fill endpoint returned %d", resp.StatusCode)
	}

	var parsed autofillResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("auto-fill response decode failed: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("auto-fill endpoint error: %s", parsed.Error)
	}

	// Only hand back fields the caller asked for.
	suggestions := make(map[string]interface{}, len(input.Fields))
	for _, field := range input.Fields {
		if value, ok := parsed.Suggestions[field]; ok {
			suggestions[field] = value
		}
	}

	return &AutofillResult{Suggestions: suggestions, Model: parsed.Model}, nil
}
