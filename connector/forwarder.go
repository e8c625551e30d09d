package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ddebortoli/darwin-ia-challenge/models"
)

// ErrDeliveryFailure reports that the bot service could not be reached or
// did not answer with a usable response.
var ErrDeliveryFailure = errors.New("bot service delivery failure")

// Forwarder calls the bot service's /process-expense endpoint.
type Forwarder struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewForwarder builds a forwarder for the given bot service base URL.
func NewForwarder(baseURL, apiKey string, timeout time.Duration) *Forwarder {
	return &Forwarder{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ProcessExpense forwards one message and returns the bot service's verdict.
// Each call is stamped with a fresh X-Request-ID for cross-service tracing.
func (f *Forwarder) ProcessExpense(ctx context.Context, externalUserID, text string) (*models.ProcessResponse, error) {
	reqBody := models.ProcessRequest{
		ExternalUserID: externalUserID,
		Message:        text,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/process-expense", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if f.apiKey != "" {
		req.Header.Set("X-API-Key", f.apiKey)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrDeliveryFailure, resp.StatusCode)
	}

	var result models.ProcessResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}
	return &result, nil
}
