package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"legalconsult-backend/models"
)

// ResponseEnhancer post-processes an assembled response. It receives its own
// copy and returns a new response rather than editing the caller's.
type ResponseEnhancer interface {
	Enhance(ctx context.Context, resp models.ConsultationResponse, query, firmID string) (*models.ConsultationResponse, error)
}

// PassthroughEnhancer returns the response unchanged
type PassthroughEnhancer struct{}

// Enhance returns a copy of resp
func (PassthroughEnhancer) Enhance(ctx context.Context, resp models.ConsultationResponse, query, firmID string) (*models.ConsultationResponse, error) {
	out := resp.Clone()
	return &out, nil
}

// maxEnhancerResponseSize bounds the body read from the feedback service
const maxEnhancerResponseSize = 4 << 20

// HTTPEnhancer sends responses to an external feedback service
type HTTPEnhancer struct {
	url    string
	client *http.Client
}

// NewHTTPEnhancer creates an enhancer that POSTs to url
func NewHTTPEnhancer(url string, timeout time.Duration) *HTTPEnhancer {
	return &HTTPEnhancer{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type enhanceRequest struct {
	Response models.ConsultationResponse `json:"response"`
	Query    string                      `json:"query"`
	FirmID   string                      `json:"firm_id,omitempty"`
}

type enhanceResponse struct {
	Response *models.ConsultationResponse `json:"response"`
}

// Enhance POSTs {response, query, firm_id} and decodes {response}
func (e *HTTPEnhancer) Enhance(ctx context.Context, resp models.ConsultationResponse, query, firmID string) (*models.ConsultationResponse, error) {
	jsonData, err := json.Marshal(enhanceRequest{Response: resp, Query: query, FirmID: firmID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxEnhancerResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("enhancer error: %d - %s", httpResp.StatusCode, string(body))
	}

	var decoded enhanceResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if decoded.Response == nil {
		return nil, errors.New("enhancer returned no response")
	}

	return decoded.Response, nil
}
