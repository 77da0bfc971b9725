package supplier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Recommender produces supplier matches for a query with conversation
// context. The production implementation calls the external matching API;
// the canned implementation backs the simulated assistant.
type Recommender interface {
	Recommend(ctx context.Context, query string, history []ChatHistoryItem) (*Response, error)
}

// APIError is a non-2xx reply from the matching service
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("supply chain request failed with status %d", e.Status)
}

// HTTPRecommender calls the external supplier-matching API
type HTTPRecommender struct {
	url    string
	client *http.Client
}

// NewHTTPRecommender creates a client for the matching API at url
func NewHTTPRecommender(url string, timeout time.Duration) *HTTPRecommender {
	return &HTTPRecommender{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Recommend posts the query and history, returning the matched suppliers
func (r *HTTPRecommender) Recommend(ctx context.Context, query string, history []ChatHistoryItem) (*Response, error) {
	payload := Request{
		Query:       query,
		ChatHistory: history,
	}
	if payload.ChatHistory == nil {
		payload.ChatHistory = []ChatHistoryItem{}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil {
			apiErr.Message = errBody.Error
		}
		return nil, apiErr
	}

	var result Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
