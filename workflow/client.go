package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"wedding_server/models"
	"wedding_server/services"
)

// HTTPClient talks to the deployed RSVP API
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPClient creates a client for the API at the given base URL
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{BaseURL: baseURL, Client: http.DefaultClient}
}

// Lookup calls POST /api/rsvp/lookup
func (c *HTTPClient) Lookup(ctx context.Context, firstName, lastName string) (*models.Invitation, error) {
	body, err := json.Marshal(models.LookupRequest{FirstName: firstName, LastName: lastName})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrLookupFailed, err)
	}

	resp, err := c.post(ctx, "/api/rsvp/lookup", body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var invitation models.Invitation
		if err := json.NewDecoder(resp.Body).Decode(&invitation); err != nil {
			return nil, fmt.Errorf("%w: %v", services.ErrLookupFailed, err)
		}
		return &invitation, nil
	case http.StatusNotFound:
		return nil, services.ErrGuestNotFound
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", services.ErrLookupFailed, resp.StatusCode)
	}
}

// Submit calls POST /api/rsvp/submit
func (c *HTTPClient) Submit(ctx context.Context, req *models.SubmitRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: %v", services.ErrSubmitFailed, err)
	}

	resp, err := c.post(ctx, "/api/rsvp/submit", body)
	if err != nil {
		return fmt.Errorf("%w: %v", services.ErrSubmitFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", services.ErrSubmitFailed, resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.Client.Do(req)
}
