package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// QuoteRequest is the payload posted to the quote store.
type QuoteRequest struct {
	CustomerName     string   `json:"customer_name"`
	CustomerEmail    string   `json:"customer_email"`
	CustomerPhone    string   `json:"customer_phone,omitempty"`
	ShopName         string   `json:"shop_name,omitempty"`
	ShopAddress      string   `json:"shop_address"`
	ShopLatitude     float64  `json:"shop_latitude"`
	ShopLongitude    float64  `json:"shop_longitude"`
	MachineType      string   `json:"machine_type,omitempty"`
	IssueDescription string   `json:"issue_description"`
	PreferredDate    string   `json:"preferred_date,omitempty"`
	TravelDistance   *float64 `json:"travel_distance,omitempty"`
}

// Confirmation is the server's answer to a stored quote.
type Confirmation struct {
	QuoteID        int64    `json:"quote_id"`
	EstimatedCost  float64  `json:"estimated_cost"`
	TravelDistance *float64 `json:"travel_distance,omitempty"`
}

// Submitter stores a quote request.
type Submitter interface {
	Submit(ctx context.Context, req QuoteRequest) (*Confirmation, error)
}

// HTTPSubmitter posts to /api/quotes.
type HTTPSubmitter struct {
	endpoint string
	client   *http.Client
}

func NewHTTPSubmitter(baseURL string, client *http.Client) (*HTTPSubmitter, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("new http submitter: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("new http submitter: base url %q must be absolute", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPSubmitter{endpoint: u.JoinPath("/api/quotes").String(), client: client}, nil
}

type submitResponse struct {
	Success bool `json:"success"`
	Confirmation
	Error string `json:"error"`
}

func (s *HTTPSubmitter) Submit(ctx context.Context, req QuoteRequest) (*Confirmation, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode quote: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("post quote: %w", err)
	}
	defer resp.Body.Close()

	var body submitResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if body.Error != "" {
			return nil, fmt.Errorf("post quote: %s: %s", resp.Status, body.Error)
		}
		return nil, fmt.Errorf("post quote: %s", resp.Status)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	if !body.Success {
		return nil, errors.New("post quote: server did not accept the quote")
	}

	conf := body.Confirmation
	return &conf, nil
}
