// Package client submits URLs to the analysis backend and decodes its
// envelope.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/user/seo-report/internal/entity"
)

// ErrEmptyURL is returned before any request is made when the URL is blank.
var ErrEmptyURL = errors.New("please enter a valid URL")

const maxResponseBody = 20 << 20

// BackendError is a failure reported by the backend with success=false.
type BackendError struct {
	Message string
	Status  int
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
}

// Client posts URLs to the backend endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New returns a Client for the given endpoint. A nil httpClient uses
// http.DefaultClient; deadlines come from the caller's context.
func New(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpoint, httpClient: httpClient}
}

// Analyze submits rawURL and returns the successful envelope.
func (c *Client) Analyze(ctx context.Context, rawURL string) (*entity.Envelope, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, ErrEmptyURL
	}

	body, err := json.Marshal(entity.AnalyzeRequest{URL: rawURL})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", c.endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env entity.Envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)
	}

	if !env.Success {
		status := env.Status
		if status == 0 {
			status = http.StatusInternalServerError
			if resp.StatusCode >= http.StatusBadRequest {
				status = resp.StatusCode
			}
		}
		return nil, &BackendError{Message: env.Message, Status: status}
	}

	return &env, nil
}
