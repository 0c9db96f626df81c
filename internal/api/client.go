// Package api is the HTTP client for the crew backend. The backend owns all
// crew state; every method here is a single request/response round trip.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hay-kot/a4s/internal/core/crew"
	"github.com/hay-kot/a4s/internal/core/logging"
)

const (
	headerRequestID = "X-Request-ID"
	maxErrorBody    = 4 << 10
)

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Headers map[string]string

	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the crew backend REST API.
type Client struct {
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a client for the backend at opts.BaseURL.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		headers:    opts.Headers,
		httpClient: httpClient,
		log:        logging.Component("api"),
	}
}

// BaseURL returns the backend address the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CloseIdleConnections closes any keep-alive connections held by the
// underlying HTTP client.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// ListCrews fetches every crew: GET /crews.
func (c *Client) ListCrews(ctx context.Context) ([]crew.Crew, error) {
	body, err := c.do(ctx, "list crews", http.MethodGet, "/crews", nil)
	if err != nil {
		return nil, err
	}
	return crew.DecodeCrewList(body)
}

// CreateCrew creates a crew: POST /crew.
func (c *Client) CreateCrew(ctx context.Context, payload crew.CreatePayload) (crew.Crew, error) {
	bits, err := json.Marshal(payload)
	if err != nil {
		return crew.Crew{}, fmt.Errorf("encode create payload: %w", err)
	}

	body, err := c.do(ctx, "create crew", http.MethodPost, "/crew", bits)
	if err != nil {
		return crew.Crew{}, err
	}
	return decodeCrew("create crew", body)
}

// ExecuteCrew starts a crew: POST /crews/{id}/execute. A nil payload sends no
// body at all.
func (c *Client) ExecuteCrew(ctx context.Context, crewID string, payload json.RawMessage) (crew.Crew, error) {
	ctx = logging.WithCrewID(ctx, crewID)

	body, err := c.do(ctx, "execute crew", http.MethodPost, "/crews/"+url.PathEscape(crewID)+"/execute", payload)
	if err != nil {
		return crew.Crew{}, err
	}
	return decodeCrew("execute crew", body)
}

// CrewStatus re-reads a crew's execution status:
// GET /crews/{id}/execute/status.
func (c *Client) CrewStatus(ctx context.Context, crewID string) (crew.Crew, error) {
	ctx = logging.WithCrewID(ctx, crewID)

	body, err := c.do(ctx, "crew status", http.MethodGet, "/crews/"+url.PathEscape(crewID)+"/execute/status", nil)
	if err != nil {
		return crew.Crew{}, err
	}
	return decodeCrew("crew status", body)
}

// ListExecutions fetches the executions of one crew:
// GET /executions?crew_id={id}.
func (c *Client) ListExecutions(ctx context.Context, crewID string) ([]crew.Execution, error) {
	ctx = logging.WithCrewID(ctx, crewID)

	q := url.Values{"crew_id": []string{crewID}}
	body, err := c.do(ctx, "list executions", http.MethodGet, "/executions?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return crew.DecodeExecutionList(body)
}

// DeleteCrew removes a crew: DELETE /crews/{id}.
func (c *Client) DeleteCrew(ctx context.Context, crewID string) error {
	ctx = logging.WithCrewID(ctx, crewID)

	_, err := c.do(ctx, "delete crew", http.MethodDelete, "/crews/"+url.PathEscape(crewID), nil)
	return err
}

// do performs one request and returns the response body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, path string, body []byte) ([]byte, error) {
	requestID := uuid.NewString()
	ctx = logging.WithRequestID(ctx, requestID)
	l := logging.Ctx(ctx, c.log)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	l.Debug().Str("method", method).Str("path", path).Msg("request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		l.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg("request failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &Error{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(text)),
		}
		l.Debug().
			Int("status", resp.StatusCode).
			Dur("elapsed", time.Since(start)).
			Msg("request rejected")
		return nil, apiErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", op, err)
	}

	l.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("response")

	return data, nil
}

func decodeCrew(op string, body []byte) (crew.Crew, error) {
	var out crew.Crew
	if err := json.Unmarshal(body, &out); err != nil {
		return crew.Crew{}, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return out, nil
}
