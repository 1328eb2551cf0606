package client

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

	"github.com/pdf3md/profilectl/internal/profiles"
	"go.uber.org/zap"
)

// Client talks to the profile service REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client rooted at baseURL (for example http://localhost:6201).
// The default http.Client has no timeout.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service origin.
func (c *Client) BaseURL() string { return c.baseURL }

type listResponse struct {
	Profiles []profiles.Summary `json:"profiles"`
}

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type duplicateRequest struct {
	NewName string `json:"newName"`
}

// List returns the profile summaries in service order.
func (c *Client) List(ctx context.Context) ([]profiles.Summary, error) {
	var out listResponse
	if err := c.do(ctx, OpList, "", http.MethodGet, "/api/profiles", nil, &out); err != nil {
		return nil, err
	}
	if out.Profiles == nil {
		return []profiles.Summary{}, nil
	}
	return out.Profiles, nil
}

// Get fetches the full profile named name.
func (c *Client) Get(ctx context.Context, name string) (profiles.Profile, error) {
	var raw json.RawMessage
	if err := c.do(ctx, OpGet, name, http.MethodGet, profilePath(name), nil, &raw); err != nil {
		return profiles.Profile{}, err
	}
	p, err := profiles.Parse(raw)
	if err != nil {
		return profiles.Profile{}, &RequestError{Op: OpGet, Name: name, Err: err}
	}
	return p, nil
}

// Create stores p as a new profile and returns the service's acknowledgement.
func (c *Client) Create(ctx context.Context, p profiles.Profile) (string, error) {
	var out messageResponse
	if err := c.do(ctx, OpCreate, p.Name, http.MethodPost, "/api/profiles", p, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Update replaces the settings of the profile named name.
func (c *Client) Update(ctx context.Context, name string, p profiles.Profile) (string, error) {
	var out messageResponse
	if err := c.do(ctx, OpUpdate, name, http.MethodPut, profilePath(name), p, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Delete removes the profile named name. Callers must not pass the default profile.
func (c *Client) Delete(ctx context.Context, name string) (string, error) {
	var out messageResponse
	if err := c.do(ctx, OpDelete, name, http.MethodDelete, profilePath(name), nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Duplicate copies sourceName to newName on the service.
func (c *Client) Duplicate(ctx context.Context, sourceName, newName string) (string, error) {
	var out messageResponse
	body := duplicateRequest{NewName: newName}
	if err := c.do(ctx, OpDuplicate, sourceName, http.MethodPost, profilePath(sourceName)+"/duplicate", body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Template fetches a pre-populated profile for a create flow.
func (c *Client) Template(ctx context.Context, name, description string) (profiles.Profile, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("description", description)

	var raw json.RawMessage
	if err := c.do(ctx, OpTemplate, name, http.MethodGet, "/api/profiles/template?"+q.Encode(), nil, &raw); err != nil {
		return profiles.Profile{}, err
	}
	p, err := profiles.Parse(raw)
	if err != nil {
		return profiles.Profile{}, &RequestError{Op: OpTemplate, Name: name, Err: err}
	}
	return p, nil
}

func profilePath(name string) string {
	return "/api/profiles/" + url.PathEscape(name)
}

// do issues one request. in, when non-nil, is sent as JSON; a 2xx body is
// decoded into out. Failures come back as *RequestError.
func (c *Client) do(ctx context.Context, op Op, name, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &RequestError{Op: op, Name: name, Err: fmt.Errorf("encoding request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &RequestError{Op: op, Name: name, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return &RequestError{Op: op, Name: name, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Op: op, Name: name, Status: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{Op: op, Name: name, Status: resp.StatusCode}
		// Only mutations surface the service message; loads use the fixed text.
		if op != OpList && op != OpGet && op != OpTemplate {
			var msg messageResponse
			if json.Unmarshal(data, &msg) == nil {
				reqErr.Message = msg.Error
			}
		}
		return reqErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &RequestError{Op: op, Name: name, Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
