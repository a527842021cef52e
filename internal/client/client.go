// Package client is a Go client for the tracker API: typed calls for every
// endpoint, an in-memory cache of the board state, and the transition router
// that turns drag/drop and inline-edit gestures into status mutations with
// optimistic updates.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"tracker-backend/internal/board"
	"tracker-backend/internal/dtos"
	"tracker-backend/internal/models"
	"tracker-backend/internal/services"
)

var (
	// ErrNoToken means the session collaborator could not supply a
	// credential. Hard failure for the attempted operation.
	ErrNoToken = errors.New("no authentication token available")

	// ErrUnauthorized covers 401 and 403 responses.
	ErrUnauthorized = errors.New("not authorized")
)

// TokenSource supplies the bearer credential for each request. The session
// provider (out of process) stands behind it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource for a fixed credential.
type StaticToken string

func (t StaticToken) Token(ctx context.Context) (string, error) {
	if t == "" {
		return "", ErrNoToken
	}
	return string(t), nil
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLegacyStatusCodes makes create and full-update payloads carry the
// wire-normalized status form ("To Apply" -> "TO_APPLY") the historical
// backend expected. Status patches are never rewritten: drag/drop sends the
// resolved column title verbatim.
func WithLegacyStatusCodes() Option {
	return func(c *Client) { c.legacyStatusCodes = true }
}

type Client struct {
	baseURL           string
	http              *http.Client
	tokens            TokenSource
	legacyStatusCodes bool
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrNoToken, err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w (%s %s: %d)", ErrUnauthorized, method, path, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return fmt.Errorf("%s %s: %d: %s", method, path, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) ListApplications(ctx context.Context, status string, page, limit int) ([]models.Application, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var apps []models.Application
	if err := c.do(ctx, http.MethodGet, "/board/applications", query, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *Client) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodGet, "/board/applications/"+id, nil, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) ListByStatus(ctx context.Context, status string) ([]models.Application, error) {
	var apps []models.Application
	err := c.do(ctx, http.MethodGet, "/board/applications/status/"+url.PathEscape(status), nil, nil, &apps)
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *Client) CreateApplication(ctx context.Context, req *dtos.CreateApplicationRequest) (*models.Application, error) {
	if c.legacyStatusCodes && req.Status != "" {
		legacy := *req
		legacy.Status = board.Wire(req.Status)
		req = &legacy
	}
	var app models.Application
	if err := c.do(ctx, http.MethodPost, "/board/applications", nil, req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) UpdateApplication(ctx context.Context, id string, req *dtos.UpdateApplicationRequest) (*models.Application, error) {
	if c.legacyStatusCodes && req.Status != "" {
		legacy := *req
		legacy.Status = board.Wire(req.Status)
		req = &legacy
	}
	var app models.Application
	if err := c.do(ctx, http.MethodPut, "/board/applications/"+id, nil, req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// PatchStatus sends the status exactly as resolved; the legacy wire encoding
// never applies here.
func (c *Client) PatchStatus(ctx context.Context, id, status string) (*models.Application, error) {
	var app models.Application
	body := dtos.StatusPatchRequest{Status: status}
	if err := c.do(ctx, http.MethodPatch, "/board/applications/"+id, nil, body, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/board/applications/"+id, nil, nil, nil)
}

func (c *Client) DistinctStatuses(ctx context.Context) ([]string, error) {
	var statuses []string
	if err := c.do(ctx, http.MethodGet, "/board/applications/statuses", nil, nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (c *Client) GetProfile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/user/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req *dtos.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/api/user/profile", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Dashboard(ctx context.Context) (*services.DashboardAnalytics, error) {
	var dash services.DashboardAnalytics
	if err := c.do(ctx, http.MethodGet, "/api/analytics/dashboard", nil, nil, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}
