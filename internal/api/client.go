package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cinevers-client/internal/dto/response"
	"cinevers-client/pkg/utils"

	"go.uber.org/zap"
)

// envelope mirrors the backend's {status, message, data, errors} wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  json.RawMessage `json:"errors,omitempty"`
}

// Client is the shared request core: one base URL, one uniform timeout,
// bearer attach from the credential store, envelope decoding and the
// error taxonomy. Services wrap it with typed methods.
type Client struct {
	baseURL          string
	http             *http.Client
	creds            *Credentials
	role             Role
	onSessionExpired func(Role)
	log              *zap.Logger
}

func NewClient(cfg utils.APIConfig, creds *Credentials, log *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if cfg.TimeoutSeconds <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		role:    RoleCustomer,
		log:     log.With(zap.String("component", "api")),
	}
}

// WithRole returns a client bound to the given credential namespace.
// The underlying transport and credential store are shared.
func (c *Client) WithRole(role Role) *Client {
	clone := *c
	clone.role = role
	return &clone
}

func (c *Client) Role() Role {
	return c.role
}

func (c *Client) Credentials() *Credentials {
	return c.creds
}

// OnSessionExpired registers the hook invoked after a 401 cleared the
// active role's credential (the UI redirects to its login entry here).
func (c *Client) OnSessionExpired(fn func(Role)) {
	c.onSessionExpired = fn
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if token, ok := c.creds.Token(c.role); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// A cancelled page load is not a backend failure
		if errors.Is(err, context.Canceled) {
			return err
		}
		c.log.Warn("Request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer resp.Body.Close()

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil && decodeErr != io.EOF {
		return fmt.Errorf("decode response: %w", decodeErr)
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		if out != nil && len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, out); err != nil {
				return fmt.Errorf("decode response data: %w", err)
			}
		}
		return nil

	case resp.StatusCode == http.StatusUnauthorized:
		// Clear only the credential the request was made with, then let
		// the UI route to the matching login entry.
		c.creds.Clear(c.role)
		c.log.Warn("Session expired, credential cleared",
			zap.String("role", string(c.role)),
			zap.String("path", path))
		if c.onSessionExpired != nil {
			c.onSessionExpired(c.role)
		}
		return fmt.Errorf("%s: %w", messageOr(env.Message, "session expired"), ErrUnauthorized)

	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", messageOr(env.Message, "access denied"), ErrForbidden)

	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", messageOr(env.Message, path), ErrNotFound)

	case resp.StatusCode == http.StatusConflict:
		conflict := &ConflictError{Message: messageOr(env.Message, "seats no longer available")}
		if len(env.Errors) > 0 {
			var details response.ConflictDetails
			if err := json.Unmarshal(env.Errors, &details); err == nil {
				conflict.TakenSeats = details.TakenSeats
			}
		}
		return conflict

	default:
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			Errors:     env.Errors,
		}
	}
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
