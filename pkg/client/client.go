// Package client is the Go SDK for the HR administration API. It speaks the
// server's response envelope and classifies failures into transport errors
// (the request never completed) and business rejections (the server answered
// and said no). Requests are never retried; callers decide what a failure
// means for their workflow.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "hr-administration-api/pkg/errors"
)

// Config holds configuration for the API client.
type Config struct {
	BaseURL string
	// UserEmail identifies the operator on mutating requests.
	UserEmail string
	Timeout   time.Duration
}

// DefaultConfig returns a default configuration for the given server.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}

// Client is the low-level API client the typed resource clients build on.
type Client struct {
	baseURL   string
	userEmail string
	http      *http.Client
	logger    *log.Logger
}

// New creates a new API client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		userEmail: cfg.UserEmail,
		http:      &http.Client{Timeout: timeout},
		logger:    log.Default(),
	}
}

// SetLogger sets a custom logger for the client.
func (c *Client) SetLogger(logger *log.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Pagination mirrors the server's page metadata.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// envelope is the wire shape of every server response.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
	Message    string          `json:"message"`
	Errors     []string        `json:"errors"`
}

// do performs one request and decodes the envelope. A non-success envelope
// becomes a business rejection carrying the server's message; anything that
// kept the envelope from arriving becomes a transport error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (*envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.TransportError(method+" "+path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, apperrors.TransportError(method+" "+path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userEmail != "" {
		req.Header.Set("X-User-Email", c.userEmail)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.TransportError(method+" "+path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, apperrors.TransportError(method+" "+path, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperrors.TransportError(method+" "+path,
			fmt.Errorf("undecodable response (status %d): %w", resp.StatusCode, err))
	}

	if !env.Success {
		message := env.Message
		if message == "" {
			message = fmt.Sprintf("request rejected with status %d", resp.StatusCode)
		}
		rejection := apperrors.BusinessRejection(message)
		rejection.Fields = env.Errors
		return &env, rejection
	}

	return &env, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) (*envelope, error) {
	env, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return env, err
	}
	return env, c.decode(env, path, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) (*envelope, error) {
	env, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return env, err
	}
	return env, c.decode(env, path, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) (*envelope, error) {
	env, err := c.do(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		return env, err
	}
	return env, c.decode(env, path, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

func (c *Client) decode(env *envelope, path string, out interface{}) error {
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperrors.TransportError("decode "+path, err)
	}
	return nil
}
