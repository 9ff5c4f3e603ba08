// Package client talks to a running stepkit server.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-resty/resty/v2"

	"github.com/BDNK1/stepkit/internal/server"
	"github.com/BDNK1/stepkit/registry"
	"github.com/BDNK1/stepkit/stepapi"
)

const DefaultMaxRetries = 2

// Config holds the client configuration. A zero Timeout takes its default
// tag; a nil MaxRetries means DefaultMaxRetries, and 0 disables retries.
type Config struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout" default:"30s"`
	MaxRetries *int          `yaml:"max_retries"`
}

type Client struct {
	http *resty.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply client defaults: %w", err)
	}

	retries := DefaultMaxRetries
	if cfg.MaxRetries != nil {
		retries = *cfg.MaxRetries
	}

	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetRetryCount(retries).
			SetRetryWaitTime(100 * time.Millisecond).
			SetHeader("Accept", "application/json"),
	}, nil
}

// Steps lists the steps the server offers.
func (c *Client) Steps(ctx context.Context) ([]registry.Manifest, error) {
	var result []registry.Manifest
	if err := c.get(ctx, "/steps", "", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// InitialInputs returns the initial inputs of step id.
func (c *Client) InitialInputs(ctx context.Context, id string) (map[string]any, error) {
	var result server.InputsResponse
	if err := c.get(ctx, "/steps/{id}/inputs", id, &result); err != nil {
		return nil, err
	}
	return result.Inputs, nil
}

// Form returns the form fields of step id for inputs.
func (c *Client) Form(ctx context.Context, id string, inputs map[string]any) ([]stepapi.FormField, error) {
	var result server.FormResponse
	if err := c.post(ctx, "/steps/{id}/form", id, server.FormRequest{Inputs: inputs}, &result); err != nil {
		return nil, err
	}
	return result.Fields, nil
}

// Validate validates inputs of step id, resolving references against vars
// on top of the server's own variables.
func (c *Client) Validate(ctx context.Context, id string, inputs, vars map[string]any) (*server.ValidateResponse, error) {
	var result server.ValidateResponse
	req := server.ValidateRequest{Inputs: inputs, Variables: vars}
	if err := c.post(ctx, "/steps/{id}/validate", id, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path, id string, result any) error {
	return c.do(ctx, resty.MethodGet, path, id, nil, result)
}

func (c *Client) post(ctx context.Context, path, id string, body, result any) error {
	return c.do(ctx, resty.MethodPost, path, id, body, result)
}

func (c *Client) do(ctx context.Context, method, path, id string, body, result any) error {
	var errResp server.ErrorResponse

	req := c.http.R().
		SetContext(ctx).
		SetResult(result).
		SetError(&errResp)
	if id != "" {
		req.SetPathParam("id", id)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}

	if resp.IsError() {
		if errResp.Message != "" {
			return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status(), errResp.Message)
		}
		return fmt.Errorf("%s %s: %s", method, path, resp.Status())
	}

	return nil
}
