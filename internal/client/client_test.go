package client

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BDNK1/stepkit/internal/server"
	"github.com/BDNK1/stepkit/registry"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	reg, err := registry.Default()
	if err != nil {
		t.Fatalf("registry.Default failed: %v", err)
	}
	srv := server.New(reg,
		server.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		server.WithVariables(map[string]any{"Deployer": "Dana"}),
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	c, err := New(Config{BaseURL: ts.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("Expected error for empty base url, got nil")
	}
}

func TestNew_MaxRetries(t *testing.T) {
	zero, five := 0, 5

	tests := []struct {
		name       string
		maxRetries *int
		want       int
	}{
		{"unset uses default", nil, DefaultMaxRetries},
		{"zero disables retries", &zero, 0},
		{"explicit value", &five, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(Config{BaseURL: "http://localhost", MaxRetries: tt.maxRetries})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if c.http.RetryCount != tt.want {
				t.Errorf("Expected RetryCount=%d, got %d", tt.want, c.http.RetryCount)
			}
		})
	}
}

func TestClient_Steps(t *testing.T) {
	c := newTestClient(t)

	steps, err := c.Steps(context.Background())
	if err != nil {
		t.Fatalf("Steps failed: %v", err)
	}
	if len(steps) != 1 || steps[0].ID != "hello-world" {
		t.Errorf("Unexpected steps: %+v", steps)
	}
}

func TestClient_InitialInputsAndForm(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	inputs, err := c.InitialInputs(ctx, "hello-world")
	if err != nil {
		t.Fatalf("InitialInputs failed: %v", err)
	}
	if inputs["name"] != "" {
		t.Errorf("Expected empty name, got %v", inputs)
	}

	inputs["name"] = "Alice"
	fields, err := c.Form(ctx, "hello-world", inputs)
	if err != nil {
		t.Fatalf("Form failed: %v", err)
	}
	if len(fields) != 1 || fields[0].Value != "Alice" || fields[0].Label != "Greeting Name" {
		t.Errorf("Unexpected fields: %+v", fields)
	}
}

func TestClient_Validate(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	resp, err := c.Validate(ctx, "hello-world", map[string]any{"name": ""}, nil)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if resp.Valid || len(resp.Results) != 1 || resp.Results[0].Message != "Name can not be empty" {
		t.Errorf("Expected empty-name failure, got %+v", resp)
	}

	resp, err = c.Validate(ctx, "hello-world", map[string]any{"name": "${ Deployer }"}, nil)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !resp.Valid {
		t.Errorf("Expected server variable to resolve, got %+v", resp)
	}
}

func TestClient_UnknownStep(t *testing.T) {
	c := newTestClient(t)

	_, err := c.InitialInputs(context.Background(), "missing")
	if err == nil {
		t.Fatal("Expected error for unknown step, got nil")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "Unknown step: missing") {
		t.Errorf("Expected 404 with server message, got: %v", err)
	}
}
