package cli

import (
	"context"
	"log/slog"
	"maps"

	"github.com/BDNK1/stepkit/internal/harness"
	"github.com/BDNK1/stepkit/internal/server"
	"github.com/BDNK1/stepkit/registry"
	"github.com/BDNK1/stepkit/stepapi"
)

// backend is what the commands need from a step host. The local backend
// calls registered steps in process; the remote one is *client.Client.
type backend interface {
	Steps(ctx context.Context) ([]registry.Manifest, error)
	InitialInputs(ctx context.Context, id string) (map[string]any, error)
	Form(ctx context.Context, id string, inputs map[string]any) ([]stepapi.FormField, error)
	Validate(ctx context.Context, id string, inputs, vars map[string]any) (*server.ValidateResponse, error)
}

type localBackend struct {
	registry  *registry.Registry
	variables map[string]any
	logger    *slog.Logger
}

func (b *localBackend) Steps(_ context.Context) ([]registry.Manifest, error) {
	return b.registry.List(), nil
}

func (b *localBackend) InitialInputs(_ context.Context, id string) (map[string]any, error) {
	step, err := b.registry.Get(id)
	if err != nil {
		return nil, err
	}
	return step.InitialInputs()
}

func (b *localBackend) Form(_ context.Context, id string, inputs map[string]any) ([]stepapi.FormField, error) {
	step, err := b.registry.Get(id)
	if err != nil {
		return nil, err
	}
	return step.Form(inputs, harness.FieldBuilders())
}

func (b *localBackend) Validate(_ context.Context, id string, inputs, vars map[string]any) (*server.ValidateResponse, error) {
	step, err := b.registry.Get(id)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]any, len(b.variables)+len(vars))
	maps.Copy(merged, b.variables)
	maps.Copy(merged, vars)

	validate := harness.NewValidate(harness.NewResolver(merged), b.logger.With("step", id))
	results, err := step.Validate(inputs, validate)
	if err != nil {
		return nil, err
	}
	return &server.ValidateResponse{Valid: stepapi.Valid(results), Results: results}, nil
}
