// Package cli implements the stepkit command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/BDNK1/stepkit/internal/client"
	"github.com/BDNK1/stepkit/internal/config"
	"github.com/BDNK1/stepkit/registry"
)

// ErrValidationFailed is returned by commands whose inputs did not validate.
var ErrValidationFailed = errors.New("validation failed")

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	output     string
	serverURL  string

	cfg      *config.Config
	logger   *slog.Logger
	registry *registry.Registry
	backend  backend
}

// NewRootCmd builds the stepkit command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "stepkit",
		Short: "stepkit - step plugin toolkit",
		Long: `stepkit previews and validates deployment step plugins locally.

It calls a step's form and validation functions the way a host would,
either in process or through a running "stepkit serve".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath, "Path to the stepkit config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format (text, json)")
	flags.StringVarP(&opts.output, "output", "o", "yaml", "Output format (yaml, json)")
	flags.StringVar(&opts.serverURL, "server", "", "Use a running stepkit server instead of the built-in steps")

	cmd.AddCommand(
		newStepsCmd(opts),
		newInitCmd(opts),
		newFormCmd(opts),
		newValidateCmd(opts),
		newWatchCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

// Execute runs the root command and reports errors on stderr.
func Execute(ctx context.Context) error {
	cmd := NewRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, ErrValidationFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	if o.output != "yaml" && o.output != "json" {
		return fmt.Errorf("unsupported output format %q", o.output)
	}

	optional := !cmd.Flags().Changed("config")
	cfg, err := config.Load(o.configPath, optional)
	if err != nil {
		return err
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = cfg.Log.NewLogger(cmd.ErrOrStderr())
	slog.SetDefault(o.logger)

	reg, err := registry.Default()
	if err != nil {
		return err
	}
	o.registry = reg

	if o.serverURL != "" {
		c, err := client.New(client.Config{BaseURL: o.serverURL})
		if err != nil {
			return err
		}
		o.backend = c
		return nil
	}

	o.backend = &localBackend{registry: reg, variables: cfg.Variables, logger: o.logger}
	return nil
}

func (o *rootOptions) write(w io.Writer, v any) error {
	return writeOutput(w, o.output, v)
}
