package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/BDNK1/stepkit/internal/server"
	"github.com/BDNK1/stepkit/stepapi"
)

// preview is one render of a step for the watched inputs.
type preview struct {
	Step       string                   `json:"step" yaml:"step"`
	Fields     []stepapi.FormField      `json:"fields,omitempty" yaml:"fields,omitempty"`
	Validation *server.ValidateResponse `json:"validation,omitempty" yaml:"validation,omitempty"`
	Error      string                   `json:"error,omitempty" yaml:"error,omitempty"`
}

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var (
		inputsPath string
		varsPath   string
		debounce   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <step>",
		Short: "Re-render the form and validation of a step whenever its inputs file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputsPath == "-" || varsPath == "-" {
				return fmt.Errorf("watch needs files, not stdin")
			}
			if debounce <= 0 {
				return fmt.Errorf("--debounce must be positive, got %s", debounce)
			}
			w := &watcher{
				step:       args[0],
				inputsPath: inputsPath,
				varsPath:   varsPath,
				debounce:   debounce,
				backend:    opts.backend,
				logger:     opts.logger,
				out:        cmd.OutOrStdout(),
				write:      opts.write,
			}
			return w.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&inputsPath, "file", "f", "", "Inputs file to watch (YAML or JSON)")
	cmd.Flags().StringVar(&varsPath, "vars", "", "Variables file used to resolve references; watched as well")
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "Quiet period before re-rendering after a change")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

type watcher struct {
	step       string
	inputsPath string
	varsPath   string
	debounce   time.Duration
	backend    backend
	logger     *slog.Logger
	out        io.Writer
	write      func(io.Writer, any) error
}

func (w *watcher) run(ctx context.Context) error {
	paths := make(map[string]bool)
	for _, p := range []string{w.inputsPath, w.varsPath} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %q: %w", p, err)
		}
		paths[abs] = true
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	// Directories are watched so editors that save by renaming are seen.
	for p := range paths {
		dir := filepath.Dir(p)
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	if err := w.render(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	var changedAt time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !paths[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.logger.Debug("Input file changed", "file", event.Name, "op", event.Op.String())
				changedAt = time.Now()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watch error", "error", err)

		case <-ticker.C:
			if changedAt.IsZero() || time.Since(changedAt) < w.debounce {
				continue
			}
			changedAt = time.Time{}
			if err := w.render(ctx); err != nil {
				return err
			}
		}
	}
}

// render writes one preview document. Failures to read or evaluate the
// inputs are reported in the preview so watching can continue; only output
// errors stop the loop.
func (w *watcher) render(ctx context.Context) error {
	p := w.preview(ctx)
	if p.Error != "" {
		w.logger.Warn("Failed to render step", "step", w.step, "error", p.Error)
	}

	if _, err := io.WriteString(w.out, "---\n"); err != nil {
		return err
	}
	return w.write(w.out, p)
}

func (w *watcher) preview(ctx context.Context) preview {
	p := preview{Step: w.step}

	inputs, err := readDocument(w.inputsPath, nil)
	if err != nil {
		p.Error = err.Error()
		return p
	}

	var vars map[string]any
	if w.varsPath != "" {
		if vars, err = readDocument(w.varsPath, nil); err != nil {
			p.Error = err.Error()
			return p
		}
	}

	if p.Fields, err = w.backend.Form(ctx, w.step, inputs); err != nil {
		p.Error = err.Error()
		return p
	}
	if p.Validation, err = w.backend.Validate(ctx, w.step, inputs, vars); err != nil {
		p.Error = err.Error()
	}
	return p
}
