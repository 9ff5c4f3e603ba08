package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStepsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List available steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			steps, err := opts.backend.Steps(cmd.Context())
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), steps)
		},
	}
}

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init <step>",
		Short: "Print the initial inputs of a step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := opts.backend.InitialInputs(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), inputs)
		},
	}
}

func newFormCmd(opts *rootOptions) *cobra.Command {
	var inputsPath string

	cmd := &cobra.Command{
		Use:   "form <step>",
		Short: "Print the form fields of a step for the given inputs",
		Long: `Print the form fields a step describes for the given inputs.

Example:
  stepkit form hello-world -f inputs.yaml
  stepkit init hello-world | stepkit form hello-world -f -
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readOptional(cmd, inputsPath)
			if err != nil {
				return err
			}

			fields, err := opts.backend.Form(cmd.Context(), args[0], inputs)
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), fields)
		},
	}

	cmd.Flags().StringVarP(&inputsPath, "file", "f", "", "Inputs file (YAML or JSON, - for stdin); initial inputs when omitted")
	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var inputsPath, varsPath string

	cmd := &cobra.Command{
		Use:   "validate <step>",
		Short: "Validate inputs of a step",
		Long: `Validate inputs of a step and print one result per checked field.

References ("${ path }") are resolved against the variables in the config
file, overridden by the --vars file. The command exits non-zero when any
result fails.

Example:
  stepkit validate hello-world -f inputs.yaml --vars vars.yaml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readOptional(cmd, inputsPath)
			if err != nil {
				return err
			}
			vars, err := readOptional(cmd, varsPath)
			if err != nil {
				return err
			}

			resp, err := opts.backend.Validate(cmd.Context(), args[0], inputs, vars)
			if err != nil {
				return err
			}
			if err := opts.write(cmd.OutOrStdout(), resp); err != nil {
				return err
			}

			if !resp.Valid {
				failed := 0
				for _, r := range resp.Results {
					if !r.Valid {
						failed++
					}
				}
				return fmt.Errorf("%w: %d of %d inputs", ErrValidationFailed, failed, len(resp.Results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputsPath, "file", "f", "", "Inputs file (YAML or JSON, - for stdin); initial inputs when omitted")
	cmd.Flags().StringVar(&varsPath, "vars", "", "Variables file used to resolve references")
	return cmd
}

// readOptional reads the document at path, or returns nil when no path was
// given.
func readOptional(cmd *cobra.Command, path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	return readDocument(path, cmd.InOrStdin())
}
