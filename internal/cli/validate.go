package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkersey/graphmail/internal/schema"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	File  string `json:"file"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <registry.cue>",
		Short: "Validate a CUE registry file without using it",
		Long: `Compile a CUE registry document and report schema problems: missing
registry name, unknown attribute kinds, enumerations without values,
duplicate attribute names.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	formatter.VerboseLog("Compiling %s", path)

	registry, err := schema.CompileFile(path)
	if err != nil {
		return outputValidationFailure(formatter, path, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, File: path})
	}
	fmt.Fprintf(formatter.Writer, "✓ %s: registry %q with %d attribute(s)\n",
		path, registry.Name(), len(registry.Attributes()))
	return nil
}

func outputValidationFailure(formatter *OutputFormatter, path string, err error) error {
	code := ErrCodeGeneric
	var ce *schema.CompileError
	if errors.As(err, &ce) {
		code = ErrCodeBadQuery
	}

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, File: path},
			Error:  &CLIError{Code: code, Message: err.Error()},
		}
		_ = json.NewEncoder(formatter.Writer).Encode(response)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed: %v", err))
	}

	fmt.Fprintf(formatter.Writer, "✗ %s\n  %s\n", path, err.Error())
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed: %v", err))
}
