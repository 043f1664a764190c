package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkersey/graphmail/internal/attr"
	"github.com/mkersey/graphmail/internal/odata"
	"github.com/mkersey/graphmail/internal/schema"
)

// FieldInfo describes one attribute for output.
type FieldInfo struct {
	Name   string   `json:"name"`
	Remote string   `json:"remote"`
	Kind   string   `json:"kind"`
	Values []string `json:"values,omitempty"`
}

// FieldsResult holds the fields listing.
type FieldsResult struct {
	Registry string      `json:"registry"`
	Fields   []FieldInfo `json:"fields"`
}

// NewFieldsCommand creates the fields command.
func NewFieldsCommand(rootOpts *RootOptions) *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "fields <registry>",
		Short: "List the queryable attributes of a registry",
		Long: `List the attributes of a built-in registry (message, folder, contact,
event) or of a registry compiled from a CUE schema file, including each
attribute's remote spelling and, for enumerations, its value set.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runFields(rootOpts, name, schemaPath, cmd)
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "CUE registry file instead of a built-in registry")

	return cmd
}

func runFields(opts *RootOptions, name, schemaPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	registry, err := resolveRegistry(name, schemaPath)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "fields", err)
	}

	result := FieldsResult{Registry: registry.Name()}
	for _, a := range registry.Attributes() {
		info := FieldInfo{
			Name:   a.Name(),
			Remote: odata.ToCamel(a.Name()),
			Kind:   a.Kind().String(),
		}
		for _, v := range a.Enumeration() {
			info.Values = append(info.Values, fmt.Sprintf("%s=%s", v.Name, v.Value))
		}
		result.Fields = append(result.Fields, info)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "registry: %s\n", result.Registry)
	for _, f := range result.Fields {
		fmt.Fprintf(formatter.Writer, "  %-32s %-18s %s", f.Name, f.Remote, f.Kind)
		if len(f.Values) > 0 {
			fmt.Fprintf(formatter.Writer, " [%s]", strings.Join(f.Values, ", "))
		}
		fmt.Fprintln(formatter.Writer)
	}
	return nil
}

// resolveRegistry picks the registry named by the args: a CUE schema
// file wins over a built-in name.
func resolveRegistry(name, schemaPath string) (*attr.Registry, error) {
	if schemaPath != "" {
		return schema.CompileFile(schemaPath)
	}
	if name == "" {
		return nil, fmt.Errorf("a registry name or --schema file is required")
	}
	registry, ok := attr.BuiltinRegistry(name)
	if !ok {
		return nil, fmt.Errorf("unknown registry %q: want message, folder, contact or event", name)
	}
	return registry, nil
}
