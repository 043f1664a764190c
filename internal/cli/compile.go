package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkersey/graphmail/internal/attr"
	"github.com/mkersey/graphmail/internal/expr"
	"github.com/mkersey/graphmail/internal/odata"
	"github.com/mkersey/graphmail/internal/query"
	"github.com/mkersey/graphmail/internal/store"
)

// CompileResult holds the compiled query parameters.
type CompileResult struct {
	Select      string `json:"select,omitempty"`
	Filter      string `json:"filter,omitempty"`
	OrderBy     string `json:"orderby,omitempty"`
	Top         int    `json:"top,omitempty"`
	Fingerprint string `json:"fingerprint"`
}

// compileOptions holds the compile command's flags.
type compileOptions struct {
	registry   string
	schemaPath string
	selects    []string
	wheres     []string
	any        bool
	order      string
	top        int
}

// odataProtocol compiles against the Outlook wire conventions without
// needing a live session.
type odataProtocol struct{}

func (odataProtocol) Casing(name string) string { return odata.ToCamel(name) }
func (odataProtocol) NewBuilder() query.Builder { return odata.NewBuilder() }

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &compileOptions{}

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a query to its remote parameters without executing it",
		Long: `Build a query from flags and print the OData parameters it would send,
plus the query's content-addressed fingerprint.

Conditions take the form "<attribute> <op> <value>", with an optional
"not " prefix:

  graphmail compile --where "subject contains invoice" --where "not is_read"
  graphmail compile --registry event --where "importance is HIGH"

Ops: eq ne lt le gt ge contains startswith endswith is. A bare boolean
attribute name is shorthand for "<attribute> eq true".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.registry, "registry", "message", "built-in registry (message|folder|contact|event)")
	cmd.Flags().StringVar(&opts.schemaPath, "schema", "", "CUE registry file instead of a built-in registry")
	cmd.Flags().StringSliceVar(&opts.selects, "select", nil, "attributes to project")
	cmd.Flags().StringArrayVar(&opts.wheres, "where", nil, "filter condition, repeatable")
	cmd.Flags().BoolVar(&opts.any, "any", false, "join conditions with OR instead of AND")
	cmd.Flags().StringVar(&opts.order, "order", "", `ordering, e.g. "received_date_time desc"`)
	cmd.Flags().IntVar(&opts.top, "top", 0, "maximum result count")

	return cmd
}

func runCompile(rootOpts *RootOptions, opts *compileOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	registry, err := resolveRegistry(opts.registry, opts.schemaPath)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "compile", err)
	}

	q := query.NewDetached[struct{}](odataProtocol{})

	if len(opts.selects) > 0 {
		attrs, err := lookupAll(registry, opts.selects)
		if err != nil {
			_ = formatter.Error(ErrCodeBadQuery, err.Error(), nil)
			return WrapExitError(ExitFailure, "compile", err)
		}
		q.Select(attrs...)
	}

	if len(opts.wheres) > 0 {
		cond, err := buildCondition(registry, opts.wheres, opts.any)
		if err != nil {
			_ = formatter.Error(ErrCodeBadQuery, err.Error(), nil)
			return WrapExitError(ExitFailure, "compile", err)
		}
		q.Where(cond)
	}

	if opts.order != "" {
		q.OrderBy(parseOrderFlag(registry, opts.order))
	}
	if opts.top > 0 {
		q.Limit(opts.top)
	}

	if err := q.Err(); err != nil {
		_ = formatter.Error(ErrCodeBadQuery, err.Error(), nil)
		return WrapExitError(ExitFailure, "compile", err)
	}

	builder, ok := q.Builder().(*odata.Builder)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unexpected builder %T", q.Builder()))
	}
	params := builder.Values()

	result := CompileResult{
		Select:      params.Get("$select"),
		Filter:      params.Get("$filter"),
		OrderBy:     params.Get("$orderby"),
		Top:         opts.top,
		Fingerprint: store.QueryFingerprint(params),
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if result.Select != "" {
		fmt.Fprintf(formatter.Writer, "$select:  %s\n", result.Select)
	}
	if result.Filter != "" {
		fmt.Fprintf(formatter.Writer, "$filter:  %s\n", result.Filter)
	}
	if result.OrderBy != "" {
		fmt.Fprintf(formatter.Writer, "$orderby: %s\n", result.OrderBy)
	}
	if result.Top > 0 {
		fmt.Fprintf(formatter.Writer, "$top:     %d\n", result.Top)
	}
	fmt.Fprintf(formatter.Writer, "fingerprint: %s\n", result.Fingerprint)
	return nil
}

// lookupAll resolves registry names, failing on the first unknown one.
func lookupAll(registry *attr.Registry, names []string) ([]*attr.Attribute, error) {
	attrs := make([]*attr.Attribute, len(names))
	for i, name := range names {
		a, ok := registry.Lookup(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("registry %q has no attribute %q", registry.Name(), name)
		}
		attrs[i] = a
	}
	return attrs, nil
}

// buildCondition folds the parsed conditions into one expression tree,
// left to right.
func buildCondition(registry *attr.Registry, wheres []string, anyOf bool) (expr.Resolvable, error) {
	var cond expr.Resolvable
	for _, w := range wheres {
		c, err := parseCondition(registry, w)
		if err != nil {
			return nil, err
		}
		switch {
		case cond == nil:
			cond = c
		case anyOf:
			cond = expr.Or(cond, c)
		default:
			cond = expr.And(cond, c)
		}
	}
	return cond, nil
}

// parseCondition parses one "<attribute> <op> <value>" clause. A
// leading "not " negates it; a bare attribute name means equals-true.
func parseCondition(registry *attr.Registry, s string) (*expr.Comparison, error) {
	s = strings.TrimSpace(s)
	negated := false
	if rest, ok := strings.CutPrefix(s, "not "); ok {
		negated = true
		s = strings.TrimSpace(rest)
	}

	parts := strings.SplitN(s, " ", 3)
	a, ok := registry.Lookup(parts[0])
	if !ok {
		return nil, fmt.Errorf("registry %q has no attribute %q", registry.Name(), parts[0])
	}

	var cond *expr.Comparison
	switch len(parts) {
	case 1:
		cond = a.Eq(true)
	case 3:
		value := parseValue(parts[2])
		switch parts[1] {
		case "eq":
			cond = a.Eq(value)
		case "ne":
			cond = a.Ne(value)
		case "lt":
			cond = a.Lt(value)
		case "le":
			cond = a.Le(value)
		case "gt":
			cond = a.Gt(value)
		case "ge":
			cond = a.Ge(value)
		case "contains":
			cond = a.Contains(parts[2])
		case "startswith":
			cond = a.StartsWith(parts[2])
		case "endswith":
			cond = a.EndsWith(parts[2])
		case "is":
			cond = a.Is(parts[2])
		default:
			return nil, fmt.Errorf("unknown op %q in condition %q", parts[1], s)
		}
	default:
		return nil, fmt.Errorf("condition %q: want \"<attribute> <op> <value>\"", s)
	}

	if err := cond.Err(); err != nil {
		return nil, err
	}
	if negated {
		cond.Negate()
	}
	return cond, nil
}

// parseValue coerces a raw flag value: booleans and integers become
// typed, quoted strings are unquoted, everything else stays a string.
func parseValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if len(raw) >= 2 && raw[0] == '\'' && raw[len(raw)-1] == '\'' {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// parseOrderFlag maps the flag's registry-name spelling onto an
// attribute order when possible, falling back to the raw string so
// remote spellings keep working.
func parseOrderFlag(registry *attr.Registry, s string) any {
	name, dir, found := strings.Cut(strings.TrimSpace(s), " ")
	if a, ok := registry.Lookup(name); ok {
		if found && strings.TrimSpace(dir) == "desc" {
			return a.Desc()
		}
		return a.Asc()
	}
	return s
}
