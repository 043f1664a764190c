package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkersey/graphmail/internal/attr"
	"github.com/mkersey/graphmail/internal/expr"
)

// Builder is the remote query builder contract. The compiler drives
// it through these primitives in a strict left-to-right, depth-first
// order; the builder is free to spell the result however its remote
// grammar requires.
type Builder interface {
	// Select replaces the projection with the given remote names.
	Select(names ...string)

	// ClearFilters drops all accumulated filter state.
	ClearFilters()

	// ClearOrder drops the accumulated ordering.
	ClearOrder()

	// OnAttribute sets the attribute the next comparator applies to.
	OnAttribute(name string)

	Equals(v any)
	NotEquals(v any)
	Less(v any)
	LessEqual(v any)
	Greater(v any)
	GreaterEqual(v any)
	Contains(v any)
	StartsWith(v any)
	EndsWith(v any)

	// Negate toggles the negation scope for subsequent comparator
	// calls until toggled again.
	Negate()

	// Chain splices a logical connective between conditions.
	Chain(op expr.Operator)

	// OpenGroup and CloseGroup bracket a precedence group.
	OpenGroup()
	CloseGroup()

	// OrderBy replaces the ordering.
	OrderBy(name string, ascending bool)
}

// Protocol supplies the naming convention and builder construction
// for one remote API.
type Protocol interface {
	// Casing converts a registry attribute name into the remote
	// API's spelling.
	Casing(name string) string

	// NewBuilder creates an empty builder for one query.
	NewBuilder() Builder
}

// Container is a remote collection a query runs against. Fetch
// receives the fully configured builder plus the query's limit (zero
// meaning the remote default) and returns the matching results.
type Container[T any] interface {
	Protocol() Protocol
	Fetch(ctx context.Context, b Builder, limit int) ([]T, error)
}

// Query accumulates select/where/order/limit intents against one
// container and compiles them into the container's builder. Not safe
// for concurrent use.
type Query[T any] struct {
	container Container[T]
	protocol  Protocol
	builder   Builder
	limit     int
	err       error
}

// New creates a query scoped to the given container.
func New[T any](c Container[T]) *Query[T] {
	p := c.Protocol()
	return &Query[T]{container: c, protocol: p, builder: p.NewBuilder()}
}

// NewDetached creates a query with no container, for inspecting the
// compiled builder without executing. Execute returns ErrDetached.
func NewDetached[T any](p Protocol) *Query[T] {
	return &Query[T]{protocol: p, builder: p.NewBuilder()}
}

// fail records the first error and makes the query inert.
func (q *Query[T]) fail(err error) *Query[T] {
	if q.err == nil {
		q.err = err
	}
	return q
}

// Err returns the first usage or compile error recorded on the query.
func (q *Query[T]) Err() error {
	return q.err
}

// Builder exposes the owned builder. It is fully configured once the
// clause-setting calls are done; containers receive it via Fetch.
func (q *Query[T]) Builder() Builder {
	return q.builder
}

// Select replaces the projection with the given attributes. The
// attributes' registry names are converted through the protocol's
// casing function and issued as a single builder call.
func (q *Query[T]) Select(attrs ...*attr.Attribute) *Query[T] {
	if q.err != nil {
		return q
	}
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = q.protocol.Casing(a.Name())
	}
	q.builder.Select(names...)
	return q
}

// Where replaces the filter with the given expression. Prior filter
// state is cleared before the new tree is compiled, so only the last
// Where call is reflected in the builder.
func (q *Query[T]) Where(cond expr.Resolvable) *Query[T] {
	if q.err != nil {
		return q
	}
	q.builder.ClearFilters()
	if cond == nil {
		return q.fail(&CompileError{
			Message:  "where requires an expression",
			Expected: "*expr.Comparison or *expr.Clause",
		})
	}
	el, err := cond.Resolve()
	if err != nil {
		return q.fail(err)
	}
	if err := q.compile(el); err != nil {
		return q.fail(err)
	}
	return q
}

// OrderBy replaces the ordering. It accepts a direction-tagged
// attribute (attr.Order), a bare attribute (defaults to ascending),
// or a raw remote ordering string such as "receivedDateTime desc".
func (q *Query[T]) OrderBy(order any) *Query[T] {
	if q.err != nil {
		return q
	}
	q.builder.ClearOrder()
	switch o := order.(type) {
	case attr.Order:
		if err := o.Err(); err != nil {
			return q.fail(err)
		}
		q.builder.OrderBy(q.protocol.Casing(o.Attr.Name()), o.Ascending)
	case *attr.Attribute:
		ord := o.Asc()
		if err := ord.Err(); err != nil {
			return q.fail(err)
		}
		q.builder.OrderBy(q.protocol.Casing(o.Name()), true)
	case string:
		name, ascending := parseOrderString(o)
		q.builder.OrderBy(name, ascending)
	default:
		return q.fail(&CompileError{
			Value:    order,
			Message:  "unrecognized order_by argument",
			Expected: "attr.Order, *attr.Attribute or string",
		})
	}
	return q
}

// Limit stores the maximum result count. It is applied by the
// container's fetch call rather than the builder; the last value
// wins.
func (q *Query[T]) Limit(n int) *Query[T] {
	if q.err != nil {
		return q
	}
	if n <= 0 {
		return q.fail(fmt.Errorf("query: limit must be positive, got %d", n))
	}
	q.limit = n
	return q
}

// Execute hands the compiled builder to the container's fetch. The
// builder remains configured afterwards, so a subsequent Execute with
// a new limit reuses the same clauses.
func (q *Query[T]) Execute(ctx context.Context) ([]T, error) {
	if q.err != nil {
		return nil, q.err
	}
	if q.container == nil {
		return nil, ErrDetached
	}
	return q.container.Fetch(ctx, q.builder, q.limit)
}

// compile recursively translates an expression element into builder
// calls.
func (q *Query[T]) compile(el expr.Element) error {
	switch node := el.(type) {
	case *expr.Comparison:
		return q.compileComparison(node)
	case *expr.Clause:
		return q.compileClause(node)
	default:
		return &CompileError{
			Value:    el,
			Message:  "cannot compile expression element",
			Expected: "*expr.Comparison or *expr.Clause",
		}
	}
}

// compileComparison issues OnAttribute plus one comparator call,
// bracketed by a Negate pair when the leaf carries a negation flag.
func (q *Query[T]) compileComparison(c *expr.Comparison) error {
	if err := c.Err(); err != nil {
		return err
	}
	q.builder.OnAttribute(q.protocol.Casing(c.Attr))

	if c.Negated {
		q.builder.Negate()
		// The scope must close even if comparator dispatch fails.
		defer q.builder.Negate()
	}

	switch c.Cmp {
	case expr.Equals:
		q.builder.Equals(c.Arg)
	case expr.NotEquals:
		q.builder.NotEquals(c.Arg)
	case expr.Less:
		q.builder.Less(c.Arg)
	case expr.LessEqual:
		q.builder.LessEqual(c.Arg)
	case expr.Greater:
		q.builder.Greater(c.Arg)
	case expr.GreaterEqual:
		q.builder.GreaterEqual(c.Arg)
	case expr.Contains:
		q.builder.Contains(c.Arg)
	case expr.StartsWith:
		q.builder.StartsWith(c.Arg)
	case expr.EndsWith:
		q.builder.EndsWith(c.Arg)
	default:
		return &CompileError{
			Value:    c.Cmp,
			Message:  fmt.Sprintf("unknown comparator on attribute %q", c.Attr),
			Expected: "a comparator from package expr",
		}
	}
	return nil
}

// compileClause wraps the node in a precedence group, compiles the
// left side, splices the connective, then compiles the right side.
// Recursion depth equals clause-tree depth; no rebalancing is done.
func (q *Query[T]) compileClause(cl *expr.Clause) error {
	q.builder.OpenGroup()
	defer q.builder.CloseGroup()

	if err := q.compile(cl.Left); err != nil {
		return err
	}
	q.builder.Chain(cl.Op)
	return q.compile(cl.Right)
}

// parseOrderString splits a raw ordering clause into name and
// direction. A trailing " desc" selects descending order; anything
// else, including a bare name, is ascending.
func parseOrderString(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if name, ok := strings.CutSuffix(s, " desc"); ok {
		return strings.TrimSpace(name), false
	}
	if name, ok := strings.CutSuffix(s, " asc"); ok {
		return strings.TrimSpace(name), true
	}
	return s, true
}
