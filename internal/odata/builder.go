package odata

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mkersey/graphmail/internal/expr"
)

// Builder accumulates OData query parameters through the imperative
// builder protocol. The zero value is not usable; call NewBuilder.
//
// Builders are single-goroutine state machines: OnAttribute sets the
// attribute the next comparator call applies to, Negate toggles a
// negation scope for subsequent comparator calls until toggled again,
// and Chain/OpenGroup/CloseGroup splice connectives and parentheses
// between conditions.
type Builder struct {
	selects  []string
	tokens   []token
	order    string
	current  string // attribute set by the last OnAttribute call
	negation bool
}

type tokenKind int

const (
	tokenCondition tokenKind = iota
	tokenChain
	tokenOpen
	tokenClose
)

type token struct {
	kind tokenKind
	text string
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Select replaces the projection with the given remote field names.
func (b *Builder) Select(names ...string) {
	b.selects = names
}

// ClearFilters drops all accumulated filter state, including any
// pending attribute and negation scope.
func (b *Builder) ClearFilters() {
	b.tokens = nil
	b.current = ""
	b.negation = false
}

// ClearOrder drops the accumulated ordering.
func (b *Builder) ClearOrder() {
	b.order = ""
}

// OnAttribute sets the remote attribute the next comparator call
// applies to.
func (b *Builder) OnAttribute(name string) {
	b.current = name
}

// Negate toggles the negation scope. While the scope is open every
// emitted condition is prefixed with the grammar's negation keyword.
func (b *Builder) Negate() {
	b.negation = !b.negation
}

// Chain splices a logical connective between the previous and next
// conditions.
func (b *Builder) Chain(op expr.Operator) {
	b.tokens = append(b.tokens, token{kind: tokenChain, text: string(op)})
}

// OpenGroup opens a precedence group.
func (b *Builder) OpenGroup() {
	b.tokens = append(b.tokens, token{kind: tokenOpen})
}

// CloseGroup closes the innermost precedence group.
func (b *Builder) CloseGroup() {
	b.tokens = append(b.tokens, token{kind: tokenClose})
}

// OrderBy replaces the ordering with the given remote field name and
// direction.
func (b *Builder) OrderBy(name string, ascending bool) {
	direction := "asc"
	if !ascending {
		direction = "desc"
	}
	b.order = name + " " + direction
}

// infix emits "<attribute> <op> <literal>" conditions.
func (b *Builder) infix(op string, v any) {
	b.emit(fmt.Sprintf("%s %s %s", b.current, op, literal(v)))
}

// function emits "<fn>(<attribute>, <literal>)" conditions.
func (b *Builder) function(fn string, v any) {
	b.emit(fmt.Sprintf("%s(%s, %s)", fn, b.current, literal(v)))
}

func (b *Builder) emit(condition string) {
	if b.negation {
		condition = "not " + condition
	}
	b.tokens = append(b.tokens, token{kind: tokenCondition, text: condition})
}

// Equals emits an "eq" condition on the current attribute.
func (b *Builder) Equals(v any) { b.infix("eq", v) }

// NotEquals emits a "ne" condition on the current attribute.
func (b *Builder) NotEquals(v any) { b.infix("ne", v) }

// Less emits a "lt" condition on the current attribute.
func (b *Builder) Less(v any) { b.infix("lt", v) }

// LessEqual emits a "le" condition on the current attribute.
func (b *Builder) LessEqual(v any) { b.infix("le", v) }

// Greater emits a "gt" condition on the current attribute.
func (b *Builder) Greater(v any) { b.infix("gt", v) }

// GreaterEqual emits a "ge" condition on the current attribute.
func (b *Builder) GreaterEqual(v any) { b.infix("ge", v) }

// Contains emits a "contains" function condition on the current
// attribute.
func (b *Builder) Contains(v any) { b.function("contains", v) }

// StartsWith emits a "startswith" function condition on the current
// attribute.
func (b *Builder) StartsWith(v any) { b.function("startswith", v) }

// EndsWith emits an "endswith" function condition on the current
// attribute.
func (b *Builder) EndsWith(v any) { b.function("endswith", v) }

// Filter assembles the accumulated tokens into a $filter expression.
// Returns the empty string when no conditions were issued.
func (b *Builder) Filter() string {
	var sb strings.Builder
	for i, tk := range b.tokens {
		if i > 0 && tk.kind != tokenClose && b.tokens[i-1].kind != tokenOpen {
			sb.WriteByte(' ')
		}
		switch tk.kind {
		case tokenOpen:
			sb.WriteByte('(')
		case tokenClose:
			sb.WriteByte(')')
		default:
			sb.WriteString(tk.text)
		}
	}
	return sb.String()
}

// Order returns the $orderby clause, or the empty string.
func (b *Builder) Order() string {
	return b.order
}

// Selects returns the projected remote field names.
func (b *Builder) Selects() []string {
	return b.selects
}

// Values renders the builder into Graph request query parameters.
// Only clauses with content contribute a parameter.
func (b *Builder) Values() url.Values {
	params := url.Values{}
	if len(b.selects) > 0 {
		params.Set("$select", strings.Join(b.selects, ","))
	}
	if filter := b.Filter(); filter != "" {
		params.Set("$filter", filter)
	}
	if b.order != "" {
		params.Set("$orderby", b.order)
	}
	return params
}

// literal spells a Go value in OData literal syntax. Strings are
// single-quoted with embedded quotes doubled; times use RFC 3339,
// which is the wire form Graph expects for DateTimeOffset fields.
func literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return "'" + strings.ReplaceAll(val.String(), "'", "''") + "'"
	default:
		return fmt.Sprintf("%v", val)
	}
}
