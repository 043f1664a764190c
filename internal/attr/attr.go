package attr

import (
	"fmt"
	"strings"

	"github.com/mkersey/graphmail/internal/expr"
)

// Kind classifies an attribute's comparison capabilities.
type Kind int

const (
	// Plain attributes support the full comparison set.
	Plain Kind = iota

	// Boolean attributes compare against true/false and may be used
	// bare in And/Or, where they resolve to an equals-true test.
	Boolean

	// Enumerative attributes equality-test against a fixed value set.
	Enumerative

	// NonFilterable attributes name a projectable field that the
	// remote API refuses to filter or order by.
	NonFilterable
)

var kindNames = map[Kind]string{
	Plain:         "plain",
	Boolean:       "boolean",
	Enumerative:   "enumerative",
	NonFilterable: "non_filterable",
}

// String returns the kind's lowercase name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// EnumValue is one member of an enumerative attribute's value set.
type EnumValue struct {
	// Name is the member's symbolic name ("HIGH").
	Name string

	// Value is the remote wire value ("high").
	Value string
}

// Attribute is a descriptor for one queryable field. Attributes are
// immutable after construction and safe to share; comparison
// constructors return fresh expression values.
type Attribute struct {
	name string
	kind Kind
	enum []EnumValue

	// predicates maps a lowercased member name to its equality test,
	// built once at construction. Enumerative attributes only.
	predicates map[string]func() *expr.Comparison
}

// New creates a plain, boolean or non-filterable attribute. Use
// NewEnum for enumerative attributes.
func New(name string, kind Kind) *Attribute {
	if kind == Enumerative {
		panic("attr: use NewEnum for enumerative attributes")
	}
	return &Attribute{name: name, kind: kind}
}

// NewEnum creates an enumerative attribute with an ordered value set.
// A static predicate table is built here, one entry per member, so
// member tests are plain lookups rather than generated code.
func NewEnum(name string, values ...EnumValue) *Attribute {
	a := &Attribute{
		name:       name,
		kind:       Enumerative,
		enum:       values,
		predicates: make(map[string]func() *expr.Comparison, len(values)),
	}
	for _, v := range values {
		value := v.Value
		a.predicates[strings.ToLower(v.Name)] = func() *expr.Comparison {
			return expr.NewComparison(name, expr.Equals, value)
		}
	}
	return a
}

// Name returns the registry (snake_case) field name.
func (a *Attribute) Name() string { return a.name }

// Kind returns the attribute's kind.
func (a *Attribute) Kind() Kind { return a.kind }

// Enumeration returns the ordered value set of an enumerative
// attribute, or nil for any other kind.
func (a *Attribute) Enumeration() []EnumValue { return a.enum }

// compare is the common gate for all comparison constructors.
func (a *Attribute) compare(op string, cmp expr.Comparator, arg any) *expr.Comparison {
	if a.kind == NonFilterable {
		return expr.Invalid(newUsageError(a.name, op,
			"non-filterable attributes cannot appear in filter, where or order clauses"))
	}
	return expr.NewComparison(a.name, cmp, arg)
}

// Eq builds an equality test against the given value.
func (a *Attribute) Eq(v any) *expr.Comparison { return a.compare("eq", expr.Equals, v) }

// Ne builds an inequality test against the given value.
func (a *Attribute) Ne(v any) *expr.Comparison { return a.compare("ne", expr.NotEquals, v) }

// Lt builds a less-than test against the given value.
func (a *Attribute) Lt(v any) *expr.Comparison { return a.compare("lt", expr.Less, v) }

// Le builds a less-or-equal test against the given value.
func (a *Attribute) Le(v any) *expr.Comparison { return a.compare("le", expr.LessEqual, v) }

// Gt builds a greater-than test against the given value.
func (a *Attribute) Gt(v any) *expr.Comparison { return a.compare("gt", expr.Greater, v) }

// Ge builds a greater-or-equal test against the given value.
func (a *Attribute) Ge(v any) *expr.Comparison { return a.compare("ge", expr.GreaterEqual, v) }

// substring gates the substring-style comparators, which only plain
// attributes support.
func (a *Attribute) substring(op string, cmp expr.Comparator, v string) *expr.Comparison {
	switch a.kind {
	case Plain:
		return expr.NewComparison(a.name, cmp, v)
	case NonFilterable:
		return expr.Invalid(newUsageError(a.name, op,
			"non-filterable attributes cannot appear in filter, where or order clauses"))
	default:
		return expr.Invalid(newUsageError(a.name, op,
			fmt.Sprintf("substring comparators require a plain attribute, not %s", a.kind)))
	}
}

// Contains builds a substring test. Plain attributes only.
func (a *Attribute) Contains(v string) *expr.Comparison {
	return a.substring("contains", expr.Contains, v)
}

// StartsWith builds a prefix test. Plain attributes only.
func (a *Attribute) StartsWith(v string) *expr.Comparison {
	return a.substring("startswith", expr.StartsWith, v)
}

// EndsWith builds a suffix test. Plain attributes only.
func (a *Attribute) EndsWith(v string) *expr.Comparison {
	return a.substring("endswith", expr.EndsWith, v)
}

// Not builds an equals-false test on a boolean attribute. The
// opposite is representable directly in the remote grammar, so no
// negation scope is needed at compile time.
func (a *Attribute) Not() *expr.Comparison {
	if a.kind != Boolean {
		return expr.Invalid(newUsageError(a.name, "not",
			fmt.Sprintf("negation requires a boolean attribute, not %s", a.kind)))
	}
	return expr.NewComparison(a.name, expr.Equals, false)
}

// Is builds an equality test against the named member of an
// enumerative attribute's value set. The lookup is case-insensitive
// on the member name: Is("high") and Is("HIGH") are equivalent.
func (a *Attribute) Is(member string) *expr.Comparison {
	if a.kind != Enumerative {
		return expr.Invalid(newUsageError(a.name, "is_"+strings.ToLower(member),
			fmt.Sprintf("member tests require an enumerative attribute, not %s", a.kind)))
	}
	predicate, ok := a.predicates[strings.ToLower(member)]
	if !ok {
		return expr.Invalid(newUsageError(a.name, "is_"+strings.ToLower(member),
			fmt.Sprintf("%q is not a member of the enumeration", member)))
	}
	return predicate()
}

// And combines this attribute with another operand under AND. The
// attribute must be of boolean kind to have an implicit expression
// form; see Resolve.
func (a *Attribute) And(other expr.Resolvable) *expr.Clause {
	return expr.And(a, other)
}

// Or combines this attribute with another operand under OR.
func (a *Attribute) Or(other expr.Resolvable) *expr.Clause {
	return expr.Or(a, other)
}

// Resolve implements expr.Resolvable. Only boolean attributes have an
// implicit expression form (an equals-true test); every other kind
// must be used with an explicit comparator.
func (a *Attribute) Resolve() (expr.Element, error) {
	switch a.kind {
	case Boolean:
		return expr.NewComparison(a.name, expr.Equals, true), nil
	case NonFilterable:
		return nil, newUsageError(a.name, "where",
			"non-filterable attributes cannot appear in filter, where or order clauses")
	default:
		return nil, newUsageError(a.name, "where",
			fmt.Sprintf("%s attributes have no implicit truth value; use an explicit comparator", a.kind))
	}
}

// Order is a direction-tagged attribute reference for order_by.
type Order struct {
	// Attr is the attribute to order by.
	Attr *Attribute

	// Ascending selects the sort direction.
	Ascending bool

	err error
}

// Err returns the construction error, if any.
func (o Order) Err() error { return o.err }

func (a *Attribute) order(ascending bool) Order {
	if a.kind == NonFilterable {
		return Order{err: newUsageError(a.name, "order_by",
			"non-filterable attributes cannot appear in filter, where or order clauses")}
	}
	return Order{Attr: a, Ascending: ascending}
}

// Asc tags this attribute for ascending order.
func (a *Attribute) Asc() Order { return a.order(true) }

// Desc tags this attribute for descending order.
func (a *Attribute) Desc() Order { return a.order(false) }

