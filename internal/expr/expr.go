package expr

import "fmt"

// Comparator identifies one of the comparison operations understood by
// the remote filter grammar.
type Comparator int

const (
	Equals Comparator = iota
	NotEquals
	Less
	LessEqual
	Greater
	GreaterEqual
	Contains
	StartsWith
	EndsWith
)

// comparatorNames is used for diagnostics only; the odata builder owns
// the remote spelling of each comparator.
var comparatorNames = map[Comparator]string{
	Equals:       "equals",
	NotEquals:    "not_equals",
	Less:         "less",
	LessEqual:    "less_equal",
	Greater:      "greater",
	GreaterEqual: "greater_equal",
	Contains:     "contains",
	StartsWith:   "startswith",
	EndsWith:     "endswith",
}

// String returns the diagnostic name of the comparator.
func (c Comparator) String() string {
	if name, ok := comparatorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Comparator(%d)", int(c))
}

// Operator is a logical connective between two expression elements.
type Operator string

const (
	OpAnd Operator = "and"
	OpOr  Operator = "or"
)

// Element is a node in a boolean expression tree.
//
// This is a sealed interface - only Comparison and Clause implement
// it. The marker method prevents external implementations and enables
// exhaustive type switches in the query compiler.
type Element interface {
	element() // Marker method - seals interface to this package

	Resolvable
}

// Resolvable is implemented by anything that can stand as an operand
// of And/Or: attribute descriptors, comparisons and clauses.
//
// Resolve returns the element the operand contributes to the tree, or
// an error when the operand has no expression form (a plain attribute
// used without a comparator, or an attribute that was misused at
// construction time).
type Resolvable interface {
	Resolve() (Element, error)
}

// opposites maps each comparator to its logical opposite, where the
// remote grammar defines one. Comparators absent from this table
// negate via the Negated flag instead.
var opposites = map[Comparator]Comparator{
	Equals:       NotEquals,
	NotEquals:    Equals,
	Greater:      LessEqual,
	LessEqual:    Greater,
	Less:         GreaterEqual,
	GreaterEqual: Less,
}

// Comparison is a leaf condition: one attribute compared against one
// argument.
//
// The query compiler treats a Comparison as read-only; the only
// mutation after construction is Negate, which is not safe for
// concurrent use.
type Comparison struct {
	// Attr is the registry (snake_case) name of the attribute.
	Attr string

	// Cmp selects the comparison operation.
	Cmp Comparator

	// Arg is the right-hand operand.
	Arg any

	// Negated requests a negation scope around the compiled
	// comparator call. Only set for comparators without a logical
	// opposite; see Negate.
	Negated bool

	err error
}

// NewComparison creates a leaf condition.
func NewComparison(attrName string, cmp Comparator, arg any) *Comparison {
	return &Comparison{Attr: attrName, Cmp: cmp, Arg: arg}
}

// Invalid creates a poisoned comparison carrying a construction error.
// The error surfaces from Resolve, so misuse detected while building
// an expression reaches the caller at the next use of the value.
func Invalid(err error) *Comparison {
	return &Comparison{err: err}
}

// Err returns the construction error, if any.
func (c *Comparison) Err() error {
	return c.err
}

// Negate inverts the comparison in place and returns the receiver.
//
// Comparators with a defined logical opposite are rewritten (eq
// becomes ne, lt becomes ge, and so on) so the compiled filter never
// needs an explicit negation scope. All other comparators toggle the
// Negated flag. Double negation restores the original state exactly.
func (c *Comparison) Negate() *Comparison {
	if opp, ok := opposites[c.Cmp]; ok {
		c.Cmp = opp
	} else {
		c.Negated = !c.Negated
	}
	return c
}

// And combines this comparison with another operand under AND.
func (c *Comparison) And(other Resolvable) *Clause {
	return And(c, other)
}

// Or combines this comparison with another operand under OR.
func (c *Comparison) Or(other Resolvable) *Clause {
	return Or(c, other)
}

// Resolve implements Resolvable. A comparison resolves to itself
// unless it was poisoned at construction time.
func (c *Comparison) Resolve() (Element, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c, nil
}

func (*Comparison) element() {}

// Clause is a binary tree node combining two elements with AND or OR.
//
// Each And/Or application creates exactly one new root whose children
// are the two resolved operands. No flattening or precedence inference
// is performed: the tree mirrors the caller's own nesting, and the
// compiler emits one precedence group per clause.
type Clause struct {
	Left  Element
	Op    Operator
	Right Element

	err error
}

// And resolves both operands and combines them under AND.
func And(left, right Resolvable) *Clause {
	return combine(left, OpAnd, right)
}

// Or resolves both operands and combines them under OR.
func Or(left, right Resolvable) *Clause {
	return combine(left, OpOr, right)
}

func combine(left Resolvable, op Operator, right Resolvable) *Clause {
	if left == nil || right == nil {
		return &Clause{err: fmt.Errorf("expr: %s requires two operands, got nil", op)}
	}

	l, err := left.Resolve()
	if err != nil {
		return &Clause{err: err}
	}

	r, err := right.Resolve()
	if err != nil {
		return &Clause{err: err}
	}

	return &Clause{Left: l, Op: op, Right: r}
}

// And combines this clause with another operand under AND. The new
// clause becomes the root; the receiver is its left child.
func (cl *Clause) And(other Resolvable) *Clause {
	return And(cl, other)
}

// Or combines this clause with another operand under OR.
func (cl *Clause) Or(other Resolvable) *Clause {
	return Or(cl, other)
}

// Resolve implements Resolvable. A clause resolves to itself unless
// one of its operands failed to resolve.
func (cl *Clause) Resolve() (Element, error) {
	if cl.err != nil {
		return nil, cl.err
	}
	return cl, nil
}

func (*Clause) element() {}
