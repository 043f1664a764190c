// Package expr defines the boolean expression model for remote filter
// queries.
//
// An expression is a binary tree built from two node types:
//
//   - Comparison: a leaf condition (attribute, comparator, argument,
//     negation flag)
//   - Clause: an AND/OR combination of two child elements
//
// Trees are constructed purely in memory with no side effects. The
// query package walks a finished tree and replays it against a remote
// query builder; expr itself never talks to anything remote.
//
// SEALED INTERFACE:
//
// Element is a sealed interface using the marker method pattern. Only
// Comparison and Clause implement it, which lets the compiler type
// switch exhaustively and report anything else as a compile error.
//
// RESOLUTION:
//
// Resolvable is the wider contract accepted by And/Or. Attribute
// descriptors (package attr), comparisons and clauses all implement
// it, so the three kinds of operand combine uniformly:
//
//	expr.And(attr.MsgIsRead, attr.MsgSubject.Contains("invoice"))
//
// A boolean attribute resolves to an equals-true comparison; a
// comparison or clause resolves to itself.
//
// NEGATION:
//
// Negate rewrites a comparator to its logical opposite when one exists
// (eq/ne, lt/ge, gt/le) and only falls back to the negated flag for
// comparators without an opposite (contains, startswith, endswith).
// The remote grammar cannot express double negatives, so rewriting
// keeps the compiled filter direct wherever possible.
package expr
