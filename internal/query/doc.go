// Package query compiles declarative boolean expressions into the
// imperative protocol of a remote query builder, and executes the
// result against a container.
//
// A Query is a transient, one-shot accumulator scoped to a single
// container (a message folder, an address book, a calendar). It owns
// exactly one builder for its lifetime. Select, Where and OrderBy each
// clear the builder's corresponding prior state before rebuilding it,
// so repeated calls replace rather than accumulate:
//
//	msgs, err := query.New[*graph.Message](folder.MessagesContainer()).
//		Select(attr.MsgSubject, attr.MsgFrom).
//		Where(attr.MsgSubject.Contains("invoice").And(attr.MsgIsRead.Not())).
//		OrderBy(attr.MsgReceived.Desc()).
//		Limit(50).
//		Execute(ctx)
//
// COMPILATION ORDER:
//
// Where walks the expression tree depth first, left to right. A leaf
// comparison issues OnAttribute followed by one comparator call,
// bracketed by a Negate pair when the leaf carries a negation flag. A
// clause opens a precedence group, compiles its left child, issues
// Chain, compiles its right child and closes the group. Scopes close
// in defers, so a failing inner compile still leaves the builder's
// bracketing balanced.
//
// ERRORS:
//
// Usage errors raised while the expression was built (package attr)
// and compile errors raised during traversal are both recorded on the
// query at the offending call and returned by Err and Execute. The
// first error wins; later calls on a failed query are no-ops.
//
// Queries are not safe for concurrent use: clause-setting methods
// mutate the single owned builder. Distinct queries over distinct
// containers share no state.
//
// BULK ACTIONS:
//
// BulkActionContext couples a query to a side-effecting action applied
// to every result, either unconditionally through Execute or behind an
// explicit Commit in the scoped Begin/End form. See bulk.go.
package query
