// Package odata renders the imperative query-builder protocol into
// Microsoft-Graph-style OData query parameters.
//
// A Builder accumulates filter tokens through the primitive calls the
// query compiler issues (OnAttribute, comparator methods, Negate,
// Chain, OpenGroup/CloseGroup) and assembles them into the $select,
// $filter and $orderby parameters of a Graph request:
//
//	b := odata.NewBuilder()
//	b.Select("subject", "isRead")
//	b.OnAttribute("subject")
//	b.Contains("invoice")
//	b.Chain(expr.OpAnd)
//	b.OnAttribute("isRead")
//	b.Equals(false)
//	b.Values() // $select=subject,isRead&$filter=contains(subject, 'invoice') and isRead eq false
//
// The builder is deliberately dumb: it performs no validation and no
// reordering, it just spells out whatever the compiler dictates. All
// correctness guarantees live in the compiler.
//
// ToCamel is the casing function converting registry snake_case names
// into the remote API's camelCase spelling.
package odata
