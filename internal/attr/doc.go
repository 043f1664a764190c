// Package attr defines attribute descriptors: typed tokens naming the
// queryable fields of a remote collection.
//
// An Attribute couples a registry name (snake_case, stable) with a
// kind that decides which comparisons are legal:
//
//   - Plain: full comparison set, including the substring comparators
//     Contains/StartsWith/EndsWith
//   - Boolean: equality against true/false; usable bare in And/Or and
//     negatable via Not
//   - Enumerative: equality against a fixed, ordered value set, with a
//     predicate per value looked up by name through Is
//   - NonFilterable: carries a name for projection but no comparison
//     capability at all
//
// Comparison constructors return expression values from package expr.
// Misuse (comparing a non-filterable attribute, substring-matching a
// boolean) does not panic: the constructor returns an expression
// poisoned with a *UsageError, which every downstream consumer
// (And/Or, Where, OrderBy) surfaces verbatim on first use. This keeps
// the failure next to the call site while staying composable.
//
// The package also ships the built-in registries for the Outlook
// domain (messages, message folders, contacts, calendar events).
// Custom registries can be compiled from CUE documents by package
// schema.
package attr
