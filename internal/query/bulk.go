package query

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Action is the side effect a bulk operation applies to each result.
type Action[T any] func(ctx context.Context, item T) error

// BulkActionContext couples a query to a side-effecting action over
// its results.
//
// Two usage forms:
//
//   - One-shot: Execute runs the query and unconditionally applies
//     the action to every result, returning the affected count.
//   - Scoped: Begin runs the query and captures the results; the
//     caller inspects Len or Result and calls Commit to arm the
//     action; End applies it only if armed. An uncommitted End is a
//     no-op, which makes destructive bulk operations reviewable
//     before they run.
//
// A failure partway through the action aborts the remaining
// iteration and propagates; the context does not track how many
// results were processed before the failure.
type BulkActionContext[T any] struct {
	query     *Query[T]
	name      string
	action    Action[T]
	token     string
	result    []T
	committed bool
}

// NewBulkActionContext creates a context for the given query and
// action. The name identifies the action in diagnostics and audit
// records ("delete", "move", "mark_as_read").
func NewBulkActionContext[T any](q *Query[T], name string, action Action[T]) *BulkActionContext[T] {
	return &BulkActionContext[T]{
		query:  q,
		name:   name,
		action: action,
		token:  uuid.NewString(),
	}
}

// Name returns the action name.
func (c *BulkActionContext[T]) Name() string { return c.name }

// Token returns the context's unique token, usable as an audit key.
func (c *BulkActionContext[T]) Token() string { return c.token }

// Len returns the number of captured results.
func (c *BulkActionContext[T]) Len() int { return len(c.result) }

// Empty reports whether the query matched nothing.
func (c *BulkActionContext[T]) Empty() bool { return len(c.result) == 0 }

// Result returns the captured results in fetch order.
func (c *BulkActionContext[T]) Result() []T { return c.result }

// Commit arms the action for the scoped form. Without a Commit, End
// applies nothing.
func (c *BulkActionContext[T]) Commit() { c.committed = true }

// Begin executes the query and captures its results.
func (c *BulkActionContext[T]) Begin(ctx context.Context) error {
	result, err := c.query.Execute(ctx)
	if err != nil {
		return err
	}
	c.result = result
	return nil
}

// End applies the action to every captured result if Commit was
// called, and does nothing otherwise.
func (c *BulkActionContext[T]) End(ctx context.Context) error {
	if !c.committed {
		return nil
	}
	return c.apply(ctx)
}

// Execute is the one-shot form: run the query, apply the action to
// every result, return the affected count.
func (c *BulkActionContext[T]) Execute(ctx context.Context) (int, error) {
	if err := c.Begin(ctx); err != nil {
		return 0, err
	}
	if err := c.apply(ctx); err != nil {
		return 0, err
	}
	return c.Len(), nil
}

// Do is the scoped form as a single call: Begin, hand the context to
// fn for review (and an optional Commit), then End.
func (c *BulkActionContext[T]) Do(ctx context.Context, fn func(*BulkActionContext[T]) error) error {
	if err := c.Begin(ctx); err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return c.End(ctx)
}

func (c *BulkActionContext[T]) apply(ctx context.Context) error {
	for _, item := range c.result {
		if err := c.action(ctx, item); err != nil {
			return fmt.Errorf("bulk %s: %w", c.name, err)
		}
	}
	return nil
}
