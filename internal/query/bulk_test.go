package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkersey/graphmail/internal/attr"
)

func newBulkFixture(items ...string) (*BulkActionContext[string], *[]string) {
	c := &fakeContainer[string]{protocol: identityProtocol{}, items: items}
	q := New[string](c).Where(attr.MsgIsRead.Eq(false))

	var applied []string
	action := func(_ context.Context, item string) error {
		applied = append(applied, item)
		return nil
	}
	return NewBulkActionContext(q, "delete", action), &applied
}

func TestBulkExecute_AppliesToAllResults(t *testing.T) {
	ctx, applied := newBulkFixture("a", "b", "c")

	n, err := ctx.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"a", "b", "c"}, *applied)
}

func TestBulkExecute_QueryErrorPropagates(t *testing.T) {
	c := &fakeContainer[string]{protocol: identityProtocol{}, fetchErr: errors.New("remote unavailable")}
	ctx := NewBulkActionContext(New[string](c), "delete", func(context.Context, string) error { return nil })

	_, err := ctx.Execute(context.Background())
	assert.ErrorContains(t, err, "remote unavailable")
}

func TestBulkExecute_ActionFailureAborts(t *testing.T) {
	c := &fakeContainer[string]{protocol: identityProtocol{}, items: []string{"a", "b", "c"}}
	q := New[string](c)

	var applied []string
	boom := errors.New("forbidden")
	action := func(_ context.Context, item string) error {
		if item == "b" {
			return boom
		}
		applied = append(applied, item)
		return nil
	}

	_, err := NewBulkActionContext(q, "move", action).Execute(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bulk move")

	// The iteration stopped at the failure; "c" was never touched.
	assert.Equal(t, []string{"a"}, applied)
}

func TestBulkScoped_UncommittedEndIsNoOp(t *testing.T) {
	ctx, applied := newBulkFixture("a", "b")

	require.NoError(t, ctx.Begin(context.Background()))
	assert.Equal(t, 2, ctx.Len())
	assert.False(t, ctx.Empty())

	require.NoError(t, ctx.End(context.Background()))
	assert.Empty(t, *applied, "without a commit the action must not run")
}

func TestBulkScoped_CommittedEndApplies(t *testing.T) {
	ctx, applied := newBulkFixture("a", "b")

	require.NoError(t, ctx.Begin(context.Background()))
	ctx.Commit()
	require.NoError(t, ctx.End(context.Background()))

	assert.Equal(t, []string{"a", "b"}, *applied)
}

func TestBulkDo_ReviewBeforeCommit(t *testing.T) {
	ctx, applied := newBulkFixture("a", "b", "c")

	err := ctx.Do(context.Background(), func(c *BulkActionContext[string]) error {
		// Only commit small result sets.
		if c.Len() <= 5 {
			c.Commit()
		}
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, *applied, 3)
}

func TestBulkDo_FnErrorSkipsEnd(t *testing.T) {
	ctx, applied := newBulkFixture("a")
	boom := errors.New("review failed")

	err := ctx.Do(context.Background(), func(c *BulkActionContext[string]) error {
		c.Commit()
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, *applied)
}

func TestBulkContext_TokenAndName(t *testing.T) {
	ctx, _ := newBulkFixture()
	assert.Equal(t, "delete", ctx.Name())
	assert.NotEmpty(t, ctx.Token())

	other, _ := newBulkFixture()
	assert.NotEqual(t, ctx.Token(), other.Token())
}
