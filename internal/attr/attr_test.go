package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkersey/graphmail/internal/expr"
)

func TestComparisonConstructors(t *testing.T) {
	testCases := []struct {
		name string
		cond *expr.Comparison
		cmp  expr.Comparator
		arg  any
	}{
		{"eq", MsgSubject.Eq("foo"), expr.Equals, "foo"},
		{"ne", MsgSubject.Ne("foo"), expr.NotEquals, "foo"},
		{"lt", MsgReceived.Lt("2026-01-01"), expr.Less, "2026-01-01"},
		{"le", MsgReceived.Le("2026-01-01"), expr.LessEqual, "2026-01-01"},
		{"gt", MsgReceived.Gt("2026-01-01"), expr.Greater, "2026-01-01"},
		{"ge", MsgReceived.Ge("2026-01-01"), expr.GreaterEqual, "2026-01-01"},
		{"contains", MsgSubject.Contains("inv"), expr.Contains, "inv"},
		{"startswith", MsgSubject.StartsWith("inv"), expr.StartsWith, "inv"},
		{"endswith", MsgSubject.EndsWith("inv"), expr.EndsWith, "inv"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.cond.Err())
			assert.Equal(t, tc.cmp, tc.cond.Cmp)
			assert.Equal(t, tc.arg, tc.cond.Arg)
			assert.False(t, tc.cond.Negated)
		})
	}
}

func TestNonFilterable_ComparisonFailsAtCallSite(t *testing.T) {
	cond := MsgBody.Eq("x")

	_, err := cond.Resolve()
	require.Error(t, err)
	assert.True(t, IsUsageError(err))
	assert.Contains(t, err.Error(), `"body"`)
	assert.Contains(t, err.Error(), "non-filterable")
}

func TestNonFilterable_PoisonSurvivesComposition(t *testing.T) {
	cl := expr.And(MsgBody.Eq("x"), MsgIsRead.Eq(true))

	_, err := cl.Resolve()
	assert.True(t, IsUsageError(err))
}

func TestNonFilterable_OrderFailsAtCallSite(t *testing.T) {
	o := MsgBody.Desc()
	require.Error(t, o.Err())
	assert.True(t, IsUsageError(o.Err()))
}

func TestSubstring_RequiresPlainKind(t *testing.T) {
	for _, cond := range []*expr.Comparison{
		MsgIsRead.Contains("x"),
		MsgImportance.StartsWith("x"),
		MsgIsDraft.EndsWith("x"),
	} {
		_, err := cond.Resolve()
		require.Error(t, err)
		assert.True(t, IsUsageError(err))
	}
}

func TestBoolean_Not(t *testing.T) {
	cond := MsgIsRead.Not()
	require.NoError(t, cond.Err())

	// The opposite of equals-true is representable directly, so Not
	// compiles to equals(false) with no negation scope.
	assert.Equal(t, "is_read", cond.Attr)
	assert.Equal(t, expr.Equals, cond.Cmp)
	assert.Equal(t, false, cond.Arg)
	assert.False(t, cond.Negated)
}

func TestBoolean_DoubleNegationRoundTrips(t *testing.T) {
	cond := MsgIsRead.Not().Negate()

	// ~(~A) behaves like A: equals(true), not negated.
	assert.Equal(t, expr.NotEquals, cond.Cmp)
	assert.Equal(t, false, cond.Arg)
	assert.False(t, cond.Negated)

	cond.Negate()
	assert.Equal(t, expr.Equals, cond.Cmp)
	assert.False(t, cond.Negated)
}

func TestNot_RequiresBooleanKind(t *testing.T) {
	cond := MsgSubject.Not()
	_, err := cond.Resolve()
	assert.True(t, IsUsageError(err))
}

func TestResolve_BooleanAttribute(t *testing.T) {
	el, err := MsgHasAttachments.Resolve()
	require.NoError(t, err)

	cond, ok := el.(*expr.Comparison)
	require.True(t, ok)
	assert.Equal(t, "has_attachments", cond.Attr)
	assert.Equal(t, expr.Equals, cond.Cmp)
	assert.Equal(t, true, cond.Arg)
}

func TestResolve_PlainAttributeHasNoTruthValue(t *testing.T) {
	_, err := MsgSubject.Resolve()
	require.Error(t, err)
	assert.True(t, IsUsageError(err))
	assert.Contains(t, err.Error(), "implicit truth value")
}

func TestResolve_NonFilterableAttribute(t *testing.T) {
	_, err := MsgBody.Resolve()
	assert.True(t, IsUsageError(err))
}

func TestAttributeAndOr(t *testing.T) {
	cl := MsgIsRead.And(MsgHasAttachments)
	el, err := cl.Resolve()
	require.NoError(t, err)
	require.IsType(t, &expr.Clause{}, el)

	root := el.(*expr.Clause)
	assert.Equal(t, expr.OpAnd, root.Op)

	left := root.Left.(*expr.Comparison)
	right := root.Right.(*expr.Comparison)
	assert.Equal(t, "is_read", left.Attr)
	assert.Equal(t, "has_attachments", right.Attr)
}

func TestEnum_Is(t *testing.T) {
	cond := MsgImportance.Is("HIGH")
	require.NoError(t, cond.Err())
	assert.Equal(t, "importance", cond.Attr)
	assert.Equal(t, expr.Equals, cond.Cmp)
	assert.Equal(t, "high", cond.Arg)

	// Lookup is case-insensitive on the member name.
	lowered := MsgImportance.Is("high")
	require.NoError(t, lowered.Err())
	assert.Equal(t, "high", lowered.Arg)
}

func TestEnum_IsUnknownMember(t *testing.T) {
	cond := MsgImportance.Is("urgent")
	_, err := cond.Resolve()
	require.Error(t, err)
	assert.True(t, IsUsageError(err))
	assert.Contains(t, err.Error(), "urgent")
}

func TestEnum_IsOnNonEnumerative(t *testing.T) {
	_, err := MsgSubject.Is("high").Resolve()
	assert.True(t, IsUsageError(err))
}

func TestEnum_OrderedValueSet(t *testing.T) {
	values := MsgImportance.Enumeration()
	require.Len(t, values, 3)
	assert.Equal(t, "low", values[0].Value)
	assert.Equal(t, "normal", values[1].Value)
	assert.Equal(t, "high", values[2].Value)
}

func TestOrderDirections(t *testing.T) {
	asc := MsgReceived.Asc()
	require.NoError(t, asc.Err())
	assert.True(t, asc.Ascending)
	assert.Equal(t, "received_date_time", asc.Attr.Name())

	desc := MsgReceived.Desc()
	require.NoError(t, desc.Err())
	assert.False(t, desc.Ascending)
}

func TestNew_PanicsOnEnumerativeKind(t *testing.T) {
	assert.Panics(t, func() { New("importance", Enumerative) })
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "plain", Plain.String())
	assert.Equal(t, "non_filterable", NonFilterable.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
