package query

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/mkersey/graphmail/internal/attr"
	"github.com/mkersey/graphmail/internal/expr"
	"github.com/mkersey/graphmail/internal/odata"
)

// odataProtocol wires the real OData builder into a detached query,
// so the golden file captures the full compile-and-render pipeline.
type odataProtocol struct{}

func (odataProtocol) Casing(name string) string { return odata.ToCamel(name) }
func (odataProtocol) NewBuilder() Builder       { return odata.NewBuilder() }

func TestCompile_GoldenParams(t *testing.T) {
	q := NewDetached[struct{}](odataProtocol{})
	q.Select(attr.MsgSubject, attr.MsgFrom, attr.MsgReceived).
		Where(expr.Or(
			attr.MsgImportance.Is("high"),
			attr.MsgHasAttachments.And(attr.MsgIsDraft.Not()),
		).And(attr.MsgSubject.Contains("quarterly report").Negate())).
		OrderBy(attr.MsgReceived.Desc())
	require.NoError(t, q.Err())

	b := q.Builder().(*odata.Builder)
	var out []byte
	for _, line := range []string{
		"$select=" + b.Values().Get("$select"),
		"$filter=" + b.Filter(),
		"$orderby=" + b.Order(),
	} {
		out = append(out, line...)
		out = append(out, '\n')
	}

	g := goldie.New(t)
	g.Assert(t, "compiled_params", out)
}
