package standardize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

func values(t *testing.T, f *frame.Frame, name string) []any {
	t.Helper()
	c, ok := f.ColumnByName(name)
	require.True(t, ok)
	out := make([]any, c.Len())
	for i := range out {
		out[i], _ = c.Value(i)
	}
	return out
}

func TestStringSteps(t *testing.T) {
	s := frame.Schema{Columns: []frame.ColumnSchema{{Name: "s", Type: frame.KindString, Nullable: true}}}
	f := frame.NewFrame(s)
	for i := 0; i < 4; i++ {
		f.AppendNullRow()
	}
	col, _ := f.ColumnByName("s")
	c := col.(*frame.StringColumn)
	c.Set(0, "  Fóo  ")
	c.Set(1, "BAR")
	c.Set(3, "")
	// row 2 null

	p := frame.NewPipeline().
		Add(&Trim{Columns: []string{"s"}}).
		Add(&RemoveAccents{Columns: []string{"s"}}).
		Add(&Lower{Columns: []string{"*"}})
	out, err := p.Run(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []any{"foo", "bar", nil, ""}, values(t, out, "s"))
	// input frame keeps its values
	v, _ := c.Get(0)
	assert.Equal(t, "  Fóo  ", v)

	out, err = (&RegexReplace{Columns: []string{"s"}, Pattern: "o+", Replace: "O"}).Apply(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, "fO", values(t, out, "s")[0])

	out, err = (&MapValues{Columns: []string{"s"}, Map: map[string]string{"bar": "baz"}}).Apply(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, "baz", values(t, out, "s")[1])

	out, err = (&EmptyTo{Columns: []string{"s"}, Value: "none"}).Apply(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, "none", values(t, out, "s")[3])

	out, err = (&Lookup{Columns: []string{"s"}, Keys: []string{"fO", "none"}, ReplaceBy: "?"}).Apply(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, []any{"?", "baz", nil, "?"}, values(t, out, "s"))

	out, err = (&Upper{Columns: []string{"s"}}).Apply(context.Background(), out)
	require.NoError(t, err)
	out, err = (&Reverse{Columns: []string{"s"}}).Apply(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, "ZAB", values(t, out, "s")[1])
}

func TestMissingColumn(t *testing.T) {
	f := frame.NewFrame(frame.Schema{Columns: []frame.ColumnSchema{{Name: "s", Type: frame.KindString}}})
	_, err := (&Trim{Columns: []string{"nope"}}).Apply(context.Background(), f)
	assert.ErrorIs(t, err, optimus.ErrColumnNotFound)

	_, err = (&RegexReplace{Columns: []string{"s"}, Pattern: "("}).Apply(context.Background(), f)
	assert.Error(t, err)
}
