package outliers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

func ptr(v float64) *float64 { return &v }

func values(f *frame.Frame, name string) []any {
	c, _ := f.ColumnByName(name)
	out := make([]any, c.Len())
	for i := range out {
		out[i], _ = c.Value(i)
	}
	return out
}

func TestCap(t *testing.T) {
	df, err := optimus.CreateDataFrame([][]any{
		{-5.0, int64(-5)}, {0.5, int64(1)}, {nil, nil}, {12.0, int64(12)},
	}, []optimus.ColumnSpec{{Name: "f", Type: "float", Nullable: true}, {Name: "i", Type: "int", Nullable: true}})
	require.NoError(t, err)

	out, err := (&Cap{Column: "f", Min: ptr(0), Max: ptr(10)}).Apply(context.Background(), df.Frame())
	require.NoError(t, err)
	assert.Equal(t, []any{0.0, 0.5, nil, 10.0}, values(out, "f"))

	out, err = (&Cap{Column: "i", Min: ptr(-0.5), Max: ptr(9.5)}).Apply(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(0), int64(1), nil, int64(9)}, values(out, "i"))
}

func TestSigma(t *testing.T) {
	rows := make([][]any, 0, 11)
	for i := 0; i < 10; i++ {
		rows = append(rows, []any{1.0})
	}
	rows = append(rows, []any{100.0})
	df, err := optimus.CreateDataFrame(rows, []optimus.ColumnSpec{{Name: "x", Type: "float"}})
	require.NoError(t, err)

	out, err := (&Sigma{Column: "x", K: 1}).Apply(context.Background(), df.Frame())
	require.NoError(t, err)
	vals := values(out, "x")
	assert.Less(t, vals[10].(float64), 100.0)
	assert.Equal(t, 1.0, vals[0])

	_, err = (&Sigma{Column: "x"}).Apply(context.Background(), df.Frame())
	assert.ErrorIs(t, err, optimus.ErrInvalidArgument)
}
