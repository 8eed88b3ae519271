package arrow

import (
	"testing"
	"time"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/optimus/pkg/frame"
)

func TestRoundTrip(t *testing.T) {
	at := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	f := frame.NewFrame(frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "b", Type: frame.KindBool},
		{Name: "i", Type: frame.KindInt},
		{Name: "x", Type: frame.KindFloat},
		{Name: "s", Type: frame.KindString},
		{Name: "t", Type: frame.KindTime},
	}})
	f.AppendNullRow()
	f.AppendNullRow()
	require.NoError(t, f.SetCell(0, "b", true))
	require.NoError(t, f.SetCell(0, "i", int64(7)))
	require.NoError(t, f.SetCell(0, "x", 1.25))
	require.NoError(t, f.SetCell(0, "s", "hi"))
	require.NoError(t, f.SetCell(0, "t", at))

	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	rec, err := ToArrow(f, mem)
	require.NoError(t, err)
	defer rec.Release()
	assert.Equal(t, int64(2), rec.NumRows())
	assert.Equal(t, int64(5), rec.NumCols())
	assert.True(t, rec.Column(1).IsNull(1))

	back, err := FromArrow(rec)
	require.NoError(t, err)
	assert.Equal(t, f.Columns(), back.Columns())
	assert.Equal(t, f.Row(0), back.Row(0))
	assert.Empty(t, back.Row(1))
}

func TestFromArrowNarrowTypes(t *testing.T) {
	mem := memory.NewGoAllocator()
	ib := array.NewInt32Builder(mem)
	defer ib.Release()
	ib.AppendValues([]int32{1, 2}, []bool{true, false})
	ints := ib.NewArray()
	defer ints.Release()

	fb := array.NewFloat32Builder(mem)
	defer fb.Release()
	fb.AppendValues([]float32{0.5, 1.5}, nil)
	floats := fb.NewArray()
	defer floats.Release()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "n", Type: arrow.PrimitiveTypes.Int32, Nullable: true},
		{Name: "x", Type: arrow.PrimitiveTypes.Float32},
	}, nil)
	rec := array.NewRecord(schema, []arrow.Array{ints, floats}, 2)
	defer rec.Release()

	f, err := FromArrow(rec)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": int64(1), "x": 0.5}, f.Row(0))
	assert.Equal(t, map[string]any{"x": 1.5}, f.Row(1))
}

func TestFromArrowUnsupported(t *testing.T) {
	mem := memory.NewGoAllocator()
	b := array.NewUint64Builder(mem)
	defer b.Release()
	b.Append(1)
	arr := b.NewArray()
	defer arr.Release()
	schema := arrow.NewSchema([]arrow.Field{{Name: "u", Type: arrow.PrimitiveTypes.Uint64}}, nil)
	rec := array.NewRecord(schema, []arrow.Array{arr}, 1)
	defer rec.Release()

	_, err := FromArrow(rec)
	assert.ErrorContains(t, err, "column u")
}
