package reshape

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

func sample(t *testing.T) *frame.Frame {
	t.Helper()
	df, err := optimus.CreateDataFrame([][]any{
		{"1", "2001-05-20", 3.5},
		{"x", "1999-05-20", nil},
	}, []optimus.ColumnSpec{
		{Name: "id", Type: "string", Nullable: true},
		{Name: "dob", Type: "string", Nullable: true},
		{Name: "v", Type: "float", Nullable: true},
	})
	require.NoError(t, err)
	return df.Frame()
}

func TestReshapePipeline(t *testing.T) {
	clock := optimus.WithClock(func() time.Time { return time.Date(2021, 5, 20, 0, 0, 0, 0, time.UTC) })
	p := frame.NewPipeline().
		Add(&AsType{Types: []optimus.ColumnType{{Column: "id", Type: "int"}}}).
		Add(&Age{Column: "dob", Format: "yyyy-MM-dd", Output: "age", Now: clock}).
		Add(&Rename{Pairs: []optimus.ColumnPair{{Old: "v", New: "value"}}}).
		Add(&Move{Column: "age", Ref: "id", Position: optimus.After}).
		Add(&Drop{Columns: []string{"dob"}})

	out, err := p.Run(context.Background(), sample(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "age", "value"}, out.Columns())

	id, _ := out.ColumnByName("id")
	assert.Equal(t, frame.KindInt, id.Kind())
	assert.True(t, id.IsNull(1))

	age, _ := out.ColumnByName("age")
	v0, _ := age.Value(0)
	v1, _ := age.Value(1)
	assert.Equal(t, 20.0, v0)
	assert.Equal(t, 22.0, v1)

	kept, err := (&Keep{Columns: []string{"value", "id"}}).Apply(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, []string{"value", "id"}, kept.Columns())
}

func TestReshapeErrors(t *testing.T) {
	f := sample(t)
	_, err := (&Move{Column: "id", Ref: "v", Position: "under"}).Apply(context.Background(), f)
	assert.ErrorIs(t, err, optimus.ErrPosition)

	_, err = (&AsType{Types: []optimus.ColumnType{{Column: "id", Type: "uuid"}}}).Apply(context.Background(), f)
	assert.ErrorIs(t, err, optimus.ErrUnknownType)

	_, err = (&Drop{}).Apply(context.Background(), f)
	assert.ErrorIs(t, err, optimus.ErrNoColumns)
}
