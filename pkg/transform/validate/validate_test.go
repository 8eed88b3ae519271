package validate

import (
	"context"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

func ptr(v float64) *float64 { return &v }

func sample(t *testing.T) *frame.Frame {
	t.Helper()
	df, err := optimus.CreateDataFrame([][]any{
		{"red", int64(1)},
		{"blue", int64(50)},
		{"green", int64(-3)},
		{nil, nil},
	}, []optimus.ColumnSpec{
		{Name: "color", Type: "string", Nullable: true},
		{Name: "n", Type: "int", Nullable: true},
	})
	require.NoError(t, err)
	return df.Frame()
}

func TestInSet(t *testing.T) {
	f := sample(t)
	out, err := NewInSet("color", []string{"red", "blue", "green"}).Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Same(t, f, out)

	_, err = NewInSet("color", []string{"red"}).Apply(context.Background(), f)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.Contains(t, err.Error(), "validate_in: column color has 2 invalid values")

	_, err = NewInSet("n", nil).Apply(context.Background(), f)
	assert.ErrorIs(t, err, optimus.ErrColumnType)
}

func TestRange(t *testing.T) {
	f := sample(t)
	_, err := (&Range{Column: "n", Min: ptr(-10), Max: ptr(100)}).Apply(context.Background(), f)
	require.NoError(t, err)

	_, err = (&Range{Column: "n", Min: ptr(0), Max: ptr(10)}).Apply(context.Background(), f)
	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)

	_, err = (&Range{Column: "missing"}).Apply(context.Background(), f)
	assert.ErrorIs(t, err, optimus.ErrColumnNotFound)
}
