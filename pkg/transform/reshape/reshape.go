// Package reshape holds pipeline steps that change which columns a frame
// has, their names, order and types.
package reshape

import (
	"context"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

func apply(f *frame.Frame, fn func(*optimus.DataFrame) (*optimus.DataFrame, error)) (*frame.Frame, error) {
	out, err := fn(optimus.New(f))
	if err != nil {
		return nil, err
	}
	return out.Frame(), nil
}

type Drop struct{ Columns []string }

func (t *Drop) Name() string { return "drop" }

func (t *Drop) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return apply(f, func(df *optimus.DataFrame) (*optimus.DataFrame, error) { return df.Drop(t.Columns...) })
}

type Keep struct{ Columns []string }

func (t *Keep) Name() string { return "keep" }

func (t *Keep) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return apply(f, func(df *optimus.DataFrame) (*optimus.DataFrame, error) { return df.Keep(t.Columns...) })
}

type Rename struct{ Pairs []optimus.ColumnPair }

func (t *Rename) Name() string { return "rename" }

func (t *Rename) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return apply(f, func(df *optimus.DataFrame) (*optimus.DataFrame, error) { return df.Rename(t.Pairs...) })
}

type Move struct {
	Column   string
	Ref      string
	Position optimus.Position
}

func (t *Move) Name() string { return "move" }

func (t *Move) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return apply(f, func(df *optimus.DataFrame) (*optimus.DataFrame, error) {
		return df.MoveColumn(t.Column, t.Ref, t.Position)
	})
}

type AsType struct{ Types []optimus.ColumnType }

func (t *AsType) Name() string { return "astype" }

func (t *AsType) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return apply(f, func(df *optimus.DataFrame) (*optimus.DataFrame, error) { return df.AsType(t.Types...) })
}

// Age derives an age-in-years column from a birth date column.
type Age struct {
	Column string
	Format string
	Output string
	// Now overrides the clock; nil means time.Now.
	Now optimus.Option
}

func (t *Age) Name() string { return "age" }

func (t *Age) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	var opts []optimus.Option
	if t.Now != nil {
		opts = append(opts, t.Now)
	}
	out, err := optimus.New(f, opts...).AgeCalculate(t.Column, t.Format, t.Output)
	if err != nil {
		return nil, err
	}
	return out.Frame(), nil
}
