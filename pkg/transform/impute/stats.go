package impute

import (
	"context"
	"math"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

type Mean struct{ Column string }

func (t *Mean) Name() string { return "impute_mean" }

func (t *Mean) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return fillStat(ctx, f, t.Column, (*optimus.DataFrame).Mean)
}

type Median struct{ Column string }

func (t *Median) Name() string { return "impute_median" }

func (t *Median) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return fillStat(ctx, f, t.Column, (*optimus.DataFrame).Median)
}

type statFunc func(*optimus.DataFrame, context.Context, ...string) ([]float64, error)

// fillStat fills nulls with a column statistic. Int columns receive the
// statistic rounded to the nearest integer. Columns without any value are
// left as they are.
func fillStat(ctx context.Context, f *frame.Frame, column string, fn statFunc) (*frame.Frame, error) {
	c, err := lookup(f, column)
	if err != nil {
		return nil, err
	}
	vals, err := fn(optimus.New(f), ctx, column)
	if err != nil {
		return nil, err
	}
	v := vals[0]
	if math.IsNaN(v) {
		return f, nil
	}
	if c.Kind() == frame.KindInt {
		return fillNulls(f, c, int64(math.Round(v)))
	}
	return fillNulls(f, c, v)
}
