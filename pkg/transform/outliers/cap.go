// Package outliers clamps numeric values.
package outliers

import (
	"context"
	"fmt"
	"math"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

// Cap clamps a numeric column to [Min, Max]. Nil bounds are open.
type Cap struct {
	Column string
	Min    *float64
	Max    *float64
}

func (t *Cap) Name() string { return "cap_range" }

func (t *Cap) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return clamp(f, t.Column, t.Min, t.Max)
}

// Sigma clamps a numeric column to mean ± K standard deviations, using the
// column's own statistics.
type Sigma struct {
	Column string
	K      float64
}

func (t *Sigma) Name() string { return "cap_sigma" }

func (t *Sigma) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	if t.K <= 0 {
		return nil, fmt.Errorf("%w: cap_sigma needs k > 0", optimus.ErrInvalidArgument)
	}
	sums, err := optimus.New(f).Describe(ctx, t.Column)
	if err != nil {
		return nil, err
	}
	s := sums[0]
	if math.IsNaN(s.StdDev) {
		return f, nil
	}
	lo, hi := s.Mean-t.K*s.StdDev, s.Mean+t.K*s.StdDev
	return clamp(f, t.Column, &lo, &hi)
}

func clamp(f *frame.Frame, column string, lo, hi *float64) (*frame.Frame, error) {
	col, ok := f.ColumnByName(column)
	if !ok {
		return nil, fmt.Errorf("%w: %s", optimus.ErrColumnNotFound, column)
	}
	switch c := col.(type) {
	case *frame.FloatColumn:
		nc := frame.NewFloatColumn(c.Name(), c.Len())
		for i := 0; i < c.Len(); i++ {
			v, ok := c.Get(i)
			if !ok {
				nc.SetNull(i)
				continue
			}
			if lo != nil && v < *lo {
				v = *lo
			}
			if hi != nil && v > *hi {
				v = *hi
			}
			nc.Set(i, v)
		}
		return f.WithColumn(nc)
	case *frame.IntColumn:
		nc := frame.NewIntColumn(c.Name(), c.Len())
		for i := 0; i < c.Len(); i++ {
			v, ok := c.Get(i)
			if !ok {
				nc.SetNull(i)
				continue
			}
			if lo != nil && float64(v) < *lo {
				v = int64(math.Ceil(*lo))
			}
			if hi != nil && float64(v) > *hi {
				v = int64(math.Floor(*hi))
			}
			nc.Set(i, v)
		}
		return f.WithColumn(nc)
	}
	return nil, fmt.Errorf("%w: cannot cap %s column %s", optimus.ErrColumnType, col.Kind(), column)
}
