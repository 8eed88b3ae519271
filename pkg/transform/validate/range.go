package validate

import (
	"context"
	"fmt"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

type Range struct {
	Column string
	Min    *float64
	Max    *float64
}

func (t *Range) Name() string { return "validate_range" }

func (t *Range) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	c, err := lookup(f, t.Column)
	if err != nil {
		return nil, err
	}
	if !c.Kind().Numeric() {
		return nil, fmt.Errorf("%w: validate_range needs a numeric column, %s is %s", optimus.ErrColumnType, t.Column, c.Kind())
	}
	r := &report{step: t.Name(), column: t.Column}
	for i := 0; i < c.Len(); i++ {
		v, ok := frame.Float64At(c, i)
		if !ok {
			continue
		}
		if t.Min != nil && v < *t.Min {
			r.add(i, "%g below %g", v, *t.Min)
		}
		if t.Max != nil && v > *t.Max {
			r.add(i, "%g above %g", v, *t.Max)
		}
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return f, nil
}
