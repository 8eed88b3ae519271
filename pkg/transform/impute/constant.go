package impute

import (
	"context"

	"github.com/wdm0006/optimus/pkg/frame"
)

type Constant struct {
	Column string
	// coerced to the column kind; JSON numbers arrive as float64
	Value any
}

func (t *Constant) Name() string { return "impute_constant" }

func (t *Constant) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	c, err := lookup(f, t.Column)
	if err != nil {
		return nil, err
	}
	v := t.Value
	if s, ok := v.(string); ok && c.Kind() != frame.KindString {
		if pv, ok := frame.ParseValue(c.Kind(), s); ok {
			v = pv
		}
	}
	return fillNulls(f, c, v)
}
