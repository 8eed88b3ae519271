package validate

import (
	"context"
	"fmt"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

type InSet struct {
	Column string
	Values map[string]struct{}
}

func NewInSet(col string, vals []string) *InSet {
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return &InSet{Column: col, Values: m}
}

func (t *InSet) Name() string { return "validate_in" }

func (t *InSet) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	col, err := lookup(f, t.Column)
	if err != nil {
		return nil, err
	}
	sc, ok := col.(*frame.StringColumn)
	if !ok {
		return nil, fmt.Errorf("%w: validate_in needs a string column, %s is %s", optimus.ErrColumnType, t.Column, col.Kind())
	}
	r := &report{step: t.Name(), column: t.Column}
	for i := 0; i < sc.Len(); i++ {
		v, ok := sc.Get(i)
		if !ok {
			continue
		}
		if _, ok := t.Values[v]; !ok {
			r.add(i, "%q not in allowed set", v)
		}
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return f, nil
}
