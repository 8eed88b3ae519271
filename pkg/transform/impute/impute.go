// Package impute fills null cells.
package impute

import (
	"fmt"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

func lookup(f *frame.Frame, column string) (frame.Column, error) {
	c, ok := f.ColumnByName(column)
	if !ok {
		return nil, fmt.Errorf("%w: %s", optimus.ErrColumnNotFound, column)
	}
	return c, nil
}

// fillNulls returns f with the nulls of column replaced by v.
func fillNulls(f *frame.Frame, c frame.Column, v any) (*frame.Frame, error) {
	nc, err := frame.NewColumn(c.Name(), c.Kind(), c.Len())
	if err != nil {
		return nil, err
	}
	for i := 0; i < c.Len(); i++ {
		cur, ok := c.Value(i)
		if !ok {
			cur = v
		}
		if err := frame.SetValue(nc, i, cur); err != nil {
			return nil, fmt.Errorf("impute %s: %w", c.Name(), err)
		}
	}
	return f.WithColumn(nc)
}
