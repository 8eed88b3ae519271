package impute

import (
	"context"
	"fmt"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

// Mode fills nulls with the most frequent value. Ties go to the value that
// reached the winning count first.
type Mode struct{ Column string }

func (t *Mode) Name() string { return "impute_mode" }

func (t *Mode) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	c, err := lookup(f, t.Column)
	if err != nil {
		return nil, err
	}
	if c.Kind() == frame.KindFloat {
		return nil, fmt.Errorf("%w: impute_mode on float column %s", optimus.ErrColumnType, t.Column)
	}
	counts := map[any]int{}
	var best any
	var bestc int
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Value(i)
		if !ok {
			continue
		}
		counts[v]++
		if counts[v] > bestc {
			bestc = counts[v]
			best = v
		}
	}
	if best == nil {
		return f, nil
	}
	return fillNulls(f, c, best)
}
