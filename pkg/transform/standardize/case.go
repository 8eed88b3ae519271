package standardize

import (
	"context"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

type Lower struct{ Columns []string }

func (t *Lower) Name() string { return "lower" }

func (t *Lower) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return apply(f, func(df *optimus.DataFrame) (*optimus.DataFrame, error) { return df.Lower(t.Columns...) })
}

type Upper struct{ Columns []string }

func (t *Upper) Name() string { return "upper" }

func (t *Upper) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return apply(f, func(df *optimus.DataFrame) (*optimus.DataFrame, error) { return df.Upper(t.Columns...) })
}
