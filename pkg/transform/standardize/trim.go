package standardize

import (
	"context"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

type Trim struct{ Columns []string }

func (t *Trim) Name() string { return "trim" }

func (t *Trim) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return apply(f, func(df *optimus.DataFrame) (*optimus.DataFrame, error) { return df.Trim(t.Columns...) })
}

type Reverse struct{ Columns []string }

func (t *Reverse) Name() string { return "reverse" }

func (t *Reverse) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return apply(f, func(df *optimus.DataFrame) (*optimus.DataFrame, error) { return df.Reverse(t.Columns...) })
}

type RemoveAccents struct{ Columns []string }

func (t *RemoveAccents) Name() string { return "remove_accents" }

func (t *RemoveAccents) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return apply(f, func(df *optimus.DataFrame) (*optimus.DataFrame, error) { return df.RemoveAccents(t.Columns...) })
}
