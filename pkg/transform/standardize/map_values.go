package standardize

import (
	"context"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

// MapValues replaces values found in Map.
type MapValues struct {
	Columns []string
	Map     map[string]string
}

func (t *MapValues) Name() string { return "map_values" }

func (t *MapValues) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return apply(f, func(df *optimus.DataFrame) (*optimus.DataFrame, error) { return df.LookupMap(t.Map, t.Columns...) })
}

// Lookup replaces every value listed in Keys with ReplaceBy.
type Lookup struct {
	Columns   []string
	Keys      []string
	ReplaceBy string
}

func (t *Lookup) Name() string { return "lookup" }

func (t *Lookup) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return apply(f, func(df *optimus.DataFrame) (*optimus.DataFrame, error) {
		return df.Lookup(t.ReplaceBy, t.Keys, t.Columns...)
	})
}

// EmptyTo replaces empty strings with Value.
type EmptyTo struct {
	Columns []string
	Value   string
}

func (t *EmptyTo) Name() string { return "empty_to" }

func (t *EmptyTo) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	return apply(f, func(df *optimus.DataFrame) (*optimus.DataFrame, error) {
		return df.EmptyStrToStr(t.Value, t.Columns...)
	})
}
