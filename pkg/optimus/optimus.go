// Package optimus adds cleaning, reshaping and statistics helpers on top of
// frame.Frame.
//
// A DataFrame wraps a host frame. Every helper validates its arguments,
// builds replacement columns and delegates to the frame primitives
// (Select, WithColumn, Drop, RenameColumns, Cast). Helpers never modify the
// receiver; they return a new DataFrame that shares untouched columns.
package optimus

import (
	"time"

	"github.com/wdm0006/optimus/pkg/frame"
)

type DataFrame struct {
	f   *frame.Frame
	now func() time.Time
}

type Option func(*DataFrame)

// WithClock overrides the clock used by AgeCalculate.
func WithClock(now func() time.Time) Option {
	return func(df *DataFrame) { df.now = now }
}

func New(f *frame.Frame, opts ...Option) *DataFrame {
	df := &DataFrame{f: f, now: time.Now}
	for _, o := range opts {
		o(df)
	}
	return df
}

func (df *DataFrame) derive(f *frame.Frame) *DataFrame {
	return &DataFrame{f: f, now: df.now}
}

// Frame returns the underlying host frame.
func (df *DataFrame) Frame() *frame.Frame { return df.f }

func (df *DataFrame) Rows() int                    { return df.f.Rows() }
func (df *DataFrame) Columns() []string            { return df.f.Columns() }
func (df *DataFrame) DTypes() []frame.ColumnSchema { return df.f.DTypes() }

// Collect materializes every row as a map keyed by column name.
func (df *DataFrame) Collect() []map[string]any {
	out := make([]map[string]any, df.f.Rows())
	for r := range out {
		out[r] = df.f.Row(r)
	}
	return out
}
