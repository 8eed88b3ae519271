package optimus

import (
	"fmt"
	"strings"

	"github.com/wdm0006/optimus/pkg/frame"
)

var typeNames = map[string]frame.Kind{
	"string":    frame.KindString,
	"str":       frame.KindString,
	"integer":   frame.KindInt,
	"int":       frame.KindInt,
	"long":      frame.KindInt,
	"float":     frame.KindFloat,
	"double":    frame.KindFloat,
	"bool":      frame.KindBool,
	"boolean":   frame.KindBool,
	"time":      frame.KindTime,
	"timestamp": frame.KindTime,
	"date":      frame.KindTime,
}

// ParseKind maps a type name such as "integer", "str" or "Double" to a
// column kind. Names are matched case-insensitively.
func ParseKind(name string) (frame.Kind, error) {
	k, ok := typeNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return frame.KindInvalid, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return k, nil
}

// ColumnType names a column and the type it should be cast to.
type ColumnType struct {
	Column string `json:"column" yaml:"column" toml:"column"`
	Type   string `json:"type" yaml:"type" toml:"type"`
}

// AsType casts columns to new types. Values that do not convert become
// null. Column order is preserved.
func (df *DataFrame) AsType(pairs ...ColumnType) (*DataFrame, error) {
	if len(pairs) == 0 {
		return nil, ErrNoColumns
	}
	names := make([]string, len(pairs))
	kinds := make([]frame.Kind, len(pairs))
	for i, p := range pairs {
		k, err := ParseKind(p.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", p.Column, err)
		}
		names[i], kinds[i] = p.Column, k
	}
	if isAll(names) {
		return nil, fmt.Errorf("%w: %q cannot be cast", ErrInvalidArgument, All)
	}
	if _, err := df.ParseColumns(names...); err != nil {
		return nil, err
	}
	out := df.f
	for i, n := range names {
		c, _ := out.ColumnByName(n)
		nc, err := frame.Cast(c, kinds[i])
		if err != nil {
			return nil, err
		}
		if out, err = out.WithColumn(nc); err != nil {
			return nil, err
		}
	}
	return df.derive(out), nil
}

// ColumnSpec describes one column of a DataFrame built by CreateDataFrame.
type ColumnSpec struct {
	Name     string
	Type     string
	Nullable bool
}

// CreateDataFrame builds a DataFrame from row-major values. Each row must
// have one value per spec; nil marks a null, which non-nullable columns
// reject.
func CreateDataFrame(rows [][]any, specs []ColumnSpec, opts ...Option) (*DataFrame, error) {
	if len(specs) == 0 {
		return nil, ErrNoColumns
	}
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(specs))}
	seen := make(map[string]struct{}, len(specs))
	for i, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: column %d has no name", ErrInvalidArgument, i)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, s.Name)
		}
		seen[s.Name] = struct{}{}
		k, err := ParseKind(s.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", s.Name, err)
		}
		schema.Columns[i] = frame.ColumnSchema{Name: s.Name, Type: k, Nullable: s.Nullable}
	}
	f := frame.NewFrame(schema)
	for r, row := range rows {
		if len(row) != len(specs) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrInvalidArgument, r, len(row), len(specs))
		}
		f.AppendNullRow()
		for i, v := range row {
			if v == nil && !specs[i].Nullable {
				return nil, fmt.Errorf("%w: row %d: null in non-nullable column %s", ErrInvalidArgument, r, specs[i].Name)
			}
			if err := f.SetCell(r, specs[i].Name, v); err != nil {
				return nil, fmt.Errorf("row %d: %w", r, err)
			}
		}
	}
	return New(f, opts...), nil
}
