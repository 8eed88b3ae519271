package optimus

import (
	"fmt"
	"strings"
)

// Drop removes the given columns ("*" drops them all).
func (df *DataFrame) Drop(cols ...string) (*DataFrame, error) {
	names, err := df.ParseColumns(cols...)
	if err != nil {
		return nil, err
	}
	return df.derive(df.f.Drop(names...)), nil
}

// Keep selects the given columns in argument order.
func (df *DataFrame) Keep(cols ...string) (*DataFrame, error) {
	names, err := df.ParseColumns(cols...)
	if err != nil {
		return nil, err
	}
	f, err := df.f.Select(names...)
	if err != nil {
		return nil, err
	}
	return df.derive(f), nil
}

// ColumnPair names an existing column and its replacement name.
type ColumnPair struct {
	Old string `json:"old" yaml:"old" toml:"old"`
	New string `json:"new" yaml:"new" toml:"new"`
}

// Rename aliases columns in place. Columns not named in pairs are kept.
// All renames apply at once, so two columns may swap names.
func (df *DataFrame) Rename(pairs ...ColumnPair) (*DataFrame, error) {
	if len(pairs) == 0 {
		return nil, ErrNoColumns
	}
	olds := make([]string, len(pairs))
	aliases := make(map[string]string, len(pairs))
	for i, p := range pairs {
		if strings.TrimSpace(p.New) == "" {
			return nil, fmt.Errorf("%w: empty new name for %s", ErrInvalidArgument, p.Old)
		}
		olds[i] = p.Old
		aliases[p.Old] = p.New
	}
	if isAll(olds) {
		return nil, fmt.Errorf("%w: %q cannot be renamed", ErrInvalidArgument, All)
	}
	if _, err := df.ParseColumns(olds...); err != nil {
		return nil, err
	}
	f, err := df.f.RenameColumns(aliases)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDuplicateColumn, err)
	}
	return df.derive(f), nil
}

// Position places a moved column relative to its reference column.
type Position string

const (
	After  Position = "after"
	Before Position = "before"
)

// MoveColumn moves column immediately after or before ref. Moving a column
// relative to itself leaves the order unchanged.
func (df *DataFrame) MoveColumn(column, ref string, pos Position) (*DataFrame, error) {
	if pos != After && pos != Before {
		return nil, fmt.Errorf("%w: got %q", ErrPosition, pos)
	}
	if _, err := df.singleColumn(column); err != nil {
		return nil, err
	}
	if _, err := df.singleColumn(ref); err != nil {
		return nil, err
	}
	if column == ref {
		return df, nil
	}
	order := make([]string, 0, df.f.Cols())
	for _, n := range df.f.Columns() {
		if n != column {
			order = append(order, n)
		}
	}
	at := 0
	for i, n := range order {
		if n == ref {
			at = i
			break
		}
	}
	if pos == After {
		at++
	}
	order = append(order[:at], append([]string{column}, order[at:]...)...)
	f, err := df.f.Select(order...)
	if err != nil {
		return nil, err
	}
	return df.derive(f), nil
}
