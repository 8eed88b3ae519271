package optimus

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/wdm0006/optimus/pkg/frame"
)

// All selects every column when passed as the only column argument.
const All = "*"

func isAll(cols []string) bool { return len(cols) == 1 && cols[0] == All }

// ParseColumns resolves a column argument list. "*" alone expands to every
// column in frame order; otherwise each name must exist exactly once.
func (df *DataFrame) ParseColumns(cols ...string) ([]string, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	if isAll(cols) {
		return df.f.Columns(), nil
	}
	var result *multierror.Error
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, dup := seen[c]; dup {
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrDuplicateColumn, c))
			continue
		}
		seen[c] = struct{}{}
		if !df.f.Has(c) {
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrColumnNotFound, c))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return append([]string(nil), cols...), nil
}

// columnsOfKind resolves cols like ParseColumns but restricts them to kinds
// accepted by ok. With "*" non-matching columns are skipped; a named
// non-matching column is an error.
func (df *DataFrame) columnsOfKind(cols []string, want string, ok func(frame.Kind) bool) ([]string, error) {
	names, err := df.ParseColumns(cols...)
	if err != nil {
		return nil, err
	}
	star := isAll(cols)
	out := names[:0]
	var result *multierror.Error
	for _, n := range names {
		c, _ := df.f.ColumnByName(n)
		if ok(c.Kind()) {
			out = append(out, n)
			continue
		}
		if !star {
			result = multierror.Append(result, fmt.Errorf("%w: %s is %s, want %s", ErrColumnType, n, c.Kind(), want))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func (df *DataFrame) stringColumns(cols []string) ([]string, error) {
	return df.columnsOfKind(cols, "string", func(k frame.Kind) bool { return k == frame.KindString })
}

func (df *DataFrame) numericColumns(cols []string) ([]string, error) {
	return df.columnsOfKind(cols, "int or float", frame.Kind.Numeric)
}

// singleColumn checks that name refers to exactly one existing column.
func (df *DataFrame) singleColumn(name string) (frame.Column, error) {
	if name == "" || name == All {
		return nil, fmt.Errorf("%w: expected a single column name, got %q", ErrInvalidArgument, name)
	}
	c, ok := df.f.ColumnByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	return c, nil
}
