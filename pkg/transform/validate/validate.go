// Package validate holds pipeline steps that check values without changing
// them. Every offending row is reported, aggregated into one error.
package validate

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

// ErrInvalid marks a row that failed a validation step.
var ErrInvalid = errors.New("invalid value")

// MaxReported bounds the per-row errors kept in a validation failure.
const MaxReported = 20

type report struct {
	step   string
	column string
	bad    int
	errs   *multierror.Error
}

func (r *report) add(row int, format string, args ...any) {
	r.bad++
	if r.bad <= MaxReported {
		r.errs = multierror.Append(r.errs, fmt.Errorf("%w: row %d: %s", ErrInvalid, row, fmt.Sprintf(format, args...)))
	}
}

func (r *report) err() error {
	if r.bad == 0 {
		return nil
	}
	r.errs.ErrorFormat = func(es []error) string {
		return fmt.Sprintf("%s: column %s has %d invalid values (first %d: %v)", r.step, r.column, r.bad, len(es), es)
	}
	return r.errs
}

func lookup(f *frame.Frame, column string) (frame.Column, error) {
	c, ok := f.ColumnByName(column)
	if !ok {
		return nil, fmt.Errorf("%w: %s", optimus.ErrColumnNotFound, column)
	}
	return c, nil
}
