// Package standardize holds pipeline steps that rewrite string values.
package standardize

import (
	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

// apply runs a DataFrame helper against f and unwraps the result.
func apply(f *frame.Frame, fn func(*optimus.DataFrame) (*optimus.DataFrame, error)) (*frame.Frame, error) {
	out, err := fn(optimus.New(f))
	if err != nil {
		return nil, err
	}
	return out.Frame(), nil
}
