package standardize

import (
	"context"
	"regexp"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

type RegexReplace struct {
	Columns []string
	Pattern string
	Replace string
	re      *regexp.Regexp
}

func (t *RegexReplace) Name() string { return "regex_replace" }

func (t *RegexReplace) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	if t.re == nil {
		re, err := regexp.Compile(t.Pattern)
		if err != nil {
			return nil, err
		}
		t.re = re
	}
	return apply(f, func(df *optimus.DataFrame) (*optimus.DataFrame, error) {
		return df.Apply(func(s string) string { return t.re.ReplaceAllString(s, t.Replace) }, t.Columns...)
	})
}
