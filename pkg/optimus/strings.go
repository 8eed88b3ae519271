package optimus

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/wdm0006/optimus/pkg/frame"
)

// Apply replaces every non-null value of the given string columns with
// fn(value). "*" applies fn to every string column.
func (df *DataFrame) Apply(fn func(string) string, cols ...string) (*DataFrame, error) {
	names, err := df.stringColumns(cols)
	if err != nil {
		return nil, err
	}
	out := df.f
	for _, n := range names {
		c, _ := out.ColumnByName(n)
		nc := mapStrings(c.(*frame.StringColumn), fn)
		if out, err = out.WithColumn(nc); err != nil {
			return nil, err
		}
	}
	return df.derive(out), nil
}

func mapStrings(c *frame.StringColumn, fn func(string) string) *frame.StringColumn {
	nc := frame.NewStringColumn(c.Name(), c.Len())
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Get(i)
		if !ok {
			nc.SetNull(i)
			continue
		}
		nc.Set(i, fn(v))
	}
	return nc
}

func (df *DataFrame) Lower(cols ...string) (*DataFrame, error) {
	return df.Apply(strings.ToLower, cols...)
}

func (df *DataFrame) Upper(cols ...string) (*DataFrame, error) {
	return df.Apply(strings.ToUpper, cols...)
}

func (df *DataFrame) Trim(cols ...string) (*DataFrame, error) {
	return df.Apply(strings.TrimSpace, cols...)
}

// Reverse reverses each value rune by rune.
func (df *DataFrame) Reverse(cols ...string) (*DataFrame, error) {
	return df.Apply(reverse, cols...)
}

// RemoveAccents decomposes each value (NFKD) and drops the combining marks,
// so "Canción" becomes "Cancion".
func (df *DataFrame) RemoveAccents(cols ...string) (*DataFrame, error) {
	return df.Apply(RemoveAccents, cols...)
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// RemoveAccents strips combining marks from s after compatibility
// decomposition.
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
