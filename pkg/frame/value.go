package frame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// TimeLayout is the layout used when a time value is rendered as text.
const TimeLayout = time.RFC3339

// ParseValue converts trimmed text into a value of kind k. ok is false
// when the text is empty or cannot be represented in k.
func ParseValue(k Kind, text string) (v any, ok bool) {
	s := strings.ToValidUTF8(strings.TrimSpace(text), "?")
	if s == "" {
		return nil, false
	}
	switch k {
	case KindFloat:
		if x, err := strconv.ParseFloat(s, 64); err == nil {
			return x, true
		}
	case KindInt:
		if x, err := strconv.ParseInt(s, 10, 64); err == nil {
			return x, true
		}
	case KindBool:
		if x, err := strconv.ParseBool(strings.ToLower(s)); err == nil {
			return x, true
		}
	case KindTime:
		if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
			return t, true
		}
	case KindString:
		return s, true
	}
	return nil, false
}

// SetParsed parses text for the named column and stores it. Unparseable
// or empty text leaves the cell null.
func (f *Frame) SetParsed(row int, cs ColumnSchema, text string) {
	if v, ok := ParseValue(cs.Type, text); ok {
		_ = f.SetCell(row, cs.Name, v)
	}
}

// FormatValue renders a non-null cell as text.
func FormatValue(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case string:
		return t
	case time.Time:
		return t.Format(TimeLayout)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Cast converts c into a column of kind k under the same name. Values that
// cannot be converted become null. Casting to the column's own kind returns
// c unchanged.
func Cast(c Column, k Kind) (Column, error) {
	if c.Kind() == k {
		return c, nil
	}
	out, err := NewColumn(c.Name(), k, c.Len())
	if err != nil {
		return nil, err
	}
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Value(i)
		if !ok {
			out.SetNull(i)
			continue
		}
		cv, ok := convert(v, k)
		if !ok {
			out.SetNull(i)
			continue
		}
		if err := SetValue(out, i, cv); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func convert(v any, k Kind) (any, bool) {
	if k == KindString {
		return FormatValue(v), true
	}
	switch t := v.(type) {
	case string:
		return ParseValue(k, t)
	case int64:
		switch k {
		case KindFloat:
			return float64(t), true
		case KindBool:
			return t != 0, true
		case KindTime:
			return time.Unix(t, 0).UTC(), true
		}
	case float64:
		switch k {
		case KindInt:
			if math.IsNaN(t) || math.IsInf(t, 0) {
				return nil, false
			}
			return int64(t), true
		case KindBool:
			return t != 0, true
		case KindTime:
			sec, frac := math.Modf(t)
			return time.Unix(int64(sec), int64(frac*1e9)).UTC(), true
		}
	case bool:
		n := int64(0)
		if t {
			n = 1
		}
		switch k {
		case KindInt:
			return n, true
		case KindFloat:
			return float64(n), true
		}
	case time.Time:
		switch k {
		case KindInt:
			return t.Unix(), true
		case KindFloat:
			return float64(t.UnixNano()) / 1e9, true
		}
	}
	return nil, false
}
