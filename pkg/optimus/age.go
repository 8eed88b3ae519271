package optimus

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/wdm0006/optimus/pkg/frame"
)

// AgeCalculate derives ages in years from the birth dates in column and
// stores them, rounded to four decimals, in the float column ageColumn.
//
// String columns are parsed with datesFormat, which may be a Go layout
// ("02/01/2006") or a date pattern ("dd/MM/yyyy"). An empty format lets
// dateparse guess. Values that fail to parse produce nulls.
func (df *DataFrame) AgeCalculate(column, datesFormat, ageColumn string) (*DataFrame, error) {
	c, err := df.singleColumn(column)
	if err != nil {
		return nil, err
	}
	if ageColumn == "" || ageColumn == All {
		return nil, fmt.Errorf("%w: age column name %q", ErrInvalidArgument, ageColumn)
	}
	if k := c.Kind(); k != frame.KindString && k != frame.KindTime {
		return nil, fmt.Errorf("%w: %s is %s, want string or time", ErrColumnType, column, k)
	}
	var parse func(string) (time.Time, error)
	if datesFormat == "" {
		parse = func(s string) (time.Time, error) { return dateparse.ParseAny(s) }
	} else {
		layout := goLayout(datesFormat)
		parse = func(s string) (time.Time, error) { return time.Parse(layout, s) }
	}

	now := df.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := frame.NewFloatColumn(ageColumn, c.Len())
	for i := 0; i < c.Len(); i++ {
		born, ok := birthDate(c, i, parse)
		if !ok {
			out.SetNull(i)
			continue
		}
		years := math.Abs(monthsBetween(born, today)) / 12
		out.Set(i, math.Round(years*1e4)/1e4)
	}
	f, err := df.f.WithColumn(out)
	if err != nil {
		return nil, err
	}
	return df.derive(f), nil
}

func birthDate(c frame.Column, i int, parse func(string) (time.Time, error)) (time.Time, bool) {
	switch col := c.(type) {
	case *frame.TimeColumn:
		t, ok := col.Get(i)
		if !ok {
			return time.Time{}, false
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	case *frame.StringColumn:
		s, ok := col.Get(i)
		if !ok {
			return time.Time{}, false
		}
		t, err := parse(strings.TrimSpace(s))
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// monthsBetween returns the months from b to a. Whole months are returned
// when both dates share the day of month or both fall on a month's last
// day; otherwise the remaining days count as fractions of a 31-day month.
func monthsBetween(a, b time.Time) float64 {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	months := float64((y1-y2)*12 + int(m1) - int(m2))
	if d1 == d2 || (lastDayOfMonth(a) && lastDayOfMonth(b)) {
		return months
	}
	return months + float64(d1-d2)/31
}

func lastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Day() == 1
}

// goLayout converts a SimpleDateFormat style pattern such as "d/M/yyyy"
// into a Go layout. Formats that already are Go layouts are returned
// unchanged.
func goLayout(format string) string {
	if strings.Contains(format, "2006") || !strings.ContainsAny(format, "yMdHhmsS") {
		return format
	}
	var b strings.Builder
	for i := 0; i < len(format); {
		ch := format[i]
		if ch == '\'' {
			end := strings.IndexByte(format[i+1:], '\'')
			if end < 0 {
				b.WriteString(format[i+1:])
				break
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}
		n := 1
		for i+n < len(format) && format[i+n] == ch {
			n++
		}
		b.WriteString(layoutToken(ch, n))
		i += n
	}
	return b.String()
}

func layoutToken(ch byte, n int) string {
	pick := func(short, long string) string {
		if n == 1 {
			return short
		}
		return long
	}
	switch ch {
	case 'y':
		if n == 2 {
			return "06"
		}
		return "2006"
	case 'M':
		switch {
		case n >= 4:
			return "January"
		case n == 3:
			return "Jan"
		}
		return pick("1", "01")
	case 'd':
		return pick("2", "02")
	case 'H':
		return "15"
	case 'h':
		return pick("3", "03")
	case 'm':
		return pick("4", "04")
	case 's':
		return pick("5", "05")
	case 'S':
		return strings.Repeat("0", n)
	case 'a':
		return "PM"
	case 'E':
		if n >= 4 {
			return "Monday"
		}
		return "Mon"
	}
	return strings.Repeat(string(ch), n)
}
