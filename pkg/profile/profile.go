// Package profile accumulates per-column statistics over one or more
// frames, so it can follow a chunked stream.
package profile

import (
	"bytes"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/stat"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
)

type BoolStats struct {
	Count int `json:"count"`
	Nulls int `json:"nulls"`
	True  int `json:"true"`
	False int `json:"false"`
}

type StringStats struct {
	Count int            `json:"count"`
	Nulls int            `json:"nulls"`
	Top   map[string]int `json:"top,omitempty"`
}

// DefaultSampleSize bounds the values a numeric column keeps for its
// median when the collector follows a stream.
const DefaultSampleSize = 10000

// moments accumulates count, extremes and central moments in one pass.
type moments struct {
	n                   float64
	min, max, sum, mean float64
	m2, m3, m4          float64
}

func (m *moments) add(x float64) {
	if m.n == 0 || x < m.min {
		m.min = x
	}
	if m.n == 0 || x > m.max {
		m.max = x
	}
	n1 := m.n
	m.n++
	m.sum += x
	delta := x - m.mean
	dn := delta / m.n
	dn2 := dn * dn
	term := delta * dn * n1
	m.mean += dn
	m.m4 += term*dn2*(m.n*m.n-3*m.n+3) + 6*dn2*m.m2 - 4*dn*m.m3
	m.m3 += term*dn*(m.n-2) - 3*dn*m.m2
	m.m2 += term
}

type ColumnProfile struct {
	Name  string
	Kind  frame.Kind
	mom   moments
	nulls int
	// sample holds every value up to the collector's sample size, then a
	// uniform reservoir of them.
	sample []float64
	Bool   *BoolStats
	Str    *StringStats
}

type Collector struct {
	cols   []*ColumnProfile
	index  map[string]int
	topK   int
	sample int
	rng    *rand.Rand
}

// Option configures a Collector.
type Option func(*Collector)

// WithSampleSize sets how many values each numeric column keeps for its
// median. Zero or less keeps every value, so the median is exact.
func WithSampleSize(n int) Option {
	return func(c *Collector) { c.sample = n }
}

// WithExactMedian keeps every numeric value. Memory grows with the input.
func WithExactMedian() Option { return WithSampleSize(0) }

func NewCollector(schema frame.Schema, topK int, opts ...Option) *Collector {
	c := &Collector{
		index:  make(map[string]int),
		topK:   topK,
		sample: DefaultSampleSize,
		rng:    rand.New(rand.NewPCG(1, 2)),
	}
	for _, o := range opts {
		o(c)
	}
	for i, cs := range schema.Columns {
		cp := &ColumnProfile{Name: cs.Name, Kind: cs.Type}
		switch cs.Type {
		case frame.KindBool:
			cp.Bool = &BoolStats{}
		case frame.KindString, frame.KindTime:
			cp.Str = &StringStats{Top: make(map[string]int)}
		}
		c.cols = append(c.cols, cp)
		c.index[cs.Name] = i
	}
	return c
}

// ConsumeFrame adds the values of f. Columns unknown to the collector are
// ignored.
func (c *Collector) ConsumeFrame(f *frame.Frame) {
	for i := 0; i < f.Cols(); i++ {
		col := f.ColumnAt(i)
		idx, ok := c.index[col.Name()]
		if !ok {
			continue
		}
		cp := c.cols[idx]
		for r := 0; r < col.Len(); r++ {
			v, ok := col.Value(r)
			switch {
			case cp.Kind.Numeric():
				if x, ok := frame.Float64At(col, r); ok {
					cp.mom.add(x)
					c.keep(cp, x)
				} else {
					cp.nulls++
				}
			case cp.Bool != nil:
				if !ok {
					cp.Bool.Nulls++
					continue
				}
				cp.Bool.Count++
				if v.(bool) {
					cp.Bool.True++
				} else {
					cp.Bool.False++
				}
			case cp.Str != nil:
				if !ok {
					cp.Str.Nulls++
					continue
				}
				cp.Str.Count++
				if c.topK > 0 {
					cp.Str.Top[frame.FormatValue(v)]++
				}
			}
		}
	}
}

func (c *Collector) keep(cp *ColumnProfile, x float64) {
	if c.sample <= 0 || len(cp.sample) < c.sample {
		cp.sample = append(cp.sample, x)
		return
	}
	if k := c.rng.Int64N(int64(cp.mom.n)); k < int64(c.sample) {
		cp.sample[k] = x
	}
}

// Numeric returns the optimus summary of a numeric column profile. The
// median is exact while the column fits in the sample.
func (cp *ColumnProfile) Numeric() (optimus.Summary, bool) {
	if !cp.Kind.Numeric() {
		return optimus.Summary{}, false
	}
	m := cp.mom
	s := optimus.Summary{Column: cp.Name, Count: int(m.n), Nulls: cp.nulls}
	if m.n == 0 {
		nan := math.NaN()
		s.Min, s.Max, s.Range, s.Sum, s.Mean, s.Median = nan, nan, nan, nan, nan, nan
		s.StdDev, s.Variance, s.Skewness, s.Kurtosis = nan, nan, nan, nan
		return s, true
	}
	s.Min, s.Max, s.Sum, s.Mean = m.min, m.max, m.sum, m.mean
	s.Range = m.max - m.min
	sorted := append([]float64(nil), cp.sample...)
	sort.Float64s(sorted)
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	n := m.n
	s.Variance = m.m2 / (n - 1)
	s.StdDev = math.Sqrt(s.Variance)
	sd3 := s.Variance * s.StdDev
	s.Skewness = m.m3 / sd3 * n / ((n - 1) * (n - 2))
	mul := (n + 1) / (n - 1) * (n / (n - 2)) / (n - 3)
	offset := 3 * ((n - 1) / (n - 2)) * ((n - 1) / (n - 3))
	s.Kurtosis = m.m4/(s.Variance*s.Variance)*mul - offset
	return s, true
}

type kv struct {
	k string
	v int
}

func (c *Collector) top(cp *ColumnProfile) []kv {
	if cp.Str == nil || len(cp.Str.Top) == 0 {
		return nil
	}
	arr := make([]kv, 0, len(cp.Str.Top))
	for k, v := range cp.Str.Top {
		arr = append(arr, kv{k, v})
	}
	sort.Slice(arr, func(i, j int) bool {
		if arr[i].v != arr[j].v {
			return arr[i].v > arr[j].v
		}
		return arr[i].k < arr[j].k
	})
	n := c.topK
	if n <= 0 || n > len(arr) {
		n = len(arr)
	}
	return arr[:n]
}

func g(x float64) string { return strconv.FormatFloat(x, 'g', 6, 64) }

// ReportText renders the profile as a table, one row per column.
func (c *Collector) ReportText() string {
	var buf bytes.Buffer
	buf.WriteString("Profile Summary\n")
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"column", "kind", "count", "nulls", "min", "max", "mean", "median", "stddev", "skew", "kurt", "top"})
	table.SetAutoFormatHeaders(false)
	for _, cp := range c.cols {
		row := []string{cp.Name, cp.Kind.String(), "", "", "", "", "", "", "", "", "", ""}
		switch {
		case cp.Kind.Numeric():
			s, _ := cp.Numeric()
			row[2], row[3] = strconv.Itoa(s.Count), strconv.Itoa(s.Nulls)
			row[4], row[5], row[6], row[7] = g(s.Min), g(s.Max), g(s.Mean), g(s.Median)
			row[8], row[9], row[10] = g(s.StdDev), g(s.Skewness), g(s.Kurtosis)
		case cp.Bool != nil:
			row[2], row[3] = strconv.Itoa(cp.Bool.Count), strconv.Itoa(cp.Bool.Nulls)
			row[11] = fmt.Sprintf("true=%d false=%d", cp.Bool.True, cp.Bool.False)
		case cp.Str != nil:
			row[2], row[3] = strconv.Itoa(cp.Str.Count), strconv.Itoa(cp.Str.Nulls)
			var top bytes.Buffer
			for i, e := range c.top(cp) {
				if i > 0 {
					top.WriteString(", ")
				}
				fmt.Fprintf(&top, "%q:%d", e.k, e.v)
			}
			row[11] = top.String()
		}
		table.Append(row)
	}
	table.Render()
	return buf.String()
}

type JSONProfile struct {
	Columns []JSONColumn `json:"columns"`
}

type JSONColumn struct {
	Name string           `json:"name"`
	Kind string           `json:"kind"`
	Num  *optimus.Summary `json:"num,omitempty"`
	Bool *BoolStats       `json:"bool,omitempty"`
	Str  *StringStats     `json:"str,omitempty"`
}

// ReportJSON returns a JSON-friendly profile. NaN and infinite statistics
// are reported as zero because encoding/json rejects them.
func (c *Collector) ReportJSON() JSONProfile {
	out := JSONProfile{Columns: make([]JSONColumn, 0, len(c.cols))}
	for _, cp := range c.cols {
		jc := JSONColumn{Name: cp.Name, Kind: cp.Kind.String()}
		switch {
		case cp.Kind.Numeric():
			s, _ := cp.Numeric()
			s = finite(s)
			jc.Num = &s
		case cp.Bool != nil:
			jc.Bool = cp.Bool
		case cp.Str != nil:
			st := &StringStats{Count: cp.Str.Count, Nulls: cp.Str.Nulls}
			if top := c.top(cp); len(top) > 0 {
				st.Top = make(map[string]int, len(top))
				for _, e := range top {
					st.Top[e.k] = e.v
				}
			}
			jc.Str = st
		}
		out.Columns = append(out.Columns, jc)
	}
	return out
}

func finite(s optimus.Summary) optimus.Summary {
	for _, p := range []*float64{&s.Min, &s.Max, &s.Range, &s.Sum, &s.Mean, &s.Median, &s.StdDev, &s.Variance, &s.Skewness, &s.Kurtosis} {
		if math.IsNaN(*p) || math.IsInf(*p, 0) {
			*p = 0
		}
	}
	return s
}
