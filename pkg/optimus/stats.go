package optimus

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/wdm0006/optimus/pkg/frame"
)

// Aggregations take int and float columns; "*" selects every numeric
// column. Nulls are ignored and a column without values yields NaN. The
// result has one entry per resolved column, in order.

func (df *DataFrame) Min(ctx context.Context, cols ...string) ([]float64, error) {
	return df.aggregate(ctx, floats.Min, cols)
}

func (df *DataFrame) Max(ctx context.Context, cols ...string) ([]float64, error) {
	return df.aggregate(ctx, floats.Max, cols)
}

// Range returns max - min for each column.
func (df *DataFrame) Range(ctx context.Context, cols ...string) ([]float64, error) {
	return df.aggregate(ctx, func(x []float64) float64 { return floats.Max(x) - floats.Min(x) }, cols)
}

// Median returns the exact 0.5 quantile. For an even count it is the lower
// of the two middle values, so the result is always an observed value.
func (df *DataFrame) Median(ctx context.Context, cols ...string) ([]float64, error) {
	return df.aggregate(ctx, median, cols)
}

func (df *DataFrame) Mean(ctx context.Context, cols ...string) ([]float64, error) {
	return df.aggregate(ctx, func(x []float64) float64 { return stat.Mean(x, nil) }, cols)
}

func (df *DataFrame) Sum(ctx context.Context, cols ...string) ([]float64, error) {
	return df.aggregate(ctx, floats.Sum, cols)
}

// StdDev is the sample standard deviation.
func (df *DataFrame) StdDev(ctx context.Context, cols ...string) ([]float64, error) {
	return df.aggregate(ctx, func(x []float64) float64 { return stat.StdDev(x, nil) }, cols)
}

// Variance is the sample variance.
func (df *DataFrame) Variance(ctx context.Context, cols ...string) ([]float64, error) {
	return df.aggregate(ctx, func(x []float64) float64 { return stat.Variance(x, nil) }, cols)
}

func (df *DataFrame) Skewness(ctx context.Context, cols ...string) ([]float64, error) {
	return df.aggregate(ctx, func(x []float64) float64 { return stat.Skew(x, nil) }, cols)
}

// Kurtosis is the excess kurtosis (0 for a normal distribution).
func (df *DataFrame) Kurtosis(ctx context.Context, cols ...string) ([]float64, error) {
	return df.aggregate(ctx, func(x []float64) float64 { return stat.ExKurtosis(x, nil) }, cols)
}

func median(x []float64) float64 {
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

func (df *DataFrame) aggregate(ctx context.Context, fn func([]float64) float64, cols []string) ([]float64, error) {
	names, err := df.numericColumns(cols)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, n := range names {
		i, n := i, n
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, _ := df.f.ColumnByName(n)
			x, _ := values(c)
			if len(x) == 0 {
				out[i] = math.NaN()
				return nil
			}
			out[i] = fn(x)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// values collects the non-null cells of a numeric column and counts nulls.
func values(c frame.Column) ([]float64, int) {
	x := make([]float64, 0, c.Len())
	nulls := 0
	for i := 0; i < c.Len(); i++ {
		v, ok := frame.Float64At(c, i)
		if !ok {
			nulls++
			continue
		}
		x = append(x, v)
	}
	return x, nulls
}

// Summary holds every statistic for one numeric column.
type Summary struct {
	Column   string  `json:"column"`
	Count    int     `json:"count"`
	Nulls    int     `json:"nulls"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Range    float64 `json:"range"`
	Sum      float64 `json:"sum"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"stddev"`
	Variance float64 `json:"variance"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// Describe computes a Summary for each numeric column.
func (df *DataFrame) Describe(ctx context.Context, cols ...string) ([]Summary, error) {
	names, err := df.numericColumns(cols)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, n := range names {
		i, n := i, n
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, _ := df.f.ColumnByName(n)
			out[i] = Summarize(n, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Summarize computes a Summary for a single numeric column.
func Summarize(name string, c frame.Column) Summary {
	x, nulls := values(c)
	s := Summary{Column: name, Count: len(x), Nulls: nulls}
	if len(x) == 0 {
		nan := math.NaN()
		s.Min, s.Max, s.Range, s.Sum, s.Mean, s.Median = nan, nan, nan, nan, nan, nan
		s.StdDev, s.Variance, s.Skewness, s.Kurtosis = nan, nan, nan, nan
		return s
	}
	s.Min, s.Max = floats.Min(x), floats.Max(x)
	s.Range = s.Max - s.Min
	s.Sum = floats.Sum(x)
	s.Mean = stat.Mean(x, nil)
	s.Median = median(x)
	s.Variance = stat.Variance(x, nil)
	s.StdDev = math.Sqrt(s.Variance)
	s.Skewness = stat.Skew(x, nil)
	s.Kurtosis = stat.ExKurtosis(x, nil)
	return s
}
