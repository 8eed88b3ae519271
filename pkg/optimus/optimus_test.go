package optimus

import (
	"bytes"
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/wdm0006/optimus/pkg/frame"
)

func people(t *testing.T) *DataFrame {
	t.Helper()
	df, err := CreateDataFrame([][]any{
		{"  José ", int64(30), 1.5, "1990-01-15"},
		{"MARÍA", int64(20), 2.5, "2000-06-30"},
		{nil, nil, 4.0, "not a date"},
		{"ana", int64(40), 8.0, nil},
	}, []ColumnSpec{
		{Name: "name", Type: "string", Nullable: true},
		{Name: "age", Type: "integer", Nullable: true},
		{Name: "score", Type: "double", Nullable: false},
		{Name: "born", Type: "str", Nullable: true},
	})
	require.NoError(t, err)
	return df
}

func strCol(t *testing.T, df *DataFrame, name string) []any {
	t.Helper()
	c, ok := df.Frame().ColumnByName(name)
	require.True(t, ok, "missing column %s", name)
	out := make([]any, c.Len())
	for i := range out {
		out[i], _ = c.Value(i)
	}
	return out
}

func TestParseColumns(t *testing.T) {
	df := people(t)

	all, err := df.ParseColumns("*")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "score", "born"}, all)

	_, err = df.ParseColumns()
	assert.ErrorIs(t, err, ErrNoColumns)

	_, err = df.ParseColumns("name", "nope", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.Contains(t, err.Error(), "nope")
	assert.Contains(t, err.Error(), "missing")

	_, err = df.ParseColumns("age", "age")
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestStringTransforms(t *testing.T) {
	df := people(t)

	trimmed, err := df.Trim("name")
	require.NoError(t, err)
	assert.Equal(t, []any{"José", "MARÍA", nil, "ana"}, strCol(t, trimmed, "name"))
	// receiver untouched
	assert.Equal(t, "  José ", strCol(t, df, "name")[0])

	lower, err := trimmed.Lower("name")
	require.NoError(t, err)
	assert.Equal(t, []any{"josé", "maría", nil, "ana"}, strCol(t, lower, "name"))

	upper, err := lower.Upper("*")
	require.NoError(t, err)
	assert.Equal(t, []any{"JOSÉ", "MARÍA", nil, "ANA"}, strCol(t, upper, "name"))
	assert.Equal(t, "NOT A DATE", strCol(t, upper, "born")[2])

	plain, err := upper.RemoveAccents("name")
	require.NoError(t, err)
	assert.Equal(t, []any{"JOSE", "MARIA", nil, "ANA"}, strCol(t, plain, "name"))

	rev, err := trimmed.Reverse("name")
	require.NoError(t, err)
	assert.Equal(t, "ésoJ", strCol(t, rev, "name")[0])

	_, err = df.Lower("age")
	assert.ErrorIs(t, err, ErrColumnType)
}

func TestRemoveAccents(t *testing.T) {
	assert.Equal(t, "Cancion nino", RemoveAccents("Canción niño"))
	assert.Equal(t, "plain", RemoveAccents("plain"))
}

func TestStatistics(t *testing.T) {
	ctx := context.Background()
	df := people(t)

	mins, err := df.Min(ctx, "age", "score")
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 1.5}, mins)

	maxs, err := df.Max(ctx, "age", "score")
	require.NoError(t, err)
	assert.Equal(t, []float64{40, 8}, maxs)

	ranges, err := df.Range(ctx, "age", "score")
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 6.5}, ranges)

	sums, err := df.Sum(ctx, "*")
	require.NoError(t, err)
	assert.Equal(t, []float64{90, 16}, sums)

	means, err := df.Mean(ctx, "age")
	require.NoError(t, err)
	assert.InDelta(t, 30, means[0], 1e-12)

	med, err := df.Median(ctx, "age", "score")
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 2.5}, med)

	sd, err := df.StdDev(ctx, "age")
	require.NoError(t, err)
	assert.InDelta(t, 10, sd[0], 1e-12)

	v, err := df.Variance(ctx, "age")
	require.NoError(t, err)
	assert.InDelta(t, 100, v[0], 1e-9)

	skew, err := df.Skewness(ctx, "age")
	require.NoError(t, err)
	assert.InDelta(t, 0, skew[0], 1e-12)

	x := []float64{1.5, 2.5, 4, 8}
	kurt, err := df.Kurtosis(ctx, "score")
	require.NoError(t, err)
	assert.InDelta(t, stat.ExKurtosis(x, nil), kurt[0], 1e-12)

	_, err = df.Mean(ctx, "name")
	assert.ErrorIs(t, err, ErrColumnType)
}

func TestStatisticsAllNull(t *testing.T) {
	df, err := CreateDataFrame([][]any{{nil}, {nil}}, []ColumnSpec{{Name: "x", Type: "float", Nullable: true}})
	require.NoError(t, err)
	out, err := df.Mean(context.Background(), "x")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out[0]))

	sums, err := df.Describe(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, 0, sums[0].Count)
	assert.True(t, math.IsNaN(sums[0].Sum))
	assert.True(t, math.IsNaN(sums[0].Median))
}

func TestDescribe(t *testing.T) {
	df := people(t)
	sums, err := df.Describe(context.Background(), "*")
	require.NoError(t, err)
	require.Len(t, sums, 2)
	assert.Equal(t, "age", sums[0].Column)
	assert.Equal(t, 3, sums[0].Count)
	assert.Equal(t, 1, sums[0].Nulls)
	assert.Equal(t, 20.0, sums[0].Range)
	assert.InDelta(t, 10, sums[0].StdDev, 1e-12)
	assert.Equal(t, 2.5, sums[1].Median)
}

func TestDropKeep(t *testing.T) {
	df := people(t)

	dropped, err := df.Drop("age", "born")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "score"}, dropped.Columns())

	kept, err := df.Keep("score", "name")
	require.NoError(t, err)
	assert.Equal(t, []string{"score", "name"}, kept.Columns())

	_, err = df.Keep("ghost")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestRename(t *testing.T) {
	df := people(t)

	out, err := df.Rename(ColumnPair{Old: "name", New: "first_name"}, ColumnPair{Old: "age", New: "years"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first_name", "years", "score", "born"}, out.Columns())
	assert.Equal(t, "MARÍA", strCol(t, out, "first_name")[1])

	swapped, err := df.Rename(ColumnPair{Old: "name", New: "born"}, ColumnPair{Old: "born", New: "name"})
	require.NoError(t, err)
	assert.Equal(t, "1990-01-15", strCol(t, swapped, "name")[0])

	_, err = df.Rename(ColumnPair{Old: "name", New: "age"})
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	_, err = df.Rename()
	assert.ErrorIs(t, err, ErrNoColumns)

	_, err = df.Rename(ColumnPair{Old: "ghost", New: "x"})
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestMoveColumn(t *testing.T) {
	df := people(t) // name age score born

	tests := []struct {
		column, ref string
		pos         Position
		want        []string
	}{
		{"name", "score", After, []string{"age", "score", "name", "born"}},
		{"born", "age", After, []string{"name", "age", "born", "score"}},
		{"name", "born", Before, []string{"age", "score", "name", "born"}},
		{"born", "name", Before, []string{"born", "name", "age", "score"}},
		{"age", "age", Before, []string{"name", "age", "score", "born"}},
	}
	for _, tt := range tests {
		out, err := df.MoveColumn(tt.column, tt.ref, tt.pos)
		require.NoError(t, err)
		assert.Equal(t, tt.want, out.Columns(), "%s %s %s", tt.column, tt.pos, tt.ref)
	}

	_, err := df.MoveColumn("name", "age", "beside")
	assert.ErrorIs(t, err, ErrPosition)
	_, err = df.MoveColumn("name", "ghost", After)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestLookup(t *testing.T) {
	df := people(t)

	out, err := df.Lookup("unknown", []string{"ana", "MARÍA"}, "name")
	require.NoError(t, err)
	assert.Equal(t, []any{"  José ", "unknown", nil, "unknown"}, strCol(t, out, "name"))

	out, err = df.LookupMap(map[string]string{"ana": "Ana"}, "name")
	require.NoError(t, err)
	assert.Equal(t, "Ana", strCol(t, out, "name")[3])

	_, err = df.LookupMap(nil, "name")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = df.Lookup("x", nil, "name")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEmptyStrToStr(t *testing.T) {
	df, err := CreateDataFrame([][]any{{""}, {"a"}, {nil}}, []ColumnSpec{{Name: "s", Type: "string", Nullable: true}})
	require.NoError(t, err)
	out, err := df.EmptyStrToStr("n/a", "s")
	require.NoError(t, err)
	assert.Equal(t, []any{"n/a", "a", nil}, strCol(t, out, "s"))
}

func TestAsType(t *testing.T) {
	df := people(t)

	out, err := df.AsType(ColumnType{Column: "age", Type: "string"}, ColumnType{Column: "score", Type: "integer"})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "score", "born"}, out.Columns())
	assert.Equal(t, []any{"30", "20", nil, "40"}, strCol(t, out, "age"))
	assert.Equal(t, []any{int64(1), int64(2), int64(4), int64(8)}, strCol(t, out, "score"))

	back, err := out.AsType(ColumnType{Column: "age", Type: "Double"})
	require.NoError(t, err)
	assert.Equal(t, []any{30.0, 20.0, nil, 40.0}, strCol(t, back, "age"))

	_, err = df.AsType(ColumnType{Column: "age", Type: "decimal"})
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestCreateDataFrameErrors(t *testing.T) {
	specs := []ColumnSpec{{Name: "a", Type: "int", Nullable: false}}

	_, err := CreateDataFrame([][]any{{nil}}, specs)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = CreateDataFrame([][]any{{int64(1), int64(2)}}, specs)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = CreateDataFrame(nil, []ColumnSpec{{Name: "a", Type: "blob"}})
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = CreateDataFrame([][]any{{"x"}}, specs)
	assert.Error(t, err)
}

func TestAgeCalculate(t *testing.T) {
	clock := func() time.Time { return time.Date(2020, time.January, 15, 10, 0, 0, 0, time.UTC) }
	df, err := CreateDataFrame([][]any{
		{"15/01/1990"},
		{"15/07/2019"},
		{"garbage"},
		{nil},
	}, []ColumnSpec{{Name: "born", Type: "string", Nullable: true}}, WithClock(clock))
	require.NoError(t, err)

	out, err := df.AgeCalculate("born", "dd/MM/yyyy", "age")
	require.NoError(t, err)
	assert.Equal(t, []string{"born", "age"}, out.Columns())
	assert.Equal(t, []any{30.0, 0.5, nil, nil}, strCol(t, out, "age"))

	iso, err := CreateDataFrame([][]any{{"1990-01-15"}, {"2019-07-15"}, {"garbage"}},
		[]ColumnSpec{{Name: "born", Type: "string", Nullable: true}}, WithClock(clock))
	require.NoError(t, err)
	guessed, err := iso.AgeCalculate("born", "", "age")
	require.NoError(t, err)
	assert.Equal(t, []any{30.0, 0.5, nil}, strCol(t, guessed, "age"))

	_, err = df.AgeCalculate("ghost", "", "age")
	assert.ErrorIs(t, err, ErrColumnNotFound)
	_, err = df.AgeCalculate("born", "", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAgeCalculateShortPattern(t *testing.T) {
	clock := func() time.Time { return time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC) }
	df, err := CreateDataFrame([][]any{{"5/1/1990"}, {"15/1/2019"}}, []ColumnSpec{{Name: "born", Type: "string", Nullable: true}}, WithClock(clock))
	require.NoError(t, err)

	out, err := df.AgeCalculate("born", "d/M/yyyy", "age")
	require.NoError(t, err)
	got := strCol(t, out, "age")
	require.NotNil(t, got[0])
	assert.InDelta(t, 30.0269, got[0].(float64), 1e-9)
	assert.Equal(t, 1.0, got[1])
}

func TestAgeCalculateRejectsNonDateColumn(t *testing.T) {
	df, err := CreateDataFrame([][]any{{int64(19900101)}}, []ColumnSpec{{Name: "born", Type: "int", Nullable: true}})
	require.NoError(t, err)
	_, err = df.AgeCalculate("born", "yyyyMMdd", "age")
	assert.ErrorIs(t, err, ErrColumnType)
}

func TestAgeCalculateTimeColumn(t *testing.T) {
	c := frame.NewTimeColumn("dob", 1)
	c.Set(0, time.Date(2000, time.March, 31, 0, 0, 0, 0, time.UTC))
	f, err := frame.FromColumns(c)
	require.NoError(t, err)
	df := New(f, WithClock(func() time.Time { return time.Date(2010, time.February, 28, 0, 0, 0, 0, time.UTC) }))

	out, err := df.AgeCalculate("dob", "", "age")
	require.NoError(t, err)
	// both dates are month ends: 119 whole months
	assert.Equal(t, []any{math.Round(119.0/12*1e4) / 1e4}, strCol(t, out, "age"))
}

func TestMonthsBetween(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }
	assert.Equal(t, 1.0, monthsBetween(d(2020, 2, 15), d(2020, 1, 15)))
	assert.Equal(t, -1.0, monthsBetween(d(2020, 1, 31), d(2020, 2, 29)))
	assert.InDelta(t, 10.0/31, monthsBetween(d(2020, 1, 25), d(2020, 1, 15)), 1e-12)
}

func TestGoLayout(t *testing.T) {
	assert.Equal(t, "2006-01-02", goLayout("yyyy-MM-dd"))
	assert.Equal(t, "02/01/06 15:04:05", goLayout("dd/MM/yy HH:mm:ss"))
	assert.Equal(t, "Jan 2, 2006", goLayout("Jan 2, 2006"))
	assert.Equal(t, "2/1/2006", goLayout("d/M/yyyy"))
	assert.Equal(t, "2006-01-02T15:04:05.000", goLayout("yyyy-MM-dd'T'HH:mm:ss.SSS"))
	assert.Equal(t, "Jan 2 3:04 PM", goLayout("MMM d h:mm a"))
}

func TestShow(t *testing.T) {
	df := people(t)
	var buf bytes.Buffer
	require.NoError(t, df.Show(&buf, 2))
	out := buf.String()
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "MARÍA")
	assert.NotContains(t, out, "ana")
	assert.Contains(t, out, "only showing top 2 of 4 rows")
}

func TestCollect(t *testing.T) {
	df := people(t)
	rows := df.Collect()
	require.Len(t, rows, 4)
	assert.Equal(t, int64(20), rows[1]["age"])
	_, hasName := rows[2]["name"]
	assert.False(t, hasName)
}

func BenchmarkDescribe(b *testing.B) {
	n := 100000
	a := frame.NewFloatColumn("a", n)
	c := frame.NewIntColumn("b", n)
	for i := 0; i < n; i++ {
		a.Set(i, float64(i%100))
		c.Set(i, int64(i%10))
	}
	f, err := frame.FromColumns(a, c)
	require.NoError(b, err)
	df := New(f)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = df.Describe(ctx, All)
	}
}
