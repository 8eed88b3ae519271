// Command benchoptimus measures pipeline throughput over generated chunks.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/wdm0006/optimus/pkg/frame"
	imp "github.com/wdm0006/optimus/pkg/transform/impute"
	outl "github.com/wdm0006/optimus/pkg/transform/outliers"
	std "github.com/wdm0006/optimus/pkg/transform/standardize"
)

var words = []string{"  Ánimo ", "Café", "NIÑO", "plain", " Crème brûlée"}

type genSource struct {
	schema frame.Schema
	remain int
	chunk  int
	missp  float64
	rnd    *rand.Rand
}

func (g *genSource) Next() (*frame.Frame, error) {
	if g.remain <= 0 {
		return nil, io.EOF
	}
	n := min(g.chunk, g.remain)
	g.remain -= n
	f := frame.NewFrame(g.schema)
	for i := 0; i < n; i++ {
		f.AppendNullRow()
		for _, cs := range g.schema.Columns {
			if g.rnd.Float64() < g.missp {
				continue
			}
			var v any
			switch cs.Type {
			case frame.KindFloat:
				v = g.rnd.NormFloat64()*15 + 50
			case frame.KindInt:
				v = int64(g.rnd.Intn(100))
			case frame.KindString:
				v = words[g.rnd.Intn(len(words))]
			}
			_ = f.SetCell(i, cs.Name, v)
		}
	}
	return f, nil
}

type blackholeSink struct{}

func (blackholeSink) Write(*frame.Frame) error { return nil }
func (blackholeSink) Close() error             { return nil }

func main() {
	var (
		rows    = flag.Int("rows", 5_000_000, "total rows to generate")
		chunk   = flag.Int("chunk", 100_000, "rows per chunk")
		fcols   = flag.Int("float-cols", 4, "number of float columns")
		icols   = flag.Int("int-cols", 2, "number of int columns")
		scols   = flag.Int("string-cols", 2, "number of string columns")
		missp   = flag.Float64("missing", 0.05, "probability of missing values in each cell")
		jsonOut = flag.Bool("json", false, "emit JSON summary")
		seed    = flag.Int64("seed", 42, "random seed")
		verbose = flag.Bool("v", false, "log every pipeline step")
	)
	flag.Parse()
	if *fcols < 1 || *icols < 1 || *scols < 1 {
		fmt.Fprintln(os.Stderr, "need at least one float, int and string column")
		os.Exit(2)
	}

	var cols []frame.ColumnSchema
	for i := 0; i < *fcols; i++ {
		cols = append(cols, frame.ColumnSchema{Name: fmt.Sprintf("f%d", i), Type: frame.KindFloat, Nullable: true})
	}
	for i := 0; i < *icols; i++ {
		cols = append(cols, frame.ColumnSchema{Name: fmt.Sprintf("i%d", i), Type: frame.KindInt, Nullable: true})
	}
	for i := 0; i < *scols; i++ {
		cols = append(cols, frame.ColumnSchema{Name: fmt.Sprintf("s%d", i), Type: frame.KindString, Nullable: true})
	}
	schema := frame.Schema{Columns: cols}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	p := frame.NewPipeline().WithLogger(logger).
		Add(&imp.Mean{Column: "f0"}).
		Add(&imp.Median{Column: "i0"}).
		Add(&outl.Sigma{Column: "f0", K: 3}).
		Add(&std.Trim{Columns: []string{"s0"}}).
		Add(&std.RemoveAccents{Columns: []string{"s0"}}).
		Add(&std.Lower{Columns: []string{"s0"}})

	src := &genSource{schema: schema, remain: *rows, chunk: *chunk, missp: *missp, rnd: rand.New(rand.NewSource(*seed))}

	runtime.GC()
	var msBefore, msAfter runtime.MemStats
	runtime.ReadMemStats(&msBefore)
	start := time.Now()
	n, err := frame.RunStream(context.Background(), p, src, blackholeSink{})
	if err != nil {
		logger.Error("benchmark failed", "err", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&msAfter)

	rowsPerSec := float64(n) / elapsed.Seconds()
	summary := map[string]any{
		"rows":                  n,
		"elapsed_ms":            elapsed.Milliseconds(),
		"rows_per_sec":          rowsPerSec,
		"mem_alloc_bytes":       msAfter.Alloc,
		"mem_total_alloc_bytes": msAfter.TotalAlloc - msBefore.TotalAlloc,
		"gc_num":                msAfter.NumGC - msBefore.NumGC,
		"cols":                  map[string]int{"float": *fcols, "int": *icols, "string": *scols},
		"chunk":                 *chunk,
		"missing_prob":          *missp,
		"steps":                 p.Steps(),
	}

	if *jsonOut {
		b, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Println(string(b))
		return
	}
	fmt.Printf("Rows: %d\n", n)
	fmt.Printf("Elapsed: %s\n", elapsed)
	fmt.Printf("Throughput: %.0f rows/s\n", rowsPerSec)
	fmt.Printf("Current Alloc: %d MB\n", msAfter.Alloc/1024/1024)
	fmt.Printf("Total Alloc (delta): %d MB\n", (msAfter.TotalAlloc-msBefore.TotalAlloc)/1024/1024)
	fmt.Printf("GC cycles (delta): %d\n", msAfter.NumGC-msBefore.NumGC)
}
