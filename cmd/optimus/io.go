package main

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/io/csvio"
	iox "github.com/wdm0006/optimus/pkg/io/ioutils"
	"github.com/wdm0006/optimus/pkg/io/jsonlio"
	"github.com/wdm0006/optimus/pkg/io/parquetio"
	"github.com/wdm0006/optimus/pkg/profile"
)

func (c IOConfig) format() (string, error) {
	t := c.Type
	if t == "" {
		t = iox.Format(c.Path)
	}
	switch t {
	case "csv", "jsonl", "parquet":
		return t, nil
	case "":
		return "csv", nil
	}
	return "", fmt.Errorf("unsupported data type %q for %s", t, c.Path)
}

func (c IOConfig) delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

func (c IOConfig) csvOptions() csvio.ReaderOptions {
	header := true
	if c.HasHeader != nil {
		header = *c.HasHeader
	}
	return csvio.ReaderOptions{HasHeader: header, Delimiter: c.delimiter(), SampleRows: 100}
}

// readAll loads the whole input into one frame.
func readAll(c IOConfig) (*frame.Frame, error) {
	kind, err := c.format()
	if err != nil {
		return nil, err
	}
	switch kind {
	case "jsonl":
		r, closer, err := jsonlio.Open(c.Path, jsonlio.ReaderOptions{SampleRows: 100})
		if err != nil {
			return nil, err
		}
		defer func() { _ = closer.Close() }()
		schema, err := r.InferSchema()
		if err != nil {
			return nil, err
		}
		return r.ReadAll(schema)
	case "parquet":
		r, err := parquetio.OpenReader(c.Path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()
		return r.ReadAll()
	default:
		r, closer, err := csvio.Open(c.Path, c.csvOptions())
		if err != nil {
			return nil, err
		}
		defer func() { _ = closer.Close() }()
		schema, _, err := r.InferSchema()
		if err != nil {
			return nil, err
		}
		f, err := r.ReadAll(schema)
		if err != nil {
			return nil, err
		}
		if w := r.Warnings(); w != "" {
			logger.Warn("csv input repaired", "path", c.Path, "warnings", w)
		}
		return f, nil
	}
}

// openSource opens the input for chunked reading.
func openSource(c IOConfig, chunkSize int) (frame.ChunkSource, io.Closer, error) {
	kind, err := c.format()
	if err != nil {
		return nil, nil, err
	}
	switch kind {
	case "jsonl":
		return jsonlio.NewStreamReader(c.Path, jsonlio.ReaderOptions{SampleRows: 100}, chunkSize)
	case "parquet":
		r, err := parquetio.NewStreamReader(c.Path, chunkSize)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	default:
		return csvio.NewStreamReader(c.Path, c.csvOptions(), chunkSize)
	}
}

// openSink creates the output for chunked writing.
func openSink(c IOConfig) (frame.ChunkSink, error) {
	kind, err := c.format()
	if err != nil {
		return nil, err
	}
	switch kind {
	case "jsonl":
		return jsonlio.NewStreamWriter(c.Path)
	case "parquet":
		return parquetio.NewStreamWriter(c.Path)
	default:
		return csvio.NewStreamWriter(c.Path, csvio.WriterOptions{Delimiter: c.delimiter()})
	}
}

func writeAll(c IOConfig, f *frame.Frame) error {
	kind, err := c.format()
	if err != nil {
		return err
	}
	switch kind {
	case "jsonl":
		return jsonlio.WriteAll(c.Path, f)
	case "parquet":
		return parquetio.WriteAll(c.Path, f)
	default:
		return csvio.WriteAll(c.Path, f, csvio.WriterOptions{Delimiter: c.delimiter()})
	}
}

// profilingSink feeds every chunk to a profile collector before writing it.
type profilingSink struct {
	frame.ChunkSink
	collector *profile.Collector
}

func (s *profilingSink) Write(f *frame.Frame) error {
	if s.collector == nil {
		s.collector = profile.NewCollector(f.Schema(), 5)
	}
	s.collector.ConsumeFrame(f)
	return s.ChunkSink.Write(f)
}
