package parquetio

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/wdm0006/optimus/pkg/frame"
)

// schemaJSON builds the JSON schema parquet-go's JSONWriter expects. Time
// columns are stored as UTF8 text in frame.TimeLayout.
func schemaJSON(s frame.Schema) (string, error) {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, cs := range s.Columns {
		tag := "name=" + cs.Name + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case frame.KindFloat:
			tag += "DOUBLE"
		case frame.KindInt:
			tag += "INT64"
		case frame.KindBool:
			tag += "BOOLEAN"
		default:
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, err := json.Marshal(sc)
	return string(b), err
}

// StreamWriter writes frames incrementally. The file schema is taken from
// the first frame written; later frames must have the same columns.
type StreamWriter struct {
	path   string
	file   source.ParquetFile
	writer *pw.JSONWriter
	names  []string
}

func NewStreamWriter(path string) (*StreamWriter, error) {
	return &StreamWriter{path: path}, nil
}

func (s *StreamWriter) init(schema frame.Schema) error {
	sj, err := schemaJSON(schema)
	if err != nil {
		return err
	}
	fw, err := local.NewLocalFileWriter(s.path)
	if err != nil {
		return err
	}
	w, err := pw.NewJSONWriter(sj, fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	s.file, s.writer, s.names = fw, w, schema.Names()
	return nil
}

func (s *StreamWriter) Write(f *frame.Frame) error {
	if s.writer == nil {
		if err := s.init(f.Schema()); err != nil {
			return err
		}
	} else if cols := f.Columns(); !slices.Equal(cols, s.names) {
		return fmt.Errorf("parquet stream: chunk columns %v differ from schema %v", cols, s.names)
	}
	for r := 0; r < f.Rows(); r++ {
		rec, err := record(f, r)
		if err != nil {
			return err
		}
		if err := s.writer.Write(rec); err != nil {
			return fmt.Errorf("parquet write row %d: %w", r, err)
		}
	}
	return nil
}

// record encodes one row as the JSON text JSONWriter consumes.
func record(f *frame.Frame, r int) (string, error) {
	m := f.Row(r)
	for k, v := range m {
		switch t := v.(type) {
		case time.Time:
			m[k] = t.Format(frame.TimeLayout)
		case float64:
			if math.IsNaN(t) || math.IsInf(t, 0) {
				delete(m, k)
			}
		}
	}
	b, err := json.Marshal(m)
	return string(b), err
}

// Close flushes the footer. A writer that never saw a frame creates no file.
func (s *StreamWriter) Close() error {
	if s.writer == nil {
		return nil
	}
	if err := s.writer.WriteStop(); err != nil {
		_ = s.file.Close()
		return fmt.Errorf("parquet write stop: %w", err)
	}
	return s.file.Close()
}

// WriteAll writes a Frame to a Parquet file.
func WriteAll(path string, f *frame.Frame) error {
	w, err := NewStreamWriter(path)
	if err != nil {
		return err
	}
	if err := w.init(f.Schema()); err != nil {
		return err
	}
	if err := w.Write(f); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
