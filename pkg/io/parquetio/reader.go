package parquetio

import (
	"errors"
	"fmt"
	"io"
	"os"

	parquet "github.com/segmentio/parquet-go"

	"github.com/wdm0006/optimus/pkg/frame"
)

// Reader reads a Parquet file row group by row group. Column kinds come
// from the file's physical types: BOOLEAN -> bool, INT32/INT64 -> int,
// FLOAT/DOUBLE -> float, everything else -> string.
type Reader struct {
	file      *os.File
	pf        *parquet.File
	schema    frame.Schema
	cols      []int // leaf index per frame column
	groups    []parquet.RowGroup
	rows      parquet.Rows
	buf       []parquet.Row
	chunkSize int
}

func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("parquet open %s: %w", path, err)
	}
	r := &Reader{file: f, pf: pf, groups: pf.RowGroups(), chunkSize: 8192}
	if err := r.inferSchema(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return r, nil
}

// NewStreamReader opens path for chunked reads of up to chunkSize rows.
func NewStreamReader(path string, chunkSize int) (*Reader, error) {
	r, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	if chunkSize > 0 {
		r.chunkSize = chunkSize
	}
	return r, nil
}

func (r *Reader) inferSchema() error {
	schema := r.pf.Schema()
	leaves := map[string]int{}
	for i, path := range schema.Columns() {
		if len(path) == 1 {
			leaves[path[0]] = i
		}
	}
	for _, field := range schema.Fields() {
		idx, ok := leaves[field.Name()]
		if !ok {
			return fmt.Errorf("parquet column %s: nested columns are not supported", field.Name())
		}
		r.cols = append(r.cols, idx)
		r.schema.Columns = append(r.schema.Columns, frame.ColumnSchema{
			Name:     field.Name(),
			Type:     kindOf(field),
			Nullable: field.Optional(),
		})
	}
	return nil
}

func kindOf(field parquet.Field) frame.Kind {
	t := field.Type()
	if t == nil {
		return frame.KindString
	}
	switch t.Kind() {
	case parquet.Boolean:
		return frame.KindBool
	case parquet.Int32, parquet.Int64:
		return frame.KindInt
	case parquet.Float, parquet.Double:
		return frame.KindFloat
	default:
		return frame.KindString
	}
}

func (r *Reader) Schema() frame.Schema { return r.schema }

// Next returns the next chunk frame or io.EOF when every row group is read.
func (r *Reader) Next() (*frame.Frame, error) {
	if r.buf == nil {
		r.buf = make([]parquet.Row, min(r.chunkSize, 1024))
	}
	f := frame.NewFrame(r.schema)
	for f.Rows() < r.chunkSize {
		if r.rows == nil {
			if len(r.groups) == 0 {
				break
			}
			r.rows = r.groups[0].Rows()
			r.groups = r.groups[1:]
		}
		want := min(len(r.buf), r.chunkSize-f.Rows())
		n, err := r.rows.ReadRows(r.buf[:want])
		for _, row := range r.buf[:n] {
			r.appendRow(f, row)
		}
		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			_ = r.rows.Close()
			r.rows = nil
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("parquet read rows: %w", err)
		}
	}
	if f.Rows() == 0 {
		return nil, io.EOF
	}
	return f, nil
}

// ReadAll reads every remaining row into one frame.
func (r *Reader) ReadAll() (*frame.Frame, error) {
	if n := int(r.pf.NumRows()); n > r.chunkSize {
		r.chunkSize = n
	}
	f, err := r.Next()
	if errors.Is(err, io.EOF) {
		return frame.NewFrame(r.schema), nil
	}
	return f, err
}

func (r *Reader) appendRow(f *frame.Frame, row parquet.Row) {
	f.AppendNullRow()
	at := f.Rows() - 1
	for i, cs := range r.schema.Columns {
		idx := r.cols[i]
		if idx >= len(row) || row[idx].IsNull() {
			continue
		}
		if v := value(row[idx]); v != nil {
			_ = f.SetCell(at, cs.Name, v)
		}
	}
}

func value(v parquet.Value) any {
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}

func (r *Reader) Close() error {
	if r.rows != nil {
		_ = r.rows.Close()
	}
	return r.file.Close()
}
