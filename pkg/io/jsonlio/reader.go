package jsonlio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/wdm0006/optimus/pkg/frame"
	iox "github.com/wdm0006/optimus/pkg/io/ioutils"
)

type ReaderOptions struct {
	SampleRows int // for inference; default 100
}

// Reader decodes newline-delimited JSON objects into frames.
type Reader struct {
	dec *json.Decoder
	opt ReaderOptions
	buf []map[string]any
	row int
}

// Open opens a JSONL file (or stdin for "-"); gzip input is detected.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, err
	}
	return NewReaderFrom(rc, opt), rc, nil
}

func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Reader{dec: dec, opt: opt}
}

// InferSchema samples objects and returns one column per key seen, in
// sorted key order.
func (r *Reader) InferSchema() (frame.Schema, error) {
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	keysSet := map[string]struct{}{}
	for len(r.buf) < max {
		m, err := r.decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return frame.Schema{}, err
		}
		r.buf = append(r.buf, m)
		for k := range m {
			keysSet[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keysSet))
	for k := range keysSet {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kinds := inferKinds(r.buf, keys)
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(keys))}
	for i, k := range keys {
		schema.Columns[i] = frame.ColumnSchema{Name: k, Type: kinds[i], Nullable: true}
	}
	return schema, nil
}

func (r *Reader) decode() (map[string]any, error) {
	var m map[string]any
	if err := r.dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("jsonl record %d: %w", r.row+1, err)
	}
	r.row++
	return m, nil
}

// next returns the next object, draining inference samples first.
func (r *Reader) next() (map[string]any, error) {
	if len(r.buf) > 0 {
		m := r.buf[0]
		r.buf = r.buf[1:]
		return m, nil
	}
	return r.decode()
}

func (r *Reader) ReadAll(schema frame.Schema) (*frame.Frame, error) {
	f := frame.NewFrame(schema)
	for {
		m, err := r.next()
		if err == io.EOF {
			return f, nil
		}
		if err != nil {
			return nil, err
		}
		appendObject(f, m)
	}
}

// appendObject adds m as a row. Keys outside the schema are ignored and
// values that do not fit the column kind are left null.
func appendObject(f *frame.Frame, m map[string]any) {
	f.AppendNullRow()
	row := f.Rows() - 1
	for _, cs := range f.Schema().Columns {
		v, ok := m[cs.Name]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case json.Number:
			f.SetParsed(row, cs, t.String())
		case bool:
			if cs.Type == frame.KindBool {
				_ = f.SetCell(row, cs.Name, t)
			} else if cs.Type == frame.KindString {
				_ = f.SetCell(row, cs.Name, fmt.Sprint(t))
			}
		case string:
			f.SetParsed(row, cs, t)
		default:
			if cs.Type == frame.KindString {
				b, _ := json.Marshal(t)
				_ = f.SetCell(row, cs.Name, string(b))
			}
		}
	}
}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

func inferKinds(sample []map[string]any, keys []string) []frame.Kind {
	kinds := make([]frame.Kind, len(keys))
	for i, k := range keys {
		nNum, nInt, nBool, nTime, nStr := 0, 0, 0, 0, 0
		for _, m := range sample {
			v, ok := m[k]
			if !ok || v == nil {
				continue
			}
			switch t := v.(type) {
			case json.Number:
				nNum++
				if !strings.ContainsAny(t.String(), ".eE") {
					nInt++
				}
			case bool:
				nBool++
			case string:
				s := strings.TrimSpace(t)
				switch {
				case s == "":
				case numre.MatchString(s):
					nNum++
					if !strings.ContainsAny(s, ".eE") {
						nInt++
					}
				default:
					if _, err := dateparse.ParseAny(s); err == nil {
						nTime++
					} else {
						nStr++
					}
				}
			default:
				nStr++
			}
		}
		switch {
		case nBool > 0 && nNum == 0 && nTime == 0 && nStr == 0:
			kinds[i] = frame.KindBool
		case nNum > 0 && nBool == 0 && nTime == 0 && nStr == 0:
			if nInt == nNum {
				kinds[i] = frame.KindInt
			} else {
				kinds[i] = frame.KindFloat
			}
		case nTime > 0 && nNum == 0 && nBool == 0 && nStr == 0:
			kinds[i] = frame.KindTime
		default:
			kinds[i] = frame.KindString
		}
	}
	return kinds
}
