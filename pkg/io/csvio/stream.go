package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"

	"github.com/wdm0006/optimus/pkg/frame"
	iox "github.com/wdm0006/optimus/pkg/io/ioutils"
)

// StreamReader reads CSV into Frame chunks of up to ChunkSize rows.
type StreamReader struct {
	r         *Reader
	schema    frame.Schema
	chunkSize int
}

// NewStreamReader opens the file, infers schema (respecting options), and returns a StreamReader.
func NewStreamReader(path string, opt ReaderOptions, chunkSize int) (*StreamReader, io.Closer, error) {
	rr, c, err := Open(path, opt)
	if err != nil {
		return nil, nil, err
	}
	schema, _, err := rr.InferSchema()
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	if chunkSize <= 0 {
		chunkSize = 1024
	}
	return &StreamReader{r: rr, schema: schema, chunkSize: chunkSize}, c, nil
}

// Next returns the next chunk frame or io.EOF when complete.
func (s *StreamReader) Next() (*frame.Frame, error) {
	f := frame.NewFrame(s.schema)
	for f.Rows() < s.chunkSize {
		rec, err := s.r.next()
		if err == io.EOF {
			if f.Rows() == 0 {
				return nil, io.EOF
			}
			return f, nil
		}
		if err != nil {
			return nil, err
		}
		if err := s.r.append(f, s.schema, rec); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (s *StreamReader) Schema() frame.Schema { return s.schema }

// StreamWriter appends frames to a CSV file. The header is taken from the
// first frame written; later frames must have the same columns.
type StreamWriter struct {
	w      *csv.Writer
	out    io.WriteCloser
	header []string
}

func NewStreamWriter(path string, opt WriterOptions) (*StreamWriter, error) {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	return &StreamWriter{w: newCSVWriter(out, opt), out: out}, nil
}

func (s *StreamWriter) Write(fr *frame.Frame) error {
	if s.header == nil {
		s.header = fr.Columns()
		if err := s.w.Write(s.header); err != nil {
			return err
		}
	} else if cols := fr.Columns(); !slices.Equal(cols, s.header) {
		return fmt.Errorf("csv stream: chunk columns %v differ from header %v", cols, s.header)
	}
	if err := writeRows(s.w, fr); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

func (s *StreamWriter) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		_ = s.out.Close()
		return err
	}
	return s.out.Close()
}
