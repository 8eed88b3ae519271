package jsonlio

import (
	"encoding/json"
	"io"

	"github.com/wdm0006/optimus/pkg/frame"
	iox "github.com/wdm0006/optimus/pkg/io/ioutils"
)

// StreamReader yields frames of up to chunkSize rows. The schema is
// inferred from the first SampleRows objects.
type StreamReader struct {
	r         *Reader
	schema    frame.Schema
	chunkSize int
}

func NewStreamReader(path string, opt ReaderOptions, chunkSize int) (*StreamReader, io.Closer, error) {
	r, c, err := Open(path, opt)
	if err != nil {
		return nil, nil, err
	}
	schema, err := r.InferSchema()
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	if chunkSize <= 0 {
		chunkSize = 1024
	}
	return &StreamReader{r: r, schema: schema, chunkSize: chunkSize}, c, nil
}

func (s *StreamReader) Next() (*frame.Frame, error) {
	f := frame.NewFrame(s.schema)
	for f.Rows() < s.chunkSize {
		m, err := s.r.next()
		if err == io.EOF {
			if f.Rows() == 0 {
				return nil, io.EOF
			}
			return f, nil
		}
		if err != nil {
			return nil, err
		}
		appendObject(f, m)
	}
	return f, nil
}

func (s *StreamReader) Schema() frame.Schema { return s.schema }

type StreamWriter struct {
	enc *json.Encoder
	out io.WriteCloser
}

func NewStreamWriter(path string) (*StreamWriter, error) {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	return &StreamWriter{enc: json.NewEncoder(out), out: out}, nil
}

func (s *StreamWriter) Write(f *frame.Frame) error {
	for r := 0; r < f.Rows(); r++ {
		if err := s.enc.Encode(object(f, r)); err != nil {
			return err
		}
	}
	return nil
}

func (s *StreamWriter) Close() error { return s.out.Close() }
