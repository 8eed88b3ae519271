package jsonlio

import (
	"encoding/json"
	"io"
	"time"

	"github.com/wdm0006/optimus/pkg/frame"
	iox "github.com/wdm0006/optimus/pkg/io/ioutils"
)

// WriteAll writes one JSON object per row; null cells are omitted and
// time values are rendered with frame.TimeLayout.
func WriteAll(path string, f *frame.Frame) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, f); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func Write(w io.Writer, f *frame.Frame) error {
	enc := json.NewEncoder(w)
	for r := 0; r < f.Rows(); r++ {
		if err := enc.Encode(object(f, r)); err != nil {
			return err
		}
	}
	return nil
}

func object(f *frame.Frame, r int) map[string]any {
	m := f.Row(r)
	for k, v := range m {
		if t, ok := v.(time.Time); ok {
			m[k] = t.Format(frame.TimeLayout)
		}
	}
	return m
}
