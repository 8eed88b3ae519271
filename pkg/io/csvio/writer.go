package csvio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/wdm0006/optimus/pkg/frame"
	iox "github.com/wdm0006/optimus/pkg/io/ioutils"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a Frame to a CSV file with headers. A ".gz" path is
// gzip compressed; "-" writes to stdout.
func WriteAll(path string, f *frame.Frame, opt WriterOptions) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, f, opt); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Write encodes f as CSV with a header row.
func Write(w io.Writer, f *frame.Frame, opt WriterOptions) error {
	cw := newCSVWriter(w, opt)
	if err := cw.Write(f.Columns()); err != nil {
		return err
	}
	if err := writeRows(cw, f); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func newCSVWriter(w io.Writer, opt WriterOptions) *csv.Writer {
	cw := csv.NewWriter(w)
	if opt.Delimiter != 0 {
		cw.Comma = opt.Delimiter
	}
	return cw
}

func writeRows(cw *csv.Writer, f *frame.Frame) error {
	row := make([]string, f.Cols())
	for r := 0; r < f.Rows(); r++ {
		for c := range row {
			row[c] = ""
			if v, ok := f.ColumnAt(c).Value(r); ok {
				row[c] = frame.FormatValue(v)
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv write row %d: %w", r, err)
		}
	}
	return nil
}
