package optimus

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/wdm0006/optimus/pkg/frame"
)

// Show renders up to n rows as a text table. n <= 0 renders every row.
func (df *DataFrame) Show(w io.Writer, n int) error {
	if n <= 0 || n > df.f.Rows() {
		n = df.f.Rows()
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(df.f.Columns())
	table.SetAutoFormatHeaders(false)
	for r := 0; r < n; r++ {
		row := make([]string, df.f.Cols())
		for i := range row {
			if v, ok := df.f.ColumnAt(i).Value(r); ok {
				row[i] = frame.FormatValue(v)
			} else {
				row[i] = "null"
			}
		}
		table.Append(row)
	}
	table.Render()
	if n < df.f.Rows() {
		_, err := fmt.Fprintf(w, "only showing top %d of %d rows\n", n, df.f.Rows())
		return err
	}
	return nil
}
