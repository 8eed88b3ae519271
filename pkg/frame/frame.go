package frame

import (
	"fmt"
	"time"
)

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name     string
	Type     Kind
	Nullable bool
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Columns))
	for i, cs := range s.Columns {
		out[i] = cs.Name
	}
	return out
}

// Frame is a columnar container for tabular data.
//
// The structural operations (Select, Drop, WithColumn, RenameColumn) return
// new frames that share column storage with the receiver. Writes through a
// shared column are visible from both frames.
type Frame struct {
	schema Schema
	cols   []Column
	index  map[string]int // name -> col index
	nrows  int
}

func NewFrame(s Schema) *Frame {
	f := &Frame{schema: s, cols: make([]Column, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		c, err := NewColumn(cs.Name, cs.Type, 0)
		if err != nil {
			panic(err)
		}
		f.cols[i] = c
		f.index[cs.Name] = i
	}
	return f
}

// FromColumns assembles a frame from existing columns. All columns must
// have the same length and distinct names.
func FromColumns(cols ...Column) (*Frame, error) {
	f := &Frame{cols: make([]Column, 0, len(cols)), index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, dup := f.index[c.Name()]; dup {
			return nil, fmt.Errorf("duplicate column: %s", c.Name())
		}
		if i == 0 {
			f.nrows = c.Len()
		} else if c.Len() != f.nrows {
			return nil, fmt.Errorf("column %s has %d rows, want %d", c.Name(), c.Len(), f.nrows)
		}
		f.index[c.Name()] = i
		f.cols = append(f.cols, c)
		f.schema.Columns = append(f.schema.Columns, ColumnSchema{Name: c.Name(), Type: c.Kind(), Nullable: true})
	}
	return f, nil
}

func (f *Frame) Schema() Schema { return f.schema }
func (f *Frame) Rows() int      { return f.nrows }
func (f *Frame) Cols() int      { return len(f.cols) }

// Columns returns the column names in frame order.
func (f *Frame) Columns() []string { return f.schema.Names() }

// DTypes returns (name, kind) for every column in frame order.
func (f *Frame) DTypes() []ColumnSchema {
	out := make([]ColumnSchema, len(f.schema.Columns))
	copy(out, f.schema.Columns)
	return out
}

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

func (f *Frame) ColumnAt(i int) Column { return f.cols[i] }

func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

func (f *Frame) derive(schema []ColumnSchema, cols []Column) *Frame {
	out := &Frame{schema: Schema{Columns: schema}, cols: cols, index: make(map[string]int, len(cols)), nrows: f.nrows}
	for i, c := range cols {
		out.index[c.Name()] = i
	}
	return out
}

// Select returns a frame with only the named columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	schema := make([]ColumnSchema, 0, len(names))
	cols := make([]Column, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		i, ok := f.index[n]
		if !ok {
			return nil, fmt.Errorf("unknown column: %s", n)
		}
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("duplicate column: %s", n)
		}
		seen[n] = struct{}{}
		schema = append(schema, f.schema.Columns[i])
		cols = append(cols, f.cols[i])
	}
	return f.derive(schema, cols), nil
}

// Drop returns a frame without the named columns. Unknown names are ignored.
func (f *Frame) Drop(names ...string) *Frame {
	skip := make(map[string]struct{}, len(names))
	for _, n := range names {
		skip[n] = struct{}{}
	}
	schema := make([]ColumnSchema, 0, len(f.cols))
	cols := make([]Column, 0, len(f.cols))
	for i, c := range f.cols {
		if _, ok := skip[c.Name()]; ok {
			continue
		}
		schema = append(schema, f.schema.Columns[i])
		cols = append(cols, c)
	}
	return f.derive(schema, cols)
}

// WithColumn replaces the column of the same name, keeping its position,
// or appends c when no such column exists.
func (f *Frame) WithColumn(c Column) (*Frame, error) {
	if len(f.cols) > 0 && c.Len() != f.nrows {
		return nil, fmt.Errorf("column %s has %d rows, want %d", c.Name(), c.Len(), f.nrows)
	}
	schema := make([]ColumnSchema, len(f.schema.Columns), len(f.schema.Columns)+1)
	copy(schema, f.schema.Columns)
	cols := make([]Column, len(f.cols), len(f.cols)+1)
	copy(cols, f.cols)
	if i, ok := f.index[c.Name()]; ok {
		schema[i] = ColumnSchema{Name: c.Name(), Type: c.Kind(), Nullable: true}
		cols[i] = c
	} else {
		schema = append(schema, ColumnSchema{Name: c.Name(), Type: c.Kind(), Nullable: true})
		cols = append(cols, c)
	}
	out := f.derive(schema, cols)
	out.nrows = c.Len()
	return out, nil
}

// RenameColumn aliases old to name, keeping its position.
func (f *Frame) RenameColumn(old, name string) (*Frame, error) {
	return f.RenameColumns(map[string]string{old: name})
}

// RenameColumns applies every old -> new alias at once, so names may be
// swapped. Positions are kept. The resulting names must be distinct.
func (f *Frame) RenameColumns(aliases map[string]string) (*Frame, error) {
	for old := range aliases {
		if _, ok := f.index[old]; !ok {
			return nil, fmt.Errorf("unknown column: %s", old)
		}
	}
	schema := make([]ColumnSchema, len(f.schema.Columns))
	copy(schema, f.schema.Columns)
	cols := make([]Column, len(f.cols))
	copy(cols, f.cols)
	seen := make(map[string]struct{}, len(cols))
	for i, c := range f.cols {
		name, ok := aliases[c.Name()]
		if ok && name != c.Name() {
			schema[i].Name = name
			cols[i] = c.Renamed(name)
		}
		if _, dup := seen[schema[i].Name]; dup {
			return nil, fmt.Errorf("duplicate column: %s", schema[i].Name)
		}
		seen[schema[i].Name] = struct{}{}
	}
	return f.derive(schema, cols), nil
}

// Row collects a single row into a map keyed by column name. Null cells
// are omitted.
func (f *Frame) Row(r int) map[string]any {
	m := make(map[string]any, len(f.cols))
	for _, c := range f.cols {
		if v, ok := c.Value(r); ok {
			m[c.Name()] = v
		}
	}
	return m
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *BoolColumn:
			col.AppendNull()
		case *IntColumn:
			col.AppendNull()
		case *FloatColumn:
			col.AppendNull()
		case *StringColumn:
			col.AppendNull()
		case *TimeColumn:
			col.AppendNull()
		default:
			panic("unknown column type")
		}
	}
	f.nrows++
}

// SetCell sets a single cell value by name (row must exist).
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	return SetValue(f.cols[i], row, v)
}

// SetValue stores v in row of c. A nil v marks the cell null.
func SetValue(c Column, row int, v any) error {
	if v == nil {
		c.SetNull(row)
		return nil
	}
	switch col := c.(type) {
	case *BoolColumn:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("column %s expects bool", col.Name())
		}
		col.Set(row, b)
	case *IntColumn:
		switch t := v.(type) {
		case int:
			col.Set(row, int64(t))
		case int32:
			col.Set(row, int64(t))
		case int64:
			col.Set(row, t)
		case float64:
			col.Set(row, int64(t))
		default:
			return fmt.Errorf("column %s expects int/int64", col.Name())
		}
	case *FloatColumn:
		switch t := v.(type) {
		case float32:
			col.Set(row, float64(t))
		case float64:
			col.Set(row, t)
		case int:
			col.Set(row, float64(t))
		case int64:
			col.Set(row, float64(t))
		default:
			return fmt.Errorf("column %s expects float64", col.Name())
		}
	case *StringColumn:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", col.Name())
		}
		col.Set(row, s)
	case *TimeColumn:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("column %s expects time.Time", col.Name())
		}
		col.Set(row, t)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}
