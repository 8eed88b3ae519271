// Package arrow converts frames to and from Apache Arrow records.
package arrow

import (
	"fmt"
	"time"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/wdm0006/optimus/pkg/frame"
)

var timestampType = arrow.FixedWidthTypes.Timestamp_us.(*arrow.TimestampType)

func arrowType(k frame.Kind) (arrow.DataType, error) {
	switch k {
	case frame.KindBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case frame.KindInt:
		return arrow.PrimitiveTypes.Int64, nil
	case frame.KindFloat:
		return arrow.PrimitiveTypes.Float64, nil
	case frame.KindString:
		return arrow.BinaryTypes.String, nil
	case frame.KindTime:
		return timestampType, nil
	}
	return nil, fmt.Errorf("unsupported kind %s", k)
}

// ToArrow exports f as an Arrow record. Nulls carry over as Arrow nulls and
// time columns become microsecond UTC timestamps. The caller must Release
// the record.
func ToArrow(f *frame.Frame, mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	fields := make([]arrow.Field, f.Cols())
	arrays := make([]arrow.Array, f.Cols())
	release := func(n int) {
		for _, a := range arrays[:n] {
			a.Release()
		}
	}
	for i := 0; i < f.Cols(); i++ {
		col := f.ColumnAt(i)
		typ, err := arrowType(col.Kind())
		if err != nil {
			release(i)
			return nil, fmt.Errorf("column %s: %w", col.Name(), err)
		}
		fields[i] = arrow.Field{Name: col.Name(), Type: typ, Nullable: true}
		arrays[i] = build(col, typ, mem)
	}
	rec := array.NewRecord(arrow.NewSchema(fields, nil), arrays, int64(f.Rows()))
	release(len(arrays))
	return rec, nil
}

func build(col frame.Column, typ arrow.DataType, mem memory.Allocator) arrow.Array {
	b := array.NewBuilder(mem, typ)
	defer b.Release()
	for r := 0; r < col.Len(); r++ {
		v, ok := col.Value(r)
		if !ok {
			b.AppendNull()
			continue
		}
		switch bb := b.(type) {
		case *array.BooleanBuilder:
			bb.Append(v.(bool))
		case *array.Int64Builder:
			bb.Append(v.(int64))
		case *array.Float64Builder:
			bb.Append(v.(float64))
		case *array.StringBuilder:
			bb.Append(v.(string))
		case *array.TimestampBuilder:
			bb.Append(arrow.Timestamp(v.(time.Time).UnixMicro()))
		}
	}
	return b.NewArray()
}

// FromArrow imports an Arrow record. Int8 to Int64 and unsigned columns up
// to Uint32 become int columns, Float32/Float64 float, Boolean bool,
// String/LargeString string and Timestamp time.
func FromArrow(rec arrow.Record) (*frame.Frame, error) {
	if rec == nil {
		return nil, fmt.Errorf("record is nil")
	}
	cols := make([]frame.Column, rec.NumCols())
	for i := range cols {
		name := rec.ColumnName(i)
		c, err := column(name, rec.Column(i))
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		cols[i] = c
	}
	return frame.FromColumns(cols...)
}

func column(name string, arr arrow.Array) (frame.Column, error) {
	n := arr.Len()
	switch a := arr.(type) {
	case *array.Boolean:
		c := frame.NewBoolColumn(name, n)
		fill(a, c.SetNull, func(i int) { c.Set(i, a.Value(i)) })
		return c, nil
	case *array.Int8:
		return ints(name, a, func(i int) int64 { return int64(a.Value(i)) }), nil
	case *array.Int16:
		return ints(name, a, func(i int) int64 { return int64(a.Value(i)) }), nil
	case *array.Int32:
		return ints(name, a, func(i int) int64 { return int64(a.Value(i)) }), nil
	case *array.Int64:
		return ints(name, a, a.Value), nil
	case *array.Uint8:
		return ints(name, a, func(i int) int64 { return int64(a.Value(i)) }), nil
	case *array.Uint16:
		return ints(name, a, func(i int) int64 { return int64(a.Value(i)) }), nil
	case *array.Uint32:
		return ints(name, a, func(i int) int64 { return int64(a.Value(i)) }), nil
	case *array.Float32:
		c := frame.NewFloatColumn(name, n)
		fill(a, c.SetNull, func(i int) { c.Set(i, float64(a.Value(i))) })
		return c, nil
	case *array.Float64:
		c := frame.NewFloatColumn(name, n)
		fill(a, c.SetNull, func(i int) { c.Set(i, a.Value(i)) })
		return c, nil
	case *array.String:
		c := frame.NewStringColumn(name, n)
		fill(a, c.SetNull, func(i int) { c.Set(i, a.Value(i)) })
		return c, nil
	case *array.LargeString:
		c := frame.NewStringColumn(name, n)
		fill(a, c.SetNull, func(i int) { c.Set(i, a.Value(i)) })
		return c, nil
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		c := frame.NewTimeColumn(name, n)
		fill(a, c.SetNull, func(i int) { c.Set(i, a.Value(i).ToTime(unit)) })
		return c, nil
	}
	return nil, fmt.Errorf("unsupported arrow type %s", arr.DataType())
}

func fill(a arrow.Array, setNull func(int), set func(int)) {
	for i := 0; i < a.Len(); i++ {
		if a.IsNull(i) {
			setNull(i)
			continue
		}
		set(i)
	}
}

func ints(name string, a arrow.Array, at func(int) int64) *frame.IntColumn {
	c := frame.NewIntColumn(name, a.Len())
	fill(a, c.SetNull, func(i int) { c.Set(i, at(i)) })
	return c
}
