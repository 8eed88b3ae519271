// Package golearn converts between frames and golearn DenseInstances so a
// cleaned dataset can be handed straight to a golearn model.
package golearn

import (
	"fmt"
	"math"

	"github.com/sjwhitworth/golearn/base"

	"github.com/wdm0006/optimus/pkg/frame"
)

// ToDenseInstances converts a Frame into golearn DenseInstances. Int and
// float columns become FloatAttributes (nulls are NaN); every other kind
// becomes a CategoricalAttribute over its text form (nulls are ""). When
// class is non-empty that column is registered as the class attribute.
func ToDenseInstances(f *frame.Frame, class string) (*base.DenseInstances, error) {
	if class != "" && !f.Has(class) {
		return nil, fmt.Errorf("class column %s not found", class)
	}
	attrs := make([]base.Attribute, f.Cols())
	for i, cs := range f.Schema().Columns {
		if cs.Type.Numeric() {
			attrs[i] = base.NewFloatAttribute(cs.Name)
			continue
		}
		ca := new(base.CategoricalAttribute)
		ca.SetName(cs.Name)
		attrs[i] = ca
	}
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}
	for c := 0; c < f.Cols(); c++ {
		col := f.ColumnAt(c)
		for r := 0; r < f.Rows(); r++ {
			if col.Kind().Numeric() {
				v, ok := frame.Float64At(col, r)
				if !ok {
					v = math.NaN()
				}
				inst.Set(specs[c], r, base.PackFloatToBytes(v))
				continue
			}
			text := ""
			if v, ok := col.Value(r); ok {
				text = frame.FormatValue(v)
			}
			inst.Set(specs[c], r, attrs[c].GetSysValFromString(text))
		}
		if col.Name() == class {
			if err := inst.AddClassAttribute(attrs[c]); err != nil {
				return nil, err
			}
		}
	}
	return inst, nil
}

// FromDenseInstances converts golearn DenseInstances into a Frame. Float
// attributes become float columns with NaN read back as null; everything
// else becomes a string column.
func FromDenseInstances(inst *base.DenseInstances) (*frame.Frame, error) {
	attrs := inst.AllAttributes()
	cols := make([]frame.Column, len(attrs))
	_, nrows := inst.Size()
	for i, a := range attrs {
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		if _, ok := a.(*base.FloatAttribute); ok {
			fc := frame.NewFloatColumn(a.GetName(), nrows)
			for r := 0; r < nrows; r++ {
				if v := base.UnpackBytesToFloat(inst.Get(spec, r)); !math.IsNaN(v) {
					fc.Set(r, v)
				} else {
					fc.SetNull(r)
				}
			}
			cols[i] = fc
			continue
		}
		sc := frame.NewStringColumn(a.GetName(), nrows)
		for r := 0; r < nrows; r++ {
			sc.Set(r, a.GetStringFromSysVal(inst.Get(spec, r)))
		}
		cols[i] = sc
	}
	return frame.FromColumns(cols...)
}
