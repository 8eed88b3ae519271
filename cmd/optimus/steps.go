package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/wdm0006/optimus/pkg/frame"
	"github.com/wdm0006/optimus/pkg/optimus"
	imp "github.com/wdm0006/optimus/pkg/transform/impute"
	outl "github.com/wdm0006/optimus/pkg/transform/outliers"
	"github.com/wdm0006/optimus/pkg/transform/reshape"
	std "github.com/wdm0006/optimus/pkg/transform/standardize"
	val "github.com/wdm0006/optimus/pkg/transform/validate"
)

var registry = map[string]func(StepArgs) frame.Transform{
	"lower":          func(a StepArgs) frame.Transform { return &std.Lower{Columns: a.columns()} },
	"upper":          func(a StepArgs) frame.Transform { return &std.Upper{Columns: a.columns()} },
	"trim":           func(a StepArgs) frame.Transform { return &std.Trim{Columns: a.columns()} },
	"reverse":        func(a StepArgs) frame.Transform { return &std.Reverse{Columns: a.columns()} },
	"remove_accents": func(a StepArgs) frame.Transform { return &std.RemoveAccents{Columns: a.columns()} },
	"regex_replace": func(a StepArgs) frame.Transform {
		return &std.RegexReplace{Columns: a.columns(), Pattern: a.Pattern, Replace: a.Replace}
	},
	"map_values": func(a StepArgs) frame.Transform { return &std.MapValues{Columns: a.columns(), Map: a.Map} },
	"lookup": func(a StepArgs) frame.Transform {
		return &std.Lookup{Columns: a.columns(), Keys: a.Keys, ReplaceBy: a.ReplaceBy}
	},
	"empty_to": func(a StepArgs) frame.Transform {
		s, _ := a.Value.(string)
		return &std.EmptyTo{Columns: a.columns(), Value: s}
	},
	"drop":   func(a StepArgs) frame.Transform { return &reshape.Drop{Columns: a.columns()} },
	"keep":   func(a StepArgs) frame.Transform { return &reshape.Keep{Columns: a.columns()} },
	"rename": func(a StepArgs) frame.Transform { return &reshape.Rename{Pairs: a.Pairs} },
	"move": func(a StepArgs) frame.Transform {
		return &reshape.Move{Column: a.Column, Ref: a.Ref, Position: optimus.Position(a.Position)}
	},
	"astype": func(a StepArgs) frame.Transform { return &reshape.AsType{Types: a.Types} },
	"age": func(a StepArgs) frame.Transform {
		return &reshape.Age{Column: a.Column, Format: a.Format, Output: a.Output}
	},
	"impute_constant": func(a StepArgs) frame.Transform { return &imp.Constant{Column: a.Column, Value: a.Value} },
	"impute_mean":     func(a StepArgs) frame.Transform { return &imp.Mean{Column: a.Column} },
	"impute_median":   func(a StepArgs) frame.Transform { return &imp.Median{Column: a.Column} },
	"impute_mode":     func(a StepArgs) frame.Transform { return &imp.Mode{Column: a.Column} },
	"validate_in":     func(a StepArgs) frame.Transform { return val.NewInSet(a.Column, a.Values) },
	"validate_range": func(a StepArgs) frame.Transform {
		return &val.Range{Column: a.Column, Min: a.Min, Max: a.Max}
	},
	"cap_range": func(a StepArgs) frame.Transform { return &outl.Cap{Column: a.Column, Min: a.Min, Max: a.Max} },
	"cap_sigma": func(a StepArgs) frame.Transform { return &outl.Sigma{Column: a.Column, K: a.K} },
}

// buildPipeline turns configured steps into a pipeline. Each step entry
// must hold exactly one step name.
func buildPipeline(steps []map[string]StepArgs, logger *slog.Logger) (*frame.Pipeline, error) {
	p := frame.NewPipeline().WithLogger(logger)
	for i, entry := range steps {
		if len(entry) != 1 {
			names := make([]string, 0, len(entry))
			for k := range entry {
				names = append(names, k)
			}
			sort.Strings(names)
			return nil, fmt.Errorf("step %d: want exactly one step name, got %v", i, names)
		}
		for name, args := range entry {
			mk, ok := registry[name]
			if !ok {
				return nil, fmt.Errorf("step %d: unknown step %q", i, name)
			}
			p.Add(mk(args))
		}
	}
	return p, nil
}
