package frame

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Transform is a mutation or validation applied to a Frame.
type Transform interface {
	Name() string
	Apply(ctx context.Context, f *Frame) (*Frame, error)
}

// Pipeline composes a sequence of Transforms.
type Pipeline struct {
	steps  []Transform
	logger *slog.Logger
}

func NewPipeline() *Pipeline { return &Pipeline{logger: slog.Default()} }

// WithLogger sets the logger used to report step progress.
func (p *Pipeline) WithLogger(l *slog.Logger) *Pipeline {
	if l != nil {
		p.logger = l
	}
	return p
}

func (p *Pipeline) Add(t Transform) *Pipeline {
	p.steps = append(p.steps, t)
	return p
}

// Steps returns the names of the configured steps in order.
func (p *Pipeline) Steps() []string {
	out := make([]string, len(p.steps))
	for i, t := range p.steps {
		out[i] = t.Name()
	}
	return out
}

func (p *Pipeline) Run(ctx context.Context, f *Frame) (*Frame, error) {
	cur := f
	for i, t := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		next, err := t.Apply(ctx, cur)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, t.Name(), err)
		}
		p.logger.DebugContext(ctx, "step applied", "step", t.Name(), "rows", next.Rows(), "cols", next.Cols(), "elapsed", time.Since(start))
		cur = next
	}
	return cur, nil
}
