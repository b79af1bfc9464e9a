package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/uwimg/uwimg/internal/logger"
)

// Step is a single named unit of work in a Pipeline.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pipeline runs its steps in order, stopping at the first failure.
type Pipeline struct {
	Log   *logger.Logger
	Steps []Step
}

// New returns an empty pipeline logging to log.
func New(log *logger.Logger) *Pipeline {
	return &Pipeline{Log: log}
}

// Add appends a step to the pipeline.
func (p *Pipeline) Add(name string, run func(ctx context.Context) error) *Pipeline {
	p.Steps = append(p.Steps, Step{Name: name, Run: run})
	return p
}

// Run executes every step in order. The error of a failed step is returned
// wrapped with the step name. The context is checked before each step, a
// step that is already running is not interrupted.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	for i, s := range p.Steps {
		if err := ctx.Err(); err != nil {
			p.Log.Warnw("pipeline cancelled", "step", s.Name, "completed", i)
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		t := time.Now()
		p.Log.Debugw("running step", "step", s.Name)
		if err := s.Run(ctx); err != nil {
			p.Log.Errorw("step failed", "step", s.Name, "error", err)
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		p.Log.Infow("step done", "step", s.Name, "duration", time.Since(t))
	}
	p.Log.Infow("pipeline done", "steps", len(p.Steps), "duration", time.Since(start))
	return nil
}
