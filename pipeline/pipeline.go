package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage is a single step in a pipeline. It receives the output of the previous
// stage (or the source) and returns the input for the next stage.
type Stage func(ctx context.Context, input interface{}) (interface{}, error)

// ConvertFunc converts value of type A to type B. Used by Transform to build a stage.
type ConvertFunc[A, B any] func(ctx context.Context, a A) (B, error)

// Transform returns a stage that converts the previous stage's output (type A) to type B.
// Use it between stages: stage1 | Transform(convert) | stage2, where stage1 outputs A
// and stage2 expects B.
func Transform[A, B any](convert ConvertFunc[A, B]) Stage {
	return func(ctx context.Context, input interface{}) (interface{}, error) {
		a, ok := input.(A)
		if !ok {
			var zero A
			return nil, fmt.Errorf("transform: expected %T, got %T", zero, input)
		}
		return convert(ctx, a)
	}
}

// Observer provides pre/post hooks for pipeline and stage execution. BeforePipeline
// is called before any stage runs, BeforeStage/AfterStage around each stage, and
// AfterPipeline once the pipeline finishes (success or error).
type Observer interface {
	BeforePipeline(ctx context.Context, runID, name string, payload interface{}) error
	AfterPipeline(ctx context.Context, runID string, result interface{}, err error) error
	BeforeStage(ctx context.Context, runID string, stageIndex int, input interface{}) error
	AfterStage(ctx context.Context, runID string, stageIndex int, input, output interface{}, stageErr error, duration time.Duration) error
}

// RunOptions is optional and used to attach an Observer and optional RunID.
// If Observer is set and RunID is empty, a new UUID is generated for the run.
type RunOptions struct {
	Observer Observer
	RunID    string
}

// ErrNoStages is returned by Run when the pipeline has neither a Source nor stages.
var ErrNoStages = errors.New("pipeline has no source and no stages")

// Pipeline runs a linear chain of stages (stage1 | stage2 | ...). Source is
// optional and only used by Run.
type Pipeline struct {
	Name   string
	Source func(ctx context.Context) (interface{}, error)
	Stages []Stage
}

// Run executes the pipeline: runs the source (if non-nil), then runs each stage in order.
// Returns the last stage's output or the first error.
func (p *Pipeline) Run(ctx context.Context, opts *RunOptions) (interface{}, error) {
	if p.Source == nil && len(p.Stages) == 0 {
		return nil, ErrNoStages
	}
	var out interface{}
	if p.Source != nil {
		var err error
		out, err = p.Source(ctx)
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
	}
	return p.RunWithInput(ctx, out, opts)
}

// RunWithInput runs the pipeline's stages starting with the given input. Each stage's
// output is the next stage's input. Returns the last stage's output or the first error.
// If opts is non-nil and opts.Observer is set, pre/post hooks are called for the
// pipeline and each stage.
func (p *Pipeline) RunWithInput(ctx context.Context, input interface{}, opts *RunOptions) (interface{}, error) {
	if opts == nil || opts.Observer == nil {
		return p.runStages(ctx, input, nil, "")
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.New().String()
	}
	if err := opts.Observer.BeforePipeline(ctx, runID, p.Name, input); err != nil {
		return nil, fmt.Errorf("before pipeline: %w", err)
	}
	result, err := p.runStages(ctx, input, opts.Observer, runID)
	if postErr := opts.Observer.AfterPipeline(ctx, runID, result, err); postErr != nil {
		// Don't mask pipeline error
		if err == nil {
			err = fmt.Errorf("after pipeline: %w", postErr)
		}
	}
	return result, err
}

func (p *Pipeline) runStages(ctx context.Context, input interface{}, obs Observer, runID string) (interface{}, error) {
	out := input
	for i, stage := range p.Stages {
		if obs != nil {
			if err := obs.BeforeStage(ctx, runID, i, out); err != nil {
				return nil, fmt.Errorf("before stage %d: %w", i, err)
			}
		}
		start := time.Now()
		next, stageErr := stage(ctx, out)
		duration := time.Since(start)
		if obs != nil {
			if postErr := obs.AfterStage(ctx, runID, i, out, next, stageErr, duration); postErr != nil {
				if stageErr == nil {
					stageErr = fmt.Errorf("after stage: %w", postErr)
				}
			}
		}
		if stageErr != nil {
			return nil, fmt.Errorf("stage %d: %w", i, stageErr)
		}
		out = next
	}
	return out, nil
}

// MultiObserver returns an Observer that calls each observer in order. The first
// hook error is returned; later observers are still called so none misses an event.
func MultiObserver(observers ...Observer) Observer {
	list := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	return multiObserver(list)
}

type multiObserver []Observer

func (m multiObserver) BeforePipeline(ctx context.Context, runID, name string, payload interface{}) error {
	var first error
	for _, o := range m {
		if err := o.BeforePipeline(ctx, runID, name, payload); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m multiObserver) AfterPipeline(ctx context.Context, runID string, result interface{}, err error) error {
	var first error
	for _, o := range m {
		if hookErr := o.AfterPipeline(ctx, runID, result, err); hookErr != nil && first == nil {
			first = hookErr
		}
	}
	return first
}

func (m multiObserver) BeforeStage(ctx context.Context, runID string, stageIndex int, input interface{}) error {
	var first error
	for _, o := range m {
		if err := o.BeforeStage(ctx, runID, stageIndex, input); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m multiObserver) AfterStage(ctx context.Context, runID string, stageIndex int, input, output interface{}, stageErr error, duration time.Duration) error {
	var first error
	for _, o := range m {
		if err := o.AfterStage(ctx, runID, stageIndex, input, output, stageErr, duration); err != nil && first == nil {
			first = err
		}
	}
	return first
}
