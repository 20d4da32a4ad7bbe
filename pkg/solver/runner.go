package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/marmos91/elfdevice/internal/logger"
	"github.com/marmos91/elfdevice/pkg/config"
	"github.com/marmos91/elfdevice/pkg/input"
	"github.com/marmos91/elfdevice/pkg/results"
)

// ErrUnknownPuzzle indicates a puzzle name with no registered solver.
var ErrUnknownPuzzle = errors.New("unknown puzzle")

// Metrics observes solver runs. *metrics.SolverMetrics satisfies it.
type Metrics interface {
	ObserveSolve(puzzle string, inputBytes int64, duration time.Duration, err error)
}

type noopMetrics struct{}

func (noopMetrics) ObserveSolve(string, int64, time.Duration, error) {}

// Outcome is the result of one puzzle within a run.
type Outcome struct {
	Puzzle   string
	Input    string
	Parts    []Part
	Duration time.Duration
	Err      error
}

// Report is the result of a run.
type Report struct {
	RunID    uuid.UUID
	Outcomes []Outcome
}

// Failed returns the outcomes that ended in an error.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Runner solves puzzles read from an input source and records the answers.
type Runner struct {
	inputs  input.Source
	store   results.Store
	metrics Metrics
	params  config.SolversConfig
	files   map[string]string
	now     func() time.Time
}

// RunnerConfig contains everything a Runner needs.
type RunnerConfig struct {
	// Inputs is where puzzle inputs are read from
	Inputs input.Source

	// Results records answers; nil skips recording
	Results results.Store

	// Metrics observes solves; nil disables observation
	Metrics Metrics

	// Params are the puzzle parameters
	Params config.SolversConfig

	// Files maps puzzle names to input names; missing entries fall back to
	// config.DefaultInputFiles
	Files map[string]string
}

// NewRunner creates a runner.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.Inputs == nil {
		return nil, fmt.Errorf("input source is required")
	}

	m := cfg.Metrics
	if m == nil {
		m = noopMetrics{}
	}

	return &Runner{
		inputs:  cfg.Inputs,
		store:   cfg.Results,
		metrics: m,
		params:  cfg.Params,
		files:   cfg.Files,
		now:     time.Now,
	}, nil
}

// Run solves the named puzzles in order, or every registered puzzle when
// names is empty. All answers are recorded under a fresh run ID.
//
// A failing puzzle does not stop the run; its error is kept in the
// Outcome and joined into the returned error. Unknown names are rejected
// before anything is solved. Context cancellation stops the run.
func (r *Runner) Run(ctx context.Context, names []string) (*Report, error) {
	solvers, err := r.resolve(names)
	if err != nil {
		return nil, err
	}

	report := &Report{RunID: results.NewRunID()}
	logger.Info("Run %s: solving %d puzzle(s)", report.RunID, len(solvers))

	var errs []error
	for _, s := range solvers {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		outcome := r.solve(ctx, s)
		if outcome.Err == nil {
			outcome.Err = r.record(ctx, report.RunID, &outcome)
		}
		if outcome.Err != nil {
			logger.Error("%s: %v", s.Name, outcome.Err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, outcome.Err))
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	return report, errors.Join(errs...)
}

func (r *Runner) resolve(names []string) ([]Solver, error) {
	if len(names) == 0 {
		return All(), nil
	}

	solvers := make([]Solver, 0, len(names))
	for _, name := range names {
		s, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrUnknownPuzzle)
		}
		solvers = append(solvers, s)
	}
	return solvers, nil
}

func (r *Runner) inputName(puzzle string) string {
	if name, ok := r.files[puzzle]; ok {
		return name
	}
	return config.DefaultInputFiles[puzzle]
}

// solve opens the puzzle input and runs the solver on it.
func (r *Runner) solve(ctx context.Context, s Solver) Outcome {
	outcome := Outcome{Puzzle: s.Name, Input: r.inputName(s.Name)}
	start := r.now()

	rc, err := r.inputs.Open(ctx, outcome.Input)
	if err != nil {
		outcome.Err = err
		outcome.Duration = r.now().Sub(start)
		r.metrics.ObserveSolve(s.Name, 0, outcome.Duration, err)
		return outcome
	}
	defer func() { _ = rc.Close() }()

	counter := &countingReader{r: rc}
	outcome.Parts, outcome.Err = s.Solve(counter, r.params)
	outcome.Duration = r.now().Sub(start)
	r.metrics.ObserveSolve(s.Name, counter.n, outcome.Duration, outcome.Err)

	if outcome.Err == nil {
		for _, p := range outcome.Parts {
			logger.Info("%s part %d: %s (%s)", s.Name, p.Number, p.Value, p.Label)
		}
		logger.Debug("%s: solved in %s from %d bytes", s.Name, outcome.Duration, counter.n)
	}
	return outcome
}

func (r *Runner) record(ctx context.Context, runID uuid.UUID, outcome *Outcome) error {
	if r.store == nil {
		return nil
	}

	at := r.now()
	for _, p := range outcome.Parts {
		err := r.store.Record(ctx, results.Answer{
			RunID:      runID,
			Puzzle:     outcome.Puzzle,
			Part:       p.Number,
			Value:      p.Value,
			Duration:   outcome.Duration,
			RecordedAt: at,
		})
		if err != nil {
			return fmt.Errorf("failed to record part %d: %w", p.Number, err)
		}
	}
	return nil
}

// countingReader counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
