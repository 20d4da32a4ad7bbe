// Package results records the answers produced by solver runs.
//
// Every invocation of the runner gets a fresh run ID. Each answer it
// produces (one per puzzle part) is recorded under that ID so previous runs
// can be listed and compared. Implementations live in the subpackages:
//
//   - memory: process-local, lost on exit
//   - badger: persistent, backed by BadgerDB
package results

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrRunNotFound indicates no answers were recorded under a run ID.
	ErrRunNotFound = errors.New("run not found")

	// ErrInvalidAnswer indicates an answer missing its run ID, puzzle or part.
	ErrInvalidAnswer = errors.New("invalid answer")
)

// Answer is one recorded puzzle answer.
type Answer struct {
	RunID      uuid.UUID     `json:"run_id"`
	Puzzle     string        `json:"puzzle"`
	Part       int           `json:"part"`
	Value      string        `json:"value"`
	Duration   time.Duration `json:"duration"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// RunInfo summarizes one run.
type RunInfo struct {
	ID        uuid.UUID `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Answers   int       `json:"answers"`
}

// Store persists answers grouped by run.
//
// Thread Safety:
// Implementations must be safe for concurrent use.
type Store interface {
	// Record stores an answer. Recording the same run, puzzle and part again
	// replaces the previous value.
	Record(ctx context.Context, answer Answer) error

	// GetRun returns the answers of a run ordered by puzzle then part.
	// Returns an error wrapping ErrRunNotFound for unknown IDs.
	GetRun(ctx context.Context, id uuid.UUID) ([]Answer, error)

	// ListRuns returns all runs, oldest first.
	ListRuns(ctx context.Context) ([]RunInfo, error)

	// Close releases the store.
	Close() error
}

// NewRunID returns a fresh random run identifier.
func NewRunID() uuid.UUID {
	return uuid.New()
}

// Validate checks the fields every store requires.
func (a *Answer) Validate() error {
	switch {
	case a.RunID == uuid.Nil:
		return fmt.Errorf("missing run id: %w", ErrInvalidAnswer)
	case a.Puzzle == "":
		return fmt.Errorf("missing puzzle name: %w", ErrInvalidAnswer)
	case a.Part < 1:
		return fmt.Errorf("part %d: %w", a.Part, ErrInvalidAnswer)
	}
	return nil
}

// SortAnswers orders answers by puzzle, then part.
func SortAnswers(answers []Answer) {
	sort.Slice(answers, func(i, j int) bool {
		if answers[i].Puzzle != answers[j].Puzzle {
			return answers[i].Puzzle < answers[j].Puzzle
		}
		return answers[i].Part < answers[j].Part
	})
}

// SortRuns orders runs by start time, breaking ties by ID.
func SortRuns(runs []RunInfo) {
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].StartedAt.Before(runs[j].StartedAt)
		}
		return runs[i].ID.String() < runs[j].ID.String()
	})
}
