// Package memory implements an in-memory result store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/marmos91/elfdevice/pkg/results"
)

type answerKey struct {
	puzzle string
	part   int
}

type run struct {
	info    results.RunInfo
	answers map[answerKey]results.Answer
}

// MemoryResultStore keeps runs in a map guarded by a RWMutex.
type MemoryResultStore struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*run
}

// NewMemoryResultStore creates an empty store.
func NewMemoryResultStore() *MemoryResultStore {
	return &MemoryResultStore{runs: make(map[uuid.UUID]*run)}
}

// Record stores an answer under its run.
func (s *MemoryResultStore) Record(ctx context.Context, answer results.Answer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := answer.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.runs[answer.RunID]
	if !ok {
		r = &run{
			info:    results.RunInfo{ID: answer.RunID, StartedAt: answer.RecordedAt},
			answers: make(map[answerKey]results.Answer),
		}
		s.runs[answer.RunID] = r
	}

	key := answerKey{puzzle: answer.Puzzle, part: answer.Part}
	if _, exists := r.answers[key]; !exists {
		r.info.Answers++
	}
	r.answers[key] = answer
	if answer.RecordedAt.Before(r.info.StartedAt) {
		r.info.StartedAt = answer.RecordedAt
	}
	return nil
}

// GetRun returns the answers of a run.
func (s *MemoryResultStore) GetRun(ctx context.Context, id uuid.UUID) ([]results.Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %s: %w", id, results.ErrRunNotFound)
	}

	answers := make([]results.Answer, 0, len(r.answers))
	for _, a := range r.answers {
		answers = append(answers, a)
	}
	results.SortAnswers(answers)
	return answers, nil
}

// ListRuns returns every run, oldest first.
func (s *MemoryResultStore) ListRuns(ctx context.Context) ([]results.RunInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]results.RunInfo, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r.info)
	}
	results.SortRuns(runs)
	return runs, nil
}

// Close is a no-op.
func (s *MemoryResultStore) Close() error {
	return nil
}
