// Package testing provides a reusable contract test suite for result
// store implementations.
package testing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marmos91/elfdevice/pkg/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// StoreTestSuite tests the results.Store contract.
//
// Usage:
//
//	func TestMyResultStore(t *testing.T) {
//	    suite := &restesting.StoreTestSuite{
//	        NewStore: func(t *testing.T) results.Store {
//	            return mystore.New()
//	        },
//	    }
//	    suite.Run(t)
//	}
type StoreTestSuite struct {
	// NewStore creates a fresh, empty store for each test. The suite closes it.
	NewStore func(t *testing.T) results.Store
}

// Run executes all tests in the suite.
func (suite *StoreTestSuite) Run(t *testing.T) {
	t.Run("GetRun_NotFound", suite.testGetRunNotFound)
	t.Run("Record_Invalid", suite.testRecordInvalid)
	t.Run("Record_GetRun", suite.testRecordGetRun)
	t.Run("Record_Replaces", suite.testRecordReplaces)
	t.Run("ListRuns_Ordered", suite.testListRunsOrdered)
	t.Run("Record_Concurrent", suite.testRecordConcurrent)
	t.Run("CancelledContext", suite.testCancelledContext)
}

func (suite *StoreTestSuite) store(t *testing.T) results.Store {
	t.Helper()
	s := suite.NewStore(t)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var base = time.Date(2022, 12, 7, 5, 0, 0, 0, time.UTC)

func answer(run uuid.UUID, puzzle string, part int, value string, at time.Duration) results.Answer {
	return results.Answer{
		RunID:      run,
		Puzzle:     puzzle,
		Part:       part,
		Value:      value,
		Duration:   time.Millisecond,
		RecordedAt: base.Add(at),
	}
}

func (suite *StoreTestSuite) testGetRunNotFound(t *testing.T) {
	s := suite.store(t)

	_, err := s.GetRun(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, results.ErrRunNotFound), "got %v", err)

	runs, err := s.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func (suite *StoreTestSuite) testRecordInvalid(t *testing.T) {
	s := suite.store(t)
	ctx := context.Background()

	for _, a := range []results.Answer{
		answer(uuid.Nil, "filesystem", 1, "95437", 0),
		answer(uuid.New(), "", 1, "95437", 0),
		answer(uuid.New(), "filesystem", 0, "95437", 0),
	} {
		err := s.Record(ctx, a)
		assert.True(t, errors.Is(err, results.ErrInvalidAnswer), "answer %+v: %v", a, err)
	}
}

func (suite *StoreTestSuite) testRecordGetRun(t *testing.T) {
	s := suite.store(t)
	ctx := context.Background()
	run := results.NewRunID()

	require.NoError(t, s.Record(ctx, answer(run, "signal", 2, "19", 3*time.Second)))
	require.NoError(t, s.Record(ctx, answer(run, "filesystem", 2, "24933642", 2*time.Second)))
	require.NoError(t, s.Record(ctx, answer(run, "filesystem", 1, "95437", time.Second)))

	got, err := s.GetRun(ctx, run)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "filesystem", got[0].Puzzle)
	assert.Equal(t, 1, got[0].Part)
	assert.Equal(t, "95437", got[0].Value)
	assert.Equal(t, run, got[0].RunID)
	assert.Equal(t, time.Millisecond, got[0].Duration)
	assert.True(t, got[0].RecordedAt.Equal(base.Add(time.Second)))
	assert.Equal(t, "filesystem", got[1].Puzzle)
	assert.Equal(t, 2, got[1].Part)
	assert.Equal(t, "signal", got[2].Puzzle)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run, runs[0].ID)
	assert.Equal(t, 3, runs[0].Answers)
	assert.True(t, runs[0].StartedAt.Equal(base.Add(time.Second)), "started at %v", runs[0].StartedAt)
}

func (suite *StoreTestSuite) testRecordReplaces(t *testing.T) {
	s := suite.store(t)
	ctx := context.Background()
	run := results.NewRunID()

	require.NoError(t, s.Record(ctx, answer(run, "calories", 1, "1", 0)))
	require.NoError(t, s.Record(ctx, answer(run, "calories", 1, "24000", time.Second)))

	got, err := s.GetRun(ctx, run)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "24000", got[0].Value)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].Answers)
}

func (suite *StoreTestSuite) testListRunsOrdered(t *testing.T) {
	s := suite.store(t)
	ctx := context.Background()

	ids := []uuid.UUID{results.NewRunID(), results.NewRunID(), results.NewRunID()}
	// Record newest first so insertion order differs from start order.
	for i := len(ids) - 1; i >= 0; i-- {
		require.NoError(t, s.Record(ctx, answer(ids[i], "crates", 1, "CMZ", time.Duration(i)*time.Hour)))
	}

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, len(ids))
	for i, r := range runs {
		assert.Equal(t, ids[i], r.ID)
	}
}

func (suite *StoreTestSuite) testRecordConcurrent(t *testing.T) {
	s := suite.store(t)
	ctx := context.Background()
	run := results.NewRunID()

	puzzles := []string{"calories", "strategy", "rucksack", "sections", "crates", "signal", "filesystem"}
	var wg sync.WaitGroup
	errs := make(chan error, len(puzzles)*2)
	for i, p := range puzzles {
		for part := 1; part <= 2; part++ {
			wg.Add(1)
			go func(p string, part int, at time.Duration) {
				defer wg.Done()
				var err error
				// Concurrent writers to one run may conflict; a caller retries.
				for attempt := 0; attempt < 10; attempt++ {
					if err = s.Record(ctx, answer(run, p, part, "x", at)); err == nil {
						break
					}
				}
				errs <- err
			}(p, part, time.Duration(i)*time.Second)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.GetRun(ctx, run)
	require.NoError(t, err)
	assert.Len(t, got, len(puzzles)*2)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, len(puzzles)*2, runs[0].Answers)
	assert.True(t, runs[0].StartedAt.Equal(base))
}

func (suite *StoreTestSuite) testCancelledContext(t *testing.T) {
	s := suite.store(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Record(ctx, answer(results.NewRunID(), "signal", 1, "7", 0))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.ListRuns(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
