package solver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/marmos91/elfdevice/pkg/config"
	"github.com/marmos91/elfdevice/pkg/input"
	inputMemory "github.com/marmos91/elfdevice/pkg/input/memory"
	"github.com/marmos91/elfdevice/pkg/results"
	resultsMemory "github.com/marmos91/elfdevice/pkg/results/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	puzzle string
	bytes  int64
	failed bool
}

type recordingMetrics struct {
	mu   sync.Mutex
	seen []observation
}

func (m *recordingMetrics) ObserveSolve(puzzle string, inputBytes int64, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, observation{puzzle: puzzle, bytes: inputBytes, failed: err != nil})
}

// exampleSource serves every example under its default input file name.
func exampleSource() *inputMemory.MemoryInputSource {
	files := make(map[string]string, len(examples))
	for puzzle, content := range examples {
		files[config.DefaultInputFiles[puzzle]] = content
	}
	return inputMemory.NewMemoryInputSource(files)
}

func TestRunner_RunAll(t *testing.T) {
	ctx := context.Background()
	store := resultsMemory.NewMemoryResultStore()
	m := &recordingMetrics{}

	runner, err := NewRunner(RunnerConfig{
		Inputs:  exampleSource(),
		Results: store,
		Metrics: m,
		Params:  defaultParams(),
	})
	require.NoError(t, err)

	report, err := runner.Run(ctx, nil)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, len(examples))
	assert.Empty(t, report.Failed())

	for _, o := range report.Outcomes {
		require.Len(t, o.Parts, 2, o.Puzzle)
		assert.Equal(t, expected[o.Puzzle][0], o.Parts[0].Value, o.Puzzle)
		assert.Equal(t, expected[o.Puzzle][1], o.Parts[1].Value, o.Puzzle)
	}

	answers, err := store.GetRun(ctx, report.RunID)
	require.NoError(t, err)
	assert.Len(t, answers, 2*len(examples))
	for _, a := range answers {
		assert.Equal(t, expected[a.Puzzle][a.Part-1], a.Value, "%s part %d", a.Puzzle, a.Part)
	}

	require.Len(t, m.seen, len(examples))
	for _, o := range m.seen {
		assert.False(t, o.failed, o.puzzle)
		assert.Equal(t, int64(len(examples[o.puzzle])), o.bytes, o.puzzle)
	}
}

func TestRunner_SelectedPuzzlesAndFileOverride(t *testing.T) {
	ctx := context.Background()
	src := inputMemory.NewMemoryInputSource(map[string]string{
		"terminal.log": examples["filesystem"],
		"day06.txt":    "bvwbjplbgvbhsrlpgdmjqwftvncz",
	})

	runner, err := NewRunner(RunnerConfig{
		Inputs: src,
		Params: defaultParams(),
		Files:  map[string]string{"filesystem": "terminal.log"},
	})
	require.NoError(t, err)

	report, err := runner.Run(ctx, []string{"signal", "filesystem"})
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 2)

	assert.Equal(t, "signal", report.Outcomes[0].Puzzle)
	assert.Equal(t, "day06.txt", report.Outcomes[0].Input)
	assert.Equal(t, "5", report.Outcomes[0].Parts[0].Value)
	assert.Equal(t, "filesystem", report.Outcomes[1].Puzzle)
	assert.Equal(t, "terminal.log", report.Outcomes[1].Input)
	assert.Equal(t, "95437", report.Outcomes[1].Parts[0].Value)
}

func TestRunner_FailuresDoNotStopTheRun(t *testing.T) {
	ctx := context.Background()
	store := resultsMemory.NewMemoryResultStore()
	m := &recordingMetrics{}
	src := inputMemory.NewMemoryInputSource(map[string]string{
		"day04.txt": "2-4,6-8\n",
		"day06.txt": "aaaa\n",
	})

	runner, err := NewRunner(RunnerConfig{Inputs: src, Results: store, Metrics: m, Params: defaultParams()})
	require.NoError(t, err)

	report, err := runner.Run(ctx, []string{"calories", "signal", "sections"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, input.ErrInputNotFound))

	failed := report.Failed()
	require.Len(t, failed, 2)
	assert.Equal(t, "calories", failed[0].Puzzle)
	assert.Equal(t, "signal", failed[1].Puzzle)

	answers, err := store.GetRun(ctx, report.RunID)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "sections", answers[0].Puzzle)

	require.Len(t, m.seen, 3)
	assert.True(t, m.seen[0].failed)
	assert.True(t, m.seen[1].failed)
	assert.False(t, m.seen[2].failed)
}

func TestRunner_UnknownPuzzle(t *testing.T) {
	runner, err := NewRunner(RunnerConfig{Inputs: exampleSource(), Params: defaultParams()})
	require.NoError(t, err)

	_, err = runner.Run(context.Background(), []string{"signal", "day08"})
	assert.True(t, errors.Is(err, ErrUnknownPuzzle))
}

func TestRunner_CancelledContext(t *testing.T) {
	runner, err := NewRunner(RunnerConfig{Inputs: exampleSource(), Params: defaultParams()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := runner.Run(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Outcomes)
}

func TestRunner_RecordFailure(t *testing.T) {
	store := resultsMemory.NewMemoryResultStore()
	runner, err := NewRunner(RunnerConfig{Inputs: exampleSource(), Results: failingStore{store}, Params: defaultParams()})
	require.NoError(t, err)

	report, err := runner.Run(context.Background(), []string{"crates"})
	require.Error(t, err)
	require.Len(t, report.Failed(), 1)
	assert.Contains(t, err.Error(), "failed to record part 1")
}

type failingStore struct {
	results.Store
}

func (failingStore) Record(context.Context, results.Answer) error {
	return errors.New("disk full")
}

func TestNewRunner_RequiresInputs(t *testing.T) {
	_, err := NewRunner(RunnerConfig{})
	assert.Error(t, err)
}
