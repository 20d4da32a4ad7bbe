package solver

import (
	"strings"
	"testing"

	"github.com/marmos91/elfdevice/pkg/config"
	"github.com/marmos91/elfdevice/pkg/fstree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultParams() config.SolversConfig {
	return config.GetDefaultConfig().Solvers
}

func TestRegistry(t *testing.T) {
	assert.Equal(t,
		[]string{"calories", "strategy", "rucksack", "sections", "crates", "signal", "filesystem"},
		Names())

	for _, name := range Names() {
		_, ok := config.DefaultInputFiles[name]
		assert.True(t, ok, "solver %s has no default input file", name)
	}

	_, ok := Lookup("day08")
	assert.False(t, ok)

	assert.Panics(t, func() { Register(Solver{Name: "signal"}) })
}

func TestSolvers_Examples(t *testing.T) {
	for _, s := range All() {
		t.Run(s.Name, func(t *testing.T) {
			parts, err := s.Solve(strings.NewReader(examples[s.Name]), defaultParams())
			require.NoError(t, err)
			require.Len(t, parts, 2)

			want := expected[s.Name]
			assert.Equal(t, 1, parts[0].Number)
			assert.Equal(t, want[0], parts[0].Value)
			assert.Equal(t, 2, parts[1].Number)
			assert.Equal(t, want[1], parts[1].Value)
			assert.NotEmpty(t, parts[0].Label)
			assert.NotEmpty(t, parts[1].Label)
		})
	}
}

func TestSolveFilesystem_Parameters(t *testing.T) {
	params := defaultParams()

	t.Run("NothingToDelete", func(t *testing.T) {
		params := params
		params.RequiredFree = 1000
		parts, err := solveFilesystem(strings.NewReader(examples["filesystem"]), params)
		require.NoError(t, err)
		assert.Equal(t, "0", parts[1].Value)
		assert.Equal(t, "nothing to delete", parts[1].Label)
	})

	t.Run("Threshold", func(t *testing.T) {
		params := params
		params.SmallDirThreshold = 30000
		parts, err := solveFilesystem(strings.NewReader(examples["filesystem"]), params)
		require.NoError(t, err)
		// e (584) only; a is 94853
		assert.Equal(t, "584", parts[0].Value)
		assert.Equal(t, "size of /d", parts[1].Label)
	})

	t.Run("NoCandidate", func(t *testing.T) {
		params := params
		// needed exceeds the root size by 10
		params.DeviceCapacity = 48381175
		params.RequiredFree = 48381185
		_, err := solveFilesystem(strings.NewReader(examples["filesystem"]), params)
		assert.True(t, fstree.IsCode(err, fstree.ErrNoCandidate), "got %v", err)
	})

	t.Run("ParseError", func(t *testing.T) {
		_, err := solveFilesystem(strings.NewReader("$ cd ..\n"), params)
		assert.True(t, fstree.IsCode(err, fstree.ErrAboveRoot), "got %v", err)
	})
}

func TestSolveCalories_TopElves(t *testing.T) {
	params := defaultParams()
	params.TopElves = 5
	parts, err := solveCalories(strings.NewReader(examples["calories"]), params)
	require.NoError(t, err)
	assert.Equal(t, "55000", parts[1].Value)

	params.TopElves = 6
	_, err = solveCalories(strings.NewReader(examples["calories"]), params)
	assert.Error(t, err)
}

func TestSolveSignal_MarkerLengths(t *testing.T) {
	params := defaultParams()
	params.PacketMarker = 14
	params.MessageMarker = 4
	parts, err := solveSignal(strings.NewReader(examples["signal"]), params)
	require.NoError(t, err)
	assert.Equal(t, "19", parts[0].Value)
	assert.Equal(t, "7", parts[1].Value)
}
