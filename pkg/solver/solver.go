// Package solver registers the puzzle solvers and runs them against
// configured inputs.
//
// Each Solver turns one puzzle input into the answers for both parts of
// its puzzle. The Runner wires solvers to an input.Source, a results.Store
// and optional metrics.
package solver

import (
	"fmt"
	"io"
	"sort"

	"github.com/marmos91/elfdevice/pkg/config"
)

// Part is the answer to one part of a puzzle.
type Part struct {
	// Number is 1 or 2
	Number int

	// Label describes what Value is
	Label string

	// Value is the answer as submitted
	Value string
}

// Func solves a puzzle from its input.
type Func func(r io.Reader, params config.SolversConfig) ([]Part, error)

// Solver is a registered puzzle.
type Solver struct {
	// Name is the key used on the command line and in inputs.files
	Name string

	// Day orders solvers the way the puzzles were published
	Day int

	// Title is a human readable description
	Title string

	Solve Func
}

var registry = map[string]Solver{}

// Register adds a solver. It panics on a duplicate name, which is a
// programming error.
func Register(s Solver) {
	if _, exists := registry[s.Name]; exists {
		panic(fmt.Sprintf("solver %q already registered", s.Name))
	}
	registry[s.Name] = s
}

// Lookup returns the solver registered under name.
func Lookup(name string) (Solver, bool) {
	s, ok := registry[name]
	return s, ok
}

// All returns every solver ordered by day.
func All() []Solver {
	solvers := make([]Solver, 0, len(registry))
	for _, s := range registry {
		solvers = append(solvers, s)
	}
	sort.Slice(solvers, func(i, j int) bool {
		return solvers[i].Day < solvers[j].Day
	})
	return solvers
}

// Names returns every solver name ordered by day.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}
