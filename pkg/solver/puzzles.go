package solver

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/marmos91/elfdevice/pkg/calories"
	"github.com/marmos91/elfdevice/pkg/config"
	"github.com/marmos91/elfdevice/pkg/crates"
	"github.com/marmos91/elfdevice/pkg/fstree"
	"github.com/marmos91/elfdevice/pkg/rucksack"
	"github.com/marmos91/elfdevice/pkg/sections"
	"github.com/marmos91/elfdevice/pkg/signal"
	"github.com/marmos91/elfdevice/pkg/strategy"
)

func init() {
	Register(Solver{Name: "calories", Day: 1, Title: "Calorie Counting", Solve: solveCalories})
	Register(Solver{Name: "strategy", Day: 2, Title: "Rock Paper Scissors", Solve: solveStrategy})
	Register(Solver{Name: "rucksack", Day: 3, Title: "Rucksack Reorganization", Solve: solveRucksack})
	Register(Solver{Name: "sections", Day: 4, Title: "Camp Cleanup", Solve: solveSections})
	Register(Solver{Name: "crates", Day: 5, Title: "Supply Stacks", Solve: solveCrates})
	Register(Solver{Name: "signal", Day: 6, Title: "Tuning Trouble", Solve: solveSignal})
	Register(Solver{Name: "filesystem", Day: 7, Title: "No Space Left On Device", Solve: solveFilesystem})
}

func itoa(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func solveCalories(r io.Reader, params config.SolversConfig) ([]Part, error) {
	list, err := calories.Parse(r)
	if err != nil {
		return nil, err
	}

	best, err := list.TopN(1)
	if err != nil {
		return nil, err
	}
	top, err := list.TopN(params.TopElves)
	if err != nil {
		return nil, err
	}

	return []Part{
		{Number: 1, Label: "calories carried by the top elf", Value: itoa(best)},
		{Number: 2, Label: fmt.Sprintf("calories carried by the top %d elves", params.TopElves), Value: itoa(top)},
	}, nil
}

func solveStrategy(r io.Reader, _ config.SolversConfig) ([]Part, error) {
	// The guide is decoded twice, so buffer it
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read strategy guide: %w", err)
	}

	literal, err := strategy.Parse(bytes.NewReader(data), strategy.DecodeShape)
	if err != nil {
		return nil, err
	}
	outcome, err := strategy.Parse(bytes.NewReader(data), strategy.DecodeOutcome)
	if err != nil {
		return nil, err
	}

	return []Part{
		{Number: 1, Label: "score reading the column as shapes", Value: strconv.Itoa(literal.Score())},
		{Number: 2, Label: "score reading the column as outcomes", Value: strconv.Itoa(outcome.Score())},
	}, nil
}

func solveRucksack(r io.Reader, _ config.SolversConfig) ([]Part, error) {
	inv, err := rucksack.Parse(r)
	if err != nil {
		return nil, err
	}
	analysis, err := inv.Analyze()
	if err != nil {
		return nil, err
	}

	return []Part{
		{Number: 1, Label: "priority sum of misplaced items", Value: strconv.Itoa(rucksack.SumPriorities(analysis.Misplaced))},
		{Number: 2, Label: "priority sum of group badges", Value: strconv.Itoa(rucksack.SumPriorities(analysis.Badges))},
	}, nil
}

func solveSections(r io.Reader, _ config.SolversConfig) ([]Part, error) {
	a, err := sections.Parse(r)
	if err != nil {
		return nil, err
	}

	return []Part{
		{Number: 1, Label: "pairs where one range contains the other", Value: strconv.Itoa(a.FullyContained())},
		{Number: 2, Label: "pairs that overlap", Value: strconv.Itoa(a.Overlapping())},
	}, nil
}

func solveCrates(r io.Reader, _ config.SolversConfig) ([]Part, error) {
	plan, err := crates.Parse(r)
	if err != nil {
		return nil, err
	}

	parts := make([]Part, 0, 2)
	for i, crane := range []crates.Crane{crates.CrateMover9000, crates.CrateMover9001} {
		result, err := plan.Execute(crane)
		if err != nil {
			return nil, err
		}
		parts = append(parts, Part{
			Number: i + 1,
			Label:  "top crates after the " + crane.String(),
			Value:  result.Topmost(),
		})
	}
	return parts, nil
}

func solveSignal(r io.Reader, params config.SolversConfig) ([]Part, error) {
	stream, err := signal.Parse(r)
	if err != nil {
		return nil, err
	}

	packet, err := stream.FirstMarker(params.PacketMarker)
	if err != nil {
		return nil, err
	}
	message, err := stream.FirstMarker(params.MessageMarker)
	if err != nil {
		return nil, err
	}

	return []Part{
		{Number: 1, Label: "characters before the start-of-packet marker", Value: strconv.Itoa(packet)},
		{Number: 2, Label: "characters before the start-of-message marker", Value: strconv.Itoa(message)},
	}, nil
}

func solveFilesystem(r io.Reader, params config.SolversConfig) ([]Part, error) {
	arena, err := fstree.Parse(r)
	if err != nil {
		return nil, err
	}
	tree := fstree.Aggregate(arena)

	small := tree.SumSmallDirs(params.SmallDirThreshold)

	victim, err := tree.SmallestDirToFree(params.DeviceCapacity, params.RequiredFree)
	if err != nil {
		return nil, err
	}
	second := Part{Number: 2, Label: "nothing to delete", Value: "0"}
	if victim.Found {
		second.Label = "size of " + victim.Path
		second.Value = itoa(victim.Size)
	}

	return []Part{
		{Number: 1, Label: fmt.Sprintf("total size of directories of at most %d", params.SmallDirThreshold), Value: itoa(small)},
		second,
	}, nil
}
