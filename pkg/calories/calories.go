// Package calories totals the food carried by each elf.
//
// Input is one calorie count per line; a blank line ends one elf's
// inventory and starts the next.
package calories

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ErrMalformed indicates a line that is not a calorie count.
var ErrMalformed = errors.New("malformed calorie list")

// ErrNotEnoughElves indicates a TopN request larger than the elf count.
var ErrNotEnoughElves = errors.New("not enough elves")

// Elf is one inventory in input order.
type Elf struct {
	ID    int
	Items []uint64
	Total uint64
}

// List holds every elf's inventory.
type List struct {
	Elves []Elf

	// ranked holds indices into Elves sorted by descending total
	ranked []int
}

// Load reads a calorie list file.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open calorie list: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse reads a calorie list. A trailing inventory without a closing blank
// line is kept, and runs of blank lines do not create empty elves.
func Parse(r io.Reader) (*List, error) {
	list := &List{}
	var current []uint64

	flush := func() {
		if len(current) == 0 {
			return
		}
		elf := Elf{ID: len(list.Elves), Items: current}
		for _, c := range current {
			elf.Total += c
		}
		list.Elves = append(list.Elves, elf)
		current = nil
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		c, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %q: %w", lineNo, line, ErrMalformed)
		}
		current = append(current, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read calorie list: %w", err)
	}
	flush()

	list.ranked = make([]int, len(list.Elves))
	for i := range list.ranked {
		list.ranked[i] = i
	}
	sort.SliceStable(list.ranked, func(i, j int) bool {
		return list.Elves[list.ranked[i]].Total > list.Elves[list.ranked[j]].Total
	})

	return list, nil
}

// TopN returns the combined total of the n elves carrying the most calories.
func (l *List) TopN(n int) (uint64, error) {
	if n < 0 || n > len(l.ranked) {
		return 0, fmt.Errorf("top %d of %d elves: %w", n, len(l.ranked), ErrNotEnoughElves)
	}

	var sum uint64
	for _, idx := range l.ranked[:n] {
		sum += l.Elves[idx].Total
	}
	return sum, nil
}
