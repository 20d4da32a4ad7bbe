// Package rucksack finds misplaced items and group badges in rucksack
// inventories.
//
// Each line lists one rucksack's items as letters; the first half is the
// first compartment and the second half the second. Items a-z have
// priorities 1-26 and A-Z have 27-52.
package rucksack

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// GroupSize is the number of elves sharing a badge.
const GroupSize = 3

var (
	// ErrMalformed indicates an inventory line that cannot be split or
	// contains something other than letters.
	ErrMalformed = errors.New("malformed rucksack list")

	// ErrNoCommonItem indicates a rucksack or group with no shared item.
	ErrNoCommonItem = errors.New("no common item")
)

// Rucksack holds the two compartments of one rucksack.
type Rucksack struct {
	Left  string
	Right string
}

// Inventory is the full list of rucksacks in input order.
type Inventory struct {
	Rucksacks []Rucksack
}

// Analysis holds the misplaced item of each rucksack and the badge of
// each complete group.
type Analysis struct {
	Misplaced []byte
	Badges    []byte
}

// Load reads an inventory file.
func Load(path string) (*Inventory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rucksack list: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse reads an inventory. Blank lines are skipped.
func Parse(r io.Reader) (*Inventory, error) {
	inv := &Inventory{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if len(line)%2 != 0 {
			return nil, fmt.Errorf("line %d: odd item count %d: %w", lineNo, len(line), ErrMalformed)
		}
		for i := 0; i < len(line); i++ {
			if Priority(line[i]) == 0 {
				return nil, fmt.Errorf("line %d: invalid item %q: %w", lineNo, line[i], ErrMalformed)
			}
		}
		half := len(line) / 2
		inv.Rucksacks = append(inv.Rucksacks, Rucksack{Left: line[:half], Right: line[half:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rucksack list: %w", err)
	}

	return inv, nil
}

// Analyze finds the item present in both compartments of every rucksack and
// the item common to every rucksack of each group of GroupSize. A trailing
// incomplete group yields no badge.
func (inv *Inventory) Analyze() (*Analysis, error) {
	a := &Analysis{}

	for i, sack := range inv.Rucksacks {
		item, ok := common(sack.Left, sack.Right)
		if !ok {
			return nil, fmt.Errorf("rucksack %d: %w", i+1, ErrNoCommonItem)
		}
		a.Misplaced = append(a.Misplaced, item)
	}

	for start := 0; start+GroupSize <= len(inv.Rucksacks); start += GroupSize {
		group := inv.Rucksacks[start : start+GroupSize]
		contents := make([]string, len(group))
		for i, sack := range group {
			contents[i] = sack.Left + sack.Right
		}
		badge, ok := common(contents...)
		if !ok {
			return nil, fmt.Errorf("group starting at rucksack %d: %w", start+1, ErrNoCommonItem)
		}
		a.Badges = append(a.Badges, badge)
	}

	return a, nil
}

// SumPriorities adds up the priorities of items.
func SumPriorities(items []byte) int {
	sum := 0
	for _, item := range items {
		sum += Priority(item)
	}
	return sum
}

// Priority returns the item's priority, or 0 for a non-letter.
func Priority(item byte) int {
	switch {
	case item >= 'a' && item <= 'z':
		return int(item-'a') + 1
	case item >= 'A' && item <= 'Z':
		return int(item-'A') + 27
	default:
		return 0
	}
}

// common returns the first item of sets[0] that appears in every other set.
func common(sets ...string) (byte, bool) {
	masks := make([]uint64, len(sets))
	for i, s := range sets {
		for j := 0; j < len(s); j++ {
			masks[i] |= 1 << Priority(s[j])
		}
	}

	for j := 0; j < len(sets[0]); j++ {
		bit := uint64(1) << Priority(sets[0][j])
		shared := true
		for _, m := range masks[1:] {
			if m&bit == 0 {
				shared = false
				break
			}
		}
		if shared {
			return sets[0][j], true
		}
	}
	return 0, false
}
