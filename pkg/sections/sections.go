// Package sections compares the cleanup assignments of elf pairs.
//
// Each line is "a-b,c-d": two inclusive section ranges. Ranges are turned
// into 128-bit section masks so containment and overlap become single AND
// operations.
package sections

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MaxSection is the highest section id a mask can hold.
const MaxSection = 127

// ErrMalformed indicates a line that is not a pair of ranges.
var ErrMalformed = errors.New("malformed section assignments")

// Mask is a set of section ids, bit i set meaning section i is assigned.
type Mask struct {
	lo, hi uint64
}

// RangeMask returns the mask of sections from..to inclusive.
func RangeMask(from, to uint) (Mask, error) {
	if from > to || to > MaxSection {
		return Mask{}, fmt.Errorf("range %d-%d outside 0-%d: %w", from, to, MaxSection, ErrMalformed)
	}

	var m Mask
	for i := from; i <= to; i++ {
		if i < 64 {
			m.lo |= 1 << i
		} else {
			m.hi |= 1 << (i - 64)
		}
	}
	return m, nil
}

// And returns the intersection of m and o.
func (m Mask) And(o Mask) Mask {
	return Mask{lo: m.lo & o.lo, hi: m.hi & o.hi}
}

// Empty reports whether no section is set.
func (m Mask) Empty() bool {
	return m.lo == 0 && m.hi == 0
}

// Pair is the two assignments of one line.
type Pair struct {
	First  Mask
	Second Mask
}

// Contained reports whether one assignment fully contains the other.
func (p Pair) Contained() bool {
	shared := p.First.And(p.Second)
	return shared == p.First || shared == p.Second
}

// Overlaps reports whether the assignments share any section.
func (p Pair) Overlaps() bool {
	return !p.First.And(p.Second).Empty()
}

// Assignments is every pair in input order.
type Assignments struct {
	Pairs []Pair
}

// Load reads an assignment file.
func Load(path string) (*Assignments, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open section assignments: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse reads assignments. Blank lines are skipped.
func Parse(r io.Reader) (*Assignments, error) {
	a := &Assignments{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		left, right, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("line %d: missing comma: %w", lineNo, ErrMalformed)
		}
		first, err := parseRange(left)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		second, err := parseRange(right)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		a.Pairs = append(a.Pairs, Pair{First: first, Second: second})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read section assignments: %w", err)
	}

	return a, nil
}

// FullyContained counts pairs where one range contains the other.
func (a *Assignments) FullyContained() int {
	n := 0
	for _, p := range a.Pairs {
		if p.Contained() {
			n++
		}
	}
	return n
}

// Overlapping counts pairs sharing at least one section.
func (a *Assignments) Overlapping() int {
	n := 0
	for _, p := range a.Pairs {
		if p.Overlaps() {
			n++
		}
	}
	return n
}

func parseRange(s string) (Mask, error) {
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return Mask{}, fmt.Errorf("range %q: %w", s, ErrMalformed)
	}
	from, err := strconv.ParseUint(lo, 10, 8)
	if err != nil {
		return Mask{}, fmt.Errorf("range %q: %w", s, ErrMalformed)
	}
	to, err := strconv.ParseUint(hi, 10, 8)
	if err != nil {
		return Mask{}, fmt.Errorf("range %q: %w", s, ErrMalformed)
	}
	return RangeMask(uint(from), uint(to))
}
