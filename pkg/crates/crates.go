// Package crates simulates the crane rearranging stacks of crates.
//
// The input is a drawing of the starting stacks, a blank line, and a list
// of "move N from A to B" instructions with 1-based stack numbers.
package crates

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrMalformed indicates an unreadable drawing or instruction.
	ErrMalformed = errors.New("malformed crate plan")

	// ErrInvalidMove indicates an instruction that cannot be carried out.
	ErrInvalidMove = errors.New("invalid move")
)

// Crane selects how multiple crates move in one instruction.
type Crane int

const (
	// CrateMover9000 lifts one crate at a time, reversing their order.
	CrateMover9000 Crane = iota

	// CrateMover9001 lifts all crates at once, keeping their order.
	CrateMover9001
)

func (c Crane) String() string {
	if c == CrateMover9001 {
		return "CrateMover 9001"
	}
	return "CrateMover 9000"
}

// Move is one instruction. From and To are 1-based stack numbers.
type Move struct {
	Count int
	From  int
	To    int
}

// Plan holds the stacks (bottom first) and the pending instructions.
type Plan struct {
	Stacks [][]byte
	Moves  []Move
}

// Load reads a plan file.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open crate plan: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse reads the drawing and the instruction list.
func Parse(r io.Reader) (*Plan, error) {
	scanner := bufio.NewScanner(r)

	var drawing []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		drawing = append(drawing, line)
	}
	if len(drawing) == 0 {
		return nil, fmt.Errorf("missing stack drawing: %w", ErrMalformed)
	}

	plan := &Plan{}

	// The last drawing line holds the stack numbers.
	labels := strings.Fields(drawing[len(drawing)-1])
	plan.Stacks = make([][]byte, len(labels))
	for row := len(drawing) - 2; row >= 0; row-- {
		line := drawing[row]
		for i := range plan.Stacks {
			pos := 1 + 4*i
			if pos >= len(line) {
				break
			}
			if c := line[pos]; c >= 'A' && c <= 'Z' {
				plan.Stacks[i] = append(plan.Stacks[i], c)
			}
		}
	}

	lineNo := len(drawing) + 1
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 6 || fields[0] != "move" || fields[2] != "from" || fields[4] != "to" {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformed)
		}

		var nums [3]int
		for i, f := range []string{fields[1], fields[3], fields[5]} {
			n, err := strconv.Atoi(f)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("line %d: bad number %q: %w", lineNo, f, ErrMalformed)
			}
			nums[i] = n
		}
		plan.Moves = append(plan.Moves, Move{Count: nums[0], From: nums[1], To: nums[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read crate plan: %w", err)
	}

	return plan, nil
}

// Execute runs every move with the given crane and returns the resulting
// plan. The receiver is left untouched; the result has no pending moves.
func (p *Plan) Execute(crane Crane) (*Plan, error) {
	stacks := make([][]byte, len(p.Stacks))
	for i, s := range p.Stacks {
		stacks[i] = append([]byte(nil), s...)
	}

	for i, m := range p.Moves {
		if m.From < 1 || m.From > len(stacks) || m.To < 1 || m.To > len(stacks) {
			return nil, fmt.Errorf("move %d: stack out of range: %w", i+1, ErrInvalidMove)
		}
		src := stacks[m.From-1]
		if m.Count > len(src) {
			return nil, fmt.Errorf("move %d: %d crates requested, %d on stack %d: %w",
				i+1, m.Count, len(src), m.From, ErrInvalidMove)
		}

		cut := len(src) - m.Count
		lifted := append([]byte(nil), src[cut:]...)
		stacks[m.From-1] = src[:cut]

		if crane == CrateMover9000 {
			for l, r := 0, len(lifted)-1; l < r; l, r = l+1, r-1 {
				lifted[l], lifted[r] = lifted[r], lifted[l]
			}
		}
		stacks[m.To-1] = append(stacks[m.To-1], lifted...)
	}

	return &Plan{Stacks: stacks}, nil
}

// Topmost returns the top crate of each non-empty stack.
func (p *Plan) Topmost() string {
	var b strings.Builder
	for _, s := range p.Stacks {
		if len(s) > 0 {
			b.WriteByte(s[len(s)-1])
		}
	}
	return b.String()
}
