// Package strategy scores a rock-paper-scissors strategy guide.
//
// Each line is "<opponent> <response>" where the opponent column is A, B or
// C (rock, paper, scissors). The response column X, Y, Z is read either as a
// literal shape or as the desired round outcome, depending on the Decoding.
package strategy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMalformed indicates a guide line that cannot be decoded.
var ErrMalformed = errors.New("malformed strategy guide")

// Shape is a hand shape. Its value is the points it scores.
type Shape int

// Shapes in the order they score.
const (
	Rock Shape = iota + 1
	Paper
	Scissors
)

// Points is the shape's contribution to a round score.
func (s Shape) Points() int {
	return int(s)
}

// Beats returns the shape that s defeats.
func (s Shape) Beats() Shape {
	switch s {
	case Rock:
		return Scissors
	case Paper:
		return Rock
	default:
		return Paper
	}
}

// BeatenBy returns the shape that defeats s.
func (s Shape) BeatenBy() Shape {
	switch s {
	case Rock:
		return Paper
	case Paper:
		return Scissors
	default:
		return Rock
	}
}

// Outcome is the result of a round, valued at the points it scores.
type Outcome int

// Round outcomes from my side.
const (
	Loss Outcome = 0
	Draw Outcome = 3
	Win  Outcome = 6
)

// Against returns the outcome of playing me against opponent.
func Against(opponent, me Shape) Outcome {
	switch me {
	case opponent.BeatenBy():
		return Win
	case opponent.Beats():
		return Loss
	default:
		return Draw
	}
}

// ShapeFor returns the shape that produces outcome against opponent.
func ShapeFor(opponent Shape, outcome Outcome) Shape {
	switch outcome {
	case Win:
		return opponent.BeatenBy()
	case Loss:
		return opponent.Beats()
	default:
		return opponent
	}
}

// Decoding selects how the second column is read.
type Decoding int

const (
	// DecodeShape reads X, Y, Z as rock, paper, scissors.
	DecodeShape Decoding = iota

	// DecodeOutcome reads X, Y, Z as lose, draw, win.
	DecodeOutcome
)

// Round is one decoded line of the guide.
type Round struct {
	Opponent Shape
	Me       Shape
}

// Score is the shape points plus the outcome points.
func (r Round) Score() int {
	return r.Me.Points() + int(Against(r.Opponent, r.Me))
}

// Guide is a decoded strategy guide.
type Guide struct {
	Rounds []Round
}

// Load reads a guide file using the outcome decoding.
func Load(path string) (*Guide, error) {
	return LoadWith(path, DecodeOutcome)
}

// LoadWith reads a guide file with an explicit decoding.
func LoadWith(path string, decoding Decoding) (*Guide, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open strategy guide: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f, decoding)
}

// Parse decodes a guide. Blank lines are skipped.
func Parse(r io.Reader, decoding Decoding) (*Guide, error) {
	guide := &Guide{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected two columns: %w", lineNo, ErrMalformed)
		}

		opponent, ok := opponentShapes[fields[0]]
		if !ok {
			return nil, fmt.Errorf("line %d: invalid opponent move %q: %w", lineNo, fields[0], ErrMalformed)
		}

		var me Shape
		switch decoding {
		case DecodeShape:
			me, ok = responseShapes[fields[1]]
		default:
			var outcome Outcome
			outcome, ok = responseOutcomes[fields[1]]
			me = ShapeFor(opponent, outcome)
		}
		if !ok {
			return nil, fmt.Errorf("line %d: invalid response %q: %w", lineNo, fields[1], ErrMalformed)
		}

		guide.Rounds = append(guide.Rounds, Round{Opponent: opponent, Me: me})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read strategy guide: %w", err)
	}

	return guide, nil
}

// Score totals every round.
func (g *Guide) Score() int {
	total := 0
	for _, r := range g.Rounds {
		total += r.Score()
	}
	return total
}

var (
	opponentShapes   = map[string]Shape{"A": Rock, "B": Paper, "C": Scissors}
	responseShapes   = map[string]Shape{"X": Rock, "Y": Paper, "Z": Scissors}
	responseOutcomes = map[string]Outcome{"X": Loss, "Y": Draw, "Z": Win}
)
