package strategy

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const example = "A Y\nB X\nC Z\n"

func TestScore_Example(t *testing.T) {
	tests := []struct {
		name     string
		decoding Decoding
		want     int
	}{
		{"shape decoding", DecodeShape, 15},
		{"outcome decoding", DecodeOutcome, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guide, err := Parse(strings.NewReader(example), tt.decoding)
			require.NoError(t, err)
			assert.Len(t, guide.Rounds, 3)
			assert.Equal(t, tt.want, guide.Score())
		})
	}
}

func TestAgainst(t *testing.T) {
	assert.Equal(t, Win, Against(Rock, Paper))
	assert.Equal(t, Loss, Against(Rock, Scissors))
	assert.Equal(t, Draw, Against(Scissors, Scissors))
	assert.Equal(t, Win, Against(Scissors, Rock))
}

func TestShapeFor(t *testing.T) {
	for _, opponent := range []Shape{Rock, Paper, Scissors} {
		for _, outcome := range []Outcome{Loss, Draw, Win} {
			me := ShapeFor(opponent, outcome)
			assert.Equal(t, outcome, Against(opponent, me), "opponent %d outcome %d", opponent, outcome)
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []string{
		"A\n",
		"D X\n",
		"A W\n",
		"A X Y\n",
	}
	for _, input := range tests {
		_, err := Parse(strings.NewReader(input), DecodeOutcome)
		assert.True(t, errors.Is(err, ErrMalformed), "input %q: %v", input, err)
	}
}
