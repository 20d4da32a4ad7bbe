package rucksack

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const example = `vJrwpWtwJgWrhcsFMMfFFhFp
jqHRNqRjqzjGDLGLrsFMfFZSrLrFZsSL
PmmdzqPrVvPwwTWBwg
wMqvLMZHhHMvwLHjbvcjnnSBnvTQFn
ttgJtRGJQctTZtZT
CrZsJsPPZsGzwwsLwLmpwMDw
`

func TestAnalyze_Example(t *testing.T) {
	inv, err := Parse(strings.NewReader(example))
	require.NoError(t, err)
	require.Len(t, inv.Rucksacks, 6)

	a, err := inv.Analyze()
	require.NoError(t, err)

	assert.Equal(t, "pLPvts", string(a.Misplaced))
	assert.Equal(t, 157, SumPriorities(a.Misplaced))

	assert.Equal(t, "rZ", string(a.Badges))
	assert.Equal(t, 70, SumPriorities(a.Badges))
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 1, Priority('a'))
	assert.Equal(t, 26, Priority('z'))
	assert.Equal(t, 27, Priority('A'))
	assert.Equal(t, 52, Priority('Z'))
	assert.Equal(t, 0, Priority('1'))
}

func TestAnalyze_IncompleteGroupIgnored(t *testing.T) {
	inv, err := Parse(strings.NewReader("aa\nbb\n"))
	require.NoError(t, err)

	a, err := inv.Analyze()
	require.NoError(t, err)
	assert.Equal(t, "ab", string(a.Misplaced))
	assert.Empty(t, a.Badges)
}

func TestAnalyze_NoCommonItem(t *testing.T) {
	inv, err := Parse(strings.NewReader("ab\n"))
	require.NoError(t, err)

	_, err = inv.Analyze()
	assert.True(t, errors.Is(err, ErrNoCommonItem))
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(strings.NewReader("abc\n"))
	assert.True(t, errors.Is(err, ErrMalformed))

	_, err = Parse(strings.NewReader("a1a1\n"))
	assert.True(t, errors.Is(err, ErrMalformed))
}
