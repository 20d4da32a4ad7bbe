// Package signal locates markers in the communication device's datastream.
//
// A marker ends at the first position where the preceding n characters are
// all different. Positions are 1-based counts of characters read.
package signal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrNoMarker indicates a stream without any marker of the given length.
	ErrNoMarker = errors.New("no marker found")

	// ErrInvalidLength indicates a marker length below one.
	ErrInvalidLength = errors.New("invalid marker length")
)

// Stream is a received datastream.
type Stream struct {
	Data []byte
}

// Load reads a datastream file.
func Load(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open datastream: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse reads a datastream, dropping surrounding whitespace.
func Parse(r io.Reader) (*Stream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read datastream: %w", err)
	}
	return &Stream{Data: bytes.TrimSpace(data)}, nil
}

// Markers returns the end position of every window of n distinct bytes,
// in stream order.
func (s *Stream) Markers(n int) ([]int, error) {
	if n < 1 {
		return nil, fmt.Errorf("length %d: %w", n, ErrInvalidLength)
	}

	var (
		markers []int
		counts  [256]int
		dupes   int
	)
	for i, c := range s.Data {
		counts[c]++
		if counts[c] == 2 {
			dupes++
		}
		if i >= n {
			old := s.Data[i-n]
			if counts[old] == 2 {
				dupes--
			}
			counts[old]--
		}
		if i >= n-1 && dupes == 0 {
			markers = append(markers, i+1)
		}
	}
	return markers, nil
}

// FirstMarker returns the position right after the first marker of length n.
func (s *Stream) FirstMarker(n int) (int, error) {
	markers, err := s.Markers(n)
	if err != nil {
		return 0, err
	}
	if len(markers) == 0 {
		return 0, fmt.Errorf("length %d in %d bytes: %w", n, len(s.Data), ErrNoMarker)
	}
	return markers[0], nil
}
