package badger

import (
	"encoding/json"
	"fmt"

	"github.com/marmos91/elfdevice/pkg/results"
)

// Values are stored as JSON: answers and run summaries are tiny and the
// encoding keeps the database inspectable with badger's CLI.

func encodeAnswer(a *results.Answer) ([]byte, error) {
	bytes, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answer: %w", err)
	}
	return bytes, nil
}

func decodeAnswer(bytes []byte) (*results.Answer, error) {
	var a results.Answer
	if err := json.Unmarshal(bytes, &a); err != nil {
		return nil, fmt.Errorf("failed to decode answer: %w", err)
	}
	return &a, nil
}

func encodeRunInfo(info *results.RunInfo) ([]byte, error) {
	bytes, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("failed to encode run info: %w", err)
	}
	return bytes, nil
}

func decodeRunInfo(bytes []byte) (*results.RunInfo, error) {
	var info results.RunInfo
	if err := json.Unmarshal(bytes, &info); err != nil {
		return nil, fmt.Errorf("failed to decode run info: %w", err)
	}
	return &info, nil
}
