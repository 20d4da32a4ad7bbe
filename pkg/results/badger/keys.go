package badger

import (
	"fmt"

	"github.com/google/uuid"
)

// Key Namespace Design
// ====================
//
// 1. Runs (r:)
//    - One entry per run holding its RunInfo
//    - Listing runs is a prefix scan over "r:"
//    - Example: r:550e8400-e29b-41d4-a716-446655440000
//
// 2. Answers (a:)
//    - One entry per (run, puzzle, part)
//    - Format: a:<runUUID>:<puzzle>:<part as 4 digits>
//    - A prefix scan over "a:<runUUID>:" yields the run's answers already
//      ordered by puzzle then part
//    - Example: a:550e8400...:filesystem:0001

const (
	// prefixRun is the key prefix for run summaries
	prefixRun = "r:"

	// prefixAnswer is the key prefix for recorded answers
	prefixAnswer = "a:"
)

// keyRun generates the key of a run summary.
func keyRun(id uuid.UUID) []byte {
	return []byte(prefixRun + id.String())
}

// keyAnswer generates the key of one answer.
func keyAnswer(id uuid.UUID, puzzle string, part int) []byte {
	return []byte(fmt.Sprintf("%s%s:%s:%04d", prefixAnswer, id.String(), puzzle, part))
}

// keyAnswerPrefix generates the scan prefix for all answers of a run.
func keyAnswerPrefix(id uuid.UUID) []byte {
	return []byte(prefixAnswer + id.String() + ":")
}
