// Package fstree models the device filesystem recovered from a shell
// transcript and answers space-reclamation queries about it.
//
// # Pipeline
//
// The package is a strict three-phase pipeline:
//
//   - Parse / Load (parser.go): transcript text to *Arena
//   - Aggregate (aggregate.go): *Arena to *SizedArena, sealing the arena
//   - Queries (query.go): read-only answers from *SizedArena
//
// # Storage Model
//
// All nodes live in an append-only Arena and refer to each other by Index.
// Index 0 is always the root directory "/". Parents and children are plain
// integers, so the "current directory" while parsing is a freely
// reassignable cursor and traversals never chase owning pointers.
//
// # Phases
//
// Structure can only change before aggregation. Aggregate seals the Arena
// (AddChild then fails with ErrSealed) and hands out a SizedArena, which
// owns its own copy of the nodes and has no mutating methods at all.
//
// Example:
//
//	arena, err := fstree.Load("inputs/terminal.txt")
//	if err != nil {
//	    return err
//	}
//	sized := fstree.Aggregate(arena)
//	small := sized.SumSmallDirs(100000)
//	victim, err := sized.SmallestDirToFree(70000000, 30000000)
package fstree
