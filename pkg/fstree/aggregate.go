package fstree

import (
	"github.com/marmos91/elfdevice/internal/logger"
)

// frame is one entry of the aggregation work stack. A directory is pushed
// twice: once to schedule its child directories and once (exit) to sum its
// children after all of them have been sized.
type frame struct {
	idx  Index
	exit bool
}

// Aggregate computes the size of every directory reachable from the root and
// seals the arena.
//
// The traversal is a post-order walk driven by an explicit stack, so nesting
// depth is bounded by heap memory rather than goroutine stack size.
// Directory sizes are reset before summing, which makes re-aggregating an
// already sealed arena produce identical values.
//
// The returned SizedArena shares no storage with the Arena, which itself
// rejects any further structural change.
func Aggregate(a *Arena) *SizedArena {
	nodes := a.nodes
	for i := range nodes {
		if nodes[i].IsDir() {
			nodes[i].Size = 0
		}
	}

	stack := []frame{{idx: RootIndex}}
	visited := 0
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &nodes[f.idx]

		if f.exit {
			var total uint64
			for _, child := range n.Children {
				total += nodes[child].Size
			}
			n.Size = total
			continue
		}

		visited++
		stack = append(stack, frame{idx: f.idx, exit: true})
		for _, child := range n.Children {
			if nodes[child].IsDir() {
				stack = append(stack, frame{idx: child})
			}
		}
	}

	a.sealed = true
	logger.Debug("Aggregated %d directories, root size %d", visited, nodes[RootIndex].Size)

	sized := make([]Node, len(nodes))
	for i := range nodes {
		sized[i] = nodes[i].clone()
	}
	return &SizedArena{nodes: sized}
}
