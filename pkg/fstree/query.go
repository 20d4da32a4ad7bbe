package fstree

import (
	"fmt"
	"math"
)

// SizedArena is a read-only view of an aggregated arena. It exposes no
// mutators; every directory size it reports was computed by Aggregate.
type SizedArena struct {
	nodes []Node
}

// Handle identifies a directory chosen by a query.
//
// Found is false when the query legitimately selected nothing (for example,
// when no deletion is needed to reach the requested free space).
type Handle struct {
	Index Index
	Name  string
	Path  string
	Size  uint64
	Found bool
}

// Stats summarizes the shape of a sized tree.
type Stats struct {
	Directories int
	Files       int
	TotalBytes  uint64
	MaxDepth    int
}

// Root returns the root directory's index.
func (s *SizedArena) Root() Index {
	return RootIndex
}

// Len returns the number of nodes, root included.
func (s *SizedArena) Len() int {
	return len(s.nodes)
}

// Node returns a copy of the node at i. The children slice is copied as
// well so callers cannot reach into the arena.
func (s *SizedArena) Node(i Index) (Node, error) {
	if err := s.check(i); err != nil {
		return Node{}, err
	}
	return s.nodes[i].clone(), nil
}

// Size returns the effective size of node i: the file size or the
// directory's computed size.
func (s *SizedArena) Size(i Index) (uint64, error) {
	if err := s.check(i); err != nil {
		return 0, err
	}
	return s.nodes[i].Size, nil
}

// Used returns the total size of the tree, i.e. the root's computed size.
func (s *SizedArena) Used() uint64 {
	return s.nodes[RootIndex].Size
}

// Path returns the absolute path of node i.
func (s *SizedArena) Path(i Index) (string, error) {
	if err := s.check(i); err != nil {
		return "", err
	}
	return pathOf(s.nodes, i), nil
}

// Directories returns the indices of every directory in arena order.
func (s *SizedArena) Directories() []Index {
	var dirs []Index
	for i := range s.nodes {
		if s.nodes[i].IsDir() {
			dirs = append(dirs, Index(i))
		}
	}
	return dirs
}

// SumSmallDirs returns the sum of the computed sizes of every directory,
// root included, whose size is at most threshold. Nested directories are
// counted on their own, so the same file may contribute more than once.
func (s *SizedArena) SumSmallDirs(threshold uint64) uint64 {
	var sum uint64
	for i := range s.nodes {
		n := &s.nodes[i]
		if n.IsDir() && n.Size <= threshold {
			sum += n.Size
		}
	}
	return sum
}

// SmallestDirToFree picks the directory to delete so that a device of the
// given capacity ends up with at least requiredFree unused bytes.
//
// needed is requiredFree minus the space currently free, where a tree larger
// than the device counts as negative free space.
//
// Behavior:
//   - enough space already free: Handle with Found == false and nil error
//   - otherwise: the directory with the smallest size >= needed, ties going
//     to the lowest arena index
//   - no directory is large enough: ErrNoCandidate
func (s *SizedArena) SmallestDirToFree(capacity, requiredFree uint64) (Handle, error) {
	used := s.Used()

	var needed uint64
	switch {
	case used <= capacity:
		free := capacity - used
		if requiredFree <= free {
			return Handle{}, nil
		}
		needed = requiredFree - free
	case requiredFree > math.MaxUint64-(used-capacity):
		return Handle{}, newError(ErrNoCandidate,
			"required free space %d with %d bytes over capacity overflows", requiredFree, used-capacity)
	default:
		needed = requiredFree + (used - capacity)
	}

	best := NoParent
	for i := range s.nodes {
		n := &s.nodes[i]
		if !n.IsDir() || n.Size < needed {
			continue
		}
		if best == NoParent || n.Size < s.nodes[best].Size {
			best = Index(i)
		}
	}

	if best == NoParent {
		return Handle{}, newError(ErrNoCandidate,
			"no directory frees the %d bytes needed", needed)
	}

	return Handle{
		Index: best,
		Name:  s.nodes[best].Name,
		Path:  pathOf(s.nodes, best),
		Size:  s.nodes[best].Size,
		Found: true,
	}, nil
}

// Stats walks the tree from the root and counts what is reachable.
func (s *SizedArena) Stats() Stats {
	type entry struct {
		idx   Index
		depth int
	}

	var st Stats
	stack := []entry{{idx: RootIndex}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &s.nodes[e.idx]

		if e.depth > st.MaxDepth {
			st.MaxDepth = e.depth
		}
		if !n.IsDir() {
			st.Files++
			st.TotalBytes += n.Size
			continue
		}
		st.Directories++
		for _, child := range n.Children {
			stack = append(stack, entry{idx: child, depth: e.depth + 1})
		}
	}
	return st
}

// Verify checks that every directory's size equals the sum of its direct
// children and that the root accounts for every reachable file.
func (s *SizedArena) Verify() error {
	for i := range s.nodes {
		n := &s.nodes[i]
		if !n.IsDir() {
			continue
		}
		var total uint64
		for _, child := range n.Children {
			total += s.nodes[child].Size
		}
		if total != n.Size {
			return fmt.Errorf("directory %s: size %d, children sum to %d",
				pathOf(s.nodes, Index(i)), n.Size, total)
		}
	}

	if st := s.Stats(); st.TotalBytes != s.Used() {
		return fmt.Errorf("root size %d, files sum to %d", s.Used(), st.TotalBytes)
	}
	return nil
}

func (s *SizedArena) check(i Index) error {
	if i < 0 || int(i) >= len(s.nodes) {
		return newError(ErrInvalidIndex, "index %d out of range [0,%d)", i, len(s.nodes))
	}
	return nil
}
