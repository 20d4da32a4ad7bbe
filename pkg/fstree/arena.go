package fstree

import (
	"strings"
)

// Index addresses a node inside an Arena. Indices are stable for the
// lifetime of the arena since nodes are never removed.
type Index int

const (
	// RootIndex is the index of the pre-allocated "/" directory.
	RootIndex Index = 0

	// NoParent marks the root's parent slot.
	NoParent Index = -1

	// RootName is the name of the root directory.
	RootName = "/"
)

// Kind distinguishes files from directories.
type Kind uint8

const (
	// KindDirectory is a directory, sized by aggregation.
	KindDirectory Kind = iota

	// KindFile is a file with a fixed size from its listing.
	KindFile
)

func (k Kind) String() string {
	if k == KindFile {
		return "file"
	}
	return "dir"
}

// Node is a file or directory entry.
//
// For files, Size is the byte size from the listing and never changes. For
// directories, Size is the computed size: zero until Aggregate runs and the
// sum of the direct children's sizes afterwards.
type Node struct {
	Parent   Index
	Kind     Kind
	Name     string
	Children []Index
	Size     uint64
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.Kind == KindDirectory
}

func (n *Node) clone() Node {
	c := *n
	c.Children = append([]Index(nil), n.Children...)
	return c
}

// NewDir returns an empty, unattached directory node.
func NewDir(name string) Node {
	return Node{Parent: NoParent, Kind: KindDirectory, Name: name}
}

// NewFile returns an unattached file node.
func NewFile(name string, size uint64) Node {
	return Node{Parent: NoParent, Kind: KindFile, Name: name, Size: size}
}

// Arena owns every node of a tree. Relationships between nodes are indices
// into the arena, never pointers, so the parent/child cycle needs no
// ownership bookkeeping.
//
// An Arena is the build-phase handle. Once Aggregate has run it is sealed
// and rejects structural changes; queries go through the returned SizedArena.
type Arena struct {
	nodes  []Node
	sealed bool
}

// NewArena creates an arena holding only the root directory at index 0.
func NewArena() *Arena {
	return &Arena{
		nodes: []Node{NewDir(RootName)},
	}
}

// allocate appends node and returns its index. Callers link it to a parent.
func (a *Arena) allocate(node Node) (Index, error) {
	if a.sealed {
		return NoParent, newError(ErrSealed, "arena is sealed after aggregation")
	}
	a.nodes = append(a.nodes, node)
	return Index(len(a.nodes) - 1), nil
}

// AddChild allocates node as the last child of parent. Only the node's
// kind, name and file size are taken; it always starts without children.
//
// Returns:
//   - Index: the new node's index
//   - error: ErrInvalidIndex, ErrNotDirectory or ErrSealed
func (a *Arena) AddChild(parent Index, node Node) (Index, error) {
	p, err := a.node(parent)
	if err != nil {
		return NoParent, err
	}
	if !p.IsDir() {
		return NoParent, newError(ErrNotDirectory, "parent %q is not a directory", p.Name)
	}

	node.Parent = parent
	node.Children = nil
	if node.IsDir() {
		node.Size = 0
	}
	idx, err := a.allocate(node)
	if err != nil {
		return NoParent, err
	}

	// Re-index: the append in allocate may have moved the backing array.
	a.nodes[parent].Children = append(a.nodes[parent].Children, idx)
	return idx, nil
}

// FindChild scans parent's children for name.
func (a *Arena) FindChild(parent Index, name string) (Index, bool) {
	p, err := a.node(parent)
	if err != nil || !p.IsDir() {
		return NoParent, false
	}
	for _, child := range p.Children {
		if a.nodes[child].Name == name {
			return child, true
		}
	}
	return NoParent, false
}

// Node returns a copy of the node at i, children included.
func (a *Arena) Node(i Index) (Node, error) {
	n, err := a.node(i)
	if err != nil {
		return Node{}, err
	}
	return n.clone(), nil
}

// Len returns the number of nodes, root included.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Sealed reports whether Aggregate has run on this arena.
func (a *Arena) Sealed() bool {
	return a.sealed
}

// Path returns the absolute, slash-separated path of node i.
func (a *Arena) Path(i Index) (string, error) {
	if _, err := a.node(i); err != nil {
		return "", err
	}
	return pathOf(a.nodes, i), nil
}

func (a *Arena) node(i Index) (*Node, error) {
	if i < 0 || int(i) >= len(a.nodes) {
		return nil, newError(ErrInvalidIndex, "index %d out of range [0,%d)", i, len(a.nodes))
	}
	return &a.nodes[i], nil
}

func pathOf(nodes []Node, i Index) string {
	if i == RootIndex {
		return RootName
	}

	var parts []string
	for cur := i; cur != RootIndex && cur != NoParent; cur = nodes[cur].Parent {
		parts = append(parts, nodes[cur].Name)
	}

	var b strings.Builder
	for j := len(parts) - 1; j >= 0; j-- {
		b.WriteString("/")
		b.WriteString(parts[j])
	}
	return b.String()
}
