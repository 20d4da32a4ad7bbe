package fstree

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/marmos91/elfdevice/internal/logger"
)

// Load reads a transcript file and builds its arena.
//
// I/O failures are returned wrapped, so errors.Is(err, fs.ErrNotExist) and
// friends keep working. Parse failures are *Error values.
func Load(path string) (*Arena, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse consumes a shell transcript and builds the arena it describes.
//
// Recognized lines:
//
//	$ cd /          cursor to root
//	$ cd ..         cursor to parent (error at root)
//	$ cd <name>     cursor to child directory <name>
//	$ ls            start a listing of the cursor
//	dir <name>      (listing) child directory
//	<size> <name>   (listing) child file of <size> bytes
//
// Whitespace-only lines are skipped. Any error aborts the whole parse and no
// arena is returned.
func Parse(r io.Reader) (*Arena, error) {
	p := &parser{
		arena:  NewArena(),
		cursor: RootIndex,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if err := p.line(text); err != nil {
			return nil, atLine(err, lineNo, text)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	logger.Debug("Parsed transcript: %d lines, %d nodes", lineNo, p.arena.Len())
	return p.arena, nil
}

type parser struct {
	arena     *Arena
	cursor    Index
	inListing bool
}

func (p *parser) line(text string) error {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	if fields[0] == "$" {
		p.inListing = false
		return p.command(fields[1:])
	}

	if !p.inListing {
		return newError(ErrSyntax, "listing entry outside of ls output")
	}
	return p.entry(fields)
}

func (p *parser) command(args []string) error {
	if len(args) == 0 {
		return newError(ErrSyntax, "empty command")
	}

	switch args[0] {
	case "ls":
		if len(args) != 1 {
			return newError(ErrSyntax, "ls takes no arguments")
		}
		p.inListing = true
		return nil
	case "cd":
		if len(args) != 2 {
			return newError(ErrSyntax, "cd takes exactly one argument")
		}
		return p.cd(args[1])
	default:
		return newError(ErrSyntax, "unknown command %q", args[0])
	}
}

func (p *parser) cd(target string) error {
	switch target {
	case RootName:
		p.cursor = RootIndex
	case "..":
		if p.cursor == RootIndex {
			return newError(ErrAboveRoot, "cannot cd above root")
		}
		p.cursor = p.arena.nodes[p.cursor].Parent
	default:
		child, ok := p.arena.FindChild(p.cursor, target)
		if !ok {
			return newError(ErrNotFound, "no entry %q in %s", target, pathOf(p.arena.nodes, p.cursor))
		}
		if !p.arena.nodes[child].IsDir() {
			return newError(ErrNotDirectory, "%q is not a directory", target)
		}
		p.cursor = child
	}
	return nil
}

func (p *parser) entry(fields []string) error {
	if len(fields) != 2 {
		return newError(ErrSyntax, "listing entry must have exactly two fields")
	}

	var node Node
	if fields[0] == "dir" {
		node = NewDir(fields[1])
	} else {
		size, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return newError(ErrInvalidSize, "invalid file size %q", fields[0])
		}
		node = NewFile(fields[1], size)
	}

	return p.add(node)
}

// add attaches node under the cursor. Listing the same entry again (same
// kind, same size for files) is a no-op; a conflicting entry is rejected.
func (p *parser) add(node Node) error {
	if existing, ok := p.arena.FindChild(p.cursor, node.Name); ok {
		prev := &p.arena.nodes[existing]
		if prev.Kind == node.Kind && (node.IsDir() || prev.Size == node.Size) {
			return nil
		}
		return newError(ErrAlreadyExists, "%s %q conflicts with existing %s in %s",
			node.Kind, node.Name, prev.Kind, pathOf(p.arena.nodes, p.cursor))
	}

	_, err := p.arena.AddChild(p.cursor, node)
	return err
}
