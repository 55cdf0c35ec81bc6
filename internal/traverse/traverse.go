// Package traverse walks a directory subtree in deterministic depth-first
// order and exposes the visited nodes as a finite, forward-only sequence.
package traverse

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// errorNotDirectoryFormat reports a traversal root that is not a directory.
	errorNotDirectoryFormat = "path %s is not a valid directory"
	// errorStatRootFormat reports a traversal root that cannot be inspected.
	errorStatRootFormat = "stat failed for %s: %w"
)

// Entry is one visited node: its filesystem path and its depth below the
// traversal root. Depth 0 is reserved for the root itself. Entries are
// immutable once yielded.
type Entry struct {
	Path  string
	Depth int
}

// Filter decides whether a visited node is yielded. A rejected directory is
// a true subtree prune: its children are never scheduled.
type Filter interface {
	Accepts(candidatePath string, isDirectory bool) bool
}

// pendingNode is one work-list element of the explicit traversal stack.
type pendingNode struct {
	entry       Entry
	isDirectory bool
}

// Walker drains a directory traversal one entry at a time. It is forward
// only and not restartable; re-walk from the root to iterate again. The
// traversal uses an explicit work list rather than call-stack recursion so
// depth is bounded only by available memory.
type Walker struct {
	pathFilter   Filter
	pendingNodes []pendingNode
	currentEntry Entry
	firstError   error
}

// Walk validates the root and returns a Walker positioned before the first
// entry. The root itself is always yielded at depth 0 without consulting the
// filter; rendering suppresses its line and uses it only as the tree label.
func Walk(rootDirectoryPath string, pathFilter Filter) (*Walker, error) {
	rootInformation, statError := os.Stat(rootDirectoryPath)
	if statError != nil {
		return nil, fmt.Errorf(errorStatRootFormat, rootDirectoryPath, statError)
	}
	if !rootInformation.IsDir() {
		return nil, fmt.Errorf(errorNotDirectoryFormat, rootDirectoryPath)
	}

	return &Walker{
		pathFilter: pathFilter,
		pendingNodes: []pendingNode{
			{entry: Entry{Path: rootDirectoryPath, Depth: 0}, isDirectory: true},
		},
	}, nil
}

// Next advances to the following entry, returning false when the traversal
// is exhausted.
func (walker *Walker) Next() bool {
	if len(walker.pendingNodes) == 0 {
		return false
	}

	lastIndex := len(walker.pendingNodes) - 1
	currentNode := walker.pendingNodes[lastIndex]
	walker.pendingNodes = walker.pendingNodes[:lastIndex]
	walker.currentEntry = currentNode.entry

	if currentNode.isDirectory {
		walker.pushChildren(currentNode)
	}

	return true
}

// Entry returns the entry produced by the most recent call to Next.
func (walker *Walker) Entry() Entry {
	return walker.currentEntry
}

// Err returns the first directory listing error encountered during the
// walk. Listing failures are non-fatal: the affected directory simply
// contributes no children.
func (walker *Walker) Err() error {
	return walker.firstError
}

// pushChildren lists, filters, and orders the children of the popped
// directory, then pushes them in reverse so popping yields ascending order.
func (walker *Walker) pushChildren(parentNode pendingNode) {
	directoryEntries, readDirectoryError := os.ReadDir(parentNode.entry.Path)
	if readDirectoryError != nil {
		if walker.firstError == nil {
			walker.firstError = readDirectoryError
		}
		return
	}

	var childNodes []pendingNode
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(parentNode.entry.Path, directoryEntry.Name())
		childIsDirectory := directoryEntry.IsDir()
		if walker.pathFilter != nil && !walker.pathFilter.Accepts(childPath, childIsDirectory) {
			continue
		}
		childNodes = append(childNodes, pendingNode{
			entry:       Entry{Path: childPath, Depth: parentNode.entry.Depth + 1},
			isDirectory: childIsDirectory,
		})
	}

	// Two-key sibling order: directories before files, then case-insensitive
	// name. This keeps output independent of the filesystem's native listing
	// order.
	sort.SliceStable(childNodes, func(firstIndex, secondIndex int) bool {
		firstNode := childNodes[firstIndex]
		secondNode := childNodes[secondIndex]
		if firstNode.isDirectory != secondNode.isDirectory {
			return firstNode.isDirectory
		}
		return strings.ToLower(filepath.Base(firstNode.entry.Path)) < strings.ToLower(filepath.Base(secondNode.entry.Path))
	})

	for childIndex := len(childNodes) - 1; childIndex >= 0; childIndex-- {
		walker.pendingNodes = append(walker.pendingNodes, childNodes[childIndex])
	}
}

// Drain consumes the remaining entries into a slice. The renderer needs the
// complete sequence before it can establish last-sibling connectors.
func (walker *Walker) Drain() []Entry {
	var entries []Entry
	for walker.Next() {
		entries = append(entries, walker.Entry())
	}
	return entries
}
