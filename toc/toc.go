// Package toc keeps table of contents as an in-memory tree and converts it
// from and to NCX navigation map and XHTML navigation document.
package toc

import (
	"io"

	"tocconv/utils/debug"
)

// Entry is a single table of contents item. Href is never empty for entries
// produced by readers, Text may be.
type Entry struct {
	Text     string
	Href     string
	Children []Entry
}

// Toc is the whole table of contents - ordered top level entries.
type Toc struct {
	Entries []Entry
}

// ReadOptions controls how labels are extracted by readers.
type ReadOptions struct {
	// TrimText removes leading and trailing white space from labels.
	TrimText bool
}

// Count returns total number of entries at all depths.
func (t *Toc) Count() int {
	if t == nil {
		return 0
	}
	return countEntries(t.Entries)
}

func countEntries(entries []Entry) int {
	n := len(entries)
	for i := range entries {
		n += countEntries(entries[i].Children)
	}
	return n
}

// Depth returns number of nesting levels, 0 for empty table.
func (t *Toc) Depth() int {
	if t == nil {
		return 0
	}
	return entriesDepth(t.Entries)
}

func entriesDepth(entries []Entry) int {
	if len(entries) == 0 {
		return 0
	}
	maxDepth := 0
	for i := range entries {
		maxDepth = max(maxDepth, entriesDepth(entries[i].Children))
	}
	return maxDepth + 1
}

// Dump writes indented human readable tree, one entry per line.
func (t *Toc) Dump(w io.Writer) error {
	tw := debug.NewTreeWriter(w)
	if t != nil {
		dumpEntries(tw, t.Entries, 0)
	}
	return tw.Err()
}

func dumpEntries(tw *debug.TreeWriter, entries []Entry, depth int) {
	for i := range entries {
		tw.Line(depth, "%q : %s", entries[i].Text, entries[i].Href)
		dumpEntries(tw, entries[i].Children, depth+1)
	}
}
