// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package symtab implements the identifier table built while scanning.
package symtab

import (
	"bytes"
	"fmt"
)

// Entry is the first-seen metadata of one identifier.
type Entry struct {
	Name string
	Type string // declared type, empty until a declaration is recorded
	Line int    // line of first occurrence
}

// Table maps identifier spellings to entries, remembering insertion order.
// The first occurrence of a name wins; later inserts are ignored.
//
// A Table is owned by whoever created it and is not safe for concurrent
// mutation. Each lexer run builds its own.
type Table struct {
	index   map[string]int
	entries []Entry
}

// New returns an empty table.
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// Insert records name at line if it is not present yet. It reports whether
// the entry was added.
func (t *Table) Insert(name string, line int) bool {
	if _, ok := t.index[name]; ok {
		return false
	}
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, Entry{Name: name, Line: line})
	return true
}

// Declare sets the declared type of name if the entry exists and has no type
// yet. The line of first occurrence is never changed.
func (t *Table) Declare(name, typ string) bool {
	i, ok := t.index[name]
	if !ok || t.entries[i].Type != "" {
		return false
	}
	t.entries[i].Type = typ
	return true
}

// Lookup returns the entry for name.
func (t *Table) Lookup(name string) (Entry, bool) {
	i, ok := t.index[name]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Contains reports whether name has been recorded.
func (t *Table) Contains(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of distinct identifiers.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of all entries in insertion order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Names returns the identifier spellings in insertion order.
func (t *Table) Names() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Name
	}
	return names
}

func (t *Table) String() string {
	var out bytes.Buffer
	for _, e := range t.entries {
		fmt.Fprintf(&out, "%s\t%s\t%d\n", e.Name, e.Type, e.Line)
	}
	return out.String()
}
