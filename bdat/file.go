// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bdat

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic means the file (or a table) does not start with "BDAT".
	ErrBadMagic = errors.New("bad magic")
	// ErrTooShort means a header or region extends past the buffer.
	ErrTooShort = errors.New("buffer too short")
	// ErrTableOutOfRange means the header's offset array points outside
	// the buffer.
	ErrTableOutOfRange = errors.New("table offset out of range")
)

// FormatError is a structural parse failure, scoped either to the whole
// file or to one table.  It wraps a sentinel error and is errors.Is/As
// friendly.
type FormatError struct {
	Scope  string // "file" or "table N"
	Offset int    // absolute byte offset of the failing region
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("bdat: %s @0x%x: %s", e.Scope, e.Offset, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func fileErr(off int, err error) *FormatError {
	return &FormatError{Scope: "file", Offset: off, Err: err}
}

func tableErr(idx, off int, err error) *FormatError {
	return &FormatError{Scope: fmt.Sprintf("table %d", idx), Offset: off, Err: err}
}

// File is the parsed form of one BDAT container.  It is produced by
// Parse, never mutated afterwards, and owns a private copy of the input
// buffer; Rebuild reads it and returns a fresh output buffer.
type File struct {
	// Version is the format version from the file header.
	Version uint32
	// FileSize is the size the header declares.  When it disagrees with
	// the buffer length the buffer wins and a warning is recorded.
	FileSize uint32
	// Tables holds the successfully parsed tables in offset-array order.
	Tables []*Table
	// Skipped records tables whose structure failed validation.  Their
	// bytes still travel through Rebuild untouched.
	Skipped []SkippedTable
	// Warnings collects non-fatal parse oddities (packing mismatches,
	// unresolvable names, size disagreements).
	Warnings []string

	raw    []byte
	chunks []chunk
}

// SkippedTable names a table that could not be parsed and why.
type SkippedTable struct {
	Index int // position in the header's offset array
	Err   error
}

// chunk ties one offset-array entry to its byte extent in the original
// buffer.  table is nil when that entry failed to parse; rebuilds copy
// such chunks verbatim.
type chunk struct {
	arrayIdx int
	offset   int
	extent   int
	table    *Table
}

// Raw returns the file's private copy of the original buffer.  Callers
// must not modify it.
func (f *File) Raw() []byte {
	return f.raw
}

// Table returns the parsed table with the given resolved name.
func (f *File) Table(name string) (*Table, bool) {
	for _, t := range f.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Table is one parsed table: its identity, geometry, schema and rows.
type Table struct {
	// Name is the resolved table name; for hashed tables with no
	// dictionary entry it is the canonical hex placeholder.
	Name string
	// NameHash is the stored 32-bit name hash; zero unless Hashed.
	NameHash uint32
	// Hashed reports whether the string-table flag byte marks names as
	// hash-table entries rather than plain text.
	Hashed bool
	// Layout is the header geometry variant detected at parse time.
	Layout TableLayout
	// Packing is the row-packing rule that reproduced the declared row
	// length.
	Packing PackingStrategy
	// BaseID is the row ID of row 0; row i has ID BaseID+i.
	BaseID  int
	Columns []*Column
	Rows    []*Row

	geo    geometry
	offset int // absolute file offset of the table
	extent int // byte length of the table's region
}

// Column returns the column with the given resolved name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Cell returns the decoded value at (row index, column name).
func (t *Table) Cell(row int, column string) (Value, bool) {
	if row < 0 || row >= len(t.Rows) {
		return Value{}, false
	}
	v, ok := t.Rows[row].Cells[column]
	return v, ok
}

// HasHalfWidthOffsets reports whether any column stores its string-table
// offset in 16 bits.  Such tables can overflow during rebuilds.
func (t *Table) HasHalfWidthOffsets() bool {
	for _, c := range t.Columns {
		if c.Type.HalfWidth() {
			return true
		}
	}
	return false
}

// Column is one column definition: wire type, resolved name and the byte
// offset of its cell within a row.
type Column struct {
	Name string
	// NameHash is the stored hash for hashed tables; zero otherwise.
	NameHash uint32
	// NameRef is the raw name reference from the column definition: a
	// string-table byte offset for plain tables, a hash-table index for
	// hashed ones.
	NameRef uint16
	Type    ValueType
	// Offset is the cell's byte offset within a row, after packing.
	Offset int
}

// Row is one decoded row: its ID and the cells keyed by column name.
type Row struct {
	ID    int
	Cells map[string]Value
}

// PackingStrategy records which packing rule made the column offsets
// account for the declared row length.  The rules are tried in a fixed
// order; see parser.go.
type PackingStrategy uint8

const (
	// PackExact: offsets are the cumulative sum of the natural sizes.
	PackExact PackingStrategy = iota
	// PackPad2: 1-byte fields are widened to occupy 2 bytes.
	PackPad2
	// PackPad4: 1-byte fields are widened to occupy 4 bytes.
	PackPad4
	// PackNatural: each field is aligned to min(size, 4).
	PackNatural
)

func (p PackingStrategy) String() string {
	switch p {
	case PackExact:
		return "exact"
	case PackPad2:
		return "pad2"
	case PackPad4:
		return "pad4"
	case PackNatural:
		return "natural"
	default:
		return fmt.Sprintf("packing(%d)", uint8(p))
	}
}
