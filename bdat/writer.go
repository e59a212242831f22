// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bdat

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/dgryski/go-farm"

	"github.com/alazi900-coder/zelda-arabic-magic-sub002/internal/bitset"
	"github.com/alazi900-coder/zelda-arabic-magic-sub002/internal/bufview"
)

// maxHalfWidthOffset is the largest string-table offset a message-id
// cell can store.
const maxHalfWidthOffset = 0xFFFF

// Overflow reports a table whose translations were abandoned because the
// grown string table would exceed the addressable range of a half-width
// offset column.  The table's bytes pass through the rebuild untouched.
type Overflow struct {
	Table  string
	Reason string
}

// TableStats reports what a rebuild did to one table.  Hosting
// applications surface these to operators; silent data loss is not
// acceptable, so every abandoned translation shows up in Skipped.
type TableStats struct {
	Table string
	// Patched counts translations applied to this table, including ones
	// whose replacement equaled the original text (those cost no bytes).
	Patched int
	// Skipped counts translations abandoned because of an overflow.
	Skipped int
	// HalfWidthOffsets reports whether the table has message-id columns
	// and is therefore exposed to overflow.
	HalfWidthOffsets bool
	// StringTableBefore and StringTableAfter are the string-table sizes
	// in bytes before and after the rebuild.
	StringTableBefore int
	StringTableAfter  int
	// PatchedRows lists the row indices that received at least one
	// translation, ascending.  Nil when nothing was applied.
	PatchedRows []int
}

// BuildResult is the output of one Rebuild call.
type BuildResult struct {
	// Data is the rebuilt file.  It is always a fresh buffer; the input
	// File is never mutated.
	Data []byte
	// Tables holds one entry per parsed table, in offset-array order.
	Tables []TableStats
	// Overflows lists tables whose translations were abandoned.
	Overflows []Overflow
	// Unmatched lists translation keys that addressed no patchable cell:
	// unknown table or column, row out of range, or a non-text column.
	Unmatched []CellRef
	// InputDigest and OutputDigest are farmhash64 fingerprints of the
	// input and output buffers, for artifact verification and dedup.
	InputDigest  uint64
	OutputDigest uint64
}

// Rebuild emits a new file with the given replacement strings injected.
// Cells absent from tr keep their original bytes; an empty map
// reproduces the input byte for byte.  Replacements are deduplicated and
// appended after the owning table, so original string data never moves
// and untouched cells stay byte-identical even when siblings grow.
//
// Rebuild never mutates f and may be called any number of times with
// different maps.
func (f *File) Rebuild(tr TranslationMap) (*BuildResult, error) {
	if f == nil || len(f.raw) < fileHeaderSize {
		return nil, fileErr(0, ErrTooShort)
	}
	res := &BuildResult{InputDigest: farm.Hash64(f.raw)}

	// Partition translations by target table.  Keys naming no parsed
	// table can never apply.
	byTable := make(map[string]TranslationMap)
	for ref, text := range tr {
		if _, ok := f.Table(ref.Table); !ok {
			res.Unmatched = append(res.Unmatched, ref)
			continue
		}
		m := byTable[ref.Table]
		if m == nil {
			m = make(TranslationMap)
			byTable[ref.Table] = m
		}
		m[ref] = text
	}

	// Tables are laid out in file order; any table may grow, so every
	// downstream table's offset is recomputed as we go.
	order := make([]int, len(f.chunks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return f.chunks[order[a]].offset < f.chunks[order[b]].offset
	})

	preamble := len(f.raw)
	if len(order) > 0 {
		preamble = f.chunks[order[0]].offset
	}
	out := make([]byte, 0, len(f.raw))
	out = append(out, f.raw[:preamble]...)

	newOffsets := make([]int, len(f.chunks))
	statsByArray := make([]*TableStats, len(f.chunks))
	for _, idx := range order {
		ch := &f.chunks[idx]
		newOffsets[idx] = len(out)
		if ch.table == nil {
			// unparsed table, carried through verbatim
			out = append(out, f.raw[ch.offset:ch.offset+ch.extent]...)
			continue
		}
		img, stats, ovf, unmatched := f.rebuildTable(ch.table, byTable[ch.table.Name])
		out = append(out, img...)
		statsByArray[idx] = &stats
		if ovf != nil {
			res.Overflows = append(res.Overflows, *ovf)
		}
		res.Unmatched = append(res.Unmatched, unmatched...)
	}

	// Patch only header fields whose value actually changed, so a
	// rebuild that grew nothing reproduces the input exactly.
	if len(out) != len(f.raw) {
		binary.LittleEndian.PutUint32(out[12:], uint32(len(out)))
	}
	for i := range f.chunks {
		if newOffsets[i] != f.chunks[i].offset {
			binary.LittleEndian.PutUint32(out[fileHeaderSize+4*i:], uint32(newOffsets[i]))
		}
	}

	for _, stats := range statsByArray {
		if stats != nil {
			res.Tables = append(res.Tables, *stats)
		}
	}
	sortCellRefs(res.Unmatched)
	res.Data = out
	res.OutputDigest = farm.Hash64(out)
	return res, nil
}

// rebuildTable produces the new byte image of one table.  When nothing
// needs patching the returned image aliases the original buffer; the
// caller copies it into the output.
func (f *File) rebuildTable(t *Table, trs TranslationMap) (img []byte, stats TableStats, ovf *Overflow, unmatched []CellRef) {
	stats = TableStats{
		Table:             t.Name,
		HalfWidthOffsets:  t.HasHalfWidthOffsets(),
		StringTableBefore: t.geo.stringTableLen,
		StringTableAfter:  t.geo.stringTableLen,
	}
	orig := f.raw[t.offset : t.offset+t.extent]
	if len(trs) == 0 {
		return orig, stats, nil, nil
	}

	sub := bufview.New(orig)
	stEnd := min(t.geo.stringTableOff+t.geo.stringTableLen, t.extent)
	strs := sub.Sub(t.geo.stringTableOff, stEnd-t.geo.stringTableOff)

	colIdx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		colIdx[c.Name] = i
	}

	// Apply in (row, column) cell order so appended strings lay out
	// deterministically.
	refs := make([]CellRef, 0, len(trs))
	for ref := range trs {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		a, b := refs[i], refs[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		ai, aok := colIdx[a.Column]
		bi, bok := colIdx[b.Column]
		if aok && bok && ai != bi {
			return ai < bi
		}
		if aok != bok {
			return aok
		}
		return a.Column < b.Column
	})

	type target struct {
		ref     CellRef
		col     *Column
		cellOff int
	}
	targets := make([]target, 0, len(refs))
	for _, ref := range refs {
		ci, ok := colIdx[ref.Column]
		if !ok {
			unmatched = append(unmatched, ref)
			continue
		}
		col := t.Columns[ci]
		if !col.Type.IsText() || ref.Row < 0 || ref.Row >= len(t.Rows) {
			unmatched = append(unmatched, ref)
			continue
		}
		cellOff := t.geo.rowDataOff + ref.Row*t.geo.rowLen + col.Offset
		if _, ok := sub.Bytes(cellOff, col.Type.Size()); !ok {
			// pointer bytes are outside the table, nothing to rewrite
			unmatched = append(unmatched, ref)
			continue
		}
		targets = append(targets, target{ref: ref, col: col, cellOff: cellOff})
	}

	// Replacement strings land after the whole original table extent, so
	// their string-table-relative offsets start at extent-stringTableOff.
	base := t.extent - t.geo.stringTableOff
	type patch struct {
		off   int
		width int
		value uint32
	}
	var patches []patch
	var appended []string
	appendedPos := make(map[string]int)
	appendedLen := 0
	rowsTouched := bitset.New(len(t.Rows))
	applied := 0

	for _, tg := range targets {
		var origOff int
		if tg.col.Type.HalfWidth() {
			v, _ := sub.U16(tg.cellOff)
			origOff = int(v)
		} else {
			v, _ := sub.U32(tg.cellOff)
			origOff = int(v)
		}
		text := trs[tg.ref]
		if text == stringAt(strs, origOff) {
			// already reads as the replacement; applied for free
			applied++
			rowsTouched.Set(tg.ref.Row)
			continue
		}
		pos, seen := appendedPos[text]
		if !seen {
			pos = appendedLen
			appendedPos[text] = pos
			appended = append(appended, text)
			appendedLen += len(text) + 1
		}
		newOff := base + pos
		if tg.col.Type.HalfWidth() && newOff > maxHalfWidthOffset {
			ovf = &Overflow{
				Table: t.Name,
				Reason: fmt.Sprintf("cell %s: replacement needs string-table offset 0x%x, beyond the 16-bit range of message-id column %q",
					tg.ref, newOff, tg.col.Name),
			}
			break
		}
		width := 4
		if tg.col.Type.HalfWidth() {
			width = 2
		}
		patches = append(patches, patch{off: tg.cellOff, width: width, value: uint32(newOff)})
		applied++
		rowsTouched.Set(tg.ref.Row)
	}

	if ovf != nil {
		// abandon the whole table rather than write a wrapped offset;
		// siblings are unaffected
		stats.Patched = 0
		stats.Skipped = len(targets)
		return orig, stats, ovf, unmatched
	}

	stats.Patched = applied
	stats.PatchedRows = rowIndices(rowsTouched)
	if len(patches) == 0 {
		return orig, stats, nil, unmatched
	}

	grow := appendedLen
	pad := (4 - (t.extent+grow)%4) % 4
	img = make([]byte, t.extent+grow+pad)
	copy(img, orig)
	for _, p := range patches {
		if p.width == 2 {
			binary.LittleEndian.PutUint16(img[p.off:], uint16(p.value))
		} else {
			binary.LittleEndian.PutUint32(img[p.off:], p.value)
		}
	}
	w := t.extent
	for _, s := range appended {
		copy(img[w:], s)
		w += len(s) + 1 // terminating NUL is already zero
	}
	newLen := base + grow + pad
	t.geo.putStringTableLen(img, uint32(newLen))
	stats.StringTableAfter = newLen
	return img, stats, nil, unmatched
}

func rowIndices(b *bitset.Bitset) []int {
	n := b.Count()
	if n == 0 {
		return nil
	}
	idx := make([]int, 0, n)
	for i := 0; i < b.Len(); i++ {
		if b.IsSet(i) {
			idx = append(idx, i)
		}
	}
	return idx
}
