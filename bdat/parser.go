// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bdat

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/alazi900-coder/zelda-arabic-magic-sub002/internal/bufview"
)

// ParseOptions adjusts how a buffer is parsed.
type ParseOptions struct {
	// Resolver de-hashes table and column names.  A nil Resolver keeps
	// every hashed name as its canonical hex placeholder.
	Resolver NameResolver
	// Logger receives progress and diagnostic output.  If not provided,
	// no logging output will be produced.
	Logger *slog.Logger
}

// Parse decodes a BDAT container.  Hashed names come out as hex
// placeholders; use ParseWithOptions with a Dictionary to de-hash them.
func Parse(data []byte) (*File, error) {
	return ParseWithOptions(data, ParseOptions{})
}

// ParseWithOptions decodes a BDAT container in one linear pass.  The
// returned File owns a private copy of data.  A bad file header is
// fatal; a malformed table is skipped (recorded on File.Skipped) while
// its siblings still parse.
func ParseWithOptions(data []byte, opts ParseOptions) (*File, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if len(data) < fileHeaderSize {
		return nil, fileErr(0, ErrTooShort)
	}
	raw := make([]byte, len(data))
	copy(raw, data)
	v := bufview.New(raw)

	if !bytes.Equal(raw[:4], magicBytes) {
		return nil, fileErr(0, ErrBadMagic)
	}
	version, _ := v.U32(4)
	tableCount, _ := v.U32(8)
	declSize, _ := v.U32(12)

	n := int(tableCount)
	if fileHeaderSize+4*n > len(raw) {
		return nil, fileErr(fileHeaderSize, ErrTooShort)
	}

	f := &File{
		Version:  version,
		FileSize: declSize,
		raw:      raw,
	}
	if int(declSize) != len(raw) {
		f.warn(logger, fmt.Sprintf("declared file size %d differs from buffer length %d", declSize, len(raw)))
	}

	f.chunks = make([]chunk, n)
	for i := 0; i < n; i++ {
		off, _ := v.U32(fileHeaderSize + 4*i)
		if int(off) < fileHeaderSize+4*n || int(off) >= len(raw) {
			return nil, fileErr(fileHeaderSize+4*i, ErrTableOutOfRange)
		}
		f.chunks[i] = chunk{arrayIdx: i, offset: int(off)}
	}

	// Tables are listed in array order but may sit anywhere in the file;
	// each table's extent runs to the next table in file order (the last
	// one runs to the end of the buffer).
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return f.chunks[order[a]].offset < f.chunks[order[b]].offset
	})
	for k, idx := range order {
		end := len(raw)
		if k+1 < n {
			end = f.chunks[order[k+1]].offset
		}
		f.chunks[idx].extent = end - f.chunks[idx].offset
	}

	names := make(map[string]int, n)
	for i := range f.chunks {
		ch := &f.chunks[i]
		t, err := f.parseTable(logger, opts.Resolver, ch.arrayIdx, ch.offset, ch.extent)
		if err != nil {
			logger.Warn("skipping malformed table", "table", ch.arrayIdx, "err", err)
			f.Skipped = append(f.Skipped, SkippedTable{Index: ch.arrayIdx, Err: err})
			continue
		}
		if prev, dup := names[t.Name]; dup {
			renamed := fmt.Sprintf("%s_%d", t.Name, ch.arrayIdx)
			f.warn(logger, fmt.Sprintf("table %d has the same name %q as table %d, renamed to %q", ch.arrayIdx, t.Name, prev, renamed))
			t.Name = renamed
		}
		names[t.Name] = ch.arrayIdx
		ch.table = t
		f.Tables = append(f.Tables, t)
	}
	logger.Debug("parsed file", "tables", len(f.Tables), "skipped", len(f.Skipped), "warnings", len(f.Warnings))
	return f, nil
}

func (f *File) warn(logger *slog.Logger, msg string) {
	f.Warnings = append(f.Warnings, msg)
	logger.Warn(msg)
}

func (f *File) parseTable(logger *slog.Logger, resolver NameResolver, idx, offset, extent int) (*Table, error) {
	if extent < len(magicBytes) {
		return nil, tableErr(idx, offset, ErrTooShort)
	}
	sub := bufview.New(f.raw[offset : offset+extent])
	head, _ := sub.Bytes(0, len(magicBytes))
	if !bytes.Equal(head, magicBytes) {
		return nil, tableErr(idx, offset, ErrBadMagic)
	}

	layout := detectLayout(sub)
	if extent < layout.headerSize() {
		return nil, tableErr(idx, offset, ErrTooShort)
	}
	geo := readGeometry(sub, layout)
	colCount := u16At(sub, tblOffColumnCount)
	rowCount := u16At(sub, tblOffRowCount)
	baseID := u16At(sub, tblOffBaseID)

	if geo.stringTableOff < layout.headerSize() || geo.stringTableOff >= extent {
		return nil, tableErr(idx, offset+geo.stringTableOff, ErrTooShort)
	}
	stEnd := geo.stringTableOff + geo.stringTableLen
	if stEnd > extent {
		// declared length overruns the table; clamp and keep going
		stEnd = extent
	}
	strs := sub.Sub(geo.stringTableOff, stEnd-geo.stringTableOff)

	flag, _ := strs.U8(0)
	t := &Table{
		Hashed: flag != 0,
		Layout: layout,
		BaseID: baseID,
		geo:    geo,
		offset: offset,
		extent: extent,
	}

	if t.Hashed {
		h, ok := hashEntry(sub, geo.hashTableOff, 0)
		if !ok {
			return nil, tableErr(idx, offset+geo.hashTableOff, ErrTooShort)
		}
		t.NameHash = h
		t.Name = resolveName(resolver, h)
	} else {
		// the plain table name sits right after the flag byte
		t.Name, _ = strs.CString(1)
	}
	if t.Name == "" {
		t.Name = fmt.Sprintf("table_%d", idx)
		f.warn(logger, fmt.Sprintf("table %d has no readable name, using %q", idx, t.Name))
	}

	if geo.columnDefsOff < 0 || geo.columnDefsOff+3*colCount > extent {
		return nil, tableErr(idx, offset+geo.columnDefsOff, ErrTooShort)
	}
	cols := make([]*Column, colCount)
	for j := range cols {
		ty, _ := sub.U8(geo.columnDefsOff + 3*j)
		ref, _ := sub.U16(geo.columnDefsOff + 3*j + 1)
		vt := ValueType(ty)
		if !vt.Valid() {
			return nil, tableErr(idx, offset+geo.columnDefsOff+3*j, fmt.Errorf("column %d: unknown value type %d", j, ty))
		}
		c := &Column{Type: vt, NameRef: ref}
		if t.Hashed {
			if h, ok := hashEntry(sub, geo.hashTableOff, int(ref)); ok {
				c.NameHash = h
				c.Name = resolveName(resolver, h)
			}
		} else {
			c.Name, _ = strs.CString(int(ref))
		}
		cols[j] = c
	}
	seen := make(map[string]bool, len(cols))
	for j, c := range cols {
		if c.Name == "" || seen[c.Name] {
			fallback := fmt.Sprintf("col_%d", j)
			f.warn(logger, fmt.Sprintf("table %s: column %d name %q unusable, using %q", t.Name, j, c.Name, fallback))
			c.Name = fallback
		}
		seen[c.Name] = true
	}
	t.Columns = cols

	strategy, matched := packColumns(cols, geo.rowLen)
	t.Packing = strategy
	if !matched {
		f.warn(logger, fmt.Sprintf("table %s: column sizes do not account for row length %d, falling back to natural alignment", t.Name, geo.rowLen))
	}

	if rowCount > 0 && geo.rowDataOff+rowCount*geo.rowLen > geo.stringTableOff {
		f.warn(logger, fmt.Sprintf("table %s: row data overruns the string table", t.Name))
	}

	rows := make([]*Row, rowCount)
	for r := range rows {
		base := geo.rowDataOff + r*geo.rowLen
		cells := make(map[string]Value, len(cols))
		for _, c := range cols {
			cells[c.Name] = decodeCell(sub, strs, base+c.Offset, c.Type)
		}
		rows[r] = &Row{ID: baseID + r, Cells: cells}
	}
	t.Rows = rows
	return t, nil
}

// hashEntry reads the i'th 4-byte entry of the table's hash table.
func hashEntry(sub bufview.View, hashTableOff, i int) (uint32, bool) {
	if i < 0 {
		return 0, false
	}
	return sub.U32(hashTableOff + 4*i)
}

func resolveName(r NameResolver, h uint32) string {
	if r == nil {
		return Placeholder(h)
	}
	return r.Resolve(h)
}

// packColumns assigns every column its byte offset within a row.  The
// format does not declare its packing rule, so candidate rules are tried
// in a fixed order until one accounts for the declared row length:
// cumulative natural sizes, then 1-byte fields padded to 2, then 1-byte
// fields padded to 4, then natural alignment (each field aligned to
// min(size, 4)).  When nothing matches, the natural-alignment offsets
// are kept and the caller records a warning.
func packColumns(cols []*Column, rowLen int) (PackingStrategy, bool) {
	for _, strategy := range []PackingStrategy{PackExact, PackPad2, PackPad4} {
		if total := applyPacking(cols, strategy); total == rowLen {
			return strategy, true
		}
	}
	total := applyPacking(cols, PackNatural)
	return PackNatural, total == rowLen
}

func applyPacking(cols []*Column, strategy PackingStrategy) (total int) {
	cursor := 0
	for _, c := range cols {
		size := c.Type.Size()
		advance := size
		switch strategy {
		case PackPad2:
			if size == 1 {
				advance = 2
			}
		case PackPad4:
			if size == 1 {
				advance = 4
			}
		case PackNatural:
			if a := min(size, 4); a > 1 {
				cursor = (cursor + a - 1) &^ (a - 1)
			}
		}
		c.Offset = cursor
		cursor += advance
	}
	return cursor
}

// decodeCell reads one cell.  Reads past the buffer and string offsets
// that are zero or out of range produce zero values rather than errors.
func decodeCell(sub, strs bufview.View, off int, t ValueType) Value {
	switch t {
	case TypeUInt8, TypePercent, TypeReserved:
		b, _ := sub.U8(off)
		return intValue(t, int64(b))
	case TypeUInt16:
		n, _ := sub.U16(off)
		return intValue(t, int64(n))
	case TypeUInt32, TypeHashRef:
		n, _ := sub.U32(off)
		return intValue(t, int64(n))
	case TypeInt8:
		b, _ := sub.U8(off)
		return intValue(t, int64(int8(b)))
	case TypeInt16:
		n, _ := sub.U16(off)
		return intValue(t, int64(int16(n)))
	case TypeInt32:
		n, _ := sub.U32(off)
		return intValue(t, int64(int32(n)))
	case TypeFloat:
		fv, _ := sub.F32(off)
		return floatValue(fv)
	case TypeString, TypeDebugString:
		n, _ := sub.U32(off)
		return textValue(t, stringAt(strs, int(n)))
	case TypeMessageID:
		n, _ := sub.U16(off)
		return textValue(t, stringAt(strs, int(n)))
	default:
		return Value{}
	}
}

// stringAt decodes the NUL-terminated string at a string-table-relative
// offset.  Offset 0 points at the flag byte and, like any out-of-range
// offset, reads as "".
func stringAt(strs bufview.View, off int) string {
	if off <= 0 || off >= strs.Len() {
		return ""
	}
	s, _ := strs.CString(off)
	return s
}
