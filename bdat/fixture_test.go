// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bdat

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// The tests build their own containers instead of shipping binary
// testdata, so every fixture documents the exact layout it exercises.

type fixtureColumn struct {
	name string
	typ  ValueType
	// vals holds one entry per row: int for integer kinds, float32 for
	// floats, string for text kinds.
	vals []any
}

type fixtureTable struct {
	name   string
	baseID int
	wide   bool
	hashed bool
	pack   PackingStrategy
	// rowLen overrides the packed total, for mismatch cases.
	rowLen int
	cols   []fixtureColumn
	// extra adds unreferenced payload to the string table, to grow it
	// past interesting boundaries.
	extra []string
}

func buildFixture(t *testing.T, version uint32, tables ...fixtureTable) []byte {
	t.Helper()
	images := make([][]byte, len(tables))
	for i, ft := range tables {
		images[i] = buildFixtureTable(t, ft)
	}
	headerLen := fileHeaderSize + 4*len(tables)
	total := headerLen
	for _, img := range images {
		total += len(img)
	}
	out := make([]byte, 0, total)
	out = append(out, magicBytes...)
	out = binary.LittleEndian.AppendUint32(out, version)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(tables)))
	out = binary.LittleEndian.AppendUint32(out, uint32(total))
	off := headerLen
	for _, img := range images {
		out = binary.LittleEndian.AppendUint32(out, uint32(off))
		off += len(img)
	}
	for _, img := range images {
		out = append(out, img...)
	}
	return out
}

func buildFixtureTable(t *testing.T, ft fixtureTable) []byte {
	t.Helper()
	nCols := len(ft.cols)
	cols := make([]*Column, nCols)
	for i, fc := range ft.cols {
		cols[i] = &Column{Name: fc.name, Type: fc.typ}
	}
	total := applyPacking(cols, ft.pack)
	rowLen := ft.rowLen
	if rowLen == 0 {
		rowLen = total
	}
	rows := 0
	if nCols > 0 {
		rows = len(ft.cols[0].vals)
	}
	for _, fc := range ft.cols {
		require.Len(t, fc.vals, rows, "fixture %s: ragged column %s", ft.name, fc.name)
	}

	headerSize := narrowHeaderSize
	if ft.wide {
		headerSize = wideHeaderSize
	}
	colDefsOff := headerSize
	hashOff := colDefsOff + 3*nCols
	hashCount := 0
	if ft.hashed {
		hashCount = 1 + nCols
	}
	rowDataOff := hashOff + 4*hashCount
	stOff := rowDataOff + rows*rowLen

	// string table: flag byte, then names for plain tables, then the
	// deduplicated payload strings
	st := []byte{0}
	nameRefs := make([]uint16, nCols)
	if ft.hashed {
		st[0] = 1
		for i := range nameRefs {
			nameRefs[i] = uint16(1 + i) // hash-table index
		}
	} else {
		st = append(st, ft.name...)
		st = append(st, 0)
		for i, fc := range ft.cols {
			nameRefs[i] = uint16(len(st))
			st = append(st, fc.name...)
			st = append(st, 0)
		}
	}
	strOffs := make(map[string]int)
	intern := func(s string) int {
		if s == "" {
			return 0
		}
		if off, ok := strOffs[s]; ok {
			return off
		}
		off := len(st)
		strOffs[s] = off
		st = append(st, s...)
		st = append(st, 0)
		return off
	}

	rowData := make([]byte, rows*rowLen)
	for r := 0; r < rows; r++ {
		for i, fc := range ft.cols {
			writeFixtureCell(t, rowData[r*rowLen+cols[i].Offset:], fc.typ, fc.vals[r], intern)
		}
	}
	for _, s := range ft.extra {
		intern(s)
	}
	stLen := len(st)

	// pad the extent to 4 bytes, like shipped files do
	extent := (stOff + stLen + 3) &^ 3
	img := make([]byte, extent)
	copy(img, magicBytes)
	binary.LittleEndian.PutUint16(img[tblOffColumnCount:], uint16(nCols))
	binary.LittleEndian.PutUint16(img[tblOffRowCount:], uint16(rows))
	binary.LittleEndian.PutUint16(img[tblOffBaseID:], uint16(ft.baseID))
	if ft.wide {
		binary.LittleEndian.PutUint32(img[0x18:], uint32(colDefsOff))
		binary.LittleEndian.PutUint32(img[0x1C:], uint32(hashOff))
		binary.LittleEndian.PutUint32(img[0x20:], uint32(rowDataOff))
		binary.LittleEndian.PutUint32(img[0x24:], uint32(rowLen))
		binary.LittleEndian.PutUint32(img[0x28:], uint32(stOff))
		binary.LittleEndian.PutUint32(img[0x2C:], uint32(stLen))
	} else {
		binary.LittleEndian.PutUint16(img[0x18:], uint16(colDefsOff))
		binary.LittleEndian.PutUint16(img[0x1A:], uint16(hashOff))
		binary.LittleEndian.PutUint16(img[0x1C:], uint16(rowDataOff))
		binary.LittleEndian.PutUint16(img[0x1E:], uint16(rowLen))
		binary.LittleEndian.PutUint32(img[0x20:], uint32(stOff))
		binary.LittleEndian.PutUint32(img[0x24:], uint32(stLen))
	}
	for i, fc := range ft.cols {
		img[colDefsOff+3*i] = byte(fc.typ)
		binary.LittleEndian.PutUint16(img[colDefsOff+3*i+1:], nameRefs[i])
	}
	if ft.hashed {
		binary.LittleEndian.PutUint32(img[hashOff:], HashName(ft.name))
		for i, fc := range ft.cols {
			binary.LittleEndian.PutUint32(img[hashOff+4*(1+i):], HashName(fc.name))
		}
	}
	copy(img[rowDataOff:], rowData)
	copy(img[stOff:], st)
	return img
}

func writeFixtureCell(t *testing.T, dst []byte, typ ValueType, val any, intern func(string) int) {
	t.Helper()
	switch typ {
	case TypeUInt8, TypeInt8, TypePercent, TypeReserved:
		dst[0] = byte(val.(int))
	case TypeUInt16, TypeInt16:
		binary.LittleEndian.PutUint16(dst, uint16(val.(int)))
	case TypeUInt32, TypeInt32, TypeHashRef:
		binary.LittleEndian.PutUint32(dst, uint32(val.(int)))
	case TypeFloat:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(val.(float32)))
	case TypeString, TypeDebugString:
		binary.LittleEndian.PutUint32(dst, uint32(intern(val.(string))))
	case TypeMessageID:
		off := intern(val.(string))
		require.LessOrEqual(t, off, maxHalfWidthOffset, "fixture string table outgrew a message-id column")
		binary.LittleEndian.PutUint16(dst, uint16(off))
	default:
		t.Fatalf("fixture: unsupported value type %v", typ)
	}
}

// twoRowStringTable is the simplest interesting fixture: one narrow,
// plain-named table with a single string column.
func twoRowStringTable(t *testing.T) []byte {
	t.Helper()
	return buildFixture(t, 1, fixtureTable{
		name:   "T",
		baseID: 1,
		cols: []fixtureColumn{
			{name: "c", typ: TypeString, vals: []any{"Hello", "World"}},
		},
	})
}

func mustParse(t *testing.T, data []byte) *File {
	t.Helper()
	f, err := Parse(data)
	require.NoError(t, err)
	return f
}
