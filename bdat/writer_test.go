// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bdat

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebuildEmptyMapIsIdentity(t *testing.T) {
	for _, tc := range []struct {
		name string
		data func(t *testing.T) []byte
	}{
		{"narrow plain", twoRowStringTable},
		{"wide hashed", func(t *testing.T) []byte {
			return buildFixture(t, 1, fixtureTable{
				name:   "MNU_Name",
				wide:   true,
				hashed: true,
				cols: []fixtureColumn{
					{name: "label", typ: TypeString, vals: []any{"Start", "Options"}},
				},
			})
		}},
		{"multi table", func(t *testing.T) []byte {
			return buildFixture(t, 3,
				fixtureTable{name: "A", cols: []fixtureColumn{
					{name: "text", typ: TypeString, vals: []any{"one"}},
				}},
				fixtureTable{name: "B", cols: []fixtureColumn{
					{name: "msg", typ: TypeMessageID, vals: []any{"two"}},
					{name: "rate", typ: TypeFloat, vals: []any{float32(0.5)}},
				}},
			)
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			data := tc.data(t)
			f := mustParse(t, data)

			res, err := f.Rebuild(nil)
			require.NoError(t, err)
			assert.Equal(t, data, res.Data)
			assert.Equal(t, res.InputDigest, res.OutputDigest)
			assert.Empty(t, res.Overflows)
			assert.Empty(t, res.Unmatched)
			require.Len(t, res.Tables, len(f.Tables))
			for _, st := range res.Tables {
				assert.Zero(t, st.Patched)
				assert.Zero(t, st.Skipped)
				assert.Nil(t, st.PatchedRows)
				assert.Equal(t, st.StringTableBefore, st.StringTableAfter)
			}

			res, err = f.Rebuild(TranslationMap{})
			require.NoError(t, err)
			assert.Equal(t, data, res.Data)
		})
	}
}

func TestRebuildNeedsParsedFile(t *testing.T) {
	_, err := (&File{}).Rebuild(nil)
	require.ErrorIs(t, err, ErrTooShort)
}

func TestRebuildGrowsStringTable(t *testing.T) {
	const arabic = "مرحبا بالعالم"
	data := twoRowStringTable(t)
	f := mustParse(t, data)

	res, err := f.Rebuild(TranslationMap{
		{Table: "T", Row: 0, Column: "c"}: arabic,
	})
	require.NoError(t, err)
	out := res.Data
	require.Greater(t, len(out), len(data))

	// the declared file size tracks the grown buffer
	assert.Equal(t, uint32(len(out)), binary.LittleEndian.Uint32(out[12:]))

	f2 := mustParse(t, out)
	v, _ := f2.Tables[0].Cell(0, "c")
	assert.Equal(t, arabic, v.Text())
	v, _ = f2.Tables[0].Cell(1, "c")
	assert.Equal(t, "World", v.Text())

	require.Len(t, res.Tables, 1)
	st := res.Tables[0]
	assert.Equal(t, 1, st.Patched)
	assert.Zero(t, st.Skipped)
	assert.Equal(t, []int{0}, st.PatchedRows)
	assert.Greater(t, st.StringTableAfter, st.StringTableBefore)
	assert.False(t, st.HalfWidthOffsets)

	// everything before the appended strings is untouched except the
	// file size, the patched cell pointer and the string-table length
	tb := f.Tables[0]
	col, _ := tb.Column("c")
	cellPos := tb.offset + tb.geo.rowDataOff + col.Offset
	lenPos := tb.offset + tb.geo.stringTableLenOff()
	allowed := func(i int) bool {
		return (i >= 12 && i < 16) ||
			(i >= cellPos && i < cellPos+4) ||
			(i >= lenPos && i < lenPos+4)
	}
	for i := range data {
		if out[i] != data[i] {
			assert.True(t, allowed(i), "unexpected byte change at 0x%x", i)
		}
	}

	// the appended region is the replacement plus NUL padding
	tail := out[len(data):]
	require.True(t, bytes.HasPrefix(tail, append([]byte(arabic), 0)))
	for _, b := range tail[len(arabic)+1:] {
		assert.Zero(t, b)
	}
	assert.Zero(t, len(out)%4)
}

func TestRebuildSharedStringFork(t *testing.T) {
	build := func(t *testing.T) (*File, []byte) {
		// both columns intern the same "Hi", sharing one offset
		data := buildFixture(t, 1, fixtureTable{
			name: "T",
			cols: []fixtureColumn{
				{name: "a", typ: TypeString, vals: []any{"Hi"}},
				{name: "b", typ: TypeString, vals: []any{"Hi"}},
			},
		})
		return mustParse(t, data), data
	}

	t.Run("one cell translated", func(t *testing.T) {
		f, _ := build(t)
		res, err := f.Rebuild(TranslationMap{
			{Table: "T", Row: 0, Column: "a"}: "Bye",
		})
		require.NoError(t, err)
		f2 := mustParse(t, res.Data)
		v, _ := f2.Tables[0].Cell(0, "a")
		assert.Equal(t, "Bye", v.Text())
		v, _ = f2.Tables[0].Cell(0, "b")
		assert.Equal(t, "Hi", v.Text(), "sibling sharing the string must keep it")
	})

	t.Run("both cells same replacement", func(t *testing.T) {
		f, data := build(t)
		res, err := f.Rebuild(TranslationMap{
			{Table: "T", Row: 0, Column: "a"}: "Bye",
			{Table: "T", Row: 0, Column: "b"}: "Bye",
		})
		require.NoError(t, err)
		// one appended copy serves both cells
		assert.Equal(t, len(data)+len("Bye")+1, len(res.Data))
		f2 := mustParse(t, res.Data)
		v, _ := f2.Tables[0].Cell(0, "a")
		assert.Equal(t, "Bye", v.Text())
		v, _ = f2.Tables[0].Cell(0, "b")
		assert.Equal(t, "Bye", v.Text())
		assert.Equal(t, 2, res.Tables[0].Patched)
	})
}

func TestRebuildEqualReplacementIsFree(t *testing.T) {
	data := twoRowStringTable(t)
	f := mustParse(t, data)

	res, err := f.Rebuild(TranslationMap{
		{Table: "T", Row: 0, Column: "c"}: "Hello",
	})
	require.NoError(t, err)
	assert.Equal(t, data, res.Data)
	assert.Equal(t, 1, res.Tables[0].Patched)
	assert.Equal(t, []int{0}, res.Tables[0].PatchedRows)
	assert.Equal(t, res.Tables[0].StringTableBefore, res.Tables[0].StringTableAfter)
}

func TestRebuildMessageIDOverflowSkipsTable(t *testing.T) {
	// 70000 bytes of unreferenced payload push the message-id table's
	// append base past 0xFFFF; the narrow sibling is unaffected.
	data := buildFixture(t, 1,
		fixtureTable{
			name: "BIG",
			cols: []fixtureColumn{
				{name: "msg", typ: TypeMessageID, vals: []any{"old"}},
			},
			extra: []string{strings.Repeat("x", 70000)},
		},
		fixtureTable{
			name: "OK",
			cols: []fixtureColumn{
				{name: "text", typ: TypeString, vals: []any{"before"}},
			},
		},
	)
	f := mustParse(t, data)
	bigTab, ok := f.Table("BIG")
	require.True(t, ok)
	require.True(t, bigTab.HasHalfWidthOffsets())

	res, err := f.Rebuild(TranslationMap{
		{Table: "BIG", Row: 0, Column: "msg"}: "new",
		{Table: "OK", Row: 0, Column: "text"}: "after",
	})
	require.NoError(t, err)

	require.Len(t, res.Overflows, 1)
	assert.Equal(t, "BIG", res.Overflows[0].Table)
	assert.Contains(t, res.Overflows[0].Reason, "16-bit")
	assert.Contains(t, res.Overflows[0].Reason, `"msg"`)

	// the overflowed table passes through verbatim
	origBig := data[bigTab.offset : bigTab.offset+bigTab.extent]
	f2 := mustParse(t, res.Data)
	newBig, _ := f2.Table("BIG")
	assert.Equal(t, origBig, res.Data[newBig.offset:newBig.offset+newBig.extent])
	v, _ := newBig.Cell(0, "msg")
	assert.Equal(t, "old", v.Text())

	// its sibling still takes the translation
	newOK, _ := f2.Table("OK")
	v, _ = newOK.Cell(0, "text")
	assert.Equal(t, "after", v.Text())

	var bigStats, okStats TableStats
	for _, st := range res.Tables {
		switch st.Table {
		case "BIG":
			bigStats = st
		case "OK":
			okStats = st
		}
	}
	assert.Zero(t, bigStats.Patched)
	assert.Equal(t, 1, bigStats.Skipped)
	assert.True(t, bigStats.HalfWidthOffsets)
	assert.Equal(t, 1, okStats.Patched)
	assert.Zero(t, okStats.Skipped)
}

func TestRebuildReportsUnmatched(t *testing.T) {
	data := buildFixture(t, 1, fixtureTable{
		name: "T",
		cols: []fixtureColumn{
			{name: "text", typ: TypeString, vals: []any{"x"}},
			{name: "num", typ: TypeUInt32, vals: []any{5}},
		},
	})
	f := mustParse(t, data)

	res, err := f.Rebuild(TranslationMap{
		{Table: "NoSuchTable", Row: 0, Column: "text"}: "a",
		{Table: "T", Row: 0, Column: "no_such_col"}:    "b",
		{Table: "T", Row: 9, Column: "text"}:           "c",
		{Table: "T", Row: 0, Column: "num"}:            "d",
	})
	require.NoError(t, err)
	assert.Equal(t, data, res.Data, "nothing matched, nothing changes")
	require.Len(t, res.Unmatched, 4)
	// sorted by table, row, column
	assert.Equal(t, CellRef{Table: "NoSuchTable", Row: 0, Column: "text"}, res.Unmatched[0])
	assert.Equal(t, CellRef{Table: "T", Row: 0, Column: "no_such_col"}, res.Unmatched[1])
	assert.Equal(t, CellRef{Table: "T", Row: 0, Column: "num"}, res.Unmatched[2])
	assert.Equal(t, CellRef{Table: "T", Row: 9, Column: "text"}, res.Unmatched[3])
	assert.Zero(t, res.Tables[0].Patched)
}

func TestRebuildShiftsDownstreamTables(t *testing.T) {
	data := buildFixture(t, 1,
		fixtureTable{name: "A", cols: []fixtureColumn{
			{name: "text", typ: TypeString, vals: []any{"alpha"}},
		}},
		fixtureTable{name: "B", cols: []fixtureColumn{
			{name: "text", typ: TypeString, vals: []any{"beta"}},
		}},
		fixtureTable{name: "C", cols: []fixtureColumn{
			{name: "text", typ: TypeString, vals: []any{"gamma"}},
		}},
	)
	f := mustParse(t, data)

	res, err := f.Rebuild(TranslationMap{
		{Table: "B", Row: 0, Column: "text"}: "a considerably longer replacement",
	})
	require.NoError(t, err)
	out := res.Data

	// A and B keep their offsets; C moves by B's growth
	grown := len(out) - len(data)
	require.Positive(t, grown)
	for i := 0; i < 3; i++ {
		oldOff := binary.LittleEndian.Uint32(data[fileHeaderSize+4*i:])
		newOff := binary.LittleEndian.Uint32(out[fileHeaderSize+4*i:])
		if i < 2 {
			assert.Equal(t, oldOff, newOff, "table %d must not move", i)
		} else {
			assert.Equal(t, oldOff+uint32(grown), newOff, "table %d must shift", i)
		}
	}

	f2 := mustParse(t, out)
	require.Len(t, f2.Tables, 3)
	for tbl, want := range map[string]string{
		"A": "alpha",
		"B": "a considerably longer replacement",
		"C": "gamma",
	} {
		tb, ok := f2.Table(tbl)
		require.True(t, ok)
		v, _ := tb.Cell(0, "text")
		assert.Equal(t, want, v.Text())
	}

	// untouched tables carry their exact original bytes
	a2, _ := f2.Table("A")
	a1, _ := f.Table("A")
	assert.Equal(t, data[a1.offset:a1.offset+a1.extent], out[a2.offset:a2.offset+a2.extent])
	c2, _ := f2.Table("C")
	c1, _ := f.Table("C")
	assert.Equal(t, data[c1.offset:c1.offset+c1.extent], out[c2.offset:c2.offset+c2.extent])

	// size invariant: header plus offset array plus the sum of extents
	sum := 0
	for _, ch := range f2.chunks {
		sum += ch.extent
	}
	assert.Equal(t, len(out), fileHeaderSize+4*len(f2.chunks)+sum)
}

func TestRebuildTemplateRoundTrip(t *testing.T) {
	data := buildFixture(t, 2,
		fixtureTable{name: "fev01_msg_a", baseID: 1, cols: []fixtureColumn{
			{name: "name", typ: TypeString, vals: []any{"Hello", "", "World"}},
			{name: "style", typ: TypeUInt16, vals: []any{0, 1, 2}},
		}},
		fixtureTable{name: "qst01_msg", wide: true, hashed: true, cols: []fixtureColumn{
			{name: "msg01", typ: TypeMessageID, vals: []any{"quest text"}},
		}},
	)
	f, err := ParseWithOptions(data, ParseOptions{Resolver: NewDictionary()})
	require.NoError(t, err)

	tpl := TranslationTemplate(f, nil)
	assert.Len(t, tpl, 4, "three narrow cells plus one message-id cell")
	assert.Equal(t, "Hello", tpl[CellRef{Table: "fev01_msg_a", Row: 0, Column: "name"}])
	assert.Equal(t, "", tpl[CellRef{Table: "fev01_msg_a", Row: 1, Column: "name"}])

	// an unedited template must reproduce the input exactly
	res, err := f.Rebuild(tpl)
	require.NoError(t, err)
	assert.Equal(t, data, res.Data)
	assert.Equal(t, res.InputDigest, res.OutputDigest)
	total := 0
	for _, st := range res.Tables {
		total += st.Patched
	}
	assert.Equal(t, 4, total)
}
