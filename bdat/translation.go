// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bdat

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CellRef addresses one cell: resolved table name, zero-based row index
// and resolved column name.
type CellRef struct {
	Table  string
	Row    int
	Column string
}

// String renders the canonical "table:row:column" text form used as the
// key in JSON translation files.
func (r CellRef) String() string {
	return fmt.Sprintf("%s:%d:%s", r.Table, r.Row, r.Column)
}

// ParseCellRef parses the canonical text form.  The table name must not
// contain ':'; the column name may.
func ParseCellRef(s string) (CellRef, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return CellRef{}, fmt.Errorf("bdat: malformed cell ref %q (want table:row:column)", s)
	}
	row, err := strconv.Atoi(parts[1])
	if err != nil || row < 0 {
		return CellRef{}, fmt.Errorf("bdat: bad row index in cell ref %q", s)
	}
	return CellRef{Table: parts[0], Row: row, Column: parts[2]}, nil
}

// TranslationMap carries replacement strings keyed by cell.  It is
// supplied by the caller per rebuild; cells absent from the map keep
// their original bytes.
type TranslationMap map[CellRef]string

// TranslationTemplate collects the current text of every translatable
// cell in f.  When rep is nil every cell of every text-bearing column
// is included; otherwise only columns the report marks translatable
// are.  Rebuilding with an unedited template reproduces the input
// byte for byte.
func TranslationTemplate(f *File, rep *Report) TranslationMap {
	out := make(TranslationMap)
	for _, t := range f.Tables {
		for _, c := range t.Columns {
			if !c.Type.IsText() {
				continue
			}
			if rep != nil {
				cr, ok := rep.Column(t.Name, c.Name)
				if !ok || !cr.Translatable {
					continue
				}
			}
			for i, row := range t.Rows {
				v, ok := row.Cells[c.Name]
				if !ok {
					continue
				}
				out[CellRef{Table: t.Name, Row: i, Column: c.Name}] = v.Text()
			}
		}
	}
	return out
}

// Refs returns the map's keys sorted by table, row, then column.
func (m TranslationMap) Refs() []CellRef {
	refs := make([]CellRef, 0, len(m))
	for ref := range m {
		refs = append(refs, ref)
	}
	sortCellRefs(refs)
	return refs
}

func sortCellRefs(refs []CellRef) {
	sort.Slice(refs, func(i, j int) bool {
		a, b := refs[i], refs[j]
		if a.Table != b.Table {
			return a.Table < b.Table
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Column < b.Column
	})
}

// MarshalJSON encodes the map as a flat JSON object keyed by the
// canonical text form.  Keys come out sorted, so encoded templates diff
// cleanly.
func (m TranslationMap) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(m))
	for ref, text := range m {
		flat[ref.String()] = text
	}
	return json.Marshal(flat)
}

// UnmarshalJSON decodes the flat JSON object form.
func (m *TranslationMap) UnmarshalJSON(b []byte) error {
	var flat map[string]string
	if err := json.Unmarshal(b, &flat); err != nil {
		return err
	}
	out := make(TranslationMap, len(flat))
	for k, v := range flat {
		ref, err := ParseCellRef(k)
		if err != nil {
			return err
		}
		out[ref] = v
	}
	*m = out
	return nil
}
