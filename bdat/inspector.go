// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bdat

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/rivo/uniseg"
)

const (
	defaultSafetyMargin  = 1.2
	defaultSampleCap     = 256
	defaultArchiveSuffix = "_msg"
)

// InspectorOptions tunes Inspect.  The zero value means defaults.
type InspectorOptions struct {
	// SafetyMargin multiplies byte budgets to buffer against
	// underestimation.  Clamped to [1.0, 2.0]; 0 means 1.2.
	SafetyMargin float64
	// SampleCap bounds how many rows contribute to per-column
	// statistics.  0 means 256.  Tables with more rows are sampled
	// (first, middle and last slices) and their stats flagged
	// approximate.
	SampleCap int
	// ArchiveSuffix marks message-archive tables by table-name suffix.
	// Empty means "_msg".
	ArchiveSuffix string
}

// Report is Inspect's advisory output: which columns carry translatable
// text, how many bytes a translation may need, and which substrings a
// translator must preserve verbatim.  Inspect never mutates the file.
type Report struct {
	Tables []TableReport `json:"tables"`
}

// Column finds one column's report by table and column name.
func (r *Report) Column(table, column string) (*ColumnReport, bool) {
	for i := range r.Tables {
		if r.Tables[i].Table != table {
			continue
		}
		for j := range r.Tables[i].Columns {
			if r.Tables[i].Columns[j].Column == column {
				return &r.Tables[i].Columns[j], true
			}
		}
	}
	return nil, false
}

// TableReport covers one table.
type TableReport struct {
	Table string `json:"table"`
	// Archive reports whether the table name carries the
	// message-archive suffix; such tables default to translatable.
	Archive bool           `json:"archive"`
	Columns []ColumnReport `json:"columns"`
}

// ColumnReport is the advisory verdict for one column.
type ColumnReport struct {
	Column string    `json:"column"`
	Type   ValueType `json:"type"`
	// Translatable is the rule-ladder decision; Reason names the rule
	// that fired ("non-text", "excluded-keyword:<kw>", "archive",
	// "allowlist:<kw>", "short-text", "default").
	Translatable bool   `json:"translatable"`
	Reason       string `json:"reason"`
	// Approximate is set when the stats below come from sampling rather
	// than a full scan.
	Approximate bool `json:"approximate,omitempty"`
	SampledRows int  `json:"sampledRows"`
	// AvgChars and MaxChars are grapheme-cluster counts over the
	// sampled non-empty values.
	AvgChars float64 `json:"avgChars"`
	MaxChars int     `json:"maxChars"`
	// ByteBudget estimates the bytes a replacement may need:
	// ceil(MaxChars x 2 x margin), never below 4.
	ByteBudget int `json:"byteBudget"`
	// Tags lists substrings (markup tags, substitutions, control runs)
	// that must survive translation verbatim.
	Tags []string `json:"tags,omitempty"`
	// Warning carries a soft advisory, e.g. an archive column whose
	// text is suspiciously short.
	Warning string `json:"warning,omitempty"`
}

// Column names carrying these fragments are structural, not prose.
var exclusionKeywords = []string{
	"id", "key", "hash", "ref", "index", "flag", "type",
	"count", "size", "sort", "order", "level", "num", "param", "rate",
}

// Column names carrying these fragments are prose even outside archives.
var allowKeywords = []string{
	"name", "title", "desc", "caption", "label", "message",
	"text", "hint", "comment", "help", "word", "talk",
}

// tagPatterns matches the markup a translation must carry through:
// named bracket tags, generic bracket tags, {var} substitutions, and
// runs of non-printable control characters.
var tagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[System:[^\]]*\]`),
	regexp.MustCompile(`\[ML:[^\]]*\]`),
	regexp.MustCompile(`\[Color:[^\]]*\]`),
	regexp.MustCompile(`\[[^\[\]]+\]`),
	regexp.MustCompile(`\{[^{}]+\}`),
	regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f]+"),
}

// Inspect classifies every column of every parsed table and computes
// byte budgets and tag vocabularies for the text-bearing ones.
func Inspect(f *File, opts InspectorOptions) *Report {
	margin := opts.SafetyMargin
	if margin == 0 {
		margin = defaultSafetyMargin
	}
	margin = math.Min(2.0, math.Max(1.0, margin))
	sampleCap := opts.SampleCap
	if sampleCap <= 0 {
		sampleCap = defaultSampleCap
	}
	suffix := opts.ArchiveSuffix
	if suffix == "" {
		suffix = defaultArchiveSuffix
	}

	rep := &Report{Tables: make([]TableReport, 0, len(f.Tables))}
	for _, t := range f.Tables {
		tr := TableReport{
			Table:   t.Name,
			Archive: strings.HasSuffix(t.Name, suffix),
			Columns: make([]ColumnReport, 0, len(t.Columns)),
		}
		for _, c := range t.Columns {
			tr.Columns = append(tr.Columns, inspectColumn(t, c, tr.Archive, margin, sampleCap))
		}
		rep.Tables = append(rep.Tables, tr)
	}
	return rep
}

func inspectColumn(t *Table, c *Column, archive bool, margin float64, sampleCap int) ColumnReport {
	rep := ColumnReport{Column: c.Name, Type: c.Type}
	if !c.Type.IsText() {
		rep.Reason = "non-text"
		return rep
	}

	idxs, approx := sampleIndexes(len(t.Rows), sampleCap)
	rep.Approximate = approx
	rep.SampledRows = len(idxs)

	total, nonEmpty := 0, 0
	tagSet := make(map[string]struct{})
	for _, i := range idxs {
		text := t.Rows[i].Cells[c.Name].Text()
		if text == "" {
			continue
		}
		nonEmpty++
		chars := uniseg.GraphemeClusterCount(text)
		total += chars
		if chars > rep.MaxChars {
			rep.MaxChars = chars
		}
		for _, re := range tagPatterns {
			for _, m := range re.FindAllString(text, -1) {
				tagSet[m] = struct{}{}
			}
		}
	}
	if nonEmpty > 0 {
		rep.AvgChars = float64(total) / float64(nonEmpty)
	}
	rep.ByteBudget = byteBudget(rep.MaxChars, margin)
	if len(tagSet) > 0 {
		rep.Tags = make([]string, 0, len(tagSet))
		for tag := range tagSet {
			rep.Tags = append(rep.Tags, tag)
		}
		sort.Strings(rep.Tags)
	}

	// decision ladder, first rule wins
	lower := strings.ToLower(c.Name)
	if kw := matchKeyword(lower, exclusionKeywords); kw != "" {
		rep.Reason = "excluded-keyword:" + kw
		return rep
	}
	if archive {
		rep.Translatable = true
		rep.Reason = "archive"
		if rep.AvgChars < 3 {
			rep.Warning = "average text length under 3 characters"
		}
		return rep
	}
	if kw := matchKeyword(lower, allowKeywords); kw != "" {
		rep.Translatable = true
		rep.Reason = "allowlist:" + kw
		return rep
	}
	if rep.AvgChars < 3 {
		rep.Reason = "short-text"
	} else {
		rep.Reason = "default"
	}
	return rep
}

func matchKeyword(lower string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}

// byteBudget models the cost of writing the target script over
// single-byte source text: two bytes per character, times the margin,
// never below four bytes.
func byteBudget(maxChars int, margin float64) int {
	b := int(math.Ceil(float64(maxChars) * 2 * margin))
	if b < 4 {
		b = 4
	}
	return b
}

// sampleIndexes picks the rows feeding a column's statistics: all of
// them when the table fits the cap, otherwise first, middle and last
// slices totaling the cap.  The second result reports whether sampling
// happened.
func sampleIndexes(rowCount, sampleCap int) ([]int, bool) {
	if rowCount <= sampleCap {
		idx := make([]int, rowCount)
		for i := range idx {
			idx[i] = i
		}
		return idx, false
	}
	per := sampleCap / 3
	last := sampleCap - 2*per
	seen := make(map[int]bool, sampleCap)
	idx := make([]int, 0, sampleCap)
	take := func(start, n int) {
		for i := start; i < start+n && i < rowCount; i++ {
			if i < 0 || seen[i] {
				continue
			}
			seen[i] = true
			idx = append(idx, i)
		}
	}
	take(0, per)
	take(rowCount/2-per/2, per)
	take(rowCount-last, last)
	sort.Ints(idx)
	return idx, true
}
