// Command gen-testdata writes small deterministic BDAT containers for
// manual poking and benchmarks.  Both layouts, both naming schemes and
// shared string offsets are exercised; rerunning produces identical
// bytes.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/alazi900-coder/zelda-arabic-magic-sub002/bdat"
)

const seed = 0x8DA7

var words = []string{
	"sword", "shield", "potion", "ether", "gem", "cloak", "ring",
	"lantern", "compass", "map", "flute", "feather", "anchor", "key",
}

type column struct {
	name string
	typ  bdat.ValueType
	vals []any
}

type table struct {
	name   string
	baseID int
	wide   bool
	hashed bool
	cols   []column
}

func main() {
	dir := flag.String("dir", "testdata", "output directory")
	flag.Parse()
	if err := os.MkdirAll(*dir, 0o755); err != nil {
		fatal(err)
	}

	rng := rand.New(rand.NewSource(seed))
	for _, gen := range []struct {
		name   string
		tables []table
	}{
		{"items.bdat", []table{itemTable(rng)}},
		{"messages.bdat", []table{messageTable(rng)}},
		{"hashed.bdat", []table{menuTable(rng)}},
		{"mixed.bdat", []table{itemTable(rng), menuTable(rng), messageTable(rng)}},
	} {
		data := buildFile(gen.tables)
		// refuse to ship anything the parser would not accept
		if _, err := bdat.Parse(data); err != nil {
			fatal(fmt.Errorf("%s: generated file does not parse: %w", gen.name, err))
		}
		path := filepath.Join(*dir, gen.name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("%s: %d bytes, %d tables\n", path, len(data), len(gen.tables))
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "gen-testdata:", err)
	os.Exit(1)
}

func itemTable(rng *rand.Rand) table {
	const rows = 64
	ids := make([]any, rows)
	names := make([]any, rows)
	prices := make([]any, rows)
	rates := make([]any, rows)
	for i := 0; i < rows; i++ {
		ids[i] = i + 1
		names[i] = fmt.Sprintf("%s of the %s", pick(rng), pick(rng))
		prices[i] = 10 + rng.Intn(9000)
		rates[i] = float32(rng.Intn(400)) / 100
	}
	return table{
		name:   "ITM_ItemList",
		baseID: 1,
		cols: []column{
			{name: "item_id", typ: bdat.TypeUInt16, vals: ids},
			{name: "name", typ: bdat.TypeString, vals: names},
			{name: "price", typ: bdat.TypeUInt32, vals: prices},
			{name: "rate", typ: bdat.TypeFloat, vals: rates},
		},
	}
}

// messageTable shares strings between rows and carries markup tags, the
// two things translation tooling trips over.
func messageTable(rng *rand.Rand) table {
	const rows = 32
	labels := make([]any, rows)
	msgs := make([]any, rows)
	for i := 0; i < rows; i++ {
		labels[i] = fmt.Sprintf("line%02d", i)
		switch {
		case i%7 == 0:
			msgs[i] = "..." // deliberately shared between rows
		case i%5 == 0:
			msgs[i] = fmt.Sprintf("[System:Wait %d]Take the %s.", 10+rng.Intn(50), pick(rng))
		default:
			msgs[i] = fmt.Sprintf("The %s sits beside the %s.", pick(rng), pick(rng))
		}
	}
	return table{
		name:   "fev01_msg",
		baseID: 1,
		cols: []column{
			{name: "label", typ: bdat.TypeString, vals: labels},
			{name: "msg01", typ: bdat.TypeMessageID, vals: msgs},
		},
	}
}

func menuTable(rng *rand.Rand) table {
	const rows = 16
	labels := make([]any, rows)
	sorts := make([]any, rows)
	for i := 0; i < rows; i++ {
		labels[i] = fmt.Sprintf("Menu %s", pick(rng))
		sorts[i] = i * 10
	}
	return table{
		name:   "MNU_Name",
		wide:   true,
		hashed: true,
		cols: []column{
			{name: "label", typ: bdat.TypeString, vals: labels},
			{name: "sort_id", typ: bdat.TypeUInt16, vals: sorts},
		},
	}
}

func pick(rng *rand.Rand) string {
	return words[rng.Intn(len(words))]
}

func buildFile(tables []table) []byte {
	images := make([][]byte, len(tables))
	total := 16 + 4*len(tables)
	for i, t := range tables {
		images[i] = buildTable(t)
		total += len(images[i])
	}
	out := make([]byte, 0, total)
	out = append(out, 'B', 'D', 'A', 'T')
	out = binary.LittleEndian.AppendUint32(out, 1)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(tables)))
	out = binary.LittleEndian.AppendUint32(out, uint32(total))
	off := 16 + 4*len(tables)
	for _, img := range images {
		out = binary.LittleEndian.AppendUint32(out, uint32(off))
		off += len(img)
	}
	for _, img := range images {
		out = append(out, img...)
	}
	return out
}

// buildTable lays the regions out back to back with cumulative cell
// offsets: header, column defs, hash entries, row data, string table.
func buildTable(t table) []byte {
	headerSize := 0x28
	if t.wide {
		headerSize = 0x30
	}
	nCols := len(t.cols)
	rows := 0
	if nCols > 0 {
		rows = len(t.cols[0].vals)
	}

	offsets := make([]int, nCols)
	rowLen := 0
	for i, c := range t.cols {
		offsets[i] = rowLen
		rowLen += c.typ.Size()
	}

	colDefsOff := headerSize
	hashOff := colDefsOff + 3*nCols
	hashCount := 0
	if t.hashed {
		hashCount = 1 + nCols
	}
	rowDataOff := hashOff + 4*hashCount
	stOff := rowDataOff + rows*rowLen

	st := []byte{0}
	nameRefs := make([]uint16, nCols)
	if t.hashed {
		st[0] = 1
		for i := range nameRefs {
			nameRefs[i] = uint16(1 + i)
		}
	} else {
		st = append(st, t.name...)
		st = append(st, 0)
		for i, c := range t.cols {
			nameRefs[i] = uint16(len(st))
			st = append(st, c.name...)
			st = append(st, 0)
		}
	}
	interned := make(map[string]int)
	intern := func(s string) int {
		if s == "" {
			return 0
		}
		if off, ok := interned[s]; ok {
			return off
		}
		off := len(st)
		interned[s] = off
		st = append(st, s...)
		st = append(st, 0)
		return off
	}

	rowData := make([]byte, rows*rowLen)
	for r := 0; r < rows; r++ {
		for i, c := range t.cols {
			cell := rowData[r*rowLen+offsets[i]:]
			switch c.typ {
			case bdat.TypeUInt16:
				binary.LittleEndian.PutUint16(cell, uint16(c.vals[r].(int)))
			case bdat.TypeUInt32:
				binary.LittleEndian.PutUint32(cell, uint32(c.vals[r].(int)))
			case bdat.TypeFloat:
				binary.LittleEndian.PutUint32(cell, math.Float32bits(c.vals[r].(float32)))
			case bdat.TypeString:
				binary.LittleEndian.PutUint32(cell, uint32(intern(c.vals[r].(string))))
			case bdat.TypeMessageID:
				binary.LittleEndian.PutUint16(cell, uint16(intern(c.vals[r].(string))))
			default:
				fatal(fmt.Errorf("table %s: no writer for %s cells", t.name, c.typ))
			}
		}
	}

	extent := (stOff + len(st) + 3) &^ 3
	img := make([]byte, extent)
	copy(img, "BDAT")
	binary.LittleEndian.PutUint16(img[0x08:], uint16(nCols))
	binary.LittleEndian.PutUint16(img[0x0C:], uint16(rows))
	binary.LittleEndian.PutUint16(img[0x10:], uint16(t.baseID))
	if t.wide {
		binary.LittleEndian.PutUint32(img[0x18:], uint32(colDefsOff))
		binary.LittleEndian.PutUint32(img[0x1C:], uint32(hashOff))
		binary.LittleEndian.PutUint32(img[0x20:], uint32(rowDataOff))
		binary.LittleEndian.PutUint32(img[0x24:], uint32(rowLen))
		binary.LittleEndian.PutUint32(img[0x28:], uint32(stOff))
		binary.LittleEndian.PutUint32(img[0x2C:], uint32(len(st)))
	} else {
		binary.LittleEndian.PutUint16(img[0x18:], uint16(colDefsOff))
		binary.LittleEndian.PutUint16(img[0x1A:], uint16(hashOff))
		binary.LittleEndian.PutUint16(img[0x1C:], uint16(rowDataOff))
		binary.LittleEndian.PutUint16(img[0x1E:], uint16(rowLen))
		binary.LittleEndian.PutUint32(img[0x20:], uint32(stOff))
		binary.LittleEndian.PutUint32(img[0x24:], uint32(len(st)))
	}
	for i, c := range t.cols {
		img[colDefsOff+3*i] = byte(c.typ)
		binary.LittleEndian.PutUint16(img[colDefsOff+3*i+1:], nameRefs[i])
	}
	if t.hashed {
		binary.LittleEndian.PutUint32(img[hashOff:], bdat.HashName(t.name))
		for i, c := range t.cols {
			binary.LittleEndian.PutUint32(img[hashOff+4*(1+i):], bdat.HashName(c.name))
		}
	}
	copy(img[rowDataOff:], rowData)
	copy(img[stOff:], st)
	return img
}
