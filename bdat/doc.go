// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package bdat parses, inspects and rebuilds BDAT containers, the
// binary tabular database format console releases use for structured
// game data whose cells include player-visible text.
//
// A container generally looks like:
//
//	┌───────────────────┐
//	│ file header       │  "BDAT", version, table count, file size
//	├───────────────────┤
//	│ table offsets     │  u32 LE x table count
//	├───────────────────┤
//	│ table 0           │
//	│                   │
//	├───────────────────┤
//	│ table 1           │
//	│  ...              │
//	└───────────────────┘
//
// and each table like:
//
//	┌───────────────────┐
//	│ table header      │  "BDAT", counts, base ID, geometry fields
//	├───────────────────┤
//	│ column defs       │  3 bytes each: value type (u8), name ref (u16)
//	├───────────────────┤
//	│ hash table        │  u32 LE name hashes (hashed tables only)
//	├───────────────────┤
//	│ row data          │  rowCount x rowLength fixed-width cells
//	├───────────────────┤
//	│ string table      │  flag byte, names, NUL-terminated UTF-8 text
//	└───────────────────┘
//
// The geometry fields come in two sibling variants, distinguished per
// table at parse time: a narrow layout with u16 fields and a wide layout
// with the same fields grown to u32.  String-bearing cells store offsets
// relative to the string table; message-id cells store them in 16 bits,
// which caps how far that table's string data may grow.
//
// Table and column names are either plain NUL-terminated strings or
// 32-bit Murmur3 hashes, signaled by the string table's flag byte.
// HashName and Dictionary recover plain names from hashes; unknown
// hashes render as "<0x...>" placeholders.
//
// Parse turns a buffer into an immutable File.  Rebuild injects
// replacement text by appending new string data after the owning table
// and rewriting only the affected cell offsets, so untouched cells stay
// byte-identical and an empty translation map reproduces the input
// exactly.  Inspect reports which columns look translatable, how many
// bytes replacements may need, and which markup substrings must be
// preserved.
package bdat
