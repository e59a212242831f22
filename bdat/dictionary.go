// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bdat

import (
	"fmt"
	"strconv"

	"github.com/spaolacci/murmur3"

	"github.com/alazi900-coder/zelda-arabic-magic-sub002/internal/unsafestring"
)

// HashName returns the 32-bit Murmur3 hash (seed 0) of name.  Release
// files store table and column identifiers in this hashed form; the same
// function must be used to look names up or to mint new dictionary
// entries.  Pure and platform independent.
func HashName(name string) uint32 {
	return murmur3.Sum32(unsafestring.ToBytes(name))
}

// NameResolver turns 32-bit name hashes back into identifiers.
// Dictionary is the standard implementation; parsers fall back to hex
// placeholders when no resolver is supplied.
type NameResolver interface {
	Resolve(hash uint32) string
}

// Dictionary maps known name hashes back to their plain identifiers.
// It is caller-owned and append-only; independent dictionaries can
// coexist (useful for tests and multi-tenant hosting).
//
// A Dictionary is not internally synchronized.  Concurrent Resolve calls
// are safe only once all Extend calls have happened; extend first, then
// share.
type Dictionary struct {
	byHash map[uint32]string
}

var _ NameResolver = (*Dictionary)(nil)

// NewDictionary returns a dictionary seeded with the built-in list of
// identifiers recovered from release files.
func NewDictionary() *Dictionary {
	d := &Dictionary{byHash: make(map[uint32]string, len(builtinNames))}
	d.Extend(builtinNames...)
	return d
}

// Resolve returns the name stored under hash, or the canonical
// "<0x%08x>" placeholder when the hash is unknown.
func (d *Dictionary) Resolve(hash uint32) string {
	if name, ok := d.byHash[hash]; ok {
		return name
	}
	return Placeholder(hash)
}

// IsKnown reports whether hash maps to a known name.
func (d *Dictionary) IsKnown(hash uint32) bool {
	_, ok := d.byHash[hash]
	return ok
}

// Extend adds names to the dictionary.  Re-adding a known name is a
// no-op; existing entries are never disturbed, so on a hash collision
// the first name wins.
func (d *Dictionary) Extend(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		h := HashName(name)
		if _, exists := d.byHash[h]; exists {
			continue
		}
		d.byHash[h] = name
	}
}

// Len returns the number of known names.
func (d *Dictionary) Len() int {
	return len(d.byHash)
}

// Placeholder formats hash in the canonical unknown-name form: "<0x"
// followed by exactly 8 lowercase hex digits and ">".
func Placeholder(hash uint32) string {
	return fmt.Sprintf("<0x%08x>", hash)
}

// ParsePlaceholder recovers the hash from a canonical placeholder.  Only
// the exact form produced by Placeholder is accepted.
func ParsePlaceholder(s string) (uint32, bool) {
	if len(s) != 12 || s[0] != '<' || s[1] != '0' || s[2] != 'x' || s[11] != '>' {
		return 0, false
	}
	for i := 3; i < 11; i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return 0, false
		}
	}
	h, err := strconv.ParseUint(s[3:11], 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(h), true
}
