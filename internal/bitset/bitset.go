// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package bitset provides a fixed-size in-memory bitmap, used to track
// which rows of a table were touched during a rebuild.
package bitset

import "math/bits"

// Bitset is an in-memory bitmap that is conceptually similar to []bool,
// but more memory efficient.
type Bitset struct {
	words  []uint64
	length int
}

// New returns a bitset holding `length` bits, all clear.
func New(length int) *Bitset {
	return &Bitset{
		words:  make([]uint64, (length+63)/64),
		length: length,
	}
}

func offsets(i int) (word int, bit uint) {
	return i / 64, uint(i) % 64
}

// Set sets the bit at position i to 1.  Out-of-range positions are ignored.
func (b *Bitset) Set(i int) {
	if i < 0 || i >= b.length {
		return
	}
	word, bit := offsets(i)
	b.words[word] |= 1 << bit
}

// Clear sets the bit at position i to 0.  Out-of-range positions are ignored.
func (b *Bitset) Clear(i int) {
	if i < 0 || i >= b.length {
		return
	}
	word, bit := offsets(i)
	b.words[word] &^= 1 << bit
}

// IsSet returns true if the bit at position i is 1.
func (b *Bitset) IsSet(i int) bool {
	if i < 0 || i >= b.length {
		return false
	}
	word, bit := offsets(i)
	return b.words[word]&(1<<bit) != 0
}

// Count returns the number of set bits.
func (b *Bitset) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Len returns the number of bits the set holds.
func (b *Bitset) Len() int {
	return b.length
}
