// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bufview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_Integers(t *testing.T) {
	v := New([]byte{0x01, 0x02, 0x03, 0x04, 0x05})

	b, ok := v.U8(0)
	require.True(t, ok)
	assert.Equal(t, byte(0x01), b)

	u16, ok := v.U16(1)
	require.True(t, ok)
	assert.Equal(t, uint16(0x0302), u16)

	u32, ok := v.U32(0)
	require.True(t, ok)
	assert.Equal(t, uint32(0x04030201), u32)

	// reads that reach beyond the end fail without panicking
	_, ok = v.U32(2)
	assert.False(t, ok)
	_, ok = v.U16(4)
	assert.False(t, ok)
	_, ok = v.U8(5)
	assert.False(t, ok)
	_, ok = v.U8(-1)
	assert.False(t, ok)
}

func TestView_F32(t *testing.T) {
	// 1.5 as little-endian IEEE 754
	v := New([]byte{0x00, 0x00, 0xc0, 0x3f})
	f, ok := v.F32(0)
	require.True(t, ok)
	assert.Equal(t, float32(1.5), f)

	_, ok = v.F32(1)
	assert.False(t, ok)
}

func TestView_CString(t *testing.T) {
	v := New([]byte("abc\x00def"))

	s, ok := v.CString(0)
	require.True(t, ok)
	assert.Equal(t, "abc", s)

	// unterminated tail decodes to the remainder
	s, ok = v.CString(4)
	require.True(t, ok)
	assert.Equal(t, "def", s)

	_, ok = v.CString(7)
	assert.False(t, ok)
	_, ok = v.CString(-1)
	assert.False(t, ok)
}

func TestView_SubAndBytes(t *testing.T) {
	v := New([]byte{1, 2, 3, 4})

	sub := v.Sub(1, 2)
	assert.Equal(t, 2, sub.Len())
	b, ok := sub.U8(0)
	require.True(t, ok)
	assert.Equal(t, byte(2), b)

	assert.Zero(t, v.Sub(3, 2).Len())
	assert.Zero(t, v.Sub(-1, 1).Len())

	raw, ok := v.Bytes(2, 2)
	require.True(t, ok)
	assert.Equal(t, []byte{3, 4}, raw)
	_, ok = v.Bytes(3, 2)
	assert.False(t, ok)
}

func TestView_ZeroValue(t *testing.T) {
	var v View
	assert.Zero(t, v.Len())
	_, ok := v.U8(0)
	assert.False(t, ok)
	_, ok = v.CString(0)
	assert.False(t, ok)
}
