// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bdat

import (
	"fmt"
	"strconv"
)

// ValueType identifies the wire encoding of one cell.  The tag values are
// fixed by the format; the set is closed at 14 kinds.
type ValueType uint8

const (
	TypeNone        ValueType = 0  // unused column slot, occupies no row bytes
	TypeUInt8       ValueType = 1  // u8
	TypeUInt16      ValueType = 2  // u16 LE
	TypeUInt32      ValueType = 3  // u32 LE
	TypeInt8        ValueType = 4  // i8
	TypeInt16       ValueType = 5  // i16 LE
	TypeInt32       ValueType = 6  // i32 LE
	TypeString      ValueType = 7  // u32 LE offset into the string table
	TypeFloat       ValueType = 8  // float32 LE
	TypeHashRef     ValueType = 9  // u32 LE name hash, resolved by the caller
	TypePercent     ValueType = 10 // u8, 0-100
	TypeDebugString ValueType = 11 // u32 LE offset into the string table
	TypeReserved    ValueType = 12 // u8, meaning unknown, preserved verbatim
	TypeMessageID   ValueType = 13 // u16 LE offset into the string table

	numValueTypes = 14
)

// Valid reports whether t is one of the 14 known tags.
func (t ValueType) Valid() bool {
	return t < numValueTypes
}

// Size returns the number of row bytes one cell of this type occupies
// before any layout padding.
func (t ValueType) Size() int {
	switch t {
	case TypeNone:
		return 0
	case TypeUInt8, TypeInt8, TypePercent, TypeReserved:
		return 1
	case TypeUInt16, TypeInt16, TypeMessageID:
		return 2
	case TypeUInt32, TypeInt32, TypeString, TypeFloat, TypeHashRef, TypeDebugString:
		return 4
	default:
		return 0
	}
}

// IsText reports whether cells of this type hold an offset into the string
// table and decode to text.
func (t ValueType) IsText() bool {
	return t == TypeString || t == TypeDebugString || t == TypeMessageID
}

// HalfWidth reports whether the type's string-table offset is stored in
// 16 bits rather than 32.  Half-width cells cap the addressable string
// table at 64 KiB and are the overflow hazard during rebuilds.
func (t ValueType) HalfWidth() bool {
	return t == TypeMessageID
}

func (t ValueType) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeUInt8:
		return "u8"
	case TypeUInt16:
		return "u16"
	case TypeUInt32:
		return "u32"
	case TypeInt8:
		return "i8"
	case TypeInt16:
		return "i16"
	case TypeInt32:
		return "i32"
	case TypeString:
		return "string"
	case TypeFloat:
		return "float"
	case TypeHashRef:
		return "hashref"
	case TypePercent:
		return "percent"
	case TypeDebugString:
		return "debugstring"
	case TypeReserved:
		return "reserved"
	case TypeMessageID:
		return "messageid"
	default:
		return fmt.Sprintf("valuetype(%d)", uint8(t))
	}
}

// MarshalText renders the mnemonic, so JSON reports read "string"
// rather than 7.
func (t ValueType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Value is one decoded cell.  The zero Value is a TypeNone cell.
type Value struct {
	// Type tags which accessor carries the payload.
	Type ValueType

	num  int64
	f32  float32
	text string
}

func intValue(t ValueType, n int64) Value   { return Value{Type: t, num: n} }
func floatValue(f float32) Value            { return Value{Type: TypeFloat, f32: f} }
func textValue(t ValueType, s string) Value { return Value{Type: t, text: s} }

// Int returns the cell's integer payload.  Unsigned kinds are widened;
// text and float kinds return 0.
func (v Value) Int() int64 {
	return v.num
}

// Uint returns the cell's integer payload as unsigned.  Useful for
// TypeHashRef cells, whose payload is a 32-bit name hash.
func (v Value) Uint() uint64 {
	return uint64(v.num)
}

// Float returns the payload of a TypeFloat cell, 0 otherwise.
func (v Value) Float() float32 {
	return v.f32
}

// Text returns the decoded string of a text-bearing cell, "" otherwise.
func (v Value) Text() string {
	return v.text
}

// IsText reports whether the cell decodes to text.
func (v Value) IsText() bool {
	return v.Type.IsText()
}

// String renders the cell for humans: text as-is, hashes as 0x%08x,
// numerics in decimal.
func (v Value) String() string {
	switch {
	case v.Type.IsText():
		return v.text
	case v.Type == TypeFloat:
		return strconv.FormatFloat(float64(v.f32), 'g', -1, 32)
	case v.Type == TypeHashRef:
		return fmt.Sprintf("0x%08x", uint32(v.num))
	case v.Type == TypeNone:
		return ""
	default:
		return strconv.FormatInt(v.num, 10)
	}
}
