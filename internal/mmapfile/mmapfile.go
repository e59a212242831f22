// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package mmapfile provides read-only memory-mapped file access with a
// portable fallback for platforms without mmap support.
package mmapfile

// File is a read-only view of a file's contents.  On unix platforms the
// bytes are memory-mapped and must not be written to; elsewhere they are
// a plain heap copy.
type File struct {
	data   []byte
	mapped bool
}

// Data returns the file contents.  The slice is only valid until Close.
func (f *File) Data() []byte {
	return f.data
}

// Len returns the file length in bytes.
func (f *File) Len() int {
	return len(f.data)
}

// Close releases the mapping (or the heap copy).  The slice returned by
// Data must not be used afterwards.
func (f *File) Close() error {
	return f.close()
}
