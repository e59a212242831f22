// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package mmapfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	contents := []byte("BDAT\x01\x00\x00\x00")
	require.NoError(t, os.WriteFile(path, contents, 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, contents, f.Data())
	require.Equal(t, len(contents), f.Len())
	require.NoError(t, f.Close())
	require.Nil(t, f.Data())
	// double close is fine
	require.NoError(t, f.Close())
}

func TestOpenEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 0, f.Len())
	require.NoError(t, f.Close())
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.bin"))
	require.Error(t, err)
}
