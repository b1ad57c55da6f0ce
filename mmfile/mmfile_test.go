// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mmfile

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/require"
)

// writeBinsrc1 builds a bit-exact BINSRC1 container: magic, u8 ncols,
// per-column u8 widths, zero-pad to the next 8-byte boundary, u64 LE nrows,
// then ncols u64 LE column offsets, then the column data itself.
func writeBinsrc1(t *testing.T, path string, nrows uint64, widths []uint8) {
	t.Helper()
	var buf []byte
	buf = append(buf, binsrc1Magic[:]...)
	buf = append(buf, byte(len(widths)))
	buf = append(buf, widths...)
	for len(buf)%8 != 0 {
		buf = append(buf, 0)
	}
	var tmp8 [8]byte
	binary.LittleEndian.PutUint64(tmp8[:], nrows)
	buf = append(buf, tmp8[:]...)

	offsets := make([]uint64, len(widths))
	dataStart := uint64(len(buf)) + uint64(len(widths))*8
	offset := dataStart
	for i, w := range widths {
		offsets[i] = offset
		offset += uint64(w) * nrows
	}
	for _, off := range offsets {
		binary.LittleEndian.PutUint64(tmp8[:], off)
		buf = append(buf, tmp8[:]...)
	}
	for _, w := range widths {
		buf = append(buf, make([]byte, uint64(w)*nrows)...)
	}
	require.NoError(t, os.WriteFile(path, buf, 0o644))
}

func TestOpenBinsrc1(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tempDir, "table.bin")
	writeBinsrc1(t, path, 5, []uint8{4, 8})

	h, err := Open(path)
	require.NoError(t, err)
	defer h.Close()

	require.Equal(t, FormatBinsrc1, h.Format)
	require.Equal(t, uint64(2), h.NCols)
	require.Equal(t, uint64(5), h.NRows)
	require.Len(t, h.Cols, 2)
	require.Equal(t, uint64(4), h.Cols[0].Width)
	require.Equal(t, uint64(8), h.Cols[1].Width)
	require.Equal(t, h.Cols[0].Offset+4*5, h.Cols[1].Offset)
}

func TestOpenFlat(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tempDir, "flat.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3, 4, 5, 6, 7, 8}, 0o644))

	h, err := Open(path)
	require.NoError(t, err)
	defer h.Close()
	require.Equal(t, FormatFlat, h.Format)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("/nonexistent/path/to/table.bin")
	require.Error(t, err)
}

func TestCloseIdempotent(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tempDir, "flat.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3, 4}, 0o644))

	h, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
}
