// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package genoref

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/require"

	"github.com/nasuni-labs/variantkey/chrom"
)

// writeGenorefBin builds a bit-exact genoref.bin fixture: 26 little-endian
// u32 offsets (idx[1..26], the last being size(blob) by construction),
// followed by the concatenated per-chromosome sequence blob.
func writeGenorefBin(t *testing.T, path string, seqs map[uint8]string) {
	t.Helper()
	var blob []byte
	offsets := make([]uint32, nChromEntries)
	cur := uint32(0)
	for c := uint8(1); c <= nChromEntries; c++ {
		offsets[c-1] = cur // start of chromosome c
		if c <= nChromEntries-1 {
			if s, ok := seqs[c]; ok {
				blob = append(blob, s...)
				cur += uint32(len(s))
			}
		}
	}
	buf := make([]byte, headerLen)
	for i, off := range offsets {
		binary.LittleEndian.PutUint32(buf[i*4:], off)
	}
	buf = append(buf, blob...)
	require.NoError(t, os.WriteFile(path, buf, 0o644))
}

func writeRefFixture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "ref.bin")
	writeGenorefBin(t, path, map[uint8]string{
		chrom.Encode("1"):  "ACGTACGTNNACGT",
		chrom.Encode("MT"): "GGGGCCCC",
	})
	return path
}

func TestLoadAndGetSeq(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeRefFixture(t, dir)

	r, err := Load(path)
	require.NoError(t, err)
	defer r.Close()

	c1 := chrom.Encode("1")
	require.Equal(t, uint64(14), r.Len(c1))

	seq, err := r.GetSeq(c1, 0, 4)
	require.NoError(t, err)
	require.Equal(t, "ACGT", seq)

	cMT := chrom.Encode("MT")
	seq2, err := r.GetSeq(cMT, 4, 8)
	require.NoError(t, err)
	require.Equal(t, "CCCC", seq2)
}

func TestCheckReference(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeRefFixture(t, dir)

	r, err := Load(path)
	require.NoError(t, err)
	defer r.Close()

	c1 := chrom.Encode("1")
	require.True(t, r.CheckReference(c1, 0, "ACGT"))
	require.False(t, r.CheckReference(c1, 0, "TTTT"))
	require.True(t, r.CheckReference(c1, 8, "NN")) // N matches anything
}

func TestCheckReferenceStatus(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeRefFixture(t, dir)

	r, err := Load(path)
	require.NoError(t, err)
	defer r.Close()

	c1 := chrom.Encode("1")
	require.EqualValues(t, 0, r.CheckReferenceStatus(c1, 0, "ACGT"))
	require.EqualValues(t, 0, r.CheckReferenceStatus(c1, 8, "NN"))
	require.EqualValues(t, 1, r.CheckReferenceStatus(c1, 8, "AC")) // reference N matches any base, ambiguously
	require.EqualValues(t, -1, r.CheckReferenceStatus(c1, 0, "TTTT"))
	require.EqualValues(t, -2, r.CheckReferenceStatus(c1, 12, "ACGTACGT"))
}

func TestFlipAllele(t *testing.T) {
	require.Equal(t, "TGCA", FlipAllele("ACGT"))
	require.Equal(t, "N", FlipAllele("N"))
	require.Equal(t, "YR", FlipAllele("RY"))
}
