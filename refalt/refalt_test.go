// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package refalt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeReversible(t *testing.T) {
	code := Encode("AC", "GT")
	require.Equal(t, uint32(0x110D8000), code)
	require.Zero(t, code&0x1)

	ref, alt, ok := Decode(code)
	require.True(t, ok)
	require.Equal(t, "AC", ref)
	require.Equal(t, "GT", alt)
}

func TestEncodeSingleBase(t *testing.T) {
	code := Encode("A", "T")
	require.Zero(t, code&0x1)
	ref, alt, ok := Decode(code)
	require.True(t, ok)
	require.Equal(t, "A", ref)
	require.Equal(t, "T", alt)
}

func TestEncodeHashFallback(t *testing.T) {
	// combined length over MaxReversibleLen forces the hash path.
	code := Encode("AAAAAA", "CCCCCC")
	require.Equal(t, uint32(1), code&0x1)
	_, _, ok := Decode(code)
	require.False(t, ok)
}

func TestEncodeNonACGTFallsBackToHash(t *testing.T) {
	code := Encode("AN", "G")
	require.Equal(t, uint32(1), code&0x1)
}

func TestEncodeDeterministic(t *testing.T) {
	a := Encode("ACGTACGTACG", "T")
	b := Encode("ACGTACGTACG", "T")
	require.Equal(t, a, b)
}

