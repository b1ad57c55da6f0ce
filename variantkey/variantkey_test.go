// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package variantkey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	vk := Encode("13", 2, "AC", "GT")
	c, pos, ra := Decode(vk)
	require.Equal(t, uint8(13), c)
	require.Equal(t, uint32(2), pos)
	require.Equal(t, uint32(0x110D8000), ra)
}

func TestEncodeMonotonicByChrom(t *testing.T) {
	a := Encode("1", 100, "A", "C")
	b := Encode("2", 1, "A", "C")
	require.Less(t, a, b)
}

func TestEncodeMonotonicByPos(t *testing.T) {
	a := Encode("1", 100, "A", "C")
	b := Encode("1", 101, "A", "C")
	require.Less(t, a, b)
}

func TestRange(t *testing.T) {
	min, max := Range(chromCode(t, "13"), 1000, 2000)
	vk := Encode("13", 1500, "A", "C")
	require.GreaterOrEqual(t, vk, min)
	require.LessOrEqual(t, vk, max)

	outside := Encode("13", 3000, "A", "C")
	require.Greater(t, outside, max)
}

func TestCompareChrom(t *testing.T) {
	a := Encode("1", 999999, "A", "C")
	b := Encode("2", 0, "A", "C")
	require.Equal(t, -1, CompareChrom(a, b))
	require.Equal(t, 0, CompareChrom(a, a))
}

func TestCompareChromPos(t *testing.T) {
	a := Encode("1", 100, "A", "C")
	b := Encode("1", 100, "G", "T")
	require.Equal(t, 0, CompareChromPos(a, b))
	require.NotEqual(t, a, b)
}

func TestHexRoundTrip(t *testing.T) {
	vk := Encode("13", 2, "AC", "GT")
	s := Hex(vk)
	require.Len(t, s, 16)
	require.Equal(t, vk, ParseHex(s))
}

func chromCode(t *testing.T, s string) uint8 {
	t.Helper()
	c, _, _ := Decode(Encode(s, 0, "A", "C"))
	return c
}
