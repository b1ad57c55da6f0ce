// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package regionkey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rk := Encode("13", 100, 200, '+')
	c, start, end, s := Decode(rk)
	require.Equal(t, uint8(13), c)
	require.Equal(t, uint32(100), start)
	require.Equal(t, uint32(200), end)
	require.Equal(t, uint8(1), s)
	require.Equal(t, byte('+'), Strand(rk))
}

func TestStrandRoundTrip(t *testing.T) {
	for _, s := range []byte{'+', '-', 0} {
		rk := Encode("1", 0, 1, s)
		require.Equal(t, s, Strand(rk))
	}
}

func TestOverlap(t *testing.T) {
	a := Encode("1", 100, 200, 0)
	b := Encode("1", 150, 250, 0)
	c := Encode("1", 300, 400, 0)
	d := Encode("2", 150, 250, 0)

	require.True(t, Overlap(a, b))
	require.False(t, Overlap(a, c))
	require.False(t, Overlap(a, d))

	adjacent := Encode("1", 200, 300, 0)
	require.False(t, Overlap(a, adjacent), "touching but not overlapping intervals must not count as overlap")
}

func TestExtendRegionKey(t *testing.T) {
	rk := Encode("1", 100, 200, '+')
	ext := ExtendRegionKey(rk, 50)
	_, start, end, _ := Decode(ext)
	require.Equal(t, uint32(50), start)
	require.Equal(t, uint32(250), end)
}

func TestExtendRegionKeyClampsAtZero(t *testing.T) {
	rk := Encode("1", 10, 20, 0)
	ext := ExtendRegionKey(rk, 100)
	_, start, _, _ := Decode(ext)
	require.Zero(t, start)
}

func TestEncodeConcreteVector(t *testing.T) {
	rk := Encode("MT", 1000, 2000, '-')
	require.Equal(t, uint64(0xC80001F400003E84), rk)
}

func TestHexRoundTrip(t *testing.T) {
	rk := Encode("13", 100, 200, '+')
	s := Hex(rk)
	require.Len(t, s, 16)
	require.Equal(t, rk, ParseHex(s))
}
