// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bitio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadUint(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	require.Equal(t, uint16(0x0102), LoadUint16BE(buf, 0))
	require.Equal(t, uint16(0x0201), LoadUint16LE(buf, 0))
	require.Equal(t, uint32(0x01020304), LoadUint32BE(buf, 0))
	require.Equal(t, uint32(0x04030201), LoadUint32LE(buf, 0))
	require.Equal(t, uint64(0x0102030405060708), LoadUint64BE(buf, 0))
	require.Equal(t, uint64(0x0807060504030201), LoadUint64LE(buf, 0))
}

func TestSub(t *testing.T) {
	require.Equal(t, uint32(0x3), Sub(uint32(0xFFFFFFFF), 0, 1))
	require.Equal(t, uint8(0xF), Sub(uint8(0xF0), 4, 7))
	require.Equal(t, uint64(0x1), Sub(uint64(1)<<63, 63, 63))
}

func TestHexRoundTrip(t *testing.T) {
	for _, x := range []uint64{0, 1, 0xB800181C910D8000, 0xFFFFFFFFFFFFFFFF} {
		s := FormatHex(x)
		require.Len(t, s, 16)
		require.Equal(t, x, ParseHex(s))
		require.Equal(t, x, ParseHex(ParseHexUpper(s)))
	}
}

// ParseHexUpper uppercases a hex string so the case-insensitivity of
// ParseHex can be exercised without a second helper package.
func ParseHexUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'f' {
			b[i] = c - 32
		}
	}
	return string(b)
}
