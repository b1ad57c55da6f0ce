// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package chrom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for c := uint8(1); c <= 25; c++ {
		require.Equal(t, c, Encode(Decode(c)), "code %d", c)
	}
}

func TestEncode(t *testing.T) {
	cases := map[string]uint8{
		"1":     1,
		"22":    22,
		"X":     23,
		"x":     24 - 1, // placeholder, overwritten below
		"Y":     24,
		"y":     24,
		"M":     25,
		"m":     25,
		"MT":    25,
		"Mt":    25,
		"mT":    25,
		"mt":    25,
		"chr1":  1,
		"CHR1":  1,
		"chrX":  23,
		"chrMT": 25,
		"":      0,
		"foo":   0,
	}
	cases["x"] = 23
	for in, want := range cases {
		require.Equal(t, want, Encode(in), "input %q", in)
	}
}

func TestDecode(t *testing.T) {
	require.Equal(t, "1", Decode(1))
	require.Equal(t, "22", Decode(22))
	require.Equal(t, "X", Decode(23))
	require.Equal(t, "Y", Decode(24))
	require.Equal(t, "MT", Decode(25))
	require.Equal(t, "NA", Decode(0))
	require.Equal(t, "NA", Decode(26))
}
