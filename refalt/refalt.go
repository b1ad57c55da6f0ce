// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package refalt packs a REF/ALT allele pair into the 31-bit VariantKey
// refalt field. When the combined allele length is short and every base is
// A/C/G/T, the packing is reversible; otherwise a 31-bit Murmur3-derived
// hash fallback is used, distinguished by the code's least significant bit
// (0 = reversible, 1 = hash).
package refalt

import "github.com/nasuni-labs/variantkey/internal/murmur"

// MaxReversibleLen is the maximum combined length of REF+ALT admissible for
// the reversible encoding.
const MaxReversibleLen = 11

func encodeBase(c byte) uint32 {
	switch c {
	case 'A', 'a':
		return 0
	case 'C', 'c':
		return 1
	case 'G', 'g':
		return 2
	case 'T', 't':
		return 3
	default:
		return 4
	}
}

// encodeReversible returns the reversible 31-bit code, or 0 if ref/alt
// contain a non-ACGT character. An empty ref and alt also pack to 0, so
// Encode sends that pair to the hash fallback as well.
func encodeReversible(ref, alt string) uint32 {
	h := uint32(len(ref))<<27 | uint32(len(alt))<<23
	bitpos := uint8(23)
	for _, s := range [2]string{ref, alt} {
		for i := 0; i < len(s); i++ {
			v := encodeBase(s[i])
			if v > 3 {
				return 0
			}
			bitpos -= 2
			h |= v << bitpos
		}
	}
	return h
}

func packChars(s string) uint32 {
	var h uint32
	bitpos := uint8(31) // VKSHIFT_POS, reused as the start for 6 x 5-bit cells
	n := len(s)
	if n > 6 {
		n = 6
	}
	for i := 0; i < n; i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c == '*' {
			c = 'Z' + 1
		}
		bitpos -= 5
		h |= uint32(c-'A'+1) << bitpos
	}
	return h
}

func hash32(s string) uint32 {
	var h uint32
	for len(s) > 0 {
		n := len(s)
		if n > 6 {
			n = 6
		}
		h = murmur.Mix32(packChars(s[:n]), h)
		s = s[n:]
	}
	return h
}

// encodeHash returns the irreversible 31-bit hash code with LSB set.
func encodeHash(ref, alt string) uint32 {
	h := murmur.Mix32(hash32(alt), murmur.Mix32(0x3, hash32(ref)))
	h = murmur.Finalize32(h)
	return (h >> 1) | 0x1
}

// Encode returns the 31-bit REF+ALT code. If len(ref)+len(alt) <= 11 and
// every character is A/C/G/T (case-insensitive), the result is reversible
// (LSB clear); otherwise it falls back to the hash (LSB set).
func Encode(ref, alt string) uint32 {
	if len(ref)+len(alt) <= MaxReversibleLen {
		if h := encodeReversible(ref, alt); h != 0 {
			return h
		}
	}
	return encodeHash(ref, alt)
}

func decodeBase(code uint32, bitpos uint8) byte {
	const bases = "ACGT"
	return bases[(code>>bitpos)&0x3]
}

// Decode reverses a reversible code into (ref, alt). ok is false when code's
// LSB is set (irreversible); callers must fall back to a nrvk lookup table
// in that case.
func Decode(code uint32) (ref, alt string, ok bool) {
	if code&0x1 != 0 {
		return "", "", false
	}
	sizeref := (code & 0x78000000) >> 27
	sizealt := (code & 0x07800000) >> 23
	bitpos := uint8(23)
	rb := make([]byte, sizeref)
	for i := range rb {
		bitpos -= 2
		rb[i] = decodeBase(code, bitpos)
	}
	ab := make([]byte, sizealt)
	for i := range ab {
		bitpos -= 2
		ab[i] = decodeBase(code, bitpos)
	}
	return string(rb), string(ab), true
}
