// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package variantkey implements the 64-bit VariantKey identifier: a 5-bit
// chromosome code, a 28-bit position, and a 31-bit REF+ALT code, packed so
// that numeric order matches (chrom, pos, refalt) lexicographic order.
package variantkey

import (
	"github.com/nasuni-labs/variantkey/bitio"
	"github.com/nasuni-labs/variantkey/chrom"
	"github.com/nasuni-labs/variantkey/refalt"
)

const (
	shiftChrom = 59
	shiftPos   = 31

	maskChrom  = uint64(0x1F) << shiftChrom
	maskPos    = uint64(0x0FFFFFFF) << shiftPos
	maskRefAlt = uint64(0x7FFFFFFF)
)

// Encode packs a chromosome string, 0-based position and REF/ALT allele
// pair into a VariantKey.
func Encode(c string, pos uint32, ref, alt string) uint64 {
	return EncodeCodes(chrom.Encode(c), pos, refalt.Encode(ref, alt))
}

// EncodeCodes packs an already-encoded chromosome code, position and
// REF+ALT code into a VariantKey.
func EncodeCodes(chromCode uint8, pos uint32, refaltCode uint32) uint64 {
	return (uint64(chromCode)<<shiftChrom)&maskChrom |
		(uint64(pos)<<shiftPos)&maskPos |
		uint64(refaltCode)&maskRefAlt
}

// Chrom returns the 5-bit chromosome code of vk.
func Chrom(vk uint64) uint8 {
	return uint8(bitio.Sub(vk, shiftChrom, 63))
}

// Pos returns the 28-bit position of vk.
func Pos(vk uint64) uint32 {
	return uint32(bitio.Sub(vk, shiftPos, shiftChrom-1))
}

// RefAlt returns the 31-bit REF+ALT code of vk.
func RefAlt(vk uint64) uint32 {
	return uint32(bitio.Sub(vk, 0, shiftPos-1))
}

// Decode splits vk back into its chromosome code, position, and REF+ALT
// code. Use refalt.Decode on the third return value to recover REF/ALT
// strings when its LSB is clear; a set LSB means the allele pair must be
// recovered from a non-reversible lookup table.
func Decode(vk uint64) (chromCode uint8, pos uint32, refaltCode uint32) {
	return Chrom(vk), Pos(vk), RefAlt(vk)
}

// Range returns the inclusive [min, max] VariantKey bounds covering every
// variant on chromosome c with position in [posStart, posEnd].
func Range(c uint8, posStart, posEnd uint32) (min, max uint64) {
	min = EncodeCodes(c, posStart, 0)
	max = EncodeCodes(c, posEnd, uint32(maskRefAlt))
	return
}

// CompareChrom compares two VariantKeys by chromosome only, returning a
// value <0, 0, or >0.
func CompareChrom(vka, vkb uint64) int {
	return cmpUint64(vka&maskChrom, vkb&maskChrom)
}

// CompareChromPos compares two VariantKeys by (chromosome, position),
// returning a value <0, 0, or >0.
func CompareChromPos(vka, vkb uint64) int {
	return cmpUint64(vka&(maskChrom|maskPos), vkb&(maskChrom|maskPos))
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Hex renders vk as 16 lowercase hex digits.
func Hex(vk uint64) string { return bitio.FormatHex(vk) }

// ParseHex parses a 16-digit hex string produced by Hex back into a
// VariantKey.
func ParseHex(s string) uint64 { return bitio.ParseHex(s) }
