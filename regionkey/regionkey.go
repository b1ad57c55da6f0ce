// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package regionkey implements the 64-bit RegionKey identifier: a 5-bit
// chromosome code, a 28-bit start position, a 28-bit end position, a 2-bit
// strand, and one reserved bit.
package regionkey

import (
	"github.com/nasuni-labs/variantkey/bitio"
	"github.com/nasuni-labs/variantkey/chrom"
)

const (
	shiftChrom  = 59
	shiftStart  = 31
	shiftEnd    = 3
	shiftStrand = 1

	maskChrom  = uint64(0x1F) << shiftChrom
	maskStart  = uint64(0x0FFFFFFF) << shiftStart
	maskEnd    = uint64(0x0FFFFFFF) << shiftEnd
	maskStrand = uint64(0x3) << shiftStrand
)

// strand encodes as: '+' -> 1, '-' -> 2, anything else -> 0. The decode map
// mirrors the branchless lookup table in the original implementation.
var strandDecodeMap = [4]byte{0, '+', '-', 0}

func encodeStrand(s byte) uint8 {
	switch s {
	case '+':
		return 1
	case '-':
		return 2
	default:
		return 0
	}
}

// Encode packs a chromosome string, 0-based start/end positions, and a
// strand byte ('+', '-', or 0 for unknown) into a RegionKey.
func Encode(c string, startPos, endPos uint32, strand byte) uint64 {
	return EncodeCodes(chrom.Encode(c), startPos, endPos, encodeStrand(strand))
}

// EncodeCodes packs an already-encoded chromosome code, start/end
// positions, and 2-bit strand code into a RegionKey.
func EncodeCodes(chromCode uint8, startPos, endPos uint32, strandCode uint8) uint64 {
	return (uint64(chromCode)<<shiftChrom)&maskChrom |
		(uint64(startPos)<<shiftStart)&maskStart |
		(uint64(endPos)<<shiftEnd)&maskEnd |
		(uint64(strandCode)<<shiftStrand)&maskStrand
}

// Chrom returns the 5-bit chromosome code of rk.
func Chrom(rk uint64) uint8 { return uint8(bitio.Sub(rk, shiftChrom, 63)) }

// StartPos returns the 0-based start position of rk.
func StartPos(rk uint64) uint32 { return uint32(bitio.Sub(rk, shiftStart, shiftChrom-1)) }

// EndPos returns the 0-based end position of rk.
func EndPos(rk uint64) uint32 { return uint32(bitio.Sub(rk, shiftEnd, shiftStart-1)) }

// StrandCode returns the raw 2-bit strand code of rk (0 unknown, 1 '+', 2 '-').
func StrandCode(rk uint64) uint8 { return uint8(bitio.Sub(rk, shiftStrand, shiftEnd-1)) }

// Strand returns the strand byte of rk: '+', '-', or 0 if unknown.
func Strand(rk uint64) byte { return strandDecodeMap[StrandCode(rk)&0x3] }

// Decode splits rk back into its chromosome code, start/end positions, and
// strand code.
func Decode(rk uint64) (chromCode uint8, startPos, endPos uint32, strandCode uint8) {
	return Chrom(rk), StartPos(rk), EndPos(rk), StrandCode(rk)
}

// maxPos is the largest representable 28-bit position, 2^28-1.
const maxPos = uint32(0x0FFFFFFF)

// Overlap reports whether two RegionKeys describe overlapping half-open
// intervals [start, end) on the same chromosome, i.e. startA < endB and
// endA > startB.
func Overlap(a, b uint64) bool {
	if Chrom(a) != Chrom(b) {
		return false
	}
	return StartPos(a) < EndPos(b) && EndPos(a) > StartPos(b)
}

// ExtendRegionKey returns a copy of rk with its interval grown by n bases on
// each side, with start saturating at 0 and end saturating at 2^28-1. This
// supplements the core codec with the padding operation the upstream tool
// exposes for flanking queries around a region of interest.
func ExtendRegionKey(rk uint64, n uint32) uint64 {
	c, start, end, s := Decode(rk)
	if n > start {
		start = 0
	} else {
		start -= n
	}
	if end > maxPos-n || n > maxPos {
		end = maxPos
	} else {
		end += n
	}
	return EncodeCodes(c, start, end, s)
}

// Hex renders rk as 16 lowercase hex digits.
func Hex(rk uint64) string { return bitio.FormatHex(rk) }

// ParseHex parses a 16-digit hex string produced by Hex back into a
// RegionKey.
func ParseHex(s string) uint64 { return bitio.ParseHex(s) }
