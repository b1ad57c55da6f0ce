// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package binsearch implements binary search over sorted, fixed-width
// records in a memory-mapped byte slice.
//
// The original implementation generated one copy of this search per
// (integer width, endianness, whole-field-or-bit-subfield, row-major or
// columnar layout) combination through a large macro matrix. A single
// FieldDescriptor plus a generic function over bitio.Unsigned collapses
// that whole matrix into one implementation.
package binsearch

import "github.com/nasuni-labs/variantkey/bitio"

// FieldDescriptor locates one fixed-width field within each row of a table.
type FieldDescriptor struct {
	BlockLen  uint64 // bytes per row (stride between successive rows)
	BlockPos  uint64 // byte offset of the field within a row
	BigEndian bool   // byte order of the stored field
	BitStart  int    // inclusive first bit to extract, or -1 for the whole field
	BitEnd    int    // inclusive last bit to extract; ignored when BitStart is -1
}

// SearchResult reports the outcome of a search together with the narrowed
// [NewFirst, NewLast] bracket a subsequent HasNext/HasPrev scan should use.
type SearchResult struct {
	Index    uint64
	NewFirst uint64
	NewLast  uint64
	Found    bool
}

func loadRaw[T bitio.Unsigned](data []byte, pos uint64, bigEndian bool) T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return T(bitio.LoadUint8BE(data, pos))
	case uint16:
		if bigEndian {
			return T(bitio.LoadUint16BE(data, pos))
		}
		return T(bitio.LoadUint16LE(data, pos))
	case uint32:
		if bigEndian {
			return T(bitio.LoadUint32BE(data, pos))
		}
		return T(bitio.LoadUint32LE(data, pos))
	default:
		if bigEndian {
			return T(bitio.LoadUint64BE(data, pos))
		}
		return T(bitio.LoadUint64LE(data, pos))
	}
}

// Field reads row's value for fd out of data.
func Field[T bitio.Unsigned](data []byte, fd FieldDescriptor, row uint64) T {
	v := loadRaw[T](data, row*fd.BlockLen+fd.BlockPos, fd.BigEndian)
	if fd.BitStart < 0 {
		return v
	}
	return bitio.Sub(v, uint8(fd.BitStart), uint8(fd.BitEnd))
}

// FindFirst returns the lowest-indexed row in [first, last] whose field
// equals search, plus a narrowed bracket still guaranteed to contain every
// matching row. data must be sorted ascending by fd's field over that range.
//
// The search tracks bounds as a half-open [lo, hi) range internally so the
// leftmost-row case (mid reaching 0) never needs a decrement past zero,
// unlike the original's inclusive-bound C loop.
func FindFirst[T bitio.Unsigned](data []byte, fd FieldDescriptor, first, last uint64, search T) SearchResult {
	if first > last {
		return SearchResult{NewFirst: first, NewLast: last}
	}
	lo, hi := first, last+1
	for lo < hi {
		mid := lo + (hi-lo)/2
		if Field[T](data, fd, mid) < search {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	res := SearchResult{NewFirst: first, NewLast: last}
	if lo <= last && Field[T](data, fd, lo) == search {
		res.Found = true
		res.Index = lo
		res.NewFirst = lo
	}
	return res
}

// FindLast returns the highest-indexed row in [first, last] whose field
// equals search, plus a narrowed bracket still guaranteed to contain every
// matching row.
func FindLast[T bitio.Unsigned](data []byte, fd FieldDescriptor, first, last uint64, search T) SearchResult {
	if first > last {
		return SearchResult{NewFirst: first, NewLast: last}
	}
	lo, hi := first, last+1
	for lo < hi {
		mid := lo + (hi-lo)/2
		if Field[T](data, fd, mid) <= search {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	res := SearchResult{NewFirst: first, NewLast: last}
	if lo == first {
		return res
	}
	idx := lo - 1
	if idx >= first && Field[T](data, fd, idx) == search {
		res.Found = true
		res.Index = idx
		res.NewLast = idx
	}
	return res
}

// LowerBound returns the lowest-indexed row in [first, last] whose field is
// >= search, or last+1 if every row in range is < search. Unlike FindFirst,
// it reports the insertion point even when no row equals search exactly,
// matching the original's col_find_first_sub_* used for range queries.
func LowerBound[T bitio.Unsigned](data []byte, fd FieldDescriptor, first, last uint64, search T) uint64 {
	if first > last {
		return first
	}
	lo, hi := first, last+1
	for lo < hi {
		mid := lo + (hi-lo)/2
		if Field[T](data, fd, mid) < search {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// UpperBound returns the highest-indexed row in [first, last] whose field is
// <= search, with ok false if every row in range is > search. Unlike
// FindLast, it reports the insertion point even when no row equals search
// exactly, matching the original's col_find_last_sub_* used for range
// queries.
func UpperBound[T bitio.Unsigned](data []byte, fd FieldDescriptor, first, last uint64, search T) (idx uint64, ok bool) {
	if first > last {
		return first, false
	}
	lo, hi := first, last+1
	for lo < hi {
		mid := lo + (hi-lo)/2
		if Field[T](data, fd, mid) <= search {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == first {
		return first, false
	}
	return lo - 1, true
}

// HasNext reports whether row+1 is within [first, last] and still matches
// search, returning that next row's index.
func HasNext[T bitio.Unsigned](data []byte, fd FieldDescriptor, row, last uint64, search T) (next uint64, ok bool) {
	if row >= last {
		return row, false
	}
	next = row + 1
	if Field[T](data, fd, next) != search {
		return row, false
	}
	return next, true
}

// HasPrev reports whether row-1 is within [first, last] and still matches
// search, returning that previous row's index.
func HasPrev[T bitio.Unsigned](data []byte, fd FieldDescriptor, row, first uint64, search T) (prev uint64, ok bool) {
	if row <= first {
		return row, false
	}
	prev = row - 1
	if Field[T](data, fd, prev) != search {
		return row, false
	}
	return prev, true
}
