// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package lookup implements the rsID <-> VariantKey lookup tables and the
// non-reversible REF/ALT table that recovers allele strings for VariantKeys
// whose refalt field took the hash fallback path.
//
// rsvk.bin (RsidVariantKeyTable) and vkrs.bin (VariantKeyRsidTable) are
// fixed 12-byte-record tables, sorted ascending by their search key, queried
// with package binsearch. nrvk.bin (NonReversibleTable) is a small sorted
// index of (VariantKey, offset) pairs pointing into a trailing blob of
// length-prefixed REF/ALT byte strings.
package lookup

import (
	"hash"

	farm "github.com/dgryski/go-farm"
	"github.com/pkg/errors"

	"github.com/nasuni-labs/variantkey/binsearch"
	"github.com/nasuni-labs/variantkey/bitio"
	"github.com/nasuni-labs/variantkey/mmfile"
	"github.com/nasuni-labs/variantkey/refalt"
	"github.com/nasuni-labs/variantkey/regionkey"
	"github.com/nasuni-labs/variantkey/variantkey"
)

const recordLen = 12

// RsidVariantKeyTable maps rsID -> VariantKey. Records are 12 bytes: a
// big-endian uint32 rsID at offset 0, a big-endian uint64 VariantKey at
// offset 4, sorted ascending by rsID.
type RsidVariantKeyTable struct {
	h      *mmfile.Handle
	data   []byte
	nrows  uint64
	rsidFD binsearch.FieldDescriptor
	vkFD   binsearch.FieldDescriptor
}

// LoadRsidVariantKeyTable memory-maps an rsvk.bin file.
func LoadRsidVariantKeyTable(path string) (*RsidVariantKeyTable, error) {
	h, err := mmfile.Open(path)
	if err != nil {
		return nil, err
	}
	data := h.Bytes()
	if len(data)%recordLen != 0 {
		h.Close()
		return nil, errors.Errorf("lookup: %s size %d is not a multiple of %d", path, len(data), recordLen)
	}
	return &RsidVariantKeyTable{
		h:      h,
		data:   data,
		nrows:  uint64(len(data)) / recordLen,
		rsidFD: binsearch.FieldDescriptor{BlockLen: recordLen, BlockPos: 0, BigEndian: true, BitStart: -1},
		vkFD:   binsearch.FieldDescriptor{BlockLen: recordLen, BlockPos: 4, BigEndian: true, BitStart: -1},
	}, nil
}

// Close unmaps the underlying file.
func (t *RsidVariantKeyTable) Close() error { return t.h.Close() }

// NRows returns the number of records in the table.
func (t *RsidVariantKeyTable) NRows() uint64 { return t.nrows }

func (t *RsidVariantKeyTable) variantKeyAt(row uint64) uint64 {
	return binsearch.Field[uint64](t.data, t.vkFD, row)
}

// GetVariantKey returns the first VariantKey recorded for rsid.
func (t *RsidVariantKeyTable) GetVariantKey(rsid uint32) (vk uint64, ok bool) {
	if t.nrows == 0 {
		return 0, false
	}
	res := binsearch.FindFirst[uint32](t.data, t.rsidFD, 0, t.nrows-1, rsid)
	if !res.Found {
		return 0, false
	}
	return t.variantKeyAt(res.Index), true
}

// GetNextByRsid returns the next VariantKey after row for the same rsid,
// scanning no further than the table's last matching row.
func (t *RsidVariantKeyTable) GetNextByRsid(row uint64, rsid uint32) (vk uint64, nextRow uint64, ok bool) {
	if t.nrows == 0 {
		return 0, row, false
	}
	last := binsearch.FindLast[uint32](t.data, t.rsidFD, 0, t.nrows-1, rsid)
	if !last.Found {
		return 0, row, false
	}
	next, ok := binsearch.HasNext[uint32](t.data, t.rsidFD, row, last.Index, rsid)
	if !ok {
		return 0, row, false
	}
	return t.variantKeyAt(next), next, true
}

// GetPrevByRsid returns the previous VariantKey before row for the same
// rsid, scanning no further back than the table's first matching row.
func (t *RsidVariantKeyTable) GetPrevByRsid(row uint64, rsid uint32) (vk uint64, prevRow uint64, ok bool) {
	if t.nrows == 0 {
		return 0, row, false
	}
	first := binsearch.FindFirst[uint32](t.data, t.rsidFD, 0, t.nrows-1, rsid)
	if !first.Found {
		return 0, row, false
	}
	prev, ok := binsearch.HasPrev[uint32](t.data, t.rsidFD, row, first.Index, rsid)
	if !ok {
		return 0, row, false
	}
	return t.variantKeyAt(prev), prev, true
}

// VariantKeyRsidTable maps VariantKey -> rsID. Records are 12 bytes: a
// big-endian uint64 VariantKey at offset 0, a big-endian uint32 rsID at
// offset 8, sorted ascending by VariantKey.
type VariantKeyRsidTable struct {
	h          *mmfile.Handle
	data       []byte
	nrows      uint64
	vkFD       binsearch.FieldDescriptor
	rsFD       binsearch.FieldDescriptor
	chromPosFD binsearch.FieldDescriptor
}

// LoadVariantKeyRsidTable memory-maps a vkrs.bin file.
func LoadVariantKeyRsidTable(path string) (*VariantKeyRsidTable, error) {
	h, err := mmfile.Open(path)
	if err != nil {
		return nil, err
	}
	data := h.Bytes()
	if len(data)%recordLen != 0 {
		h.Close()
		return nil, errors.Errorf("lookup: %s size %d is not a multiple of %d", path, len(data), recordLen)
	}
	return &VariantKeyRsidTable{
		h:     h,
		data:  data,
		nrows: uint64(len(data)) / recordLen,
		vkFD:  binsearch.FieldDescriptor{BlockLen: recordLen, BlockPos: 0, BigEndian: true, BitStart: -1},
		rsFD:  binsearch.FieldDescriptor{BlockLen: recordLen, BlockPos: 8, BigEndian: true, BitStart: -1},
		// chromPosFD isolates VariantKey's top 33 bits (chrom || pos),
		// bits 31..63 of the 64-bit field, for range queries that must
		// ignore the low 31-bit refalt code.
		chromPosFD: binsearch.FieldDescriptor{BlockLen: recordLen, BlockPos: 0, BigEndian: true, BitStart: 31, BitEnd: 63},
	}, nil
}

// Close unmaps the underlying file.
func (t *VariantKeyRsidTable) Close() error { return t.h.Close() }

// NRows returns the number of records in the table.
func (t *VariantKeyRsidTable) NRows() uint64 { return t.nrows }

// GetRsid returns the rsID recorded for vk.
func (t *VariantKeyRsidTable) GetRsid(vk uint64) (rsid uint32, ok bool) {
	if t.nrows == 0 {
		return 0, false
	}
	res := binsearch.FindFirst[uint64](t.data, t.vkFD, 0, t.nrows-1, vk)
	if !res.Found {
		return 0, false
	}
	return binsearch.Field[uint32](t.data, t.rsFD, res.Index), true
}

// ChromPosRange finds the rows spanning every VariantKey on chromCode with
// position in [pmin, pmax], searching only within [first, last]. pmin/pmax
// are arbitrary coordinates, not necessarily stored positions: newFirst is
// the first row with chrompos >= pmin and newLast the last row with
// chrompos <= pmax (insertion-point semantics, mirroring the original's
// find_vr_chrompos_range), not an exact-endpoint match. It returns the rsID
// recorded at the first matching row; ok is false only when no row in
// [first, last] falls inside [pmin, pmax] at all.
func (t *VariantKeyRsidTable) ChromPosRange(first, last uint64, chromCode uint8, pmin, pmax uint32) (rsid uint32, newFirst, newLast uint64, ok bool) {
	if t.nrows == 0 || first > last {
		return 0, first, last, false
	}
	lo := (uint64(chromCode) << 28) | uint64(pmin)
	hi := (uint64(chromCode) << 28) | uint64(pmax)
	firstIdx := binsearch.LowerBound[uint64](t.data, t.chromPosFD, first, last, lo)
	if firstIdx > last {
		return 0, first, last, false
	}
	lastIdx, found := binsearch.UpperBound[uint64](t.data, t.chromPosFD, firstIdx, last, hi)
	if !found {
		return 0, first, last, false
	}
	return binsearch.Field[uint32](t.data, t.rsFD, firstIdx), firstIdx, lastIdx, true
}

// NonReversibleTable recovers REF/ALT allele strings for VariantKeys whose
// refalt code took the hash fallback path and so cannot be decoded by
// refalt.Decode alone. Its on-disk layout matches the nrvk payload record
// from the format spec exactly: each blob record is
// [u8 sizeref][u8 sizealt][REF ASCII][ALT ASCII], addressed by a sorted
// (VariantKey, byte-offset) index.
type NonReversibleTable struct {
	h     *mmfile.Handle
	index []byte // fixed 16-byte records: VariantKey(8) | BlobOffset(8)
	blob  []byte
	nrows uint64
	vkFD  binsearch.FieldDescriptor
}

const nrvkRecordLen = 16

// LoadNonReversibleTable memory-maps an nrvk.bin file: an 8-byte
// big-endian record count, the sorted index, then the blob of
// length-prefixed REF/ALT byte strings the index points into.
func LoadNonReversibleTable(path string) (*NonReversibleTable, error) {
	h, err := mmfile.Open(path)
	if err != nil {
		return nil, err
	}
	data := h.Bytes()
	if len(data) < 8 {
		h.Close()
		return nil, errors.New("lookup: nrvk file too short")
	}
	count := bitio.LoadUint64BE(data, 0)
	indexEnd := 8 + count*nrvkRecordLen
	if uint64(len(data)) < indexEnd {
		h.Close()
		return nil, errors.New("lookup: nrvk index truncated")
	}
	return &NonReversibleTable{
		h:     h,
		index: data[8:indexEnd],
		blob:  data[indexEnd:],
		nrows: count,
		vkFD:  binsearch.FieldDescriptor{BlockLen: nrvkRecordLen, BlockPos: 0, BigEndian: true, BitStart: -1},
	}, nil
}

// Close unmaps the underlying file.
func (t *NonReversibleTable) Close() error { return t.h.Close() }

// Lookup returns the REF/ALT pair recorded for vk.
func (t *NonReversibleTable) Lookup(vk uint64) (ref, alt string, ok bool) {
	if t.nrows == 0 {
		return "", "", false
	}
	res := binsearch.FindFirst[uint64](t.index, t.vkFD, 0, t.nrows-1, vk)
	if !res.Found {
		return "", "", false
	}
	off := bitio.LoadUint64BE(t.index, res.Index*nrvkRecordLen+8)
	sizeref := uint64(t.blob[off])
	sizealt := uint64(t.blob[off+1])
	refStart := off + 2
	altStart := refStart + sizeref
	return string(t.blob[refStart:altStart]), string(t.blob[altStart : altStart+sizealt]), true
}

// ReverseVariantKey recovers (chrom, pos, ref, alt) from vk, decoding the
// refalt field directly when it is reversible and otherwise falling
// through to this table.
func (t *NonReversibleTable) ReverseVariantKey(vk uint64) (chromCode uint8, pos uint32, ref, alt string, ok bool) {
	chromCode, pos, refaltCode := variantkey.Decode(vk)
	if r, a, decOK := refalt.Decode(refaltCode); decOK {
		return chromCode, pos, r, a, true
	}
	r, a, lookOK := t.Lookup(vk)
	return chromCode, pos, r, a, lookOK
}

// EndPos returns pos+len(ref) for vk, extracting len(ref) directly from
// the refalt field when reversible and otherwise consulting this table.
func (t *NonReversibleTable) EndPos(vk uint64) (uint32, bool) {
	_, pos, refaltCode := variantkey.Decode(vk)
	if ref, _, ok := refalt.Decode(refaltCode); ok {
		return pos + uint32(len(ref)), true
	}
	ref, _, ok := t.Lookup(vk)
	if !ok {
		return 0, false
	}
	return pos + uint32(len(ref)), true
}

// VariantKeyToRegionKey converts vk into a RegionKey spanning
// [vk.pos, vk.pos+len(ref)) on the same chromosome, with strand unknown.
// It consults this table when vk's refalt field took the hash fallback
// path, since len(ref) is then not directly recoverable from vk alone.
func (t *NonReversibleTable) VariantKeyToRegionKey(vk uint64) (rk uint64, ok bool) {
	chromCode, pos, _ := variantkey.Decode(vk)
	end, ok := t.EndPos(vk)
	if !ok {
		return 0, false
	}
	return regionkey.EncodeCodes(chromCode, pos, end, 0), true
}

// Tables bundles the three lookup tables used by a single installation.
type Tables struct {
	RsidVk  *RsidVariantKeyTable
	VkRsid  *VariantKeyRsidTable
	NonRevk *NonReversibleTable
}

// Close closes every non-nil table.
func (t *Tables) Close() error {
	var first error
	note := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}
	if t.RsidVk != nil {
		note(t.RsidVk.Close())
	}
	if t.VkRsid != nil {
		note(t.VkRsid.Close())
	}
	if t.NonRevk != nil {
		note(t.NonRevk.Close())
	}
	return first
}

// Fingerprint returns a FarmHash-based fingerprint over every loaded
// table's raw bytes, suitable for detecting a stale or mismatched
// installation of the rsvk/vkrs/nrvk files.
func (t *Tables) Fingerprint() uint64 {
	seed := uint64(0)
	if t.RsidVk != nil {
		seed = farm.Hash64WithSeed(t.RsidVk.data, seed)
	}
	if t.VkRsid != nil {
		seed = farm.Hash64WithSeed(t.VkRsid.data, seed)
	}
	if t.NonRevk != nil {
		seed = farm.Hash64WithSeed(t.NonRevk.index, seed)
		seed = farm.Hash64WithSeed(t.NonRevk.blob, seed)
	}
	return seed
}

// FingerprintWith computes a whole-table fingerprint over the same bytes as
// Fingerprint but through any streaming hash.Hash64, the way the
// teacher's checksum subcommand lets a caller pick between farmhash and
// seahash for the same field-hashing loop. Unlike Fingerprint's seeded
// chain, every table's bytes are written into the same hash state and
// only the final sum is read.
func (t *Tables) FingerprintWith(h hash.Hash64) uint64 {
	h.Reset()
	if t.RsidVk != nil {
		h.Write(t.RsidVk.data)
	}
	if t.VkRsid != nil {
		h.Write(t.VkRsid.data)
	}
	if t.NonRevk != nil {
		h.Write(t.NonRevk.index)
		h.Write(t.NonRevk.blob)
	}
	return h.Sum64()
}
