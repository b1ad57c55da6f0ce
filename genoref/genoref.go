// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package genoref memory-maps a genoref.bin reference genome and serves
// random-access sequence lookups keyed by the chrom package's 5-bit
// chromosome code, plus the reference-allele compatibility and
// allele-flipping helpers the normalize package builds on.
//
// genoref.bin is a fixed 26-entry little-endian uint32 chromosome-offset
// header followed by the concatenated per-chromosome ASCII sequence blob;
// chromosome c occupies blob bytes [idx[c], idx[c+1]). Converting a FASTA
// reference into this form is a build-time concern outside this package.
package genoref

import (
	"github.com/pkg/errors"

	"github.com/nasuni-labs/variantkey/bitio"
	"github.com/nasuni-labs/variantkey/mmfile"
)

// nChromEntries is the number of stored offset-table entries, covering
// chromosome codes 1..25 plus one trailing sentinel equal to len(blob).
const nChromEntries = 26

const headerLen = nChromEntries * 4

// Reference is a memory-mapped genoref.bin file. The zero value is not
// usable; construct one with Load.
type Reference struct {
	h    *mmfile.Handle
	idx  [nChromEntries + 1]uint64 // idx[0]=0; idx[c] is the start of chrom code c
	blob []byte
}

// Load memory-maps path and reads its chromosome-offset header.
func Load(path string) (*Reference, error) {
	h, err := mmfile.Open(path)
	if err != nil {
		return nil, err
	}
	data := h.Bytes()
	if len(data) < headerLen {
		h.Close()
		return nil, errors.New("genoref: truncated chromosome-offset header")
	}
	r := &Reference{h: h}
	for i := 0; i < nChromEntries; i++ {
		r.idx[i+1] = uint64(bitio.LoadUint32LE(data, uint64(i*4)))
	}
	r.blob = data[headerLen:]
	if r.idx[nChromEntries] > uint64(len(r.blob)) {
		h.Close()
		return nil, errors.New("genoref: offset table exceeds blob size")
	}
	return r, nil
}

// Close unmaps the underlying file.
func (r *Reference) Close() error { return r.h.Close() }

func (r *Reference) bounds(chromCode uint8) (start, end uint64, ok bool) {
	if chromCode == 0 || int(chromCode)+1 >= len(r.idx) {
		return 0, 0, false
	}
	return r.idx[chromCode], r.idx[chromCode+1], true
}

// Len returns the length of the sequence for chromCode, or 0 if absent.
func (r *Reference) Len(chromCode uint8) uint64 {
	start, end, ok := r.bounds(chromCode)
	if !ok || end < start {
		return 0
	}
	return end - start
}

// GetSeq returns the 0-based half-open [start, end) substring of
// chromCode's sequence.
func (r *Reference) GetSeq(chromCode uint8, start, end uint64) (string, error) {
	base, chromEnd, ok := r.bounds(chromCode)
	if !ok {
		return "", errors.Errorf("genoref: unknown chromosome code %d", chromCode)
	}
	if start > end || base+end > chromEnd {
		return "", errors.Errorf("genoref: range [%d,%d) out of bounds for chrom %d", start, end, chromCode)
	}
	return string(r.blob[base+start : base+end]), nil
}

// flipMap mirrors the original implementation's flip table: A<->T, C<->G,
// and every IUPAC ambiguity code mapped to its complementary ambiguity
// code; anything else is left unchanged.
var flipMap = map[byte]byte{
	'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A',
	'a': 't', 'c': 'g', 'g': 'c', 't': 'a',
	'M': 'K', 'K': 'M', 'R': 'Y', 'Y': 'R',
	'W': 'W', 'S': 'S', 'B': 'V', 'V': 'B',
	'D': 'H', 'H': 'D', 'N': 'N',
}

// FlipAllele returns the complement of allele, preserving length and
// ambiguity codes base by base.
func FlipAllele(allele string) string {
	out := make([]byte, len(allele))
	for i := 0; i < len(allele); i++ {
		c := allele[i]
		if f, ok := flipMap[c]; ok {
			out[i] = f
		} else {
			out[i] = c
		}
	}
	return string(out)
}

// iupacMatch reports whether base (A/C/G/T, any case) is compatible with
// the IUPAC ambiguity code in the reference sequence.
func iupacMatch(ref, base byte) bool {
	if ref >= 'a' && ref <= 'z' {
		ref -= 'a' - 'A'
	}
	if base >= 'a' && base <= 'z' {
		base -= 'a' - 'A'
	}
	if ref == base {
		return true
	}
	switch ref {
	case 'N':
		return true
	case 'B':
		return base == 'C' || base == 'G' || base == 'T'
	case 'D':
		return base == 'A' || base == 'G' || base == 'T'
	case 'H':
		return base == 'A' || base == 'C' || base == 'T'
	case 'V':
		return base == 'A' || base == 'C' || base == 'G'
	case 'W':
		return base == 'A' || base == 'T'
	case 'S':
		return base == 'C' || base == 'G'
	case 'M':
		return base == 'A' || base == 'C'
	case 'K':
		return base == 'G' || base == 'T'
	case 'R':
		return base == 'A' || base == 'G'
	case 'Y':
		return base == 'C' || base == 'T'
	default:
		return false
	}
}

// CheckReferenceStatus reports how allele compares to chromCode's sequence
// starting at pos: -2 if pos+len(allele) runs past the end of the
// chromosome, 0 if every base matches exactly (case-insensitive), +1 if
// every mismatch is an IUPAC-ambiguity-compatible substitution, or -1 if
// any mismatch is not.
func (r *Reference) CheckReferenceStatus(chromCode uint8, pos uint64, allele string) int32 {
	seq, err := r.GetSeq(chromCode, pos, pos+uint64(len(allele)))
	if err != nil {
		return -2
	}
	ambiguous := false
	for i := 0; i < len(allele); i++ {
		if upper(seq[i]) == upper(allele[i]) {
			continue
		}
		if iupacMatch(seq[i], allele[i]) {
			ambiguous = true
			continue
		}
		return -1
	}
	if ambiguous {
		return 1
	}
	return 0
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// CheckReference reports whether allele is compatible, base by base under
// IUPAC ambiguity rules, with chromCode's sequence starting at pos.
func (r *Reference) CheckReference(chromCode uint8, pos uint64, allele string) bool {
	return r.CheckReferenceStatus(chromCode, pos, allele) >= 0
}
