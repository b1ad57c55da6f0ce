// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package normalize implements the variant normalization algorithm: given a
// REF/ALT pair and a position, it reconciles REF against the reference
// genome (trying an ALT/REF swap and a strand flip when a direct match
// fails) and then trims shared flanking bases, left-extending an allele
// that is empty.
package normalize

import "github.com/nasuni-labs/variantkey/genoref"

// Status is a bitmask describing what NormalizeVariant did to reconcile a
// variant against the reference genome. A negative Status indicates the
// variant could not be matched to the reference at all.
type Status int32

// Status bits, matching the original normalizer's NORM_* constants.
const (
	StatusValid Status = 1 << iota
	StatusSwap
	StatusFlip
	StatusLeftExtend
	StatusRightTrim
	StatusLeftTrim
)

// ErrNoMatch is returned (as a negative Status) when neither the original
// nor the swapped/flipped allele pair matches the reference genome.
const ErrNoMatch Status = -1

// ErrBadPos is returned (as a negative Status) when pos+len(ref) runs past
// the end of the chromosome, making every match attempt meaningless.
const ErrBadPos Status = -2

// Result is the outcome of normalizing one variant.
type Result struct {
	Pos    uint32
	Ref    string
	Alt    string
	Status Status
}

// NormalizeVariant reconciles ref/alt at pos on chromCode against g, then
// trims shared flanking bases. StatusValid is seeded from the genome match
// itself: it is set only when the match against the reference required an
// IUPAC-ambiguity substitution, never for a plain exact match and never
// synthesized after the fact for a no-op. An exact match with no trim/swap/
// flip therefore normalizes to status 0, so re-normalizing already-normal
// output is idempotent.
func NormalizeVariant(g *genoref.Reference, chromCode uint8, pos uint32, ref, alt string) Result {
	status, matchedPos, matchedRef, matchedAlt := reconcile(g, chromCode, pos, ref, alt)
	if status < 0 {
		return Result{Pos: pos, Ref: ref, Alt: alt, Status: status}
	}
	p, r, a, trimStatus := trim(g, chromCode, matchedPos, matchedRef, matchedAlt)
	return Result{Pos: p, Ref: r, Alt: a, Status: status | trimStatus}
}

func reconcile(g *genoref.Reference, chromCode uint8, pos uint32, ref, alt string) (status Status, newPos uint32, newRef, newAlt string) {
	refStatus := g.CheckReferenceStatus(chromCode, uint64(pos), ref)
	if refStatus == -2 {
		return ErrBadPos, pos, ref, alt
	}
	if refStatus >= 0 {
		return validBit(refStatus), pos, ref, alt
	}
	if altStatus := g.CheckReferenceStatus(chromCode, uint64(pos), alt); altStatus >= 0 {
		return validBit(altStatus) | StatusSwap, pos, alt, ref
	}
	flippedRef := genoref.FlipAllele(ref)
	if flipStatus := g.CheckReferenceStatus(chromCode, uint64(pos), flippedRef); flipStatus >= 0 {
		return validBit(flipStatus) | StatusFlip, pos, flippedRef, genoref.FlipAllele(alt)
	}
	flippedAlt := genoref.FlipAllele(alt)
	if swapFlipStatus := g.CheckReferenceStatus(chromCode, uint64(pos), flippedAlt); swapFlipStatus >= 0 {
		return validBit(swapFlipStatus) | StatusSwap | StatusFlip, pos, flippedAlt, flippedRef
	}
	return ErrNoMatch, pos, ref, alt
}

// validBit reports the StatusValid bit for a CheckReferenceStatus result: set
// only when the match required an IUPAC-ambiguity substitution (status 1),
// clear for a plain exact match (status 0).
func validBit(refStatus int32) Status {
	if refStatus == 1 {
		return StatusValid
	}
	return 0
}

func upperByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// trim repeatedly right-trims shared trailing bases while both alleles are
// longer than one base, and left-extends while an allele is empty, until
// neither applies, then performs one left-trim pass. Right-trim and left-extend are modeled as sibling
// branches of one loop, not right-trim-nested-inside-left-extend, so that
// an allele that is empty on entry (e.g. an unanchored insertion/deletion)
// still triggers left-extend even though it never ran the right-trim step.
func trim(g *genoref.Reference, chromCode uint8, pos uint32, ref, alt string) (uint32, string, string, Status) {
	var status Status
	for {
		if len(ref) > 1 && len(alt) > 1 && upperByte(ref[len(ref)-1]) == upperByte(alt[len(alt)-1]) {
			ref = ref[:len(ref)-1]
			alt = alt[:len(alt)-1]
			status |= StatusRightTrim
			continue
		}
		if (len(ref) == 0 || len(alt) == 0) && pos > 0 {
			base, err := g.GetSeq(chromCode, uint64(pos-1), uint64(pos))
			if err != nil {
				break
			}
			ref = base + ref
			alt = base + alt
			pos--
			status |= StatusLeftExtend
			continue
		}
		break
	}
	offset := 0
	minLen := len(ref)
	if len(alt) < minLen {
		minLen = len(alt)
	}
	for offset < minLen-1 && upperByte(ref[offset]) == upperByte(alt[offset]) {
		offset++
	}
	if offset > 0 {
		ref = ref[offset:]
		alt = alt[offset:]
		pos += uint32(offset)
		status |= StatusLeftTrim
	}
	return pos, ref, alt, status
}
