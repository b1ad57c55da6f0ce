// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package murmur provides the two MurmurHash3-derived mixers used by the
// refalt and esid codecs. The 32-bit and 64-bit variants use different
// constants and rotation amounts and are kept separate rather than forced
// through one generic, since the exact bit pattern of each is part of the
// on-disk format contract.
package murmur

// Mix32 combines a 32 bit block k into the running hash h using the
// MurmurHash3 32-bit mixing step: right rotations by 17 and 19, which equal
// MurmurHash3's left rotations by 15 and 13.
func Mix32(k, h uint32) uint32 {
	k *= 0xcc9e2d51
	k = (k >> 17) | (k << (32 - 17))
	k *= 0x1b873593
	h ^= k
	h = (h >> 19) | (h << (32 - 19))
	return (h * 5) + 0xe6546b64
}

// Finalize32 applies the MurmurHash3 32-bit finalization avalanche.
func Finalize32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// Mix64 combines a 64 bit block k into the running hash h using the
// MurmurHash3-like 64-bit mixing step used for ESID hashing.
func Mix64(k, h uint64) uint64 {
	k *= 0x87c37b91114253d5
	k = (k >> 33) | (k << (64 - 33))
	k *= 0x4cf5ad432745937f
	h ^= k
	h = (h >> 37) | (h << (64 - 37))
	return (h * 5) + 0x52dce729
}

// Finalize64 applies the MurmurHash3 64-bit finalization avalanche.
func Finalize64(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}
