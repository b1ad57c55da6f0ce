// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package chrom encodes and decodes the 5-bit chromosome code shared by
// VariantKey and RegionKey: "1".."22" map to themselves, "X"/"Y"/"MT" map
// to 23/24/25, and anything unparseable maps to 0 (NA).
package chrom

// Encode returns the 5-bit chromosome code for s. A leading case-insensitive
// "chr" prefix is stripped first. Values 1..25 are the recognized codes;
// anything else that still parses as a decimal integer is returned modulo
// 256 (the caller's VariantKey/RegionKey composer is responsible for
// truncating it to 5 bits), and anything unparseable returns 0.
func Encode(s string) uint8 {
	if len(s) > 3 && isChrPrefix(s) {
		s = s[3:]
	}
	if len(s) == 0 {
		return 0
	}
	if s[0] >= '0' && s[0] <= '9' {
		var v uint8
		for i := 0; i < len(s); i++ {
			if s[i] < '0' || s[i] > '9' {
				return 0
			}
			v = v*10 + (s[i] - '0')
		}
		return v
	}
	if len(s) == 1 {
		switch s[0] {
		case 'X', 'x':
			return 23
		case 'Y', 'y':
			return 24
		case 'M', 'm':
			return 25
		}
	}
	if len(s) == 2 && (s[0] == 'M' || s[0] == 'm') && (s[1] == 'T' || s[1] == 't') {
		return 25
	}
	return 0
}

func isChrPrefix(s string) bool {
	return (s[0] == 'C' || s[0] == 'c') &&
		(s[1] == 'H' || s[1] == 'h') &&
		(s[2] == 'R' || s[2] == 'r')
}

// Decode renders a chromosome code back to its canonical string form.
func Decode(code uint8) string {
	switch {
	case code >= 1 && code <= 22:
		return decimal(code)
	case code == 23:
		return "X"
	case code == 24:
		return "Y"
	case code == 25:
		return "MT"
	default:
		return "NA"
	}
}

func decimal(v uint8) string {
	if v < 10 {
		return string([]byte{'0' + v})
	}
	return string([]byte{'0' + v/10, '0' + v%10})
}
