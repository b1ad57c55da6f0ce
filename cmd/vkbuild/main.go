// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command vkbuild builds the rsvk.bin, vkrs.bin, and nrvk.bin lookup
// tables the lookup package reads, from a tab-separated input of
// "rsid\tchrom\tpos\tref\talt" rows. It is a minimal fixture-table builder
// for tests and small installations, not a replacement for a full VCF/dbSNP
// ingestion pipeline.
package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/nasuni-labs/variantkey/variantkey"
)

type row struct {
	rsid uint32
	vk   uint64
	ref  string
	alt  string
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: vkbuild INPUT.tsv OUTDIR")
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2]); err != nil {
		log.Error.Print(err)
		os.Exit(1)
	}
}

func run(inputPath, outDir string) error {
	rows, err := readRows(inputPath)
	if err != nil {
		return err
	}
	if err := writeRsvk(rows, outDir+"/rsvk.bin"); err != nil {
		return err
	}
	if err := writeVkrs(rows, outDir+"/vkrs.bin"); err != nil {
		return err
	}
	return writeNrvk(rows, outDir+"/nrvk.bin")
}

func readRows(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "vkbuild")
	}
	defer f.Close()

	var rows []row
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 5 {
			return nil, errors.Errorf("vkbuild: malformed row %q", line)
		}
		rsid, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "vkbuild: invalid rsid in %q", line)
		}
		pos, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "vkbuild: invalid pos in %q", line)
		}
		vk := variantkey.Encode(fields[1], uint32(pos), fields[3], fields[4])
		rows = append(rows, row{rsid: uint32(rsid), vk: vk, ref: fields[3], alt: fields[4]})
	}
	return rows, scanner.Err()
}

func writeRsvk(rows []row, path string) error {
	sorted := append([]row(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].rsid < sorted[j].rsid })
	buf := make([]byte, len(sorted)*12)
	for i, r := range sorted {
		binary.BigEndian.PutUint32(buf[i*12:], r.rsid)
		binary.BigEndian.PutUint64(buf[i*12+4:], r.vk)
	}
	return os.WriteFile(path, buf, 0o644)
}

func writeVkrs(rows []row, path string) error {
	sorted := append([]row(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].vk < sorted[j].vk })
	buf := make([]byte, len(sorted)*12)
	for i, r := range sorted {
		binary.BigEndian.PutUint64(buf[i*12:], r.vk)
		binary.BigEndian.PutUint32(buf[i*12+8:], r.rsid)
	}
	return os.WriteFile(path, buf, 0o644)
}

// writeNrvk writes the subset of rows whose refalt code took the hash
// fallback path, so their REF/ALT strings cannot be recovered from the
// VariantKey alone. Each blob record is the bit-exact nrvk payload:
// [u8 sizeref][u8 sizealt][REF ASCII][ALT ASCII].
func writeNrvk(rows []row, path string) error {
	var nonrev []row
	for _, r := range rows {
		if variantkey.RefAlt(r.vk)&0x1 != 0 {
			nonrev = append(nonrev, r)
		}
	}
	sort.Slice(nonrev, func(i, j int) bool { return nonrev[i].vk < nonrev[j].vk })

	var index, blob []byte
	for _, r := range nonrev {
		off := uint64(len(blob))
		rec := make([]byte, 2, 2+len(r.ref)+len(r.alt))
		rec[0] = byte(len(r.ref))
		rec[1] = byte(len(r.alt))
		rec = append(rec, r.ref...)
		rec = append(rec, r.alt...)
		blob = append(blob, rec...)
		idxRec := make([]byte, 16)
		binary.BigEndian.PutUint64(idxRec[0:], r.vk)
		binary.BigEndian.PutUint64(idxRec[8:], off)
		index = append(index, idxRec...)
	}
	header := make([]byte, 8)
	binary.BigEndian.PutUint64(header, uint64(len(nonrev)))
	out := append(header, index...)
	out = append(out, blob...)
	return os.WriteFile(path, out, 0o644)
}
