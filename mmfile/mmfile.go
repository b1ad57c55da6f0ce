// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package mmfile memory-maps a read-only binary table file and parses its
// container header. Four container formats are recognized: the native
// BINSRC1 format, Arrow File format, Feather v1 format, and a raw flat blob
// with no header at all.
package mmfile

import (
	"os"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/nasuni-labs/variantkey/bitio"
)

// Format identifies the binary table container.
type Format int

// Recognized container formats.
const (
	FormatUnknown Format = iota
	FormatBinsrc1
	FormatArrow1
	FormatFeather1
	FormatFlat
)

var binsrc1Magic = [8]byte{'B', 'I', 'N', 'S', 'R', 'C', '1', 0}

// ColumnIndex describes the byte layout of one fixed-width column within a
// mapped table.
type ColumnIndex struct {
	Offset uint64 // byte offset of this column's row 0
	Width  uint64 // byte width of one value in this column
}

// Handle wraps a memory-mapped, read-only file. The zero value is not
// usable; construct one with Open.
type Handle struct {
	data   []byte
	Format Format
	NRows  uint64
	NCols  uint64
	Cols   []ColumnIndex
	closed bool
}

// Open memory-maps path read-only and parses its container header. The
// caller must call Close when done to release the mapping.
func Open(path string) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "mmfile: open %s", path)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "mmfile: stat %s", path)
	}
	size := int(fi.Size())
	if size == 0 {
		return nil, errors.Errorf("mmfile: %s is empty", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "mmfile: mmap %s", path)
	}

	h := &Handle{data: data}
	if err := h.parseHeader(); err != nil {
		unix.Munmap(data)
		return nil, err
	}
	log.Debug.Printf("mmfile: opened %s format=%d nrows=%d ncols=%d", path, h.Format, h.NRows, h.NCols)
	return h, nil
}

// Bytes returns the full mapped file contents.
func (h *Handle) Bytes() []byte { return h.data }

// Close unmaps the file. Close is idempotent.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return unix.Munmap(h.data)
}

func (h *Handle) parseHeader() error {
	switch {
	case len(h.data) >= 8 && [8]byte(h.data[:8]) == binsrc1Magic:
		return h.parseBinsrc1()
	case len(h.data) >= 6 && string(h.data[:6]) == "ARROW1":
		h.Format = FormatArrow1
		return h.parseArrowLike()
	case len(h.data) >= 8 && string(h.data[len(h.data)-4:]) == "FEA1":
		h.Format = FormatFeather1
		return h.parseArrowLike()
	default:
		h.Format = FormatFlat
		return nil
	}
}

// parseBinsrc1 decodes the native container, bit-exact with the format
// spec:
//
//	offset  bytes  field
//	0       8      magic "BINSRC1\0"
//	8       1      ncols
//	9       ncols  ctbytes[0..ncols]   (per-column byte-width)
//	9+nc    pad    zero-pad to next 8-byte boundary
//	+8      8      nrows (u64 LE)
//	+16     8*nc   column offsets (u64 LE), relative to the start of the map
//
// followed by the column data itself, each column nrows*ctbytes[i] bytes,
// 8-byte aligned between columns.
func (h *Handle) parseBinsrc1() error {
	h.Format = FormatBinsrc1
	if len(h.data) < 9 {
		return errors.New("mmfile: truncated BINSRC1 header")
	}
	ncols := uint64(h.data[8])
	pos := uint64(9)
	if uint64(len(h.data)) < pos+ncols {
		return errors.New("mmfile: truncated BINSRC1 column widths")
	}
	widths := make([]uint64, ncols)
	for i := uint64(0); i < ncols; i++ {
		widths[i] = uint64(h.data[pos+i])
	}
	pos += ncols
	pos = alignUp8(pos)

	if uint64(len(h.data)) < pos+8+8*ncols {
		return errors.New("mmfile: truncated BINSRC1 row count or column offsets")
	}
	nrows := bitio.LoadUint64LE(h.data, pos)
	pos += 8

	h.NRows = nrows
	h.NCols = ncols
	h.Cols = make([]ColumnIndex, ncols)
	for i := uint64(0); i < ncols; i++ {
		offset := bitio.LoadUint64LE(h.data, pos+i*8)
		h.Cols[i] = ColumnIndex{Offset: offset, Width: widths[i]}
	}
	if ncols > 0 {
		lastCol := h.Cols[ncols-1]
		if lastCol.Offset+lastCol.Width*nrows > uint64(len(h.data)) {
			return errors.New("mmfile: BINSRC1 column data exceeds file size")
		}
	}
	return nil
}

func alignUp8(pos uint64) uint64 { return (pos + 7) &^ 7 }

// parseArrowLike handles a file recognized by its Arrow/Feather signature. It
// does not locate the payload or decode the schema: NRows and NCols stay 0
// and Cols stays empty. The dense binsearch tables this package feeds only
// ever read BINSRC1 or flat blobs.
func (h *Handle) parseArrowLike() error {
	h.NRows = 0
	h.NCols = 0
	return nil
}
