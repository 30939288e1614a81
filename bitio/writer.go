/*
NAME
  writer.go

DESCRIPTION
  writer.go provides Writer, an MSB-first bit packer used to emit the
  sequence and frame uncompressed headers (§4.8). It wraps
  github.com/icza/bitio's Writer, the same library the flac encoder in
  the retrieval pack uses to pack its subframe headers bit by bit.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

// Package bitio provides MSB-first bit packing for AV1 header bytes and
// the LEB128 varint codec used by OBU framing.
package bitio

import (
	"bytes"

	"github.com/icza/bitio"
)

// Writer packs fixed-width fields f(n) MSB-first into a byte buffer,
// matching AV1's descriptor for uncompressed header fields.
type Writer struct {
	buf   *bytes.Buffer
	bw    *bitio.Writer
	err   error
	nbits uint
}

// NewWriter returns a Writer ready to accept header fields.
func NewWriter() *Writer {
	buf := new(bytes.Buffer)
	return &Writer{buf: buf, bw: bitio.NewWriter(buf)}
}

// WriteBits writes the low n bits of v, MSB-first (AV1's f(n)).
func (w *Writer) WriteBits(v uint64, n uint) {
	if w.err != nil || n == 0 {
		return
	}
	w.err = w.bw.WriteBits(v, byte(n))
	w.nbits += n
}

// WriteBit writes a single bit (AV1's f(1)).
func (w *Writer) WriteBit(b bool) {
	if w.err != nil {
		return
	}
	w.err = w.bw.WriteBool(b)
	w.nbits++
}

// TrailingBits appends AV1's trailing_bits(): a single 1 bit followed by
// zero-padding out to the next byte boundary.
func (w *Writer) TrailingBits() {
	w.WriteBit(true)
	for !w.aligned() {
		w.WriteBit(false)
	}
}

// aligned reports whether the next write starts at a byte boundary.
// bitio.Writer does not expose its own bit cursor, so the count is
// tracked locally.
func (w *Writer) aligned() bool {
	return w.nbits%8 == 0
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error { return w.err }

// Bytes finalizes the bit stream (flushing any partial final byte with
// zero bits, matching AV1's byte_alignment()) and returns the packed
// header bytes.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if err := w.bw.Close(); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}
