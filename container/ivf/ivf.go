/*
NAME
  ivf.go

DESCRIPTION
  ivf wraps av1enc's coded packets in an IVF container (§6): a 32-byte
  file header followed by one (size, PTS, payload) record per packet,
  in the shape of codec/wav's RIFF-style LE header packing.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

// Package ivf muxes av1enc packets into the IVF wire format.
package ivf

import (
	"encoding/binary"
	"io"
)

const (
	headerSize  = 32
	frameHeaderSize = 12
	version     = 0
)

// Writer packs OBU-framed packets into an IVF stream written to dst.
// The caller is responsible for providing PTS values (this package has
// no notion of a clock).
type Writer struct {
	dst io.Writer

	width, height       int
	fpsNum, fpsDen      uint32
	frameCount          uint32
	headerWritten       bool
}

// NewWriter returns a Writer for an AV01 stream of the given
// dimensions and frame rate. frameCount is written into the header's
// frame-count field (bytes 24..28) up front; the header is written
// once, before the first frame, and is not updated afterward.
func NewWriter(dst io.Writer, width, height int, fpsNum, fpsDen uint32, frameCount uint32) *Writer {
	return &Writer{dst: dst, width: width, height: height, fpsNum: fpsNum, fpsDen: fpsDen, frameCount: frameCount}
}

// writeHeader emits the 32-byte DKIF file header (§6), run once before
// the first frame.
func (w *Writer) writeHeader() error {
	h := make([]byte, headerSize)
	copy(h[0:4], []byte("DKIF"))
	binary.LittleEndian.PutUint16(h[4:6], version)
	binary.LittleEndian.PutUint16(h[6:8], headerSize)
	copy(h[8:12], []byte("AV01"))
	binary.LittleEndian.PutUint16(h[12:14], uint16(w.width))
	binary.LittleEndian.PutUint16(h[14:16], uint16(w.height))
	binary.LittleEndian.PutUint32(h[16:20], w.fpsNum)
	binary.LittleEndian.PutUint32(h[20:24], w.fpsDen)
	binary.LittleEndian.PutUint32(h[24:28], w.frameCount)
	// h[28:32] stays zero: reserved.
	_, err := w.dst.Write(h)
	return err
}

// WriteFrame appends one coded packet's (size, PTS, payload) record,
// writing the file header first if this is the stream's first frame.
func (w *Writer) WriteFrame(payload []byte, pts uint64) error {
	if !w.headerWritten {
		if err := w.writeHeader(); err != nil {
			return err
		}
		w.headerWritten = true
	}

	fh := make([]byte, frameHeaderSize)
	binary.LittleEndian.PutUint32(fh[0:4], uint32(len(payload)))
	binary.LittleEndian.PutUint64(fh[4:12], pts)
	if _, err := w.dst.Write(fh); err != nil {
		return err
	}
	_, err := w.dst.Write(payload)
	return err
}
