/*
NAME
  obu.go

DESCRIPTION
  obu.go implements §4.8's Open Bitstream Unit framing: a one-byte
  header (type, has-size-field) followed by a LEB128 payload size and
  the payload itself.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

// Package obu packs av1enc's sequence/frame headers and HDR metadata
// into OBU-framed byte strings.
package obu

import "github.com/blackfin/av1enc/bitio"

// Type names an OBU type value (§4.8).
type Type byte

const (
	TypeSequenceHeader   Type = 1
	TypeTemporalDelimiter Type = 2
	TypeMetadata         Type = 5
	TypeFrame            Type = 6
)

// Metadata sub-types (§4.8).
const (
	MetadataHDRCLL  = 1
	MetadataHDRMDCV = 2
)

// Pack frames payload as one OBU: header byte (type<<3 | has_size<<1),
// LEB128 size, payload. hasSize is always true in this profile — every
// OBU this encoder emits carries an explicit size field.
func Pack(t Type, payload []byte) []byte {
	header := byte(t)<<3 | 1<<1
	size := bitio.EncodeLeb128(uint64(len(payload)))
	out := make([]byte, 0, 1+len(size)+len(payload))
	out = append(out, header)
	out = append(out, size...)
	out = append(out, payload...)
	return out
}

// TemporalDelimiter returns a zero-length Temporal Delimiter OBU, which
// this encoder emits once before every coded frame's OBU group.
func TemporalDelimiter() []byte {
	return Pack(TypeTemporalDelimiter, nil)
}
