/*
NAME
  leb128.go

DESCRIPTION
  leb128.go implements the LEB128 varint used by OBU framing (§4.8):
  7 data bits per byte, continuation bit in the MSB.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package bitio

// EncodeLeb128 encodes u as AV1's leb128(): little-endian base-128 with
// a continuation bit in each byte's MSB. The result is the shortest
// encoding, satisfying the LEB128 law in §8 property 5.
func EncodeLeb128(u uint64) []byte {
	var out []byte
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u != 0 {
			b |= 0x80
			out = append(out, b)
			continue
		}
		out = append(out, b)
		break
	}
	return out
}

// DecodeLeb128 decodes a leb128 value from the start of b, returning the
// value and the number of bytes consumed. It returns ok=false if b ends
// before a terminating byte (continuation bit clear) is found, or if no
// terminating byte appears within the first 8 bytes.
func DecodeLeb128(b []byte) (value uint64, n int, ok bool) {
	for i := 0; i < len(b) && i < 8; i++ {
		value |= uint64(b[i]&0x7f) << (7 * uint(i))
		if b[i]&0x80 == 0 {
			return value, i + 1, true
		}
	}
	return 0, 0, false
}
