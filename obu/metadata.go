/*
NAME
  metadata.go

DESCRIPTION
  metadata.go builds the two HDR Metadata OBU sub-payloads this
  profile emits (§4.8, §6): HDR_CLL (content light level) and HDR_MDCV
  (mastering display color volume), each a metadata_type byte followed
  by its bit-exact field layout.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package obu

import "github.com/blackfin/av1enc/bitio"

// HDRCLL builds a Metadata OBU payload for sub-type HDR_CLL: a
// metadata_type byte, max_cll, and max_fall (both u(16)).
func HDRCLL(maxCLL, maxFALL uint16) []byte {
	w := bitio.NewWriter()
	w.WriteBits(MetadataHDRCLL, 8)
	w.WriteBits(uint64(maxCLL), 16)
	w.WriteBits(uint64(maxFALL), 16)
	w.TrailingBits()
	b, _ := w.Bytes()
	return b
}

// MDCVParams holds HDR_MDCV's mastering-display-color-volume fields
// (§6): three RGB primary chromaticities, a white point, and luminance
// bounds, all already in their AV1 fixed-point encodings.
type MDCVParams struct {
	PrimariesX, PrimariesY     [3]uint16
	WhitePointX, WhitePointY   uint16
	MaxLuminance, MinLuminance uint32
}

// HDRMDCV builds a Metadata OBU payload for sub-type HDR_MDCV.
func HDRMDCV(m MDCVParams) []byte {
	w := bitio.NewWriter()
	w.WriteBits(MetadataHDRMDCV, 8)
	for i := 0; i < 3; i++ {
		w.WriteBits(uint64(m.PrimariesX[i]), 16)
		w.WriteBits(uint64(m.PrimariesY[i]), 16)
	}
	w.WriteBits(uint64(m.WhitePointX), 16)
	w.WriteBits(uint64(m.WhitePointY), 16)
	w.WriteBits(uint64(m.MaxLuminance), 32)
	w.WriteBits(uint64(m.MinLuminance), 32)
	w.TrailingBits()
	b, _ := w.Bytes()
	return b
}
