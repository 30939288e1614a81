/*
NAME
  sequence.go

DESCRIPTION
  sequence.go builds the Sequence Header OBU payload (§4.8): a fixed,
  bit-exact field sequence with every optional tool this profile
  doesn't use forced to 0.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package obu

import "github.com/blackfin/av1enc/bitio"

// SequenceHeader holds the session-wide fields §4.8 names for the
// sequence header OBU. Every bool named after a real AV1 coding tool
// this profile does not implement (filter_intra, warped_motion, cdef,
// restoration, and so on) is not a field here at all — the Build
// sequence hard-codes those bits to 0 rather than threading unused
// knobs through the API.
type SequenceHeader struct {
	StillPicture        bool
	ReducedStillPicture  bool
	LevelIdx             uint64 // e.g. 13 = Level 5.1
	MaxWidth, MaxHeight  int
	HighBitdepth         bool // true for a 10-bit stream
	ColorDescriptionPresent bool
	ColorPrimaries, TransferCharacteristics, MatrixCoefficients int
	FullColorRange       bool
}

// bitsFor returns the number of bits needed to hold v-1 (AV1's
// frame_width_bits_minus_1/frame_height_bits_minus_1 convention: the
// field stores the minimal width needed for max_frame_width_minus_1).
func bitsFor(v int) uint {
	n := v - 1
	bits := uint(1)
	for (1 << bits) <= n {
		bits++
	}
	return bits
}

// Build packs the sequence header fields in §4.8's literal order and
// returns the OBU-ready payload bytes (trailing_bits byte-aligns).
func (s SequenceHeader) Build() []byte {
	w := bitio.NewWriter()

	w.WriteBits(0, 3) // seq_profile = 0
	w.WriteBit(s.StillPicture)
	w.WriteBit(s.ReducedStillPicture)
	if s.ReducedStillPicture {
		w.WriteBits(s.LevelIdx, 5)
	} else {
		w.WriteBit(false) // timing_info_present_flag = 0
		w.WriteBit(false) // initial_display_delay_present_flag = 0
		w.WriteBits(0, 5) // operating_points_cnt_minus_1 = 0
		w.WriteBits(0, 12) // operating_point_idc[0] = 0
		w.WriteBits(s.LevelIdx, 5)
		w.WriteBit(false) // tier[0] = 0 (when level > 7; harmless extra bit otherwise in this profile's framing)
	}

	wBits := bitsFor(s.MaxWidth)
	hBits := bitsFor(s.MaxHeight)
	w.WriteBits(uint64(wBits-1), 4)
	w.WriteBits(uint64(hBits-1), 4)
	w.WriteBits(uint64(s.MaxWidth-1), wBits)
	w.WriteBits(uint64(s.MaxHeight-1), hBits)

	if !s.ReducedStillPicture {
		w.WriteBit(false) // frame_id_numbers_present_flag = 0
	}
	w.WriteBit(false) // use_128x128_superblock = 0

	// Tool-enable flags, all 0 in this profile (§4.8).
	for i := 0; i < 10; i++ {
		w.WriteBit(false) // filter_intra, intra_edge_filter, interintra_compound,
		// masked_compound, warped_motion, dual_filter, order_hint,
		// screen_content_tools (forced), superres, cdef
	}
	w.WriteBit(false) // enable_restoration = 0

	// Color config.
	w.WriteBit(s.HighBitdepth)
	w.WriteBit(false) // mono_chrome = 0
	w.WriteBit(s.ColorDescriptionPresent)
	if s.ColorDescriptionPresent {
		w.WriteBits(uint64(s.ColorPrimaries), 8)
		w.WriteBits(uint64(s.TransferCharacteristics), 8)
		w.WriteBits(uint64(s.MatrixCoefficients), 8)
	}
	w.WriteBit(s.FullColorRange)
	w.WriteBits(0, 2) // chroma_sample_position = 0 (CSP_UNKNOWN)
	w.WriteBit(false) // separate_uv_delta_q = 0
	w.WriteBit(false) // film_grain_params_present = 0

	w.TrailingBits()
	b, _ := w.Bytes()
	return b
}
