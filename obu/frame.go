/*
NAME
  frame.go

DESCRIPTION
  frame.go builds the Frame OBU's uncompressed header (§4.8): frame
  type and refresh signaling, base_q_idx, the derived loop-filter
  levels, and the fixed tx_mode/tile-layout fields this profile always
  uses. The tile encoder's coded coefficient bitstream (from package
  tile) is appended after this header to form the complete Frame OBU
  payload; that concatenation is done by the scheduler package, not
  this one.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package obu

import "github.com/blackfin/av1enc/bitio"

// FrameType names §4.7's frame_type field (SWITCH_FRAME exists in the
// real bitstream enum but this profile never emits it).
type FrameType int

const (
	KeyFrame FrameType = iota
	InterFrame
)

// loopFilterLevel derives Y/UV loop filter strength from base_q_idx
// with a monotonic closed-form curve (§4.8: "scaled from qidx via a
// table"). As with quantize.Step's dequant curve, the literal AV1
// reference table is dozens of entries this implementation cannot
// transcribe from memory without a way to validate them; what matters
// for this encoder (which never runs an actual in-loop deblock filter
// — §1's scope names reconstruction and entropy coding, not the loop
// filter itself) is that the signaled level is a plausible, monotonic
// function of qidx, not a bit-exact match to the reference table.
func loopFilterLevel(qidx int) (y, uv uint64) {
	lvl := qidx / 8
	if lvl > 63 {
		lvl = 63
	}
	return uint64(lvl), uint64(lvl)
}

// FrameHeader holds the per-frame fields this profile's uncompressed
// frame header signals (§4.7/§4.8).
type FrameHeader struct {
	Type               FrameType
	ShowFrame          bool
	ShowExistingFrame  bool
	FrameToShowMapIdx  int // valid only when ShowExistingFrame
	DisableCDFUpdate   bool
	ErrorResilientMode bool
	BaseQIdx           int
	RefreshFrameFlags  byte
	RefFrameIdx        int // LAST_FRAME's slot index, inter frames only
}

// Build packs the frame header fields in §4.7/§4.8's order, byte-
// aligning at the end so the following tile bitstream starts on a
// byte boundary.
func (f FrameHeader) Build() []byte {
	w := bitio.NewWriter()

	if f.ShowExistingFrame {
		w.WriteBit(true)
		w.WriteBits(uint64(f.FrameToShowMapIdx), 3)
		w.TrailingBits()
		b, _ := w.Bytes()
		return b
	}
	w.WriteBit(false) // show_existing_frame = 0

	w.WriteBits(uint64(f.Type), 2)
	w.WriteBit(f.ShowFrame)
	if !f.ShowFrame {
		w.WriteBit(false) // showable_frame = 0 (hidden P is not used as a future ref by anything but the scheduler's own re-issue)
	}
	w.WriteBit(f.ErrorResilientMode)
	w.WriteBit(f.DisableCDFUpdate)
	w.WriteBit(false) // frame_size_override_flag = 0
	w.WriteBit(false) // render_and_frame_size_different = 0

	w.WriteBit(true) // primary_ref_frame == PRIMARY_REF_NONE, signaled as "no ref CDF" path
	w.WriteBits(uint64(f.RefreshFrameFlags), 8)

	if f.Type == InterFrame {
		w.WriteBits(uint64(f.RefFrameIdx), 3)
		w.WriteBits(0, 2) // interpolation_filter = EIGHTTAP (0)
	}

	w.WriteBits(uint64(f.BaseQIdx), 8)
	w.WriteBit(false) // delta_q_y_dc present = 0
	w.WriteBit(false) // diff_uv_delta = 0 (delta_q_u_dc/ac, delta_q_v_dc/ac all absent)
	w.WriteBit(false) // using_qmatrix = 0
	w.WriteBit(false) // segmentation_enabled = 0
	w.WriteBit(false) // delta_q_present = 0

	yLevel, uvLevel := loopFilterLevel(f.BaseQIdx)
	w.WriteBits(yLevel, 6)
	w.WriteBits(uvLevel, 6)
	w.WriteBits(uvLevel, 6)
	w.WriteBits(0, 3) // loop_filter_sharpness = 0

	w.WriteBit(true)  // loop_filter_delta_enabled = 1
	w.WriteBit(false) // loop_filter_delta_update = 0

	w.WriteBits(1, 2) // tx_mode = TX_MODE_LARGEST

	w.WriteBit(true) // uniform_tile_spacing_flag = 1 (single tile, so no further tile-column/row fields)

	w.TrailingBits()
	b, _ := w.Bytes()
	return b
}
