/*
NAME
  tile.go

DESCRIPTION
  tile.go ties the partition walker, per-leaf block encoder, and
  coefficient coder together into §4.6's top-level tile encode: one
  pass over a frame's partition tree, encoding luma and its co-located
  chroma leaf at each 8x8 block.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package tile

import (
	"github.com/blackfin/av1enc/cdf"
	"github.com/blackfin/av1enc/msac"
	"github.com/blackfin/av1enc/predict"
)

// FrameBuffers bundles one frame's three reconstructed (or, for a
// source frame, original) planes. U/V are half-resolution (4:2:0),
// matching the profile this encoder targets.
type FrameBuffers struct {
	Y, U, V predict.Plane
}

// EncodeTile runs §4.6's tile encoder over one frame: src is the
// original source frame, recon is the buffer this tile writes its
// reconstruction into (already allocated to src's dimensions), and ref
// is the previously reconstructed frame inter prediction searches
// against (nil for an intra-only/key frame). qidx is the frame's
// base_q_idx.
func EncodeTile(w *msac.Writer, c *cdf.Context, qidx int, src, recon, ref *FrameBuffers, maxVal uint16) {
	tc := NewTileContext((src.Y.Width + 7) / 8)
	lastSBRow := -1

	WalkPartitions(w, c, src.Y.Width, src.Y.Height, func(x0, y0, sbRow int) {
		if sbRow != lastSBRow {
			if lastSBRow == -1 {
				tc.ResetTile()
			} else {
				tc.ResetSBRow()
			}
			lastSBRow = sbRow
		}

		mode, inter, mv := EncodeLumaBlock(w, c, qidx, tc, src, recon, ref, x0, y0, sbRow, maxVal)

		// Chroma is co-located at half resolution; this profile's fixed
		// 8x8 luma leaf always maps to exactly one 4x4 chroma leaf, so
		// chroma is encoded once per luma block rather than needing its
		// own partition walk.
		cx0, cy0 := x0/2, y0/2
		var refU, refV predict.Plane
		hasRef := ref != nil
		if hasRef {
			refU, refV = ref.U, ref.V
		}
		EncodeChromaBlock(w, c, qidx, recon.U, src.U, refU, hasRef, cx0, cy0, mode, inter, mv, maxVal)
		EncodeChromaBlock(w, c, qidx, recon.V, src.V, refV, hasRef, cx0, cy0, mode, inter, mv, maxVal)
	})
}
