/*
NAME
  context.go

DESCRIPTION
  context.go implements the per-tile neighbor-array scratch state §4.6
  names: above-row and left-column mode/skip/motion-vector entries the
  partition walker and per-leaf block encoder read and update as they
  scan a tile in raster order. Pixel neighbors are read directly off
  the frame's reconstructed plane (already-encoded raster order
  guarantees they're valid); this struct only tracks the per-block
  metadata a decoder would need to rebuild the same contexts.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

// Package tile implements AV1's tile encoder: the partition tree walk
// over 64x64 superblocks, per-leaf-block mode decision and
// reconstruction, and the coefficient-coding bitstream sequence.
package tile

import "github.com/blackfin/av1enc/predict"

// TileContext holds the above-row and left-column neighbor metadata
// for one tile, indexed in 8x8 luma block units (this profile's fixed
// leaf size). Above arrays span the full tile width; Left arrays span
// one superblock row and are reset at each superblock-row boundary,
// mirroring the decoder's refmvs/above-context buffer lifetime.
type TileContext struct {
	blockCols int

	AboveYMode []predict.Mode
	LeftYMode  []predict.Mode
	AboveSkip  []bool
	LeftSkip   []bool
	AboveMV    []predict.MotionVector
	LeftMV     []predict.MotionVector
	AboveInter []bool
	LeftInter  []bool

	AboveValid []bool
	LeftValid  []bool
}

// NewTileContext allocates a TileContext sized for a tile blockCols
// 8x8 blocks wide.
func NewTileContext(blockCols int) *TileContext {
	tc := &TileContext{blockCols: blockCols}
	tc.AboveYMode = make([]predict.Mode, blockCols)
	tc.AboveSkip = make([]bool, blockCols)
	tc.AboveMV = make([]predict.MotionVector, blockCols)
	tc.AboveInter = make([]bool, blockCols)
	tc.AboveValid = make([]bool, blockCols)
	tc.ResetSBRow()
	return tc
}

// ResetTile clears the above-row arrays at the start of a tile (§4.6:
// no neighbor is available for the tile's first superblock row).
func (tc *TileContext) ResetTile() {
	for i := range tc.AboveValid {
		tc.AboveValid[i] = false
	}
	tc.ResetSBRow()
}

// ResetSBRow clears the left-column arrays at the start of each
// superblock row, sized to one superblock's worth of 8x8 rows (8).
func (tc *TileContext) ResetSBRow() {
	const sbBlocks = 8
	tc.LeftYMode = make([]predict.Mode, sbBlocks)
	tc.LeftSkip = make([]bool, sbBlocks)
	tc.LeftMV = make([]predict.MotionVector, sbBlocks)
	tc.LeftInter = make([]bool, sbBlocks)
	tc.LeftValid = make([]bool, sbBlocks)
}

// Update records the coded mode/skip/MV of the 8x8 block at (bx, by)
// (block-grid units, by relative to the current superblock row) into
// both the above and left arrays, the way a decoder would splat the
// block's right edge and bottom edge into its neighbor buffers.
func (tc *TileContext) Update(bx, byInRow int, mode predict.Mode, skip, inter bool, mv predict.MotionVector) {
	tc.AboveYMode[bx] = mode
	tc.AboveSkip[bx] = skip
	tc.AboveMV[bx] = mv
	tc.AboveInter[bx] = inter
	tc.AboveValid[bx] = true

	tc.LeftYMode[byInRow] = mode
	tc.LeftSkip[byInRow] = skip
	tc.LeftMV[byInRow] = mv
	tc.LeftInter[byInRow] = inter
	tc.LeftValid[byInRow] = true
}
