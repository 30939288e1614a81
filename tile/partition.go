/*
NAME
  partition.go

DESCRIPTION
  partition.go implements §4.6's partition tree: a 64x64 superblock
  raster scan with recursive descent to 8x8 luma leaves, always
  choosing PARTITION_SPLIT at intermediate levels except where the
  frame edge forces it (only one legal choice, so no symbol is coded).

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package tile

import (
	"github.com/blackfin/av1enc/cdf"
	"github.com/blackfin/av1enc/msac"
)

const (
	partitionNone = iota
	partitionHorz
	partitionVert
	partitionSplit
)

const superblockSize = 64

// LeafFunc is called once per 8x8 luma leaf block, in raster order,
// with its top-left corner and the index of its superblock row (used
// to address TileContext's left-column arrays).
type LeafFunc func(x0, y0, sbRow int)

// WalkPartitions scans a width x height luma plane as a grid of 64x64
// superblocks in raster order, recursively splitting each down to its
// 8x8 leaves (§4.6: this profile always descends to the 8x8/4x4 leaf;
// the only partition decision a decoder needs from the bitstream is
// whether a split is forced by the frame edge or genuinely coded).
// width and height need not be multiples of 8: every leaf this
// function invokes starts inside the plane, but a leaf on the right or
// bottom edge of a non-8-aligned plane extends past it, and the leaf
// callback clamps its reads and writes to the plane.
func WalkPartitions(w *msac.Writer, c *cdf.Context, width, height int, leaf LeafFunc) {
	sbRow := 0
	for y0 := 0; y0 < height; y0 += superblockSize {
		for x0 := 0; x0 < width; x0 += superblockSize {
			descend(w, c, x0, y0, superblockSize, width, height, sbRow, leaf)
		}
		sbRow++
	}
}

func descend(w *msac.Writer, c *cdf.Context, x0, y0, size, width, height, sbRow int, leaf LeafFunc) {
	if x0 >= width || y0 >= height {
		return
	}
	if size == 8 {
		leaf(x0, y0, sbRow)
		return
	}
	fullyInside := x0+size <= width && y0+size <= height
	if fullyInside {
		// The only ambiguous partition decision this profile ever codes:
		// SPLIT is always chosen, but the decoder still needs the symbol
		// since NONE/HORZ/VERT remain legal alternatives at this level.
		w.EncodeSymbol(partitionSplit, c.Partition[0], true)
	}
	half := size / 2
	descend(w, c, x0, y0, half, width, height, sbRow, leaf)
	descend(w, c, x0+half, y0, half, width, height, sbRow, leaf)
	descend(w, c, x0, y0+half, half, width, height, sbRow, leaf)
	descend(w, c, x0+half, y0+half, half, width, height, sbRow, leaf)
}

// WalkPartitionsGeometry runs the same recursive split without a
// bitstream writer, for geometry-only property checks (§8 property 6:
// every leaf lies entirely within the frame).
func WalkPartitionsGeometry(width, height int, leaf func(x0, y0 int)) {
	for y0 := 0; y0 < height; y0 += superblockSize {
		for x0 := 0; x0 < width; x0 += superblockSize {
			descendGeometry(x0, y0, superblockSize, width, height, leaf)
		}
	}
}

func descendGeometry(x0, y0, size, width, height int, leaf func(x0, y0 int)) {
	if x0 >= width || y0 >= height {
		return
	}
	if size == 8 {
		leaf(x0, y0)
		return
	}
	half := size / 2
	descendGeometry(x0, y0, half, width, height, leaf)
	descendGeometry(x0+half, y0, half, width, height, leaf)
	descendGeometry(x0, y0+half, half, width, height, leaf)
	descendGeometry(x0+half, y0+half, half, width, height, leaf)
}
