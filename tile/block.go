/*
NAME
  block.go

DESCRIPTION
  block.go implements §4.6's per-leaf-block encoding sequence for both
  intra and inter blocks: neighbor-edge gathering, RD-based mode (and,
  where allowed, intra/inter) decision, transform-type RD search,
  symbol emission, reconstruction, and neighbor-array update.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package tile

import (
	"github.com/blackfin/av1enc/cdf"
	"github.com/blackfin/av1enc/motion"
	"github.com/blackfin/av1enc/msac"
	"github.com/blackfin/av1enc/predict"
	"github.com/blackfin/av1enc/quantize"
	"github.com/blackfin/av1enc/transform"
)

// intraModes is the fixed candidate set the Y-mode RD search scans
// (§4.4's six production paths plus Paeth).
var intraModes = []predict.Mode{
	predict.ModeDC, predict.ModeV, predict.ModeH,
	predict.ModeSmooth, predict.ModeSmoothV, predict.ModeSmoothH,
	predict.ModePaeth,
}

var interTxSet = []transform.Pair{transform.DCT_DCT, transform.IDTX}

var intraPairIndex = map[transform.Pair]int{
	transform.DCT_DCT:   0,
	transform.IDTX:      1,
	transform.ADST_ADST: 2,
	transform.ADST_DCT:  3,
	transform.DCT_ADST:  4,
}

var interPairIndex = map[transform.Pair]int{
	transform.DCT_DCT: 0,
	transform.IDTX:    1,
}

// lambdaFor derives the RD Lagrangian from the AC dequant step (§9:
// "lambda = (ac_dq^2) >> 2"), shared by the luma and chroma RD loops.
func lambdaFor(acDq int32) int64 {
	return int64(acDq) * int64(acDq) >> 2
}

// candidate is one RD-evaluated (prediction, transform) outcome.
type candidate struct {
	pair   transform.Pair
	tokens []int32
	recon  [][]uint16
	cost   int64
}

// rdResidual tries every pair in pairs against orig/pred, quantizing
// with (dcDq, acDq) and scoring sse + lambda*nonzeroCount, returning
// the cheapest.
func rdResidual(orig, pred [][]uint16, size int, dcDq, acDq int32, pairs []transform.Pair, lambda int64, maxVal uint16) candidate {
	n := size
	resid := make([][]int32, n)
	for r := 0; r < n; r++ {
		resid[r] = make([]int32, n)
		for c := 0; c < n; c++ {
			resid[r][c] = int32(orig[r][c]) - int32(pred[r][c])
		}
	}
	scan := quantize.ScanOrder(n)

	best := candidate{cost: -1}
	for _, pair := range pairs {
		coefRaster := transform.Forward2D(pair, resid)
		tokens := make([]int32, n*n)
		nz := 0
		for i, pos := range scan {
			r, c := pos/n, pos%n
			dq := acDq
			if pos == 0 {
				dq = dcDq
			}
			tok := quantize.Quantize(coefRaster[r][c], dq)
			tokens[i] = tok
			if tok != 0 {
				nz++
			}
		}
		deqRaster := make([][]int32, n)
		for r := range deqRaster {
			deqRaster[r] = make([]int32, n)
		}
		for i, pos := range scan {
			r, c := pos/n, pos%n
			dq := acDq
			if pos == 0 {
				dq = dcDq
			}
			deqRaster[r][c] = quantize.Dequantize(tokens[i], dq, n)
		}
		residRecon := transform.Inverse2D(pair, deqRaster)

		recon := make([][]uint16, n)
		var sse int64
		for r := 0; r < n; r++ {
			recon[r] = make([]uint16, n)
			for c := 0; c < n; c++ {
				v := int32(pred[r][c]) + residRecon[r][c]
				if v < 0 {
					v = 0
				}
				if v > int32(maxVal) {
					v = int32(maxVal)
				}
				recon[r][c] = uint16(v)
				d := int64(orig[r][c]) - int64(recon[r][c])
				sse += d * d
			}
		}
		cost := sse + lambda*int64(nz)
		if best.cost < 0 || cost < best.cost {
			best = candidate{pair: pair, tokens: tokens, recon: recon, cost: cost}
		}
	}
	return best
}

// samp reads a clamped sample from a reconstructed plane.
func samp(p predict.Plane, x, y int) uint16 {
	if x < 0 {
		x = 0
	}
	if x >= p.Width {
		x = p.Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= p.Height {
		y = p.Height - 1
	}
	return p.Pix[y*p.Width+x]
}

// gatherEdges reads a size x size leaf's above row, left column, and
// corner sample from a reconstructed plane, replicating a neutral
// placeholder where a neighbor isn't available (frame edge), matching
// predict.Edges' documented edge-extension contract.
func gatherEdges(p predict.Plane, x0, y0, size int, maxVal uint16) predict.Edges {
	hasAbove := y0 > 0
	hasLeft := x0 > 0
	fill := (maxVal + 1) / 2

	above := make([]uint16, size)
	if hasAbove {
		for c := 0; c < size; c++ {
			above[c] = samp(p, x0+c, y0-1)
		}
	} else {
		for c := range above {
			above[c] = fill
		}
	}
	left := make([]uint16, size)
	if hasLeft {
		for r := 0; r < size; r++ {
			left[r] = samp(p, x0-1, y0+r)
		}
	} else {
		for r := range left {
			left[r] = fill
		}
	}
	corner := fill
	switch {
	case hasAbove && hasLeft:
		corner = samp(p, x0-1, y0-1)
	case hasAbove:
		corner = above[0]
	case hasLeft:
		corner = left[0]
	}
	return predict.Edges{Above: above, Left: left, Corner: corner, HasAbove: hasAbove, HasLeft: hasLeft}
}

func readBlock(p predict.Plane, x0, y0, size int) [][]uint16 {
	b := make([][]uint16, size)
	for r := 0; r < size; r++ {
		b[r] = make([]uint16, size)
		for c := 0; c < size; c++ {
			b[r][c] = samp(p, x0+c, y0+r)
		}
	}
	return b
}

// writeBlock stores a reconstructed leaf into p, clamping like samp
// does: a leaf that starts inside the frame but extends past its
// right or bottom edge (an odd width/height not a multiple of 8) has
// its out-of-frame rows/columns dropped rather than indexed.
func writeBlock(p predict.Plane, x0, y0 int, block [][]uint16) {
	size := len(block)
	for r := 0; r < size; r++ {
		y := y0 + r
		if y < 0 || y >= p.Height {
			continue
		}
		for c := 0; c < size; c++ {
			x := x0 + c
			if x < 0 || x >= p.Width {
				continue
			}
			p.Pix[y*p.Width+x] = block[r][c]
		}
	}
}

// yModeContext combines the above/left neighbor mode classes the way
// §4.2's Y-mode context does, clamped into cdf.Context.YMode's 5-entry
// fan-out.
func yModeContext(tc *TileContext, bx, byInRow int) int {
	ctx := 0
	if tc.AboveValid[bx] {
		ctx += predict.ModeContext(tc.AboveYMode[bx])
	}
	if tc.LeftValid[byInRow] {
		ctx += predict.ModeContext(tc.LeftYMode[byInRow])
	}
	ctx /= 2
	if ctx > 4 {
		ctx = 4
	}
	return ctx
}

// EncodeLumaBlock runs §4.6's per-leaf sequence for an 8x8 luma block
// at (x0, y0): RD mode decision (intra, and inter when ref != nil),
// transform-type RD search, symbol emission, reconstruction, and
// TileContext update. Returns the chosen mode, inter flag, and MV (for
// the caller's chroma block and motion-vector-prediction bookkeeping).
func EncodeLumaBlock(w *msac.Writer, c *cdf.Context, qidx int, tc *TileContext, src, recon, ref *FrameBuffers, x0, y0, sbRow int, maxVal uint16) (mode predict.Mode, inter bool, mv predict.MotionVector) {
	const size = 8
	bx, byInRow := x0/size, (y0-sbRow*superblockSize)/size
	qctx := cdf.QCtx(qidx)
	dcDq, acDq := quantize.Step(qidx)
	lambda := lambdaFor(acDq)

	orig := readBlock(src.Y, x0, y0, size)
	edges := gatherEdges(recon.Y, x0, y0, size, maxVal)

	var bestIntraMode predict.Mode
	bestIntra := candidate{cost: -1}
	for _, m := range intraModes {
		pred := predict.Predict(m, size, edges, maxVal)
		cand := rdResidual(orig, pred, size, dcDq, acDq, transform.ReducedIntraSet, lambda, maxVal)
		if bestIntra.cost < 0 || cand.cost < bestIntra.cost {
			bestIntra, bestIntraMode = cand, m
		}
	}

	useInter := false
	var bestInter candidate
	var bestMV predict.MotionVector
	if ref != nil {
		bestMV = motion.Search(src.Y, ref.Y, x0, y0)
		predBlk := predict.CompensatedBlock(ref.Y, x0, y0, size, bestMV, true, maxVal)
		bestInter = rdResidual(orig, predBlk, size, dcDq, acDq, interTxSet, lambda, maxVal)
		if bestInter.cost >= 0 && bestInter.cost < bestIntra.cost {
			useInter = true
		}
	}

	w.EncodeBool(useInter, c.IsInter)

	var chosen candidate
	if useInter {
		chosen = bestInter
		mode, inter, mv = predict.ModeDC, true, bestMV
		w.EncodeSymbol(interPairIndex[chosen.pair], c.TxType[1], true)
		EncodeInterMode(w, c, tc, bx, byInRow, bestMV)
	} else {
		chosen = bestIntra
		mode, inter = bestIntraMode, false
		ctx := yModeContext(tc, bx, byInRow)
		w.EncodeSymbol(int(mode), c.YMode[ctx], true)
		w.EncodeSymbol(intraPairIndex[chosen.pair], c.TxType[0], true)
	}

	EncodeCoeffs(w, c, qctx, size, chosen.tokens)
	writeBlock(recon.Y, x0, y0, chosen.recon)

	skip := true
	for _, t := range chosen.tokens {
		if t != 0 {
			skip = false
			break
		}
	}
	tc.Update(bx, byInRow, mode, skip, inter, mv)
	return mode, inter, mv
}

// EncodeChromaBlock runs the simplified chroma leaf sequence: same
// mode class as the co-located luma block (no independent UV-mode RD
// search or chroma-from-luma prediction in this profile — see
// DESIGN.md), a single DCT_DCT transform, and reconstruction.
func EncodeChromaBlock(w *msac.Writer, c *cdf.Context, qidx int, plane predict.Plane, srcPlane predict.Plane, refPlane predict.Plane, hasRef bool, cx0, cy0 int, mode predict.Mode, inter bool, mv predict.MotionVector, maxVal uint16) {
	const size = 4
	qctx := cdf.QCtx(qidx)
	dcDq, acDq := quantize.Step(qidx)
	lambda := lambdaFor(acDq)

	orig := readBlock(srcPlane, cx0, cy0, size)

	var pred [][]uint16
	if inter && hasRef {
		chromaMV := predict.MotionVector{Row: mv.Row >> 1, Col: mv.Col >> 1}
		pred = predict.CompensatedBlock(refPlane, cx0, cy0, size, chromaMV, false, maxVal)
	} else {
		edges := gatherEdges(plane, cx0, cy0, size, maxVal)
		pred = predict.Predict(mode, size, edges, maxVal)
	}

	cand := rdResidual(orig, pred, size, dcDq, acDq, []transform.Pair{transform.DCT_DCT}, lambda, maxVal)

	w.EncodeSymbol(int(mode), c.UVMode[0], true)
	EncodeCoeffs(w, c, qctx, size, cand.tokens)
	writeBlock(plane, cx0, cy0, cand.recon)
}
