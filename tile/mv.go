/*
NAME
  mv.go

DESCRIPTION
  mv.go implements §4.5's inter mode decision and MV encoding: the
  NEWMV/GLOBALMV bool pair, a fixed DRL index 0, and the MV residual
  (mv - pred_mv) per component, binned the same class/extra-bits shape
  coeff.go's EOB position uses (top symbol via an adaptive CDF, the
  remaining magnitude bits raw equiprobable).

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package tile

import (
	"github.com/blackfin/av1enc/cdf"
	"github.com/blackfin/av1enc/motion"
	"github.com/blackfin/av1enc/msac"
	"github.com/blackfin/av1enc/predict"
)

// gatherMVNeighbors collects the fixed-order spatial candidates §4.5's
// MV prediction scans: top row x2 (this block's above entry and the
// one to its right), left column x2 (this block's left entry and the
// one below it), then the top-right corner — at this profile's 8x8
// block granularity, the nearest TileContext has. Top row and left
// column entries carry a higher base weight than the top-right corner
// (mirrors motion.Neighbor's documented weighting).
func gatherMVNeighbors(tc *TileContext, bx, byInRow int) []motion.Neighbor {
	var ns []motion.Neighbor
	add := func(valid bool, mv predict.MotionVector, inter bool, weight int) {
		if valid {
			ns = append(ns, motion.Neighbor{MV: mv, SameRef: inter, BaseWeight: weight})
		}
	}
	if bx < len(tc.AboveValid) {
		add(tc.AboveValid[bx], tc.AboveMV[bx], tc.AboveInter[bx], 2)
	}
	if bx+1 < len(tc.AboveValid) {
		add(tc.AboveValid[bx+1], tc.AboveMV[bx+1], tc.AboveInter[bx+1], 2)
	}
	if byInRow < len(tc.LeftValid) {
		add(tc.LeftValid[byInRow], tc.LeftMV[byInRow], tc.LeftInter[byInRow], 2)
	}
	if byInRow+1 < len(tc.LeftValid) {
		add(tc.LeftValid[byInRow+1], tc.LeftMV[byInRow+1], tc.LeftInter[byInRow+1], 2)
	}
	if bx+1 < len(tc.AboveValid) {
		add(tc.AboveValid[bx+1], tc.AboveMV[bx+1], tc.AboveInter[bx+1], 1)
	}
	return ns
}

// EncodeInterMode runs §4.5's mode decision for an inter block: GLOBALMV
// when the searched MV is zero, else NEWMV with a fixed DRL index 0 and
// the MV residual against the predicted candidate. tc's above/left MV
// neighbors must already reflect this block's spatial predecessors.
func EncodeInterMode(w *msac.Writer, c *cdf.Context, tc *TileContext, bx, byInRow int, mv predict.MotionVector) {
	cands := motion.PredictMV(gatherMVNeighbors(tc, bx, byInRow))
	predMV := cands[0].MV
	isZero := mv.Row == 0 && mv.Col == 0

	w.EncodeBool(!isZero, c.NewMV)
	if isZero {
		w.EncodeBool(true, c.ZeroMV)
		return
	}

	drlCtx := motion.DRLContext(cands, 0)
	// This profile's motion search never chases a second DRL candidate,
	// so the index-0 stop bit is always false (continue past index 0
	// would select a higher ref_mv_idx this encoder never uses).
	w.EncodeBool(false, c.DRL[drlCtx])

	encodeMVResidual(w, c, predMV, mv)
}

// encodeMVResidual emits mv_joint followed by each nonzero component's
// class/extra-bits/fraction/sign, mirroring the decoder's mv_component
// syntax at this profile's reduced precision.
func encodeMVResidual(w *msac.Writer, c *cdf.Context, pred, mv predict.MotionVector) {
	dRow := mv.Row - pred.Row
	dCol := mv.Col - pred.Col

	joint := 0
	if dRow != 0 {
		joint |= 1
	}
	if dCol != 0 {
		joint |= 2
	}
	w.EncodeSymbol(joint, c.MVJoint, true)

	if dRow != 0 {
		encodeMVComponent(w, c, 0, dRow)
	}
	if dCol != 0 {
		encodeMVComponent(w, c, 1, dCol)
	}
}

// encodeMVComponent encodes one signed component of an MV residual, in
// 1/8-pel units: a sign bit, a class symbol binning the component's
// magnitude above its low 2 bits (mag>>2, in half-pel steps) the way
// coeff.go's eobBinOf bins EOB
// position, class-0's single disambiguating bit, raw extra bits for
// larger classes, and a 4-way fractional-pel symbol for the low 2 bits.
func encodeMVComponent(w *msac.Writer, c *cdf.Context, comp int, d int) {
	sign := d < 0
	mag := d
	if sign {
		mag = -mag
	}
	w.EncodeBoolEqui(sign)

	intPart := mag >> 2
	frac := mag & 3

	class := mvClassOf(intPart)
	w.EncodeSymbol(class, c.MVClass[comp], true)
	if class == 0 {
		w.EncodeBool(intPart == 1, c.MVClass0[comp])
	} else {
		extra := intPart - (1 << uint(class-1))
		for i := class - 2; i >= 0; i-- {
			b := (extra >> uint(i)) & 1
			w.EncodeBoolEqui(b == 1)
		}
	}
	w.EncodeSymbol(frac, c.MVFrac[comp], true)
}

// mvClassOf bins a non-negative magnitude (in half-pel steps) into one
// of cdf.NumMVClasses classes: class 0 covers {0, 1} (disambiguated by
// a single MVClass0 bit); class k>=2 covers [2^(k-1), 2^k - 1]; class 1
// is never returned.
func mvClassOf(v int) int {
	if v <= 1 {
		return 0
	}
	bitLen := 0
	for t := v; t > 0; t >>= 1 {
		bitLen++
	}
	if bitLen > cdf.NumMVClasses-1 {
		bitLen = cdf.NumMVClasses - 1
	}
	return bitLen
}
