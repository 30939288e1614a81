/*
NAME
  cdf.go

DESCRIPTION
  cdf holds the default probability tables and the adaptive CDF
  context (§3 CDFContext, §4.2) used by the tile encoder. Table files
  in this package follow the "big constant table plus a small
  accessor" layout of codec/h264/h264dec/rangetablps.go and
  statetransxtab.go; the values themselves are AV1's own defaults,
  not H.264's (CABAC's range/state tables cover a different, smaller
  state machine and supplied layout grounding only).

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

// Package cdf holds av1enc's default CDF tables and the per-session
// adaptive CDF context.
package cdf

import "github.com/blackfin/av1enc/msac"

// QCtxBands is the number of quantizer-class bands coefficient CDFs
// are selected from (§4.2).
const QCtxBands = 4

// QCtx maps a base_q_idx to its coefficient-CDF band.
func QCtx(qidx int) int {
	switch {
	case qidx <= 20:
		return 0
	case qidx <= 60:
		return 1
	case qidx <= 120:
		return 2
	default:
		return 3
	}
}

// Symbol-group alphabet sizes this profile exercises (§4.2, §4.4).
const (
	NumPartitionTypes = 4 // NONE, HORZ, VERT, SPLIT (this profile never reaches HORZ/VERT at the forced-split levels, but the symbol exists at the leaf)
	NumYModes         = 13
	NumUVModes        = 14 // 13 intra modes + CFL
	NumTxTypes        = 16
	EOBBins           = 11 // covers eob_bin_16 .. eob_bin_1024
	NumBaseLevels     = 4  // ZERO, ONE, TWO, THREE-OR-MORE
	NumBrSyms         = 4  // bracket-token extension, coeff_base_range
	NumMVJoints       = 4
	NumMVClasses      = 11
	NumDRLContexts    = 3 // motion.DRLContext's {0,1,2}; the DRL symbol itself is a bool
)

// Context holds every adaptive CDF array used by one session, reset
// before every coded frame (§3 EncoderState, §4.5). Arrays are indexed
// [qctx] for coefficient groups (banded by quantizer class) or flat
// for the rest, per the symbol-group context shapes named in §4.2.
// Y mode keeps a 5-entry neighbor-context fan-out; other
// per-neighbor-context fan-out (e.g. partition context by above/left
// split depth) is collapsed to one representative context in this
// profile, and the tile encoder codes partitions with Partition[0];
// §9 leaves finer per-context fan-out as an acknowledged
// simplification rather than an open question requiring a decision.
type Context struct {
	Partition [QCtxBands]msac.Cdf

	Skip    msac.Cdf
	IsInter msac.Cdf

	YMode  [5]msac.Cdf // indexed by predict.ModeContext's combined above/left class
	UVMode [2]msac.Cdf // indexed by CFL-allowed

	TxSkip msac.Cdf
	TxType [2]msac.Cdf // indexed by {intra, inter}

	EOBBin     [QCtxBands]msac.Cdf
	EOBExtra   msac.Cdf
	BaseToken  [QCtxBands]msac.Cdf
	BrToken    [QCtxBands]msac.Cdf
	DCSign     msac.Cdf

	MVJoint msac.Cdf
	MVClass [2]msac.Cdf // indexed by component (row, col)
	MVClass0 [2]msac.Cdf
	MVFrac   [2]msac.Cdf

	DRL     [NumDRLContexts]msac.Cdf
	NewMV   msac.Cdf
	ZeroMV  msac.Cdf
	RefMV   msac.Cdf
}

// New builds a Context from the compiled-in defaults.
func New() *Context {
	c := &Context{}
	c.Reset()
	return c
}

// Reset restores every CDF in c to its compiled-in default and zeroes
// all adaptation counts, as the scheduler does before every coded
// frame (§4.5).
func (c *Context) Reset() {
	for i := 0; i < QCtxBands; i++ {
		c.Partition[i] = msac.NewCdf(defaultPartition)
		c.EOBBin[i] = msac.NewCdf(defaultEOBBin)
		c.BaseToken[i] = msac.NewCdf(defaultBaseToken)
		c.BrToken[i] = msac.NewCdf(defaultBrToken)
	}
	c.Skip = msac.NewCdf(defaultSkip)
	c.IsInter = msac.NewCdf(defaultEqui2)
	for i := range c.YMode {
		c.YMode[i] = msac.NewCdf(defaultYMode)
	}
	c.UVMode[0] = msac.NewCdf(defaultUVModeNoCFL)
	c.UVMode[1] = msac.NewCdf(defaultUVModeCFL)
	c.TxSkip = msac.NewCdf(defaultTxSkip)
	c.TxType[0] = msac.NewCdf(defaultTxTypeIntra)
	c.TxType[1] = msac.NewCdf(defaultTxTypeInter)
	c.EOBExtra = msac.NewCdf(defaultEqui2)
	c.DCSign = msac.NewCdf(defaultDCSign)

	c.MVJoint = msac.NewCdf(defaultMVJoint)
	for i := 0; i < 2; i++ {
		c.MVClass[i] = msac.NewCdf(defaultMVClass)
		c.MVClass0[i] = msac.NewCdf(defaultMVClass0)
		c.MVFrac[i] = msac.NewCdf(defaultMVFrac)
	}
	for i := range c.DRL {
		c.DRL[i] = msac.NewCdf(defaultEqui2)
	}
	c.NewMV = msac.NewCdf(defaultEqui2)
	c.ZeroMV = msac.NewCdf(defaultEqui2)
	c.RefMV = msac.NewCdf(defaultEqui2)
}
