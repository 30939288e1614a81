/*
NAME
  coeff.go

DESCRIPTION
  coeff.go implements §4.6's coefficient-coding sequence: a txb_skip
  bit, binned EOB position, base tokens with bracket extension, a
  Golomb-coded tail for magnitudes the bracket range can't reach, and
  DC/AC sign bits.

  The Golomb tail's bit shape (count-then-terminate unary prefix,
  followed by a fixed-width suffix) is grounded on the adaptive
  Golomb-Rice coding in other_examples's ALAC decoder
  (internal/alac/golomb.go): that file reads a unary run length then a
  fixed-width remainder off a raw bit reader. This tail instead emits
  through msac.Writer.EncodeBoolEqui, since here the tail rides inside
  the same arithmetic-coded bitstream as every other symbol rather
  than a raw-bit container the way ALAC's frames are; see DESIGN.md.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package tile

import (
	"math/bits"

	"github.com/blackfin/av1enc/cdf"
	"github.com/blackfin/av1enc/msac"
)

// EncodeCoeffs emits one transform block's coefficient payload
// (§4.6 steps 1, 3-8; the transform-type symbol of step 2 is this
// profile's caller's concern, emitted alongside the mode symbols).
// tokens holds txSize*txSize quantized coefficients in scan order
// (quantize.ScanOrder); qctx selects the quantizer-banded CDF set.
func EncodeCoeffs(w *msac.Writer, c *cdf.Context, qctx, txSize int, tokens []int32) {
	eob := -1
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i] != 0 {
			eob = i
			break
		}
	}
	w.EncodeBool(eob < 0, c.TxSkip)
	if eob < 0 {
		return
	}

	eobPlus1 := eob + 1
	bin := eobBinOf(eobPlus1)
	w.EncodeSymbol(bin, c.EOBBin[qctx], true)
	if bin >= 2 {
		nbits := bin - 1
		extra := eobPlus1 - (1 << uint(nbits)) - 1
		hi := (extra >> uint(nbits-1)) & 1
		w.EncodeBool(hi == 1, c.EOBExtra)
		for i := nbits - 2; i >= 0; i-- {
			b := (extra >> uint(i)) & 1
			w.EncodeBoolEqui(b == 1)
		}
	}

	for pos := eob; pos >= 0; pos-- {
		v := tokens[pos]
		mag := v
		if mag < 0 {
			mag = -mag
		}
		base := mag
		if base > cdf.NumBaseLevels-1 {
			base = cdf.NumBaseLevels - 1
		}
		w.EncodeSymbol(int(base), c.BaseToken[qctx], true)
		if base == cdf.NumBaseLevels-1 {
			encodeRange(w, c, qctx, mag)
		}
		if v != 0 {
			if pos == 0 {
				w.EncodeBool(v < 0, c.DCSign)
			} else {
				w.EncodeBoolEqui(v < 0)
			}
		}
	}
}

// golombThreshold is §4.6 step 7's literal cutoff: magnitudes below 15
// are fully represented by the base token plus bracket-token
// extensions; 15 and above fall back to the Golomb tail.
const golombThreshold = 15

// encodeRange emits the bracket-token extension for a magnitude that
// reached the top base-token bucket, routing to the Golomb tail once
// mag reaches golombThreshold.
func encodeRange(w *msac.Writer, c *cdf.Context, qctx int, mag int32) {
	if mag >= golombThreshold {
		rem := int32(golombThreshold - (cdf.NumBaseLevels - 1))
		for rem >= int32(cdf.NumBrSyms-1) {
			w.EncodeSymbol(cdf.NumBrSyms-1, c.BrToken[qctx], true)
			rem -= int32(cdf.NumBrSyms - 1)
		}
		encodeGolombTail(w, int(mag-golombThreshold))
		return
	}
	rem := mag - int32(cdf.NumBaseLevels-1)
	for rem > 0 {
		br := rem
		if br > int32(cdf.NumBrSyms-1) {
			br = int32(cdf.NumBrSyms - 1)
		}
		w.EncodeSymbol(int(br), c.BrToken[qctx], true)
		rem -= br
	}
}

// eobBinOf bins an EOB position (1-based) the way §4.2's eob_pt
// symbols do: bin 0 is eob==1, bin 1 is eob==2, and bin k>=2 covers
// the range [2^(k-1)+1, 2^k], disambiguated by k-1 extra bits.
func eobBinOf(eobPlus1 int) int {
	if eobPlus1 <= 1 {
		return 0
	}
	b := bits.Len(uint(eobPlus1 - 1))
	if b > cdf.EOBBins-1 {
		b = cdf.EOBBins - 1
	}
	return b
}

// encodeGolombTail emits v (v >= 0) as a unary length prefix (v+1's
// bit length, minus one, as "continue" bits terminated by a "stop"
// bit) followed by v+1's bits below the leading one — the same
// prefix-then-suffix shape as the ALAC golomb tail this is grounded
// on, reimplemented over equiprobable arithmetic-coded bits rather
// than a raw bit writer.
func encodeGolombTail(w *msac.Writer, v int) {
	x := v + 1
	length := bits.Len(uint(x))
	for i := 0; i < length-1; i++ {
		w.EncodeBoolEqui(true)
	}
	w.EncodeBoolEqui(false)
	for i := length - 2; i >= 0; i-- {
		b := (x >> uint(i)) & 1
		w.EncodeBoolEqui(b == 1)
	}
}
