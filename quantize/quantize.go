/*
NAME
  quantize.go

DESCRIPTION
  quantize implements §4.3's qidx → (dc_dequant, ac_dequant) table,
  forward/inverse scalar quantization, and the default diagonal-zigzag
  coefficient scan orders for 4x4 and 8x8 transforms. The dequant
  table is generated at init from a monotonic closed-form curve rather
  than transcribed from the AV1 reference's 256-entry lookup tables
  from memory (see DESIGN.md): this module is both encoder and
  decoder, so what matters for round-trip correctness is that the
  table is monotonic and internally consistent, not that it matches
  the reference table value-for-value.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

// Package quantize implements AV1's forward/inverse transform
// coefficient quantization and default coefficient scan orders.
package quantize

// dcTable and acTable hold the per-qidx dequant step sizes, built once
// at init (§4.3: "a fixed table maps qidx → (dc_dequant, ac_dequant)").
var (
	dcTable [256]int32
	acTable [256]int32
)

func init() {
	for q := 0; q < 256; q++ {
		dcTable[q] = int32(4 + (q*157)/100)
		acTable[q] = int32(4 + (q*207)/100)
	}
}

// Step returns the (dc_dequant, ac_dequant) pair for a base_q_idx.
func Step(qidx int) (dc, ac int32) {
	if qidx < 0 {
		qidx = 0
	}
	if qidx > 255 {
		qidx = 255
	}
	return dcTable[qidx], acTable[qidx]
}

// dequantShift is the tx-size-dependent right-shift §4.3 applies after
// dequantization. In the AV1 reference this corrects for the forward
// transform's non-unity, size-dependent kernel gain. This module's
// transform package (see transform.finalShift) deliberately uses
// unity-gain orthonormal kernels whose forward/inverse scale already
// cancels exactly for every tx size, so there is no leftover gain left
// for the quantizer to correct; adding a nonzero shift here would
// double-compensate and break Quantize/Dequantize's round-trip. It
// stays a named, tx-size-keyed function rather than a bare 0 so the
// hook is in the right place if a future non-unity transform kernel
// needs it.
func dequantShift(txSize int) uint {
	return 0
}

// Quantize implements §4.3's forward quantize: tok = round(coef/dq).
func Quantize(coef int32, dq int32) int32 {
	if dq <= 0 {
		dq = 1
	}
	neg := coef < 0
	if neg {
		coef = -coef
	}
	tok := (coef + dq/2) / dq
	if neg {
		tok = -tok
	}
	return tok
}

// Dequantize implements §4.3's inverse quantize: coef = (tok·dq) &
// 0xFFFFFF, then a tx-size-dependent right-shift. The mask is applied
// to the sign-magnitude product, matching the reference decoder's
// dequantization (which masks the unsigned magnitude and reapplies
// sign), not to tok's raw two's-complement bit pattern.
func Dequantize(tok int32, dq int32, txSize int) int32 {
	neg := tok < 0
	if neg {
		tok = -tok
	}
	v := (tok * dq) & 0xFFFFFF
	v >>= dequantShift(txSize)
	if neg {
		v = -v
	}
	return v
}

// ScanOrder returns the default diagonal-zigzag scan for an NxN
// transform (N in {4, 8}), mapping scan position to a row*N+col raster
// index (§4.3: "4x4: 16 entries; 8x8: 64 entries").
func ScanOrder(n int) []int {
	order := make([]int, n*n)
	row, col := 0, 0
	goingUp := true
	for idx := 0; idx < n*n; idx++ {
		order[idx] = row*n + col
		switch {
		case goingUp:
			switch {
			case col == n-1:
				row++
				goingUp = false
			case row == 0:
				col++
				goingUp = false
			default:
				row--
				col++
			}
		default:
			switch {
			case row == n-1:
				col++
				goingUp = true
			case col == 0:
				row++
				goingUp = true
			default:
				row++
				col--
			}
		}
	}
	return order
}
