/*
NAME
  quantize_test.go

DESCRIPTION
  quantize_test.go checks that the dequant table is monotonic, that
  scan orders are a permutation of every raster index exactly once,
  and that quantize/dequantize round-trips within one dequant step.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package quantize

import "testing"

func TestStepIsMonotonicNonDecreasing(t *testing.T) {
	prevDC, prevAC := Step(0)
	for q := 1; q < 256; q++ {
		dc, ac := Step(q)
		if dc < prevDC {
			t.Errorf("dc_dequant(%d) = %d < dc_dequant(%d) = %d, want non-decreasing", q, dc, q-1, prevDC)
		}
		if ac < prevAC {
			t.Errorf("ac_dequant(%d) = %d < ac_dequant(%d) = %d, want non-decreasing", q, ac, q-1, prevAC)
		}
		prevDC, prevAC = dc, ac
	}
}

func TestScanOrderIsPermutation(t *testing.T) {
	for _, n := range []int{4, 8} {
		order := ScanOrder(n)
		if len(order) != n*n {
			t.Fatalf("ScanOrder(%d): len = %d, want %d", n, len(order), n*n)
		}
		seen := make([]bool, n*n)
		for _, idx := range order {
			if idx < 0 || idx >= n*n {
				t.Fatalf("ScanOrder(%d): index %d out of range", n, idx)
			}
			if seen[idx] {
				t.Fatalf("ScanOrder(%d): index %d visited twice", n, idx)
			}
			seen[idx] = true
		}
	}
}

func TestScanOrderStartsAtDC(t *testing.T) {
	for _, n := range []int{4, 8} {
		order := ScanOrder(n)
		if order[0] != 0 {
			t.Errorf("ScanOrder(%d)[0] = %d, want 0 (DC coefficient first)", n, order[0])
		}
	}
}

func TestQuantizeDequantizeRoundTrip(t *testing.T) {
	dc, ac := Step(64)
	for _, txSize := range []int{4, 8} {
		for _, coef := range []int32{0, 1, -1, 17, -200, 1000, -4000} {
			tok := Quantize(coef, ac)
			recon := Dequantize(tok, ac, txSize)
			diff := recon - coef
			if diff < 0 {
				diff = -diff
			}
			if int32(diff) > ac {
				t.Errorf("txSize %d coef %d: quantize/dequantize drifted by %d, want <= one ac step (%d)", txSize, coef, diff, ac)
			}
		}
	}
	_ = dc
}
