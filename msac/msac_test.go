/*
NAME
  msac_test.go

DESCRIPTION
  msac_test.go checks the MSAC round-trip law from spec §8 property 3:
  decoding a stream encoded by Writer against the same CDFs in the
  same order reproduces the original symbols, and the CDF adaptation
  stays in lockstep between encoder and decoder.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package msac

import (
	"math/rand"
	"testing"
)

// freshCdf builds a uniform-ish starting CDF for an n-symbol alphabet:
// tail probabilities evenly spaced from just under 32768 down to 0.
func freshCdf(n int) Cdf {
	v := make([]uint16, n)
	for i := 0; i < n; i++ {
		v[i] = uint16(32768 * (n - 1 - i) / n)
	}
	v[n-1] = 0
	return NewCdf(v)
}

func TestSymbolRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabets := []int{2, 3, 4, 8, 16}

	var symbols []int
	var which []int
	cdfsEnc := make([]Cdf, len(alphabets))
	for i, n := range alphabets {
		cdfsEnc[i] = freshCdf(n)
	}

	w := NewWriter()
	const trials = 2000
	for i := 0; i < trials; i++ {
		ai := rng.Intn(len(alphabets))
		n := alphabets[ai]
		s := rng.Intn(n)
		w.EncodeSymbol(s, cdfsEnc[ai], true)
		symbols = append(symbols, s)
		which = append(which, ai)
	}
	out := w.Finalize()

	cdfsDec := make([]Cdf, len(alphabets))
	for i, n := range alphabets {
		cdfsDec[i] = freshCdf(n)
	}
	r := NewReader(out)
	for i := 0; i < trials; i++ {
		ai := which[i]
		got := r.DecodeSymbol(cdfsDec[ai], true)
		if got != symbols[i] {
			t.Fatalf("symbol %d: got %d, want %d", i, got, symbols[i])
		}
	}
	for i := range alphabets {
		for j := range cdfsEnc[i] {
			if cdfsEnc[i][j] != cdfsDec[i][j] {
				t.Fatalf("cdf[%d] diverged at index %d: encoder=%d decoder=%d", i, j, cdfsEnc[i][j], cdfsDec[i][j])
			}
		}
	}
}

func TestBoolRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	cdfEnc := NewCdf([]uint16{16384, 0})
	cdfDec := NewCdf([]uint16{16384, 0})

	var bits []bool
	w := NewWriter()
	const trials = 1000
	for i := 0; i < trials; i++ {
		b := rng.Intn(4) == 0
		w.EncodeBool(b, cdfEnc)
		bits = append(bits, b)
	}
	out := w.Finalize()

	r := NewReader(out)
	for i := 0; i < trials; i++ {
		got := r.DecodeBool(cdfDec)
		if got != bits[i] {
			t.Fatalf("bool %d: got %v, want %v", i, got, bits[i])
		}
	}
}

func TestBoolEquiRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	var bits []bool
	w := NewWriter()
	const trials = 1000
	for i := 0; i < trials; i++ {
		b := rng.Intn(2) == 0
		w.EncodeBoolEqui(b)
		bits = append(bits, b)
	}
	out := w.Finalize()

	r := NewReader(out)
	for i := 0; i < trials; i++ {
		got := r.DecodeBoolEqui()
		if got != bits[i] {
			t.Fatalf("equi-bool %d: got %v, want %v", i, got, bits[i])
		}
	}
}

func TestAdaptConvergesTowardObservedSymbol(t *testing.T) {
	cdf := NewCdf([]uint16{16384, 0})
	for i := 0; i < 64; i++ {
		adapt(cdf, 1)
	}
	// Having observed symbol 1 repeatedly, its tail probability v_0
	// (P(sym>0)) should have been pushed toward 32768: with the
	// count-driven rate (4, then 5 once count reaches 16, then 6 at the
	// cap of 32), 64 updates bring it to 30630.
	if cdf[0] < 30600 {
		t.Errorf("cdf[0] = %d after repeated symbol-1 observations, want close to 32768", cdf[0])
	}
	if cdf[1] != 0 {
		t.Errorf("cdf[1] = %d, want 0 (fixed terminal entry)", cdf[1])
	}
	if cdf[2] != 32 {
		t.Errorf("count = %d, want capped at 32", cdf[2])
	}
}
