/*
NAME
  leb128_test.go

DESCRIPTION
  leb128_test.go checks the LEB128 round-trip law from spec §8 property
  5: decode(encode(u)) == u, with the shortest possible byte length.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package bitio

import "testing"

func TestLeb128RoundTrip(t *testing.T) {
	tests := []struct {
		u       uint64
		wantLen int
	}{
		{0, 1},
		{1, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{1 << 21, 4},
		{1<<32 - 1, 5},
		{1 << 35, 6},
	}
	for _, test := range tests {
		enc := EncodeLeb128(test.u)
		if len(enc) != test.wantLen {
			t.Errorf("EncodeLeb128(%d): got length %d, want %d", test.u, len(enc), test.wantLen)
		}
		got, n, ok := DecodeLeb128(enc)
		if !ok {
			t.Fatalf("DecodeLeb128(%v): not ok", enc)
		}
		if n != len(enc) {
			t.Errorf("DecodeLeb128(%v): consumed %d bytes, want %d", enc, n, len(enc))
		}
		if got != test.u {
			t.Errorf("DecodeLeb128(%v) = %d, want %d", enc, got, test.u)
		}
	}
}

func TestDecodeLeb128Truncated(t *testing.T) {
	// A byte with the continuation bit set but nothing following.
	_, _, ok := DecodeLeb128([]byte{0x80})
	if ok {
		t.Error("expected truncated leb128 to be rejected")
	}
}

func TestDecodeLeb128Empty(t *testing.T) {
	_, _, ok := DecodeLeb128(nil)
	if ok {
		t.Error("expected empty input to be rejected")
	}
}
