/*
NAME
  predict_test.go

DESCRIPTION
  predict_test.go checks intra prediction's flat-edge invariants and
  that integer-phase motion compensation is a pure copy from the
  reference plane.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package predict

import "testing"

func flatEdges(size int, v uint16) Edges {
	above := make([]uint16, size)
	left := make([]uint16, size)
	for i := range above {
		above[i] = v
		left[i] = v
	}
	return Edges{Above: above, Left: left, Corner: v, HasAbove: true, HasLeft: true}
}

func TestDCFlatEdgesReproducesValue(t *testing.T) {
	e := flatEdges(8, 100)
	b := Predict(ModeDC, 8, e, 255)
	for r := range b {
		for c := range b[r] {
			if b[r][c] != 100 {
				t.Fatalf("DC[%d][%d] = %d, want 100", r, c, b[r][c])
			}
		}
	}
}

func TestPaethFlatEdgesReproducesValue(t *testing.T) {
	e := flatEdges(4, 77)
	b := Predict(ModePaeth, 4, e, 255)
	for r := range b {
		for c := range b[r] {
			if b[r][c] != 77 {
				t.Fatalf("Paeth[%d][%d] = %d, want 77", r, c, b[r][c])
			}
		}
	}
}

func TestVerticalReplicatesAboveRow(t *testing.T) {
	e := Edges{Above: []uint16{1, 2, 3, 4}, Left: []uint16{9, 9, 9, 9}, HasAbove: true, HasLeft: true}
	b := Predict(ModeV, 4, e, 255)
	for r := range b {
		for c, v := range b[r] {
			if v != e.Above[c] {
				t.Fatalf("V[%d][%d] = %d, want %d", r, c, v, e.Above[c])
			}
		}
	}
}

func TestHorizontalReplicatesLeftColumn(t *testing.T) {
	e := Edges{Above: []uint16{9, 9, 9, 9}, Left: []uint16{1, 2, 3, 4}, HasAbove: true, HasLeft: true}
	b := Predict(ModeH, 4, e, 255)
	for r, row := range b {
		for _, v := range row {
			if v != e.Left[r] {
				t.Fatalf("H[%d] = %d, want %d", r, v, e.Left[r])
			}
		}
	}
}

func TestSmoothWeightsOneEntryPerRowNearEdgeFull(t *testing.T) {
	for size, w := range smoothWeights {
		if len(w) != size {
			t.Fatalf("smoothWeights[%d] has %d entries, want %d", size, len(w), size)
		}
		if w[0] != 255 {
			t.Errorf("smoothWeights[%d][0] = %d, want 255 (near edge dominates)", size, w[0])
		}
	}
}

func TestCompensatedBlockIntegerPhaseIsExactCopy(t *testing.T) {
	const w, h = 16, 16
	pix := make([]uint16, w*h)
	for i := range pix {
		pix[i] = uint16(i % 251)
	}
	ref := Plane{Pix: pix, Width: w, Height: h}

	out := CompensatedBlock(ref, 4, 4, 8, MotionVector{Row: 0, Col: 0}, true, 255)
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			want := ref.at(4+c, 4+r)
			if int(out[r][c]) != want {
				t.Fatalf("CompensatedBlock[%d][%d] = %d, want %d (exact copy at zero MV)", r, c, out[r][c], want)
			}
		}
	}
}

func TestCompensatedBlockClampsAtPlaneEdge(t *testing.T) {
	const w, h = 8, 8
	pix := make([]uint16, w*h)
	for i := range pix {
		pix[i] = 200
	}
	ref := Plane{Pix: pix, Width: w, Height: h}
	out := CompensatedBlock(ref, 0, 0, 4, MotionVector{Row: -64, Col: -64}, true, 255)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if out[r][c] != 200 {
				t.Fatalf("clamped CompensatedBlock[%d][%d] = %d, want 200", r, c, out[r][c])
			}
		}
	}
}
