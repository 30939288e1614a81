/*
NAME
  intra.go

DESCRIPTION
  intra.go implements §4.4's intra prediction modes: DC, V, H, Smooth,
  Smooth-V, Smooth-H, and Paeth. Every mode produces a full size x size
  pixel block from the reconstructed above row, left column, and
  top-left corner sample a TileContext neighbor array exposes via
  Edges.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

// Package predict implements AV1's intra prediction modes and inter
// motion-compensated prediction.
package predict

// Mode names an intra prediction mode (§4.2's 13 key-frame Y modes
// collapse to these seven production paths; the remaining six
// directional modes share Paeth's call shape and are not emitted by
// this profile).
type Mode int

const (
	ModeDC Mode = iota
	ModeV
	ModeH
	ModeSmooth
	ModeSmoothV
	ModeSmoothH
	ModePaeth
)

// Edges holds the reconstructed neighbor samples a block predicts
// from: Above has size entries, Left has size entries, and Corner is
// the top-left sample. HasAbove/HasLeft report whether the
// corresponding array holds real reconstructed samples (false at a
// frame edge, where the caller fills a replicated placeholder
// consistent with the decoder's edge-extension rule).
type Edges struct {
	Above, Left    []uint16
	Corner         uint16
	HasAbove       bool
	HasLeft        bool
}

// smoothWeights is AV1's smooth-prediction weight table, keyed by
// block size (4 or 8). weight[i] is the share (out of 256) given to
// the near edge sample at distance i from that edge; the far-edge
// corner sample gets the remaining 256-weight[i].
var smoothWeights = map[int][]int{
	4: {255, 149, 85, 64},
	8: {255, 197, 146, 105, 73, 50, 37, 32},
}

// Predict produces a size x size block for mode m from edges e, with
// samples clamped to [0, maxVal] (maxVal = 2^bitdepth - 1).
func Predict(m Mode, size int, e Edges, maxVal uint16) [][]uint16 {
	switch m {
	case ModeDC:
		return predictDC(size, e, maxVal)
	case ModeV:
		return predictV(size, e)
	case ModeH:
		return predictH(size, e)
	case ModeSmooth:
		return predictSmooth(size, e)
	case ModeSmoothV:
		return predictSmoothV(size, e)
	case ModeSmoothH:
		return predictSmoothH(size, e)
	case ModePaeth:
		return predictPaeth(size, e)
	default:
		return predictDC(size, e, maxVal)
	}
}

func newBlock(size int) [][]uint16 {
	b := make([][]uint16, size)
	for r := range b {
		b[r] = make([]uint16, size)
	}
	return b
}

// predictDC averages whichever edges are available, falling back to
// the mid-range value (1 << (bitdepth-1)) when neither is available
// (the first block of a key frame).
func predictDC(size int, e Edges, maxVal uint16) [][]uint16 {
	var sum, n int
	if e.HasAbove {
		for _, v := range e.Above[:size] {
			sum += int(v)
		}
		n += size
	}
	if e.HasLeft {
		for _, v := range e.Left[:size] {
			sum += int(v)
		}
		n += size
	}
	var avg uint16
	if n == 0 {
		avg = (maxVal + 1) / 2
	} else {
		avg = uint16((sum + n/2) / n)
	}
	b := newBlock(size)
	for r := range b {
		for c := range b[r] {
			b[r][c] = avg
		}
	}
	return b
}

func predictV(size int, e Edges) [][]uint16 {
	b := newBlock(size)
	for r := range b {
		copy(b[r], e.Above[:size])
	}
	return b
}

func predictH(size int, e Edges) [][]uint16 {
	b := newBlock(size)
	for r := range b {
		for c := range b[r] {
			b[r][c] = e.Left[r]
		}
	}
	return b
}

// predictSmooth blends all four edges (§4.4): above/bottom-left
// corner on the vertical axis, left/top-right corner on the
// horizontal axis, weighted by the size-keyed weight table.
func predictSmooth(size int, e Edges) [][]uint16 {
	w := smoothWeights[size]
	bottom := e.Left[size-1]
	right := e.Above[size-1]
	b := newBlock(size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			sum := int(e.Above[c])*w[r] + int(bottom)*(256-w[r]) +
				int(e.Left[r])*w[c] + int(right)*(256-w[c])
			b[r][c] = uint16((sum + 256) >> 9)
		}
	}
	return b
}

func predictSmoothV(size int, e Edges) [][]uint16 {
	w := smoothWeights[size]
	bottom := e.Left[size-1]
	b := newBlock(size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			sum := int(e.Above[c])*w[r] + int(bottom)*(256-w[r])
			b[r][c] = uint16((sum + 128) >> 8)
		}
	}
	return b
}

func predictSmoothH(size int, e Edges) [][]uint16 {
	w := smoothWeights[size]
	right := e.Above[size-1]
	b := newBlock(size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			sum := int(e.Left[r])*w[c] + int(right)*(256-w[c])
			b[r][c] = uint16((sum + 128) >> 8)
		}
	}
	return b
}

// predictPaeth picks, per pixel, whichever of (above, left, top-left)
// sits closest to L+T-TL (§4.4).
func predictPaeth(size int, e Edges) [][]uint16 {
	b := newBlock(size)
	tl := int(e.Corner)
	for r := 0; r < size; r++ {
		left := int(e.Left[r])
		for c := 0; c < size; c++ {
			above := int(e.Above[c])
			base := left + above - tl
			dAbove := abs(base - above)
			dLeft := abs(base - left)
			dTL := abs(base - tl)
			switch {
			case dLeft <= dAbove && dLeft <= dTL:
				b[r][c] = uint16(left)
			case dAbove <= dTL:
				b[r][c] = uint16(above)
			default:
				b[r][c] = uint16(tl)
			}
		}
	}
	return b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ModeContext collapses a Y mode to the 5-class neighbor context used
// by the CDF mode-context lookup (§4.2): DC=0, V/SmoothV=1,
// H/SmoothH=2, Smooth/Paeth fold into the diagonal buckets this
// profile doesn't otherwise populate.
func ModeContext(m Mode) int {
	switch m {
	case ModeDC:
		return 0
	case ModeV, ModeSmoothV:
		return 1
	case ModeH, ModeSmoothH:
		return 2
	case ModeSmooth:
		return 3
	default:
		return 4
	}
}
