/*
NAME
  search.go

DESCRIPTION
  search.go implements §4.5's three-stage motion search: exhaustive
  integer-pel SAD, then half-pel and quarter-pel refinement around the
  integer best, each stage cheaper-to-costlier as the search window
  narrows.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

// Package motion implements AV1 motion estimation and MV prediction
// for the single-reference (LAST_FRAME) inter profile.
package motion

import "github.com/blackfin/av1enc/predict"

// searchRange is the integer-pel exhaustive search window (§4.5: "+-16
// pixel SAD").
const searchRange = 16

// Search runs the three-stage motion search for an 8x8 luma block at
// (x0, y0) in cur against ref, returning the best motion vector in
// 1/8-pel units.
func Search(cur, ref predict.Plane, x0, y0 int) predict.MotionVector {
	best := integerSearch(cur, ref, x0, y0)
	best = halfPelRefine(cur, ref, x0, y0, best)
	best = quarterPelRefine(cur, ref, x0, y0, best)
	return best
}

// sad sums the absolute per-pixel difference between the 8x8 block at
// (x0, y0) in cur and the block at (x0+dx, y0+dy) in ref.
func sad(cur, ref predict.Plane, x0, y0, dx, dy int) int {
	const size = 8
	sum := 0
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			a := planeAt(cur, x0+c, y0+r)
			b := planeAt(ref, x0+c+dx, y0+r+dy)
			d := a - b
			if d < 0 {
				d = -d
			}
			sum += d
		}
	}
	return sum
}

func planeAt(p predict.Plane, x, y int) int {
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
	return int(p.Pix[y*p.Width+x])
}

// integerSearch exhaustively evaluates every integer displacement in
// [-searchRange, searchRange]^2, breaking ties toward the smaller
// |dx|+|dy| (§4.5 step 1).
func integerSearch(cur, ref predict.Plane, x0, y0 int) predict.MotionVector {
	bestSAD := -1
	var bestDX, bestDY int
	for dy := -searchRange; dy <= searchRange; dy++ {
		for dx := -searchRange; dx <= searchRange; dx++ {
			s := sad(cur, ref, x0, y0, dx, dy)
			if bestSAD < 0 || s < bestSAD ||
				(s == bestSAD && abs(dx)+abs(dy) < abs(bestDX)+abs(bestDY)) {
				bestSAD, bestDX, bestDY = s, dx, dy
			}
		}
	}
	return predict.MotionVector{Row: bestDY * 8, Col: bestDX * 8}
}

// refine checks the 8 neighbors of mv at the given 1/8-pel step using
// interpolated SAD, keeping mv itself as a candidate so refinement
// never regresses (§4.5 steps 2-3).
func refine(cur, ref predict.Plane, x0, y0 int, mv predict.MotionVector, step int) predict.MotionVector {
	const size = 8
	candCost := func(m predict.MotionVector) int {
		blk := predict.CompensatedBlock(ref, x0, y0, size, m, true, 255)
		sum := 0
		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				d := planeAt(cur, x0+c, y0+r) - int(blk[r][c])
				if d < 0 {
					d = -d
				}
				sum += d
			}
		}
		return sum
	}

	best := mv
	bestCost := candCost(mv)
	offsets := [8][2]int{
		{-step, -step}, {0, -step}, {step, -step},
		{-step, 0}, {step, 0},
		{-step, step}, {0, step}, {step, step},
	}
	for _, o := range offsets {
		cand := predict.MotionVector{Row: mv.Row + o[1], Col: mv.Col + o[0]}
		c := candCost(cand)
		if c < bestCost {
			bestCost, best = c, cand
		}
	}
	return best
}

func halfPelRefine(cur, ref predict.Plane, x0, y0 int, mv predict.MotionVector) predict.MotionVector {
	return refine(cur, ref, x0, y0, mv, 4)
}

func quarterPelRefine(cur, ref predict.Plane, x0, y0 int, mv predict.MotionVector) predict.MotionVector {
	return refine(cur, ref, x0, y0, mv, 2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
