/*
NAME
  mvpred.go

DESCRIPTION
  mvpred.go implements §4.5's MV prediction: scanning spatial
  neighbors in the decoder's refmvs_find order, merging same-reference
  candidates by weight, and deriving the DRL (dynamic reference list)
  context from the collected weights.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package motion

import (
	"sort"

	"github.com/blackfin/av1enc/predict"
)

// drlWeightBonus is added to every spatial candidate's weight once
// collection finishes (§4.5), before the descending sort that puts
// the NEWMV base in slot 0.
const drlWeightBonus = 640

// Neighbor is one spatial candidate gathered from TileContext: a
// previously-coded block's motion vector, whether it referenced the
// same frame the current block predicts against, and a base weight
// (position-dependent: top row and left column entries weigh more
// than the top-right corner, per the decoder's refmvs_find scan).
type Neighbor struct {
	MV          predict.MotionVector
	SameRef     bool
	BaseWeight  int
}

// Candidate is one entry of the DRL after spatial-neighbor collection.
type Candidate struct {
	MV     predict.MotionVector
	Weight int
}

// PredictMV runs §4.5's MV prediction over neighbors gathered in fixed
// scan order (top row x2, left column x2, then top-right), merging
// same-reference neighbors into an existing candidate (by incrementing
// its weight) rather than appending a duplicate MV, then appends
// drlWeightBonus to every surviving weight and sorts descending so
// slot 0 is the NEWMV base. An empty neighbor set predicts (0, 0).
func PredictMV(neighbors []Neighbor) []Candidate {
	var cands []Candidate
	for _, n := range neighbors {
		if !n.SameRef {
			continue
		}
		merged := false
		for i := range cands {
			if cands[i].MV == n.MV {
				cands[i].Weight += n.BaseWeight
				merged = true
				break
			}
		}
		if !merged {
			cands = append(cands, Candidate{MV: n.MV, Weight: n.BaseWeight})
		}
	}
	if len(cands) == 0 {
		return []Candidate{{MV: predict.MotionVector{}, Weight: drlWeightBonus}}
	}
	for i := range cands {
		cands[i].Weight += drlWeightBonus
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Weight > cands[j].Weight })
	return cands
}

// DRLContext derives the dynamic-reference-list context {0,1,2} from
// the relative magnitude of weights[idx] vs weights[idx+1] against the
// drlWeightBonus threshold (§4.5).
func DRLContext(cands []Candidate, idx int) int {
	if idx+1 >= len(cands) {
		return 0
	}
	w0, w1 := cands[idx].Weight, cands[idx+1].Weight
	switch {
	case w0 >= drlWeightBonus && w1 >= drlWeightBonus:
		return 0
	case w0 >= drlWeightBonus && w1 < drlWeightBonus:
		return 1
	default:
		return 2
	}
}
