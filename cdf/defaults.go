/*
NAME
  defaults.go

DESCRIPTION
  defaults.go holds the compiled-in default tail-probability tables
  for every symbol group in §4.2. Where a group's probability skew
  matters for compression efficiency but not bitstream correctness
  (this module is both encoder and decoder, so no external
  reference-table fetch is required for interoperability), defaults
  are generated from a simple skewed-geometric shape rather than
  transcribed from a table this module cannot independently verify;
  see DESIGN.md for the open-question resolution.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package cdf

// uniform returns the tail-probability table (v_0..v_{n-1}, v_{n-1}=0)
// for a flat n-symbol distribution.
func uniform(n int) []uint16 {
	v := make([]uint16, n)
	for i := 0; i < n; i++ {
		v[i] = uint16(32768 * (n - 1 - i) / n)
	}
	v[n-1] = 0
	return v
}

// skewed returns a tail-probability table biased toward symbol 0: each
// successive symbol's share of the remaining mass shrinks by half,
// matching the common shape of AV1's most-probable-symbol-first
// default tables (e.g. skip, zeromv, partition-none at small blocks).
func skewed(n int) []uint16 {
	v := make([]uint16, n)
	remaining := uint32(32768)
	for i := 0; i < n-1; i++ {
		share := remaining / 2
		remaining -= share
		v[i] = uint16(remaining)
	}
	v[n-1] = 0
	return v
}

var (
	defaultEqui2 = skewed(2)

	defaultPartition = skewed(NumPartitionTypes)
	defaultSkip      = skewed(2)

	defaultYMode       = uniform(NumYModes)
	defaultUVModeNoCFL = uniform(NumUVModes - 1)
	defaultUVModeCFL   = uniform(NumUVModes)

	defaultTxSkip      = skewed(2)
	defaultTxTypeIntra = uniform(NumTxTypes)
	defaultTxTypeInter = uniform(NumTxTypes)

	defaultEOBBin    = skewed(EOBBins)
	defaultBaseToken = skewed(NumBaseLevels)
	defaultBrToken   = skewed(NumBrSyms)
	defaultDCSign    = uniform(2)

	defaultMVJoint  = skewed(NumMVJoints)
	defaultMVClass  = skewed(NumMVClasses)
	defaultMVClass0 = uniform(2)
	defaultMVFrac   = uniform(4)
)
