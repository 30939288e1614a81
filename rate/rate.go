/*
NAME
  rate.go

DESCRIPTION
  rate tracks the running statistics `rate_control_stats` reports (§6):
  average QP across encoded frames and an approximate output-buffer
  fullness against the configured target bitrate, using a leaky-bucket
  model.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

// Package rate computes av1enc's rate-control statistics.
package rate

import "gonum.org/v1/gonum/stat"

// Stats is the snapshot rate_control_stats returns.
type Stats struct {
	TargetBitrate     int
	FramesEncoded     int
	BufferFullnessPct float64
	AvgQP             float64
}

// Tracker accumulates per-frame bit counts and QPs across an encoding
// session and derives Stats on demand. This profile is constant-QP
// (base_q_idx never adapts per frame), so the leaky-bucket model exists
// to report plausible buffer-fullness telemetry rather than to drive
// an actual QP feedback loop.
type Tracker struct {
	targetBitrate int
	fpsNum, fpsDen int
	bucketCapacity float64 // bits

	qps      []float64
	bucket   float64 // bits currently "in flight"
	frames   int
}

// New returns a Tracker for a session targeting targetBitrate bps at
// fpsNum/fpsDen frames per second. targetBitrate == 0 means constant-QP
// (no target to compare against); BufferFullnessPct is then always 0.
func New(targetBitrate, fpsNum, fpsDen int) *Tracker {
	// One second of target bitrate is this profile's bucket capacity,
	// a conventional leaky-bucket sizing choice.
	return &Tracker{
		targetBitrate:  targetBitrate,
		fpsNum:         fpsNum,
		fpsDen:         fpsDen,
		bucketCapacity: float64(targetBitrate),
	}
}

// RecordBytes folds one coded packet's size into the leaky-bucket
// buffer model, whether or not that packet is shown — a hidden P
// frame's bits occupy the output buffer exactly like a shown frame's.
func (t *Tracker) RecordBytes(codedBytes int) {
	if t.targetBitrate <= 0 || t.fpsNum <= 0 {
		return
	}
	bitsIn := float64(codedBytes) * 8
	bitsOut := float64(t.targetBitrate) * float64(t.fpsDen) / float64(t.fpsNum)
	t.bucket += bitsIn - bitsOut
	if t.bucket < 0 {
		t.bucket = 0
	}
	if t.bucketCapacity > 0 && t.bucket > t.bucketCapacity {
		t.bucket = t.bucketCapacity
	}
}

// RecordDisplayedFrame folds one displayed (show_frame=1) packet's QP
// into the running average and increments frames_encoded. A mini-GoP's
// hidden P frame is not itself a displayed frame — its bits are
// counted via RecordBytes, but it is reissued later via
// show_existing_frame, which is what this should be called for.
func (t *Tracker) RecordDisplayedFrame(qidx int) {
	t.qps = append(t.qps, float64(qidx))
	t.frames++
}

// Stats returns the current snapshot. AvgQP uses gonum/stat's running
// mean rather than a hand-summed average.
func (t *Tracker) Stats() Stats {
	s := Stats{TargetBitrate: t.targetBitrate, FramesEncoded: t.frames}
	if len(t.qps) > 0 {
		s.AvgQP = stat.Mean(t.qps, nil)
	}
	if t.targetBitrate > 0 && t.bucketCapacity > 0 {
		s.BufferFullnessPct = 100 * t.bucket / t.bucketCapacity
	}
	return s
}
