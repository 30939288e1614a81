/*
NAME
  scheduler.go

DESCRIPTION
  scheduler implements §4.7's frame scheduler and reference-slot
  management: keyframe cadence, the optional mini-GoP hidden-P/B
  structure, and the 8-entry reference-slot table's refresh/reuse
  discipline. It drives package tile per frame and packages the result
  as OBU-framed packets in coded order.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

// Package scheduler implements av1enc's GoP/mini-GoP frame scheduler
// and reference-slot table.
package scheduler

import (
	"github.com/blackfin/av1enc/alog"
	"github.com/blackfin/av1enc/cdf"
	"github.com/blackfin/av1enc/config"
	"github.com/blackfin/av1enc/msac"
	"github.com/blackfin/av1enc/obu"
	"github.com/blackfin/av1enc/predict"
	"github.com/blackfin/av1enc/tile"
)

const numSlots = 8

// baseSlot and altSlot are this profile's two conventional reference-
// slot roles (§4.7): the most recent forward reference, and the
// hidden future reference a mini-GoP's B-frames draw on.
const (
	baseSlot = 0
	altSlot  = 1
)

// Packet is one coded-order output of the scheduler: a byte stream of
// concatenated OBUs, whether it carries a displayable frame, and the
// input frame's display-order index.
type Packet struct {
	Data        []byte
	ShowFrame   bool
	FrameNumber int
}

// Scheduler runs §4.7's GoP policy over a stream of input frames,
// producing packets in coded order.
type Scheduler struct {
	cfg    config.EncoderConfig
	log    alog.Logger
	maxVal uint16

	cdfCtx *cdf.Context
	slots  [numSlots]*tile.FrameBuffers

	pending      []*tile.FrameBuffers
	pendingStart int // display index of pending[0]
	displayCount int // total frames received via SendFrame

	seqHeaderSent bool
	outbox        []Packet
}

// New returns a Scheduler for the given config.
func New(cfg config.EncoderConfig, log alog.Logger) *Scheduler {
	if log == nil {
		log = alog.Discard
	}
	maxVal := uint16(1<<uint(cfg.BitDepth)) - 1
	return &Scheduler{cfg: cfg, log: log, maxVal: maxVal, cdfCtx: cdf.New()}
}

// SendFrame buffers src (a just-captured source frame) and encodes as
// many frames as the current GoP state allows.
func (s *Scheduler) SendFrame(src *tile.FrameBuffers) {
	s.pending = append(s.pending, src)
	s.drain(false)
}

// Flush forces every buffered frame out, completing any partial
// mini-GoP, and drains the outbox.
func (s *Scheduler) Flush() {
	s.drain(true)
}

// ReceivePacket returns the next ready packet, if any.
func (s *Scheduler) ReceivePacket() (Packet, bool) {
	if len(s.outbox) == 0 {
		return Packet{}, false
	}
	p := s.outbox[0]
	s.outbox = s.outbox[1:]
	return p, true
}

// drain consumes as much of the pending buffer as the GoP policy
// currently allows; flushing forces a short final mini-GoP through.
func (s *Scheduler) drain(flushing bool) {
	for len(s.pending) > 0 {
		displayIdx := s.pendingStart
		if displayIdx%s.cfg.Keyint == 0 {
			s.encodeKeyframe(s.pending[0], displayIdx)
			s.pending = s.pending[1:]
			s.pendingStart++
			continue
		}
		if !s.cfg.BFrames {
			s.encodeInterP(s.pending[0], displayIdx)
			s.pending = s.pending[1:]
			s.pendingStart++
			continue
		}

		// Mini-GoP: buffer up to GopSize frames, but never cross a
		// keyframe boundary and never wait past Flush.
		avail := len(s.pending)
		untilKey := s.cfg.Keyint - displayIdx%s.cfg.Keyint
		groupSize := s.cfg.GopSize
		if untilKey < groupSize {
			groupSize = untilKey
		}
		if avail < groupSize && !flushing {
			return
		}
		if avail < groupSize {
			groupSize = avail
		}
		if groupSize < 2 {
			s.encodeInterP(s.pending[0], displayIdx)
			s.pending = s.pending[1:]
			s.pendingStart++
			continue
		}
		group := s.pending[:groupSize]
		s.encodeMiniGoP(group, displayIdx)
		s.pending = s.pending[groupSize:]
		s.pendingStart += groupSize
	}
}

// obuHeader returns the OBU group preceding a frame's header payload
// (a temporal delimiter, plus a sequence header on the very first
// frame of the stream).
func (s *Scheduler) obuHeader() []byte {
	var out []byte
	out = append(out, obu.TemporalDelimiter()...)
	if !s.seqHeaderSent {
		sh := obu.SequenceHeader{
			LevelIdx:     13,
			MaxWidth:     4096,
			MaxHeight:    2304,
			HighBitdepth: s.cfg.BitDepth == 10,
			ColorDescriptionPresent: s.cfg.ColorDescriptionPresent(),
			ColorPrimaries:          s.cfg.ColorPrimaries,
			TransferCharacteristics: s.cfg.TransferCharacteristics,
			MatrixCoefficients:      s.cfg.MatrixCoefficients,
			FullColorRange:          s.cfg.ColorRange == config.Full,
		}
		out = append(out, obu.Pack(obu.TypeSequenceHeader, sh.Build())...)
		s.seqHeaderSent = true
	}
	return out
}

// encodeKeyframe encodes src as a key frame, resetting every
// reference slot and the CDF context (§4.7).
func (s *Scheduler) encodeKeyframe(src *tile.FrameBuffers, displayIdx int) {
	s.cdfCtx.Reset()
	recon := allocLike(src)

	w := msac.NewWriter()
	tile.EncodeTile(w, s.cdfCtx, s.cfg.BaseQIdx, src, recon, nil, s.maxVal)
	payload := w.Finalize()

	fh := obu.FrameHeader{
		Type:              obu.KeyFrame,
		ShowFrame:         true,
		ErrorResilientMode: true,
		BaseQIdx:          s.cfg.BaseQIdx,
		RefreshFrameFlags: 0xFF,
	}
	data := s.obuHeader()
	data = append(data, obu.Pack(obu.TypeFrame, append(fh.Build(), payload...))...)
	if s.cfg.BitDepth == 10 && (s.cfg.HasCLL || s.cfg.HasMDCV) {
		if s.cfg.HasCLL {
			data = append(data, obu.Pack(obu.TypeMetadata, obu.HDRCLL(s.cfg.MaxCLL, s.cfg.MaxFALL))...)
		}
		if s.cfg.HasMDCV {
			data = append(data, obu.Pack(obu.TypeMetadata, toMDCVParams(s.cfg.MDCV))...)
		}
	}

	for i := range s.slots {
		s.slots[i] = recon
	}
	s.log.Debug("encoded keyframe", "display", displayIdx)
	s.outbox = append(s.outbox, Packet{Data: data, ShowFrame: true, FrameNumber: displayIdx})
}

// encodeInterP encodes src as a single P frame referencing base_slot,
// then overwrites base_slot with its own reconstruction (§4.7).
func (s *Scheduler) encodeInterP(src *tile.FrameBuffers, displayIdx int) {
	s.cdfCtx.Reset()
	recon := allocLike(src)

	w := msac.NewWriter()
	tile.EncodeTile(w, s.cdfCtx, s.cfg.BaseQIdx, src, recon, s.slots[baseSlot], s.maxVal)
	payload := w.Finalize()

	fh := obu.FrameHeader{
		Type:              obu.InterFrame,
		ShowFrame:         true,
		DisableCDFUpdate:  true,
		ErrorResilientMode: true,
		BaseQIdx:          s.cfg.BaseQIdx,
		RefreshFrameFlags: 1 << baseSlot,
		RefFrameIdx:       baseSlot,
	}
	data := s.obuHeader()
	data = append(data, obu.Pack(obu.TypeFrame, append(fh.Build(), payload...))...)

	s.slots[baseSlot] = recon
	s.log.Debug("encoded inter P frame", "display", displayIdx)
	s.outbox = append(s.outbox, Packet{Data: data, ShowFrame: true, FrameNumber: displayIdx})
}

// encodeMiniGoP implements the hidden-P/B mini-GoP structure (§4.7):
// group[len-1] is encoded first as a hidden P into alt_slot, then
// group[:len-1] are encoded as B-frames (this profile's single-
// reference motion/compensation engine predicts each from alt_slot,
// the temporally nearer reference, rather than true bi-prediction
// against both base_slot and alt_slot — see DESIGN.md), then a
// show_existing_frame packet reissues the hidden P and alt_slot's
// reconstruction is promoted to base_slot for the next mini-GoP.
func (s *Scheduler) encodeMiniGoP(group []*tile.FrameBuffers, startDisplay int) {
	hiddenIdx := len(group) - 1
	hidden := group[hiddenIdx]
	hiddenDisplay := startDisplay + hiddenIdx

	s.cdfCtx.Reset()
	hiddenRecon := allocLike(hidden)
	w := msac.NewWriter()
	tile.EncodeTile(w, s.cdfCtx, s.cfg.BaseQIdx, hidden, hiddenRecon, s.slots[baseSlot], s.maxVal)
	payload := w.Finalize()

	fh := obu.FrameHeader{
		Type:              obu.InterFrame,
		ShowFrame:         false,
		DisableCDFUpdate:  true,
		ErrorResilientMode: true,
		BaseQIdx:          s.cfg.BaseQIdx,
		RefreshFrameFlags: 1 << altSlot,
		RefFrameIdx:       baseSlot,
	}
	data := s.obuHeader()
	data = append(data, obu.Pack(obu.TypeFrame, append(fh.Build(), payload...))...)
	s.slots[altSlot] = hiddenRecon
	s.log.Debug("encoded hidden P frame", "display", hiddenDisplay)
	s.outbox = append(s.outbox, Packet{Data: data, ShowFrame: false, FrameNumber: hiddenDisplay})

	for i := 0; i < hiddenIdx; i++ {
		bDisplay := startDisplay + i
		s.cdfCtx.Reset()
		bRecon := allocLike(group[i])
		bw := msac.NewWriter()
		tile.EncodeTile(bw, s.cdfCtx, s.cfg.BaseQIdx, group[i], bRecon, s.slots[altSlot], s.maxVal)
		bPayload := bw.Finalize()

		bfh := obu.FrameHeader{
			Type:              obu.InterFrame,
			ShowFrame:         true,
			DisableCDFUpdate:  true,
			ErrorResilientMode: true,
			BaseQIdx:          s.cfg.BaseQIdx,
			RefreshFrameFlags: 0, // B-frames in this profile are never used as a future reference
			RefFrameIdx:       altSlot,
		}
		bdata := s.obuHeader()
		bdata = append(bdata, obu.Pack(obu.TypeFrame, append(bfh.Build(), bPayload...))...)
		s.log.Debug("encoded B frame", "display", bDisplay)
		s.outbox = append(s.outbox, Packet{Data: bdata, ShowFrame: true, FrameNumber: bDisplay})
	}

	showExisting := obu.FrameHeader{ShowExistingFrame: true, FrameToShowMapIdx: altSlot}
	sdata := s.obuHeader()
	sdata = append(sdata, obu.Pack(obu.TypeFrame, showExisting.Build())...)
	s.outbox = append(s.outbox, Packet{Data: sdata, ShowFrame: true, FrameNumber: hiddenDisplay})

	s.slots[baseSlot] = s.slots[altSlot]
	s.log.Debug("promoted alt_slot to base_slot", "display", hiddenDisplay)
}

// allocLike returns a zero-filled FrameBuffers matching f's plane
// dimensions, for EncodeTile's recon output.
func allocLike(f *tile.FrameBuffers) *tile.FrameBuffers {
	return &tile.FrameBuffers{
		Y: emptyPlane(f.Y.Width, f.Y.Height),
		U: emptyPlane(f.U.Width, f.U.Height),
		V: emptyPlane(f.V.Width, f.V.Height),
	}
}

func emptyPlane(width, height int) predict.Plane {
	pix := make([]uint16, width*height)
	return predict.Plane{Pix: pix, Width: width, Height: height}
}

// toMDCVParams adapts config.MDCV's record to obu.HDRMDCV's argument.
func toMDCVParams(m config.MDCV) []byte {
	return obu.HDRMDCV(obu.MDCVParams{
		PrimariesX:   m.PrimariesX,
		PrimariesY:   m.PrimariesY,
		WhitePointX:  m.WhitePointX,
		WhitePointY:  m.WhitePointY,
		MaxLuminance: m.MaxLuminance,
		MinLuminance: m.MinLuminance,
	})
}
