/*
NAME
  encoder.go

DESCRIPTION
  encoder.go provides av1enc's top-level Encoder API: create, send_frame,
  receive_packet, flush, and rate_control_stats (§6), in the shape of
  revid.Revid — a single struct holding the session's config and mutable
  state, guarded by a mutex, constructed with Create.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

// Package av1enc is an AV1 video encoder producing a spec-compliant,
// dav1d-decodable OBU bitstream from YUV 4:2:0 frames.
package av1enc

import (
	"sync"

	"github.com/blackfin/av1enc/aerr"
	"github.com/blackfin/av1enc/alog"
	"github.com/blackfin/av1enc/config"
	"github.com/blackfin/av1enc/predict"
	"github.com/blackfin/av1enc/rate"
	"github.com/blackfin/av1enc/scheduler"
	"github.com/blackfin/av1enc/tile"
)

// Frame bounds (§3): W in 1..4096, H in 1..2304.
const (
	minDim    = 1
	maxWidth  = 4096
	maxHeight = 2304
)

// Frame is one immutable input picture: 4:2:0 Y/U/V planes at the
// encoder's configured bit depth, packed as samples (not bytes) so an
// 8-bit and a 10-bit frame share the same Go type.
type Frame struct {
	Width, Height int
	Y, U, V       []uint16
}

// Packet is one coded-order encoder output (§5/§6): OBU-framed bytes,
// whether the frame is displayed immediately, and its display-order
// index.
type Packet struct {
	Data        []byte
	ShowFrame   bool
	FrameNumber int
}

// Encoder holds one encoding session's configuration and mutable
// state. Every exported method holds the instance's mutex, so calls
// on one instance from several goroutines are serialized; distinct
// Encoders are independent.
type Encoder struct {
	mu sync.Mutex

	cfg    config.EncoderConfig
	width  int
	height int
	log    alog.Logger

	sched   *scheduler.Scheduler
	tracker *rate.Tracker
	outbox  []Packet
}

// Create validates width/height and returns a new Encoder for cfg
// (which config.New has already validated), or an InvalidArgument
// error (§6: `create`).
func Create(width, height int, cfg config.EncoderConfig, log alog.Logger) (*Encoder, error) {
	if width < minDim || width > maxWidth {
		return nil, aerr.New(aerr.InvalidArgument, "width out of range 1..4096")
	}
	if height < minDim || height > maxHeight {
		return nil, aerr.New(aerr.InvalidArgument, "height out of range 1..2304")
	}
	if log == nil {
		log = alog.Discard
	}
	return &Encoder{
		cfg:     cfg,
		width:   width,
		height:  height,
		log:     log,
		sched:   scheduler.New(cfg, log),
		tracker: rate.New(cfg.TargetBitrate, cfg.FPSNum, cfg.FPSDen),
	}, nil
}

// SendFrame validates f against the session's dimensions and plane
// sizes and buffers it for encoding (§6: `send_frame`). The scheduler
// may produce zero or more packets as a result, retrievable via
// ReceivePacket.
func (e *Encoder) SendFrame(f Frame) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if f.Width != e.width || f.Height != e.height {
		return aerr.New(aerr.InvalidArgument, "frame dimensions do not match session dimensions")
	}
	cw, ch := chromaDims(e.width, e.height)
	if len(f.Y) != e.width*e.height {
		return aerr.New(aerr.InvalidArgument, "Y plane length mismatch")
	}
	if len(f.U) != cw*ch || len(f.V) != cw*ch {
		return aerr.New(aerr.InvalidArgument, "U/V plane length mismatch")
	}

	fb := &tile.FrameBuffers{
		Y: predict.Plane{Pix: f.Y, Width: e.width, Height: e.height},
		U: predict.Plane{Pix: f.U, Width: cw, Height: ch},
		V: predict.Plane{Pix: f.V, Width: cw, Height: ch},
	}
	e.sched.SendFrame(fb)
	e.recordReady()
	return nil
}

// Flush drains any buffered frames, completing a partial mini-GoP if
// one is open, and makes every remaining packet available via
// ReceivePacket (§6: `flush`).
func (e *Encoder) Flush() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sched.Flush()
	e.recordReady()
	return nil
}

// ReceivePacket returns the next ready packet in coded order, or
// (Packet{}, false) if none is ready — the Empty condition (§6/§7).
func (e *Encoder) ReceivePacket() (Packet, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.outbox) == 0 {
		return Packet{}, false
	}
	p := e.outbox[0]
	e.outbox = e.outbox[1:]
	return p, true
}

// RateControlStats returns the session's running rate-control
// statistics (§6: `rate_control_stats`).
func (e *Encoder) RateControlStats() rate.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Stats()
}

// recordReady drains every packet the scheduler has produced so far
// into e.outbox, folding each one's size into the rate tracker's
// buffer model and, for displayed frames, its QP average. This
// profile is constant-QP, so every coded frame uses cfg.BaseQIdx.
func (e *Encoder) recordReady() {
	for {
		p, ok := e.sched.ReceivePacket()
		if !ok {
			return
		}
		e.tracker.RecordBytes(len(p.Data))
		if p.ShowFrame {
			e.tracker.RecordDisplayedFrame(e.cfg.BaseQIdx)
		}
		e.outbox = append(e.outbox, Packet{Data: p.Data, ShowFrame: p.ShowFrame, FrameNumber: p.FrameNumber})
	}
}

func chromaDims(w, h int) (int, int) {
	return (w + 1) / 2, (h + 1) / 2
}
