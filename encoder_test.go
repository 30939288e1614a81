/*
NAME
  encoder_test.go

DESCRIPTION
  encoder_test.go checks the top-level Encoder API's validation rules
  and the send_frame/receive_packet/flush/rate_control_stats contract
  (§6/§7/§8).

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package av1enc

import (
	"testing"

	"github.com/blackfin/av1enc/config"
)

func mkFrame(w, h int, fill uint16) Frame {
	cw, ch := chromaDims(w, h)
	y := make([]uint16, w*h)
	u := make([]uint16, cw*ch)
	v := make([]uint16, cw*ch)
	for i := range y {
		y[i] = fill
	}
	return Frame{Width: w, Height: h, Y: y, U: u, V: v}
}

func TestCreateRejectsOutOfRangeDimensions(t *testing.T) {
	cfg, _ := config.New()
	if _, err := Create(0, 16, cfg, nil); err == nil {
		t.Error("width=0 should be rejected")
	}
	if _, err := Create(16, 2305, cfg, nil); err == nil {
		t.Error("height=2305 should be rejected")
	}
}

func TestSendFrameRejectsWrongDimensions(t *testing.T) {
	cfg, _ := config.New(config.WithKeyint(2))
	enc, err := Create(16, 16, cfg, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := enc.SendFrame(mkFrame(8, 8, 0)); err == nil {
		t.Error("mismatched frame dimensions should be rejected")
	}
}

func TestSendFrameRejectsPlaneLengthMismatch(t *testing.T) {
	cfg, _ := config.New(config.WithKeyint(2))
	enc, err := Create(16, 16, cfg, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	f := mkFrame(16, 16, 0)
	f.U = f.U[:len(f.U)-1]
	if err := enc.SendFrame(f); err == nil {
		t.Error("short U plane should be rejected")
	}
}

func TestEncodeProducesOnePacketPerFrameWithoutBFrames(t *testing.T) {
	cfg, err := config.New(config.WithKeyint(2), config.WithBaseQIdx(90))
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}
	enc, err := Create(16, 16, cfg, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := enc.SendFrame(mkFrame(16, 16, uint16(i*10))); err != nil {
			t.Fatalf("SendFrame: %v", err)
		}
	}
	enc.Flush()

	var packets []Packet
	for {
		p, ok := enc.ReceivePacket()
		if !ok {
			break
		}
		packets = append(packets, p)
	}
	if len(packets) != 3 {
		t.Fatalf("got %d packets, want 3", len(packets))
	}

	stats := enc.RateControlStats()
	if stats.FramesEncoded != 3 {
		t.Errorf("FramesEncoded = %d, want 3", stats.FramesEncoded)
	}
	if stats.AvgQP != 90 {
		t.Errorf("AvgQP = %v, want 90 (constant-QP profile)", stats.AvgQP)
	}
}

func TestReceivePacketReportsEmptyWhenNothingReady(t *testing.T) {
	cfg, _ := config.New()
	enc, err := Create(16, 16, cfg, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok := enc.ReceivePacket(); ok {
		t.Error("expected no packet ready before any SendFrame")
	}
}
