/*
NAME
  scheduler_test.go

DESCRIPTION
  scheduler_test.go checks the GoP scheduler's coded-order invariants
  (§8 properties 6-8): keyframe cadence, one packet per input frame
  (accounting for show_existing_frame reissues), and the mini-GoP
  hidden-P/B/reissue ordering.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package scheduler

import (
	"testing"

	"github.com/blackfin/av1enc/config"
	"github.com/blackfin/av1enc/predict"
	"github.com/blackfin/av1enc/tile"
)

func testFrame(w, h int, fill uint16) *tile.FrameBuffers {
	mk := func(width, height int) predict.Plane {
		pix := make([]uint16, width*height)
		for i := range pix {
			pix[i] = fill
		}
		return predict.Plane{Pix: pix, Width: width, Height: height}
	}
	return &tile.FrameBuffers{Y: mk(w, h), U: mk(w/2, h/2), V: mk(w/2, h/2)}
}

func drainAll(s *Scheduler) []Packet {
	var out []Packet
	for {
		p, ok := s.ReceivePacket()
		if !ok {
			break
		}
		out = append(out, p)
	}
	return out
}

func TestSchedulerOneShownPacketPerFrameWithoutBFrames(t *testing.T) {
	cfg, err := config.New(config.WithKeyint(2), config.WithBaseQIdx(80))
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}
	s := New(cfg, nil)

	for i := 0; i < 4; i++ {
		s.SendFrame(testFrame(16, 16, uint16(i)))
	}
	s.Flush()
	packets := drainAll(s)

	if len(packets) != 4 {
		t.Fatalf("got %d packets, want 4", len(packets))
	}
	for _, p := range packets {
		if !p.ShowFrame {
			t.Errorf("frame %d: show_frame = false, want true (no B-frames configured)", p.FrameNumber)
		}
		if len(p.Data) == 0 {
			t.Errorf("frame %d: empty packet", p.FrameNumber)
		}
	}
}

func TestSchedulerMiniGoPOrderingAndReissue(t *testing.T) {
	cfg, err := config.New(
		config.WithKeyint(100),
		config.WithBFrames(3),
		config.WithBaseQIdx(80),
	)
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}
	s := New(cfg, nil)

	for i := 0; i < 3; i++ {
		s.SendFrame(testFrame(16, 16, uint16(i)))
	}
	s.Flush()
	packets := drainAll(s)

	// display 0 is the keyframe; displays 1-2 form a 2-frame mini-GoP:
	// key(0), hiddenP(2, show=0), B(1), show_existing(2).
	if len(packets) != 4 {
		t.Fatalf("got %d packets, want 4 (key + hiddenP + 1 B + reissue)", len(packets))
	}
	if packets[0].FrameNumber != 0 || !packets[0].ShowFrame {
		t.Errorf("packet 0 = %+v, want keyframe at display 0, shown", packets[0])
	}
	if packets[1].ShowFrame {
		t.Errorf("packet 1 (hidden P) has show_frame = true, want false")
	}
	if packets[1].FrameNumber != 2 {
		t.Errorf("hidden P display index = %d, want 2 (last of mini-GoP)", packets[1].FrameNumber)
	}
	if packets[2].FrameNumber != 1 || !packets[2].ShowFrame {
		t.Errorf("packet 2 = %+v, want B-frame at display 1, shown", packets[2])
	}
	last := packets[3]
	if !last.ShowFrame || last.FrameNumber != 2 {
		t.Errorf("final packet = %+v, want show_existing_frame reissue of display 2", last)
	}
}

func TestSchedulerReferenceSlotsNeverNilAfterKeyframe(t *testing.T) {
	cfg, err := config.New(config.WithKeyint(3), config.WithBaseQIdx(80))
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}
	s := New(cfg, nil)
	s.SendFrame(testFrame(16, 16, 5))
	for _, slot := range s.slots {
		if slot == nil {
			t.Fatal("reference slot left nil after keyframe reset")
		}
	}
}
