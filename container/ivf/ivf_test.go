/*
NAME
  ivf_test.go

DESCRIPTION
  ivf_test.go checks the IVF header's fixed fields and that frame
  records carry the exact size/PTS/payload layout §6 specifies.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

package ivf

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWriteFrameEmitsHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 1920, 1080, 30, 1, 2)

	if err := w.WriteFrame([]byte{0xAA, 0xBB}, 0); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if err := w.WriteFrame([]byte{0xCC}, 1); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	b := buf.Bytes()
	if len(b) != headerSize+frameHeaderSize+2+frameHeaderSize+1 {
		t.Fatalf("total length = %d, want %d", len(b), headerSize+frameHeaderSize+2+frameHeaderSize+1)
	}
	if string(b[0:4]) != "DKIF" {
		t.Errorf("signature = %q, want DKIF", b[0:4])
	}
	if string(b[8:12]) != "AV01" {
		t.Errorf("fourcc = %q, want AV01", b[8:12])
	}
	if got := binary.LittleEndian.Uint16(b[12:14]); got != 1920 {
		t.Errorf("width = %d, want 1920", got)
	}
	if got := binary.LittleEndian.Uint16(b[14:16]); got != 1080 {
		t.Errorf("height = %d, want 1080", got)
	}
}

func TestWriteFrameRecordLayout(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 16, 16, 25, 1, 1)
	payload := []byte{1, 2, 3, 4, 5}
	if err := w.WriteFrame(payload, 0x1122334455667788); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	b := buf.Bytes()[headerSize:]
	if got := binary.LittleEndian.Uint32(b[0:4]); got != uint32(len(payload)) {
		t.Errorf("frame size field = %d, want %d", got, len(payload))
	}
	if got := binary.LittleEndian.Uint64(b[4:12]); got != 0x1122334455667788 {
		t.Errorf("PTS field = %#x, want %#x", got, uint64(0x1122334455667788))
	}
	if !bytes.Equal(b[12:17], payload) {
		t.Errorf("payload = %v, want %v", b[12:17], payload)
	}
}
