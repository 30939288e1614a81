/*
NAME
  main.go

DESCRIPTION
  av1enc is a CLI wrapper around the av1enc package: it reads raw
  planar 4:2:0 YUV frames from an input file, encodes them, and writes
  the resulting packets to an IVF file. Y4M/container parsing of the
  input is deliberately out of scope (§1) — the caller supplies bare
  planes at a fixed width/height/bit depth.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

// Command av1enc encodes a raw YUV 4:2:0 file to an IVF/AV1 stream.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/blackfin/av1enc"
	"github.com/blackfin/av1enc/aerr"
	"github.com/blackfin/av1enc/alog"
	"github.com/blackfin/av1enc/config"
	"github.com/blackfin/av1enc/container/ivf"
)

// Current software version.
const version = "v0.1.0"

// Logging configuration, in the shape of cmd/rv's.
const (
	logPath      = "av1enc.log"
	logMaxSizeMB = 50
	logMaxBackup = 5
)

func main() {
	os.Exit(run())
}

func run() int {
	width := flag.Int("width", 0, "frame width in pixels")
	height := flag.Int("height", 0, "frame height in pixels")
	bitDepth := flag.Int("bit-depth", 8, "bit depth: 8 or 10")
	baseQIdx := flag.Int("qp", 100, "base quantizer index (0..255)")
	keyint := flag.Int("keyint", 60, "frames between keyframes")
	fpsNum := flag.Int("fps-num", 25, "frame rate numerator")
	fpsDen := flag.Int("fps-den", 1, "frame rate denominator")
	bFrameGop := flag.Int("b-frames", 0, "mini-GoP size; 0 disables B-frames")
	in := flag.String("in", "", "input raw YUV 4:2:0 file")
	out := flag.String("out", "", "output IVF file")
	showVersion := flag.Bool("version", false, "show version")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return 0
	}
	if *width <= 0 || *height <= 0 || *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: av1enc -width W -height H -in src.yuv -out dst.ivf")
		return 2
	}

	log := alog.New(logPath, logMaxSizeMB, logMaxBackup, alog.Stderr)
	log.Info("starting av1enc", "version", version)

	opts := []config.Option{
		config.WithBaseQIdx(*baseQIdx),
		config.WithKeyint(*keyint),
		config.WithFrameRate(*fpsNum, *fpsDen),
		config.WithBitDepth(*bitDepth),
	}
	if *bFrameGop > 0 {
		opts = append(opts, config.WithBFrames(*bFrameGop))
	}
	cfg, err := config.New(opts...)
	if err != nil {
		log.Error("invalid configuration", "error", err.Error())
		fmt.Fprintln(os.Stderr, aerr.LastErrorMessage())
		return 1
	}

	if err := encodeFile(*in, *out, *width, *height, cfg, log); err != nil {
		log.Error("encode failed", "error", err.Error())
		fmt.Fprintln(os.Stderr, aerr.LastErrorMessage())
		return 1
	}
	log.Info("done")
	return 0
}

func encodeFile(inPath, outPath string, width, height int, cfg config.EncoderConfig, log alog.Logger) error {
	src, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer dst.Close()

	enc, err := av1enc.Create(width, height, cfg, log)
	if err != nil {
		return fmt.Errorf("creating encoder: %w", err)
	}

	w := ivf.NewWriter(dst, width, height, uint32(cfg.FPSNum), uint32(cfg.FPSDen), 0)

	cw, ch := (width+1)/2, (height+1)/2
	ySize, cSize := width*height, cw*ch
	buf := make([]byte, ySize+2*cSize)

	var pts uint64
	for {
		_, err := io.ReadFull(src, buf)
		if err == io.EOF {
			break
		}
		if err != nil && err != io.ErrUnexpectedEOF {
			return fmt.Errorf("reading frame: %w", err)
		}
		if err == io.ErrUnexpectedEOF {
			break
		}

		frame := av1enc.Frame{
			Width:  width,
			Height: height,
			Y:      widenSamples(buf[:ySize]),
			U:      widenSamples(buf[ySize : ySize+cSize]),
			V:      widenSamples(buf[ySize+cSize:]),
		}
		if err := enc.SendFrame(frame); err != nil {
			return fmt.Errorf("send_frame: %w", err)
		}
		if err := drainPackets(enc, w, &pts); err != nil {
			return err
		}
	}

	if err := enc.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err := drainPackets(enc, w, &pts); err != nil {
		return err
	}

	stats := enc.RateControlStats()
	log.Info("encode complete", "frames_encoded", stats.FramesEncoded, "avg_qp", stats.AvgQP)
	return nil
}

func drainPackets(enc *av1enc.Encoder, w *ivf.Writer, pts *uint64) error {
	for {
		p, ok := enc.ReceivePacket()
		if !ok {
			return nil
		}
		if err := w.WriteFrame(p.Data, *pts); err != nil {
			return fmt.Errorf("writing IVF frame: %w", err)
		}
		*pts++
	}
}

// widenSamples promotes 8-bit raw bytes to the uint16 sample
// representation av1enc.Frame expects. A 10-bit input file is outside
// this CLI's raw-byte reader (it would need 16-bit little-endian
// samples); this wrapper handles the common 8-bit case only.
func widenSamples(b []byte) []uint16 {
	out := make([]uint16, len(b))
	for i, v := range b {
		out[i] = uint16(v)
	}
	return out
}
