/*
NAME
  config.go

DESCRIPTION
  config holds the EncoderConfig described by the data model: quantizer
  index, keyframe interval, optional target bitrate, frame rate, the
  B-frame/mini-GoP toggle, the video signal descriptor, and optional
  HDR metadata records. Built via functional options in the shape of
  container/mts's option funcs, and validated once by New.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

// Package config defines and validates av1enc's EncoderConfig.
package config

import (
	"github.com/blackfin/av1enc/aerr"
)

// ColorRange selects AV1's color_range signaling.
type ColorRange int

const (
	Limited ColorRange = iota
	Full
)

// unset is the sentinel for an unset color-description field, per §6.
const unset = -1

// MDCV holds a mastering-display-color-volume record: this module treats
// it as an already-validated record handed in by the caller (§1 scope);
// only its presence/absence and bit-exact field values matter here.
type MDCV struct {
	PrimariesX, PrimariesY [3]uint16 // 0.16 fixed point chromaticity per RGB primary.
	WhitePointX, WhitePointY uint16
	MaxLuminance, MinLuminance uint32 // MaxLuminance: 24.8 fixed point; MinLuminance likewise.
}

// EncoderConfig is the immutable, validated configuration for one
// encoding session. Construct with New.
type EncoderConfig struct {
	BaseQIdx      int // 0..255
	Keyint        int // frames between keyframes, >= 1
	TargetBitrate int // 0 = constant-QP
	FPSNum        int
	FPSDen        int
	BFrames       bool
	GopSize       int // mini-GoP length when BFrames is set

	BitDepth   int // 8 or 10
	ColorRange ColorRange

	ColorPrimaries, TransferCharacteristics, MatrixCoefficients int // unset (-1) sentinel when not set.

	HasCLL         bool
	MaxCLL, MaxFALL uint16

	HasMDCV bool
	MDCV    MDCV
}

// Option configures an EncoderConfig under construction. Options return
// an error so a caller can detect a malformed combination (e.g. a
// partial color-description triple) at the point it was supplied.
type Option func(*EncoderConfig) error

// New builds an EncoderConfig from sensible defaults plus the given
// options, and validates the result. Constant-QP, 8-bit, 25fps,
// keyint=60, no B-frames is the default shape.
func New(opts ...Option) (EncoderConfig, error) {
	c := EncoderConfig{
		BaseQIdx:                100,
		Keyint:                  60,
		FPSNum:                  25,
		FPSDen:                  1,
		GopSize:                 1,
		BitDepth:                8,
		ColorRange:              Limited,
		ColorPrimaries:          unset,
		TransferCharacteristics: unset,
		MatrixCoefficients:      unset,
	}
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return EncoderConfig{}, aerr.Wrap(aerr.InvalidArgument, err, "applying encoder config option")
		}
	}
	if err := c.validate(); err != nil {
		return EncoderConfig{}, err
	}
	return c, nil
}

func (c *EncoderConfig) validate() error {
	if c.BaseQIdx < 0 || c.BaseQIdx > 255 {
		return aerr.New(aerr.InvalidArgument, "base_q_idx out of range 0..255")
	}
	if c.Keyint < 1 {
		return aerr.New(aerr.InvalidArgument, "keyint must be >= 1")
	}
	if c.BitDepth != 8 && c.BitDepth != 10 {
		return aerr.New(aerr.InvalidArgument, "bit_depth must be 8 or 10")
	}
	if c.BFrames && c.GopSize < 2 {
		return aerr.New(aerr.InvalidArgument, "gop_size must be >= 2 when b_frames is enabled")
	}
	triple := []int{c.ColorPrimaries, c.TransferCharacteristics, c.MatrixCoefficients}
	set := 0
	for _, v := range triple {
		if v != unset {
			set++
		}
	}
	if set != 0 && set != len(triple) {
		return aerr.New(aerr.InvalidArgument, "color_primaries/transfer_characteristics/matrix_coefficients must be all-or-none")
	}
	if c.HasCLL && (c.MaxCLL == 0 && c.MaxFALL == 0) {
		return aerr.New(aerr.InvalidArgument, "has_cll set without max_cll/max_fall pair")
	}
	if (c.HasCLL || c.HasMDCV) && c.BitDepth != 10 {
		return aerr.New(aerr.InvalidArgument, "HDR metadata requires a 10-bit stream")
	}
	return nil
}

// ColorDescriptionPresent reports whether the all-or-none color
// description triple was supplied.
func (c EncoderConfig) ColorDescriptionPresent() bool {
	return c.ColorPrimaries != unset
}

func WithBaseQIdx(q int) Option {
	return func(c *EncoderConfig) error { c.BaseQIdx = q; return nil }
}

func WithKeyint(n int) Option {
	return func(c *EncoderConfig) error { c.Keyint = n; return nil }
}

func WithTargetBitrate(bps int) Option {
	return func(c *EncoderConfig) error { c.TargetBitrate = bps; return nil }
}

func WithFrameRate(num, den int) Option {
	return func(c *EncoderConfig) error {
		if den == 0 {
			return aerr.New(aerr.InvalidArgument, "fps_den must be non-zero")
		}
		c.FPSNum, c.FPSDen = num, den
		return nil
	}
}

func WithBFrames(gopSize int) Option {
	return func(c *EncoderConfig) error {
		c.BFrames = true
		c.GopSize = gopSize
		return nil
	}
}

func WithBitDepth(bits int) Option {
	return func(c *EncoderConfig) error { c.BitDepth = bits; return nil }
}

func WithColorRange(r ColorRange) Option {
	return func(c *EncoderConfig) error { c.ColorRange = r; return nil }
}

func WithColorDescription(primaries, transfer, matrix int) Option {
	return func(c *EncoderConfig) error {
		c.ColorPrimaries = primaries
		c.TransferCharacteristics = transfer
		c.MatrixCoefficients = matrix
		return nil
	}
}

func WithCLL(maxCLL, maxFALL uint16) Option {
	return func(c *EncoderConfig) error {
		c.HasCLL = true
		c.MaxCLL, c.MaxFALL = maxCLL, maxFALL
		return nil
	}
}

func WithMDCV(m MDCV) Option {
	return func(c *EncoderConfig) error {
		c.HasMDCV = true
		c.MDCV = m
		return nil
	}
}
