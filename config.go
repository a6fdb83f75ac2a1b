// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gzipstream

import (
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/compress/gzip"
)

// ConfigOption is a function pointer to implement the option pattern
type ConfigOption func(*Config)

// Config holds all configuration options for reading and writing
// multi-member gzip streams. The configuration options can be adjusted
// using the option pattern style.
//
// The default configuration matches the behavior of common gzip tools:
// concatenated members are decoded as one stream, and the compressed
// input size is capped to prevent exhaustion by hostile input.
type Config struct {
	// bufferSize is the size of the read-ahead buffer that is shared
	// between the deflate engine and the header/trailer parser
	bufferSize int

	// compressionLevel is the deflate compression level used by [Writer]
	compressionLevel int

	// concatenation decides if members following the first trailer are
	// decoded (true) or rejected as trailing data (false)
	concatenation bool

	// logger stream for decode/encode operations
	logger logger

	// maxInputSize is the maximum size of the compressed input.
	// Set value to -1 to disable the check.
	maxInputSize int64

	// memberSize is the number of uncompressed bytes after which [Writer]
	// closes the current member and starts a new one.
	// Set value to -1 to write a single member.
	memberSize int64

	// telemetryHook is a function to consume telemetry data after a
	// finished decompression
	// Important: do not adjust this value after decompression started
	telemetryHook TelemetryHook
}

// NewConfig is a generator option that takes opts as adjustments of the
// default configuration in an option pattern style
func NewConfig(opts ...ConfigOption) *Config {
	const (
		bufferSize       = 4096
		compressionLevel = gzip.DefaultCompression
		concatenation    = true
		maxInputSize     = 1 << (10 * 3) // 1 Gb
		memberSize       = 1 << 20       // 1 Mb
	)

	// disable logging by default
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	// setup default values
	config := &Config{
		bufferSize:       bufferSize,
		compressionLevel: compressionLevel,
		concatenation:    concatenation,
		logger:           logger,
		maxInputSize:     maxInputSize,
		memberSize:       memberSize,
		telemetryHook:    func(context.Context, *TelemetryData) {},
	}

	// Loop through each option
	for _, opt := range opts {
		opt(config)
	}

	return config
}

// BufferSize returns the configured read-ahead buffer size.
func (c *Config) BufferSize() int {
	return c.bufferSize
}

// CompressionLevel returns the configured deflate compression level.
func (c *Config) CompressionLevel() int {
	return c.compressionLevel
}

// Concatenation returns true if concatenated members are decoded.
func (c *Config) Concatenation() bool {
	return c.concatenation
}

// Logger returns the logger.
func (c *Config) Logger() logger {
	return c.logger
}

// MaxInputSize returns the maximum size of the compressed input.
func (c *Config) MaxInputSize() int64 {
	return c.maxInputSize
}

// MemberSize returns the configured member segmentation size.
func (c *Config) MemberSize() int64 {
	return c.memberSize
}

// TelemetryHook returns the config telemetry hook.
func (c *Config) TelemetryHook() TelemetryHook {
	return c.telemetryHook
}

// WithBufferSize options pattern function to set the size of the
// read-ahead buffer. [NewReader] fails with [ErrBufferSize] if size is
// zero or negative.
func WithBufferSize(size int) ConfigOption {
	return func(c *Config) {
		c.bufferSize = size
	}
}

// WithCompressionLevel options pattern function to set the deflate
// compression level used by [Writer]
func WithCompressionLevel(level int) ConfigOption {
	return func(c *Config) {
		c.compressionLevel = level
	}
}

// WithConcatenation options pattern function to enable/disable decoding
// of concatenated members.
//
// If disabled, decompression stops after the first member and the
// presence of any additional bytes in the input fails with a
// [FormatError]. If enabled, data following a member trailer is decoded
// as the header of a new member; arbitrarily many consecutive members
// are read back as a single uncompressed stream. In either case, every
// byte of the input must be part of a complete and valid member;
// extraneous trailing data is never silently discarded.
func WithConcatenation(allow bool) ConfigOption {
	return func(c *Config) {
		c.concatenation = allow
	}
}

// WithLogger options pattern function to set a custom logger
func WithLogger(logger logger) ConfigOption {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithMaxInputSize options pattern function to set the maximum size of
// the compressed input (-1 to disable check)
func WithMaxInputSize(maxInputSize int64) ConfigOption {
	return func(c *Config) {
		c.maxInputSize = maxInputSize
	}
}

// WithMemberSize options pattern function to set the number of
// uncompressed bytes per member written by [Writer] (-1 for a single
// member)
func WithMemberSize(memberSize int64) ConfigOption {
	return func(c *Config) {
		c.memberSize = memberSize
	}
}

// WithTelemetryHook options pattern function to set a telemetry hook,
// which is called after a decompression finished
func WithTelemetryHook(hook TelemetryHook) ConfigOption {
	return func(c *Config) {
		c.telemetryHook = hook
	}
}
