// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gzipstream

import (
	"context"
	"fmt"
	"io"
	"time"
)

// now is a function pointer that returns time.Now to the caller.
var now = time.Now

// Decompress decodes the gzip stream src and writes the uncompressed data
// to dst, returning the number of bytes written. It is the one-shot
// counterpart to [Reader]: the context is checked between copy chunks,
// and telemetry data is captured and submitted to the configured
// telemetry hook once decompression has finished.
func Decompress(ctx context.Context, dst io.Writer, src io.Reader, cfg *Config) (int64, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	// prepare telemetry capturing
	cfg.Logger().Info("decompress gzip stream")
	td := &TelemetryData{}
	defer cfg.TelemetryHook()(ctx, td)
	defer captureDecompressionDuration(td, now())

	r, err := NewReader(src, cfg)
	if err != nil {
		return 0, handleError(cfg, td, "cannot start decompression", err)
	}
	defer r.Close()
	defer captureTelemetry(td, r)

	var written int64
	buf := make([]byte, cfg.BufferSize())
	for {
		// check if context is canceled
		if err := ctx.Err(); err != nil {
			return written, handleError(cfg, td, "context error", err)
		}

		n, rerr := r.Read(buf)
		if n > 0 {
			m, werr := dst.Write(buf[:n])
			written += int64(m)
			if werr != nil {
				return written, handleError(cfg, td, "cannot write decompressed data", werr)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return written, handleError(cfg, td, "cannot decompress", rerr)
		}
	}

	cfg.Logger().Debug("decompression finished", "members", r.Telemetry().Members, "bytes", written)
	return written, nil
}

// captureTelemetry copies the reader's telemetry counters into td.
func captureTelemetry(td *TelemetryData, r *Reader) {
	snap := r.Telemetry()
	td.CompressedBytes = snap.CompressedBytes
	td.Members = snap.Members
	td.UncompressedBytes = snap.UncompressedBytes
}

// captureDecompressionDuration captures the duration of the decompression
func captureDecompressionDuration(td *TelemetryData, start time.Time) {
	stop := now()
	td.DecompressionDuration = stop.Sub(start)
}

// handleError increases the error counter, sets the latest error and
// returns the wrapped error.
func handleError(c *Config, td *TelemetryData, msg string, err error) error {
	td.DecompressionErrors++
	td.LastDecompressionError = fmt.Errorf("%s: %w", msg, err)
	c.Logger().Error(msg, "error", err)
	return td.LastDecompressionError
}
