// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gzipstream

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrClosed is returned by operations on a [Reader] or [Writer]
	// after Close has been called.
	ErrClosed = errors.New("gzipstream: stream is closed")

	// ErrNilSource is returned by [NewReader] if the source is nil and
	// by [NewWriter] if the destination is nil.
	ErrNilSource = errors.New("gzipstream: source is nil")

	// ErrBufferSize is returned by [NewReader] if the configured buffer
	// size is zero or negative.
	ErrBufferSize = errors.New("gzipstream: buffer size must be greater than zero")
)

// FormatError reports input that violates the gzip format: a bad magic
// number, an unsupported compression method, a corrupt header, trailer or
// deflate stream, or data following the final trailer.
//
// A FormatError is terminal; the [Reader] that produced it must not be
// used again except to close it.
type FormatError struct {
	// Reason describes which part of the format was violated.
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("gzipstream: invalid gzip data: %s", e.Reason)
}

// TruncatedError reports input that ended before a complete gzip member
// was read. It is distinct from [FormatError] so that callers can tell a
// cut-off stream apart from a corrupt one.
type TruncatedError struct {
	// Section names the part of the member that was being read when the
	// input ended, e.g. "header", "deflate stream" or "trailer".
	Section string
}

// Error implements the error interface.
func (e *TruncatedError) Error() string {
	return fmt.Sprintf("gzipstream: unexpected end of input while reading %s", e.Section)
}

// Unwrap returns [io.ErrUnexpectedEOF], so that errors.Is(err,
// io.ErrUnexpectedEOF) holds for every truncation error.
func (e *TruncatedError) Unwrap() error {
	return io.ErrUnexpectedEOF
}
