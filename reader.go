// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gzipstream

import (
	"bufio"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/flate"
)

// Reader decodes one or more back-to-back gzip members from an underlying
// byte source into a single logical uncompressed stream. Every member
// trailer is verified against the decompressed data before the member is
// accepted; corrupt or truncated input is never collapsed into a clean
// end of stream.
//
// The zero value is not usable; create a Reader with [NewReader]. A Reader
// holds unsynchronized mutable state and must not be used from multiple
// goroutines without external locking.
type Reader struct {
	cfg *Config

	// src is the read-ahead buffer shared between the deflate engine and
	// the header/trailer parser. The engine pulls single bytes from it,
	// so bytes beyond a member's compressed data stay queued for the
	// trailer parser and the next member's header.
	src *bufio.Reader

	// input counts and caps the compressed bytes below src
	input *limitErrorReader

	// closer is the original source, released together with the reader
	closer io.Closer

	// decompressor is the deflate engine, reset between members
	decompressor io.ReadCloser

	digest uint32 // CRC-32 of the bytes delivered for the current member
	size   uint32 // bytes delivered for the current member, mod 2^32

	members int64 // members whose trailer verified
	written int64 // uncompressed bytes delivered overall

	eos    bool // input ended cleanly at a member boundary
	closed bool
	err    error // sticky failure, reported on every subsequent read
}

// NewReader creates a [Reader] decoding the gzip stream src.
//
// The header of the first member is validated eagerly, so NewReader fails
// with a [FormatError] or [TruncatedError] if src does not start with a
// valid gzip member. A nil src fails with [ErrNilSource], a configured
// buffer size of zero or less with [ErrBufferSize]. A nil cfg falls back
// to [NewConfig].
func NewReader(src io.Reader, cfg *Config) (*Reader, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if cfg == nil {
		cfg = NewConfig()
	}
	if cfg.BufferSize() <= 0 {
		return nil, ErrBufferSize
	}

	z := &Reader{
		cfg:   cfg,
		input: newLimitErrorReader(src, cfg.MaxInputSize()),
	}
	if c, ok := src.(io.Closer); ok {
		z.closer = c
	}
	z.src = bufio.NewReaderSize(z.input, cfg.BufferSize())
	z.decompressor = flate.NewReader(z.src)

	n, err := z.readHeader(-1)
	if err != nil {
		z.decompressor.Close()
		return nil, err
	}
	cfg.Logger().Debug("gzip member header parsed", "headerBytes", n)

	return z, nil
}

// Read reads uncompressed data into p. Member boundaries are invisible to
// the caller: when a member's trailer verifies and another member follows
// (and concatenation is enabled), reading continues with the next member's
// data. Read returns [io.EOF] only after the input ended cleanly at a
// verified member boundary.
//
// A zero-length request returns 0 without touching the source. After an
// error, the Reader is unusable except for [Reader.Close]; the error is
// repeated on subsequent calls.
func (z *Reader) Read(p []byte) (int, error) {
	if z.closed {
		return 0, ErrClosed
	}
	if z.err != nil {
		return 0, z.err
	}
	if z.eos {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	for {
		n, err := z.decompressor.Read(p)
		if n > 0 {
			// only bytes handed to the caller count into the member
			// checksum and size
			z.digest = crc32.Update(z.digest, crc32.IEEETable, p[:n])
			z.size += uint32(n)
			z.written += int64(n)
		}
		switch {
		case err == nil:
			return n, nil
		case err == io.EOF:
			// the engine exhausted the member's compressed data; verify
			// the trailer and decide between clean end and a next member
			last, terr := z.readTrailer()
			if terr != nil {
				z.err = terr
				return n, terr
			}
			if last {
				z.eos = true
				if n > 0 {
					return n, nil
				}
				return 0, io.EOF
			}
			if n > 0 {
				return n, nil
			}
		default:
			z.err = inflateError(err)
			return n, z.err
		}
	}
}

// Close releases the deflate engine and, if the source implements
// io.Closer, the source. Close is idempotent; after the first call every
// read fails with [ErrClosed].
func (z *Reader) Close() error {
	if z.closed {
		return nil
	}
	z.closed = true
	z.eos = true

	err := z.decompressor.Close()
	if z.closer != nil {
		if cerr := z.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Telemetry returns a snapshot of the telemetry counters collected so far.
func (z *Reader) Telemetry() TelemetryData {
	return TelemetryData{
		CompressedBytes:   int64(z.input.ReadBytes()) - int64(z.src.Buffered()),
		Members:           z.members,
		UncompressedBytes: z.written,
	}
}

// inflateError translates deflate engine failures into the package's
// error taxonomy.
func inflateError(err error) error {
	switch err.(type) {
	case flate.CorruptInputError, flate.InternalError:
		return &FormatError{Reason: fmt.Sprintf("corrupt deflate stream: %v", err)}
	}
	if err == io.ErrUnexpectedEOF {
		return &TruncatedError{Section: "deflate stream"}
	}
	return err
}
