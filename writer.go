// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gzipstream

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// Writer produces a gzip stream of one or more concatenated members.
//
// After every MemberSize uncompressed bytes the current member is closed,
// trailer included, and a new member is started. The output is a plain
// gzip file to every compliant tool, and decoding it with a [Reader]
// yields exactly the written bytes. Writing member boundaries at regular
// intervals keeps large files friendly to partial re-transfers and makes
// corruption detectable per member rather than only at the very end.
type Writer struct {
	w          io.Writer
	gw         *gzip.Writer
	memberSize int64
	n          int64 // uncompressed bytes in the current member
	closed     bool
}

// NewWriter creates a [Writer] emitting to w. A nil w fails with
// [ErrNilSource]; an invalid compression level fails with the deflate
// engine's error. A nil cfg falls back to [NewConfig].
func NewWriter(w io.Writer, cfg *Config) (*Writer, error) {
	if w == nil {
		return nil, ErrNilSource
	}
	if cfg == nil {
		cfg = NewConfig()
	}
	gw, err := gzip.NewWriterLevel(w, cfg.CompressionLevel())
	if err != nil {
		return nil, err
	}
	return &Writer{
		w:          w,
		gw:         gw,
		memberSize: cfg.MemberSize(),
	}, nil
}

// Write compresses p, segmenting the output into members of the
// configured size. It never leaves an empty trailing member behind: a
// boundary that falls on the end of p is only realized when more data
// arrives.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}

	written := 0
	for len(p) > 0 {
		chunk := int64(len(p))
		if w.memberSize > 0 {
			remain := w.memberSize - w.n
			if remain == 0 {
				if err := w.nextMember(); err != nil {
					return written, err
				}
				remain = w.memberSize
			}
			if chunk > remain {
				chunk = remain
			}
		}

		n, err := w.gw.Write(p[:chunk])
		w.n += int64(n)
		written += n
		if err != nil {
			return written, err
		}
		p = p[chunk:]
	}
	return written, nil
}

// nextMember closes the current member and starts a new one on the same
// destination.
func (w *Writer) nextMember() error {
	if err := w.gw.Close(); err != nil {
		return err
	}
	w.gw.Reset(w.w)
	w.n = 0
	return nil
}

// Close closes the current member, flushing its trailer. It does not
// close the destination. Close is idempotent; after the first call every
// write fails with [ErrClosed].
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.gw.Close()
}
