// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gzipstream

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// readTrailer consumes and verifies the 8-byte member trailer and decides
// how the stream continues. It returns true if the input ended cleanly at
// the member boundary, or false if another member follows and the deflate
// engine has been reset for it.
//
// The trailer bytes are read from the shared read-ahead buffer, which
// still holds anything the engine did not consume beyond the compressed
// data. Both trailer fields are checked unconditionally, so a size
// mismatch is reported even when the checksum already failed.
func (z *Reader) readTrailer() (bool, error) {
	var trailer [8]byte
	if _, err := io.ReadFull(z.src, trailer[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return false, &TruncatedError{Section: "trailer"}
		}
		return false, err
	}

	digest := binary.LittleEndian.Uint32(trailer[0:4])
	isize := binary.LittleEndian.Uint32(trailer[4:8])
	badDigest := digest != z.digest
	badSize := isize != z.size
	switch {
	case badDigest && badSize:
		return false, &FormatError{Reason: "corrupt trailer: checksum and size mismatch"}
	case badDigest:
		return false, &FormatError{Reason: fmt.Sprintf("corrupt trailer: checksum mismatch (got 0x%08x, want 0x%08x)", digest, z.digest)}
	case badSize:
		return false, &FormatError{Reason: fmt.Sprintf("corrupt trailer: size mismatch (got %d, want %d)", isize, z.size)}
	}
	z.members++

	// probe one byte to tell a clean end of input from a follow-up member
	next, err := z.src.ReadByte()
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if !z.cfg.Concatenation() {
		return false, &FormatError{Reason: "unexpected data after gzip trailer"}
	}

	// the probed byte is the first magic byte of the next member header
	n, err := z.readHeader(int(next))
	if err != nil {
		return false, err
	}
	z.cfg.Logger().Debug("gzip member header parsed", "headerBytes", n, "member", z.members+1)

	// reset the engine for the next member; compressed bytes it had not
	// consumed are still queued in the shared buffer and replayed to it
	if err := z.decompressor.(flate.Resetter).Reset(z.src, nil); err != nil {
		return false, err
	}
	return false, nil
}
