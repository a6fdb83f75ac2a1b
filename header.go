// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gzipstream

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// gzip member header layout, see rfc1952 section 2.3
const (
	gzipID1     = 0x1f
	gzipID2     = 0x8b
	gzipDeflate = 8

	flagText      = 1 << 0
	flagHeaderCRC = 1 << 1
	flagExtra     = 1 << 2
	flagName      = 1 << 3
	flagComment   = 1 << 4
)

// readHeader validates and consumes exactly one gzip member header from
// the read-ahead buffer and returns the number of header bytes consumed.
//
// If first is not -1 it is used as the already-read first magic byte and
// included in the returned byte count; this supports the one-byte boundary
// probe after a member trailer. The CRC-32 accumulator is fed with every
// header byte from the magic onward, compared against the optional header
// checksum, and reset to zero afterwards so that it can be reused for the
// member payload.
func (z *Reader) readHeader(first int) (int, error) {
	z.digest = 0
	z.size = 0

	var fixed [10]byte
	rest := fixed[:]
	if first >= 0 {
		fixed[0] = byte(first)
		rest = fixed[1:]
	}
	if _, err := io.ReadFull(z.src, rest); err != nil {
		return 0, truncatedHeader(err)
	}
	z.digest = crc32.Update(z.digest, crc32.IEEETable, fixed[:])

	if fixed[0] != gzipID1 || fixed[1] != gzipID2 {
		return 0, &FormatError{Reason: "not in gzip format"}
	}
	if fixed[2] != gzipDeflate {
		return 0, &FormatError{Reason: fmt.Sprintf("unsupported compression method %d", fixed[2])}
	}
	flags := fixed[3]
	// fixed[4:10] carry mtime, extra flags and the os id, all skipped
	n := len(fixed)

	if flags&flagExtra != 0 {
		var length [2]byte
		if _, err := io.ReadFull(z.src, length[:]); err != nil {
			return n, truncatedHeader(err)
		}
		z.digest = crc32.Update(z.digest, crc32.IEEETable, length[:])
		extraLen := int(binary.LittleEndian.Uint16(length[:]))
		if err := z.skipHeaderBytes(extraLen); err != nil {
			return n, err
		}
		n += 2 + extraLen
	}

	if flags&flagName != 0 {
		m, err := z.skipHeaderString()
		n += m
		if err != nil {
			return n, err
		}
	}

	if flags&flagComment != 0 {
		m, err := z.skipHeaderString()
		n += m
		if err != nil {
			return n, err
		}
	}

	if flags&flagHeaderCRC != 0 {
		// the stored checksum covers every header byte before this field
		want := uint16(z.digest)
		var sum [2]byte
		if _, err := io.ReadFull(z.src, sum[:]); err != nil {
			return n, truncatedHeader(err)
		}
		if binary.LittleEndian.Uint16(sum[:]) != want {
			return n, &FormatError{Reason: "corrupt header: checksum mismatch"}
		}
		n += 2
	}

	// the accumulator is reused for the member payload
	z.digest = 0
	return n, nil
}

// skipHeaderBytes consumes n header bytes, feeding them into the header
// checksum accumulator.
func (z *Reader) skipHeaderBytes(n int) error {
	var tmp [128]byte
	for n > 0 {
		c := n
		if c > len(tmp) {
			c = len(tmp)
		}
		if _, err := io.ReadFull(z.src, tmp[:c]); err != nil {
			return truncatedHeader(err)
		}
		z.digest = crc32.Update(z.digest, crc32.IEEETable, tmp[:c])
		n -= c
	}
	return nil
}

// skipHeaderString consumes a NUL-terminated header field and returns how
// many bytes it occupied, including the terminator.
func (z *Reader) skipHeaderString() (int, error) {
	s, err := z.src.ReadBytes(0)
	z.digest = crc32.Update(z.digest, crc32.IEEETable, s)
	if err != nil {
		return len(s), truncatedHeader(err)
	}
	return len(s), nil
}

// truncatedHeader maps an end of input during header parsing to a
// [TruncatedError] and passes real source errors through unchanged.
func truncatedHeader(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &TruncatedError{Section: "header"}
	}
	return err
}
