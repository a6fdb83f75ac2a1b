// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gzipstream

import (
	"strings"
	"testing"
)

// TestLimitErrorReaderRead tests the implementation of limitErrorReader.Read
func TestLimitErrorReaderRead(t *testing.T) {
	tests := []struct {
		name       string
		limit      int64
		input      string
		bufferSize int
		expectN    int
		wantErr    bool
	}{
		{
			name:       "Under limit",
			limit:      10,
			input:      "12345",
			bufferSize: 5,
			expectN:    5,
			wantErr:    false,
		},
		{
			name:       "At limit",
			limit:      5,
			input:      "12345",
			bufferSize: 5,
			expectN:    5,
			wantErr:    false,
		},
		{
			name:       "Over limit",
			limit:      4,
			input:      "12345",
			bufferSize: 5,
			expectN:    4,
			wantErr:    false,
		},
		{
			name:       "Under limit with buffer",
			limit:      10,
			input:      "12345",
			bufferSize: 2,
			expectN:    2,
			wantErr:    false,
		},
		{
			name:       "Unlimited",
			limit:      -1,
			input:      "12345",
			bufferSize: 5,
			expectN:    5,
			wantErr:    false,
		},
		{
			name:       "Limit exhausted",
			limit:      0,
			input:      "12345",
			bufferSize: 5,
			expectN:    0,
			wantErr:    true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := strings.NewReader(test.input)
			l := newLimitErrorReader(r, test.limit)
			buf := make([]byte, test.bufferSize)
			n, err := l.Read(buf)
			if (err != nil) != test.wantErr {
				t.Fatalf("Read() error = %v, wantErr %v", err, test.wantErr)
			}
			if n != test.expectN {
				t.Errorf("Read() = %v, want %v", n, test.expectN)
			}
			if l.ReadBytes() != test.expectN {
				t.Errorf("ReadBytes() = %v, want %v", l.ReadBytes(), test.expectN)
			}
		})
	}
}

// TestLimitErrorReaderExceeded checks that the error is returned once the
// limit has been crossed mid-stream
func TestLimitErrorReaderExceeded(t *testing.T) {
	l := newLimitErrorReader(strings.NewReader("1234567890"), 5)
	buf := make([]byte, 5)

	if n, err := l.Read(buf); n != 5 || err != nil {
		t.Fatalf("Read() = (%v, %v), want (5, nil)", n, err)
	}
	if _, err := l.Read(buf); err == nil {
		t.Error("Read() beyond the limit succeeded")
	}
	if l.ReadBytes() != 5 {
		t.Errorf("ReadBytes() = %v, want 5", l.ReadBytes())
	}
}
