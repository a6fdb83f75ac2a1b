// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gzipstream_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/hashicorp/go-gzipstream"
)

func TestWriterRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *gzipstream.Config
		data        []byte
		wantMembers int64
	}{
		{
			name:        "single member",
			cfg:         gzipstream.NewConfig(gzipstream.WithMemberSize(-1)),
			data:        bytes.Repeat([]byte("single member data "), 100),
			wantMembers: 1,
		},
		{
			name:        "segmented into members",
			cfg:         gzipstream.NewConfig(gzipstream.WithMemberSize(4)),
			data:        []byte("0123456789"),
			wantMembers: 3,
		},
		{
			name:        "member size larger than data",
			cfg:         gzipstream.NewConfig(gzipstream.WithMemberSize(1 << 20)),
			data:        []byte("fits into one member"),
			wantMembers: 1,
		},
		{
			name:        "no data at all",
			cfg:         gzipstream.NewConfig(),
			data:        nil,
			wantMembers: 1,
		},
		{
			name:        "boundary on the last byte",
			cfg:         gzipstream.NewConfig(gzipstream.WithMemberSize(5)),
			data:        []byte("0123456789"),
			wantMembers: 2,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			w, err := gzipstream.NewWriter(&buf, test.cfg)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			if n, err := w.Write(test.data); err != nil || n != len(test.data) {
				t.Fatalf("Write() = (%v, %v), want (%v, nil)", n, err, len(test.data))
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			r, err := gzipstream.NewReader(bytes.NewReader(buf.Bytes()), nil)
			if err != nil {
				t.Fatalf("NewReader() error = %v", err)
			}
			defer r.Close()
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if !bytes.Equal(got, test.data) {
				t.Errorf("round trip delivered %q, want %q", got, test.data)
			}
			if members := r.Telemetry().Members; members != test.wantMembers {
				t.Errorf("decoded %d members, want %d", members, test.wantMembers)
			}
		})
	}
}

func TestWriterClose(t *testing.T) {
	var buf bytes.Buffer
	w, err := gzipstream.NewWriter(&buf, nil)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := w.Write([]byte("late")); !errors.Is(err, gzipstream.ErrClosed) {
		t.Errorf("Write() after Close = %v, want ErrClosed", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestNewWriterValidation(t *testing.T) {
	if _, err := gzipstream.NewWriter(nil, nil); !errors.Is(err, gzipstream.ErrNilSource) {
		t.Errorf("NewWriter(nil) error = %v, want ErrNilSource", err)
	}

	var buf bytes.Buffer
	if _, err := gzipstream.NewWriter(&buf, gzipstream.NewConfig(gzipstream.WithCompressionLevel(42))); err == nil {
		t.Error("NewWriter() succeeded with an invalid compression level")
	}
}
