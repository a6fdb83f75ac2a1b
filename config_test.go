// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gzipstream_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/hashicorp/go-gzipstream"
)

// TestConfigDefaults checks the default configuration values
func TestConfigDefaults(t *testing.T) {
	cfg := gzipstream.NewConfig()

	if got := cfg.BufferSize(); got != 4096 {
		t.Errorf("BufferSize() = %v, want 4096", got)
	}
	if !cfg.Concatenation() {
		t.Error("Concatenation() = false, want true")
	}
	if got := cfg.MaxInputSize(); got != 1<<30 {
		t.Errorf("MaxInputSize() = %v, want %v", got, 1<<30)
	}
	if got := cfg.MemberSize(); got != 1<<20 {
		t.Errorf("MemberSize() = %v, want %v", got, 1<<20)
	}
	if cfg.Logger() == nil {
		t.Error("Logger() = nil, want a default logger")
	}
	if cfg.TelemetryHook() == nil {
		t.Error("TelemetryHook() = nil, want a noop hook")
	}
}

// TestConfigOptions checks that each option adjusts the configuration
func TestConfigOptions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	hookCalled := false
	hook := func(ctx context.Context, td *gzipstream.TelemetryData) { hookCalled = true }

	cfg := gzipstream.NewConfig(
		gzipstream.WithBufferSize(512),
		gzipstream.WithCompressionLevel(1),
		gzipstream.WithConcatenation(false),
		gzipstream.WithLogger(logger),
		gzipstream.WithMaxInputSize(-1),
		gzipstream.WithMemberSize(-1),
		gzipstream.WithTelemetryHook(hook),
	)

	if got := cfg.BufferSize(); got != 512 {
		t.Errorf("BufferSize() = %v, want 512", got)
	}
	if got := cfg.CompressionLevel(); got != 1 {
		t.Errorf("CompressionLevel() = %v, want 1", got)
	}
	if cfg.Concatenation() {
		t.Error("Concatenation() = true, want false")
	}
	if got := cfg.Logger(); got != logger {
		t.Errorf("Logger() = %v, want the custom logger", got)
	}
	if got := cfg.MaxInputSize(); got != -1 {
		t.Errorf("MaxInputSize() = %v, want -1", got)
	}
	if got := cfg.MemberSize(); got != -1 {
		t.Errorf("MemberSize() = %v, want -1", got)
	}
	cfg.TelemetryHook()(context.Background(), nil)
	if !hookCalled {
		t.Error("TelemetryHook() did not return the custom hook")
	}
}
