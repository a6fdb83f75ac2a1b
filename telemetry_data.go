// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package gzipstream

import (
	"context"
	"encoding/json"
	"time"
)

// TelemetryData holds all telemetry data of a decompression.
type TelemetryData struct {
	// CompressedBytes is the number of compressed bytes consumed from the input
	CompressedBytes int64 `json:"compressed_bytes"`

	// DecompressionDuration is the time it took to decompress the stream
	DecompressionDuration time.Duration `json:"decompression_duration"`

	// DecompressionErrors is the number of errors during decompression
	DecompressionErrors int64 `json:"decompression_errors"`

	// LastDecompressionError is the last error during decompression
	LastDecompressionError error `json:"last_decompression_error"`

	// Members is the number of gzip members decoded
	Members int64 `json:"members"`

	// UncompressedBytes is the number of uncompressed bytes produced
	UncompressedBytes int64 `json:"uncompressed_bytes"`
}

// String returns a string representation of [TelemetryData].
func (td TelemetryData) String() string {
	b, _ := json.Marshal(td)
	return string(b)
}

// MarshalJSON implements the [encoding/json.Marshaler] interface.
func (td TelemetryData) MarshalJSON() ([]byte, error) {
	var lastError string
	if td.LastDecompressionError != nil {
		lastError = td.LastDecompressionError.Error()
	}

	type Alias TelemetryData
	return json.Marshal(&struct {
		LastDecompressionError string `json:"last_decompression_error"`
		*Alias
	}{
		LastDecompressionError: lastError,
		Alias:                  (*Alias)(&td),
	})
}

// TelemetryHook is a function type that performs operations on [TelemetryData]
// after a decompression has finished which can be used to submit the
// [TelemetryData] to a telemetry service, for example.
type TelemetryHook func(context.Context, *TelemetryData)

// Equals returns true if the given [TelemetryData] is equal to the receiver.
func (td *TelemetryData) Equals(other *TelemetryData) bool {
	if td == nil && other == nil {
		return true
	}
	if td == nil || other == nil {
		return false
	}
	return td.CompressedBytes == other.CompressedBytes &&
		td.DecompressionErrors == other.DecompressionErrors &&
		td.Members == other.Members &&
		td.UncompressedBytes == other.UncompressedBytes
}
