// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package gzipstream decodes and encodes multi-member gzip streams.
//
// The gzip format is self-delimiting: every member carries an explicit
// trailer with a CRC-32 and the uncompressed size, and members can be
// concatenated back-to-back into a single valid file. [Reader] decodes
// such a stream strictly, verifying every trailer and never collapsing
// corrupt or truncated input into a clean end of stream; whether members
// after the first are decoded or rejected is controlled by
// [WithConcatenation]. [Writer] produces the matching streams, segmented
// into members of a configurable size.
//
// Configuration is done using the [Config], which can be used to set the
// concatenation policy, the read-ahead buffer size, the logger, the
// telemetry hook, and the maximum compressed input size. Telemetry data
// is captured during decompression; the collection of [TelemetryData] is
// submitted to the configured [TelemetryHook] by [Decompress].
package gzipstream
