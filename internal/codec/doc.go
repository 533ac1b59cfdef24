// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec implements the binary delta format shared by the wire
// protocol and the local container.
//
// A stream is the magic "GSD1", a format version byte and a uvarint record
// count, followed by the records in order:
//
//	op tag (1 byte) | seq (varint) | feature id (string) | origin (string) | values
//
// Strings are a uvarint length followed by UTF-8 bytes. A values block is a
// uvarint count followed by (name, value tag, payload) triples sorted by name.
// Geometry payloads are length-prefixed WKB.
//
// Record order is preserved exactly. Any truncation, unknown tag or trailing
// garbage yields a [*FormatError], which callers must treat as corruption.
package codec
