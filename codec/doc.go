// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the standard CBOR encoding configuration for
// this module's internal state files.
//
// Two serialization formats with a clear boundary:
//
//   - JSON for the Matrix wire: to-device payloads arrive and leave as
//     JSON, handled by the todevice and content packages.
//   - CBOR for internal state: the on-disk spool of pending to-device
//     payloads (package spool).
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// Same logical data always produces identical bytes, so state files
// can be compared and content-addressed.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
package codec
