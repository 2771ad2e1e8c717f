// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ref provides strongly typed, immutable identity references
// for the Matrix identifiers that appear in to-device traffic: user
// IDs, room IDs, and device IDs.
//
// All constructors validate their inputs and return errors for invalid
// identifiers. Once constructed, a ref is an immutable value type; the
// zero value is never valid and IsZero reports it.
//
// Every ref type implements encoding.TextMarshaler and
// encoding.TextUnmarshaler, so encoding/json (and CBOR codecs
// configured for text marshaling) validate identifiers at the
// serialization boundary — a struct field of type ref.UserID cannot
// hold a malformed user ID that arrived over the wire.
package ref
