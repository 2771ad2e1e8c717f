// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package todevice decodes Matrix to-device events — the point-to-point
// messages delivered directly to a device through the to_device section
// of a /sync response, without a room context: room keys, encrypted
// payloads, key requests, and interactive key verification messages.
//
// Decoding is a two-stage pipeline. [Decode] reads the payload's "type"
// discriminant, dispatches over the closed set of ten known event kinds,
// and structurally decodes the full payload into the matching
// [RawToDevice] variant — an [Event] envelope (sender plus content)
// whose content has the right shape but has not been checked
// semantically. [Validate] then runs the matched content's own
// normalization (known algorithm, key material shape, cancel code from
// the known set) and produces the corresponding [ToDevice] variant, or
// a [*ContentError] preserving the underlying cause. The sender passes
// through both stages untouched.
//
// Both stages are pure functions of their input: no shared state, safe
// to call concurrently on independent payloads, and idempotent given
// the same input. All failures are returned as values — a
// [*MissingFieldError] for an absent or malformed mandatory field, a
// [*UnknownEventTypeError] for a discriminant outside the known set
// (carrying the tag verbatim), and a [*ContentError] for semantic
// validation failures. [DecodeBatch] implements the standard caller
// policy for sync batches: skip undecodable events, log, and never let
// one bad payload stop the rest.
//
// [Encode] is the inverse surface: it re-encodes a validated event to
// its exact wire shape, for outbound sendToDevice payloads and for
// round-trip tests.
package todevice
