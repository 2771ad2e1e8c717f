// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package content defines the content payloads carried by Matrix
// to-device events: room keys, encrypted payloads, room key requests
// and forwards, and the interactive key verification (SAS) messages.
//
// Each event kind has two forms. The Raw* type is the structural shape
// straight off the wire: it decodes any payload with the right field
// types, including semantically invalid ones. Its Validate method runs
// the kind's own normalization checks (known algorithm, required
// fields, key material shape, cancel code from the known set) and
// returns the validated form. Validated values marshal back to the
// exact wire shape, so re-encoding a validated event reproduces the
// original payload.
//
// Validation never mutates its receiver; both forms are plain value
// types created once per message.
package content
