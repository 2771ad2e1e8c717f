// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Todevice-inspect decodes and validates to-device event payloads from
// files or stdin. It is a debugging aid for sync traffic: feed it a
// captured event, an array of events, or a whole to_device sync
// section, and it reports what each payload decoded to and why the
// rejected ones were rejected.
//
// Input files may carry JSONC comments and trailing commas; they are
// stripped before parsing.
//
// Exit codes:
//
//	0  every event decoded and validated
//	1  at least one event was rejected (details printed to stderr)
//	2  error (unreadable input, malformed JSON, bad arguments)
package main
