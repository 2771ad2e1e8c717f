// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package todevice

import (
	"encoding/json"
	"log/slog"
)

// ToDeviceSection is the to_device block of a /sync response. Events
// arrive as raw payloads because their concrete shape depends on each
// event's type discriminant; DecodeBatch resolves them.
type ToDeviceSection struct {
	Events []json.RawMessage `json:"events"`
}

// DecodeBatch structurally decodes a batch of to-device payloads, as
// delivered in one sync response. Payloads that fail to decode —
// unknown event types, missing mandatory fields — are skipped and
// logged at debug level; one bad payload never prevents decoding of
// the rest of the batch. The returned slice preserves the delivery
// order of the events that decoded.
func DecodeBatch(payloads []json.RawMessage) []RawToDevice {
	decoded := make([]RawToDevice, 0, len(payloads))
	for i, payload := range payloads {
		event, err := Decode(payload)
		if err != nil {
			slog.Debug("skipping undecodable to-device event",
				"index", i,
				"error", err)
			continue
		}
		decoded = append(decoded, event)
	}
	return decoded
}
