// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"fmt"

	"github.com/bureau-foundation/todevice/ref"
)

// RoomKey is the validated content of an m.room_key to-device event:
// a megolm session key shared with a single device so it can decrypt
// messages in the named room.
type RoomKey struct {
	// Algorithm is always AlgorithmMegolmV1 — room keys exist only
	// for megolm sessions.
	Algorithm Algorithm `json:"algorithm"`

	// RoomID is the room the session key belongs to.
	RoomID ref.RoomID `json:"room_id"`

	// SessionID identifies the megolm session.
	SessionID string `json:"session_id"`

	// SessionKey is the exported session key, unpadded base64.
	SessionKey string `json:"session_key"`
}

// RawRoomKey is the structurally decoded, unvalidated form of RoomKey.
type RawRoomKey struct {
	Algorithm  Algorithm  `json:"algorithm"`
	RoomID     ref.RoomID `json:"room_id"`
	SessionID  string     `json:"session_id"`
	SessionKey string     `json:"session_key"`
}

// Validate checks that the algorithm is megolm and all fields are
// present and well-formed, returning the validated content.
func (r RawRoomKey) Validate() (RoomKey, error) {
	if r.Algorithm != AlgorithmMegolmV1 {
		return RoomKey{}, fmt.Errorf("room key: algorithm must be %q, got %q", AlgorithmMegolmV1, r.Algorithm)
	}
	if r.RoomID.IsZero() {
		return RoomKey{}, fmt.Errorf("room key: room_id is required")
	}
	if r.SessionID == "" {
		return RoomKey{}, fmt.Errorf("room key: session_id is required")
	}
	if err := validateKeyField("session_key", r.SessionKey); err != nil {
		return RoomKey{}, fmt.Errorf("room key: %w", err)
	}
	return RoomKey(r), nil
}
