// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"fmt"

	"github.com/bureau-foundation/todevice/ref"
)

// ForwardedRoomKey is the validated content of an m.forwarded_room_key
// to-device event: a megolm session key passed on by a device other
// than the one that created it, in response to a room key request.
// The forwarding chain records every device the key passed through.
type ForwardedRoomKey struct {
	// Algorithm is always AlgorithmMegolmV1.
	Algorithm Algorithm `json:"algorithm"`

	// RoomID is the room the session key belongs to.
	RoomID ref.RoomID `json:"room_id"`

	// SenderKey is the curve25519 identity key of the device that
	// originally created the session, unpadded base64.
	SenderKey string `json:"sender_key"`

	// SessionID identifies the megolm session.
	SessionID string `json:"session_id"`

	// SessionKey is the exported session key, unpadded base64.
	SessionKey string `json:"session_key"`

	// SenderClaimedEd25519Key is the ed25519 signing key the original
	// sender claimed, unpadded base64. Unverifiable by the receiver —
	// recorded for audit, not trusted.
	SenderClaimedEd25519Key string `json:"sender_claimed_ed25519_key"`

	// ForwardingCurve25519KeyChain lists the identity key of every
	// device that forwarded the session key before this one, oldest
	// first. Empty when the key came directly from the creator.
	ForwardingCurve25519KeyChain []string `json:"forwarding_curve25519_key_chain"`
}

// RawForwardedRoomKey is the structurally decoded, unvalidated form of
// ForwardedRoomKey.
type RawForwardedRoomKey struct {
	Algorithm                    Algorithm  `json:"algorithm"`
	RoomID                       ref.RoomID `json:"room_id"`
	SenderKey                    string     `json:"sender_key"`
	SessionID                    string     `json:"session_id"`
	SessionKey                   string     `json:"session_key"`
	SenderClaimedEd25519Key      string     `json:"sender_claimed_ed25519_key"`
	ForwardingCurve25519KeyChain []string   `json:"forwarding_curve25519_key_chain"`
}

// Validate checks that the algorithm is megolm, all key material is
// well-formed, and every entry in the forwarding chain is a valid key.
// An absent forwarding chain is treated as empty.
func (r RawForwardedRoomKey) Validate() (ForwardedRoomKey, error) {
	if r.Algorithm != AlgorithmMegolmV1 {
		return ForwardedRoomKey{}, fmt.Errorf("forwarded room key: algorithm must be %q, got %q", AlgorithmMegolmV1, r.Algorithm)
	}
	if r.RoomID.IsZero() {
		return ForwardedRoomKey{}, fmt.Errorf("forwarded room key: room_id is required")
	}
	if r.SessionID == "" {
		return ForwardedRoomKey{}, fmt.Errorf("forwarded room key: session_id is required")
	}
	for _, field := range []struct{ label, value string }{
		{"sender_key", r.SenderKey},
		{"session_key", r.SessionKey},
		{"sender_claimed_ed25519_key", r.SenderClaimedEd25519Key},
	} {
		if err := validateKeyField(field.label, field.value); err != nil {
			return ForwardedRoomKey{}, fmt.Errorf("forwarded room key: %w", err)
		}
	}
	for i, key := range r.ForwardingCurve25519KeyChain {
		if err := validateKeyField(fmt.Sprintf("forwarding_curve25519_key_chain[%d]", i), key); err != nil {
			return ForwardedRoomKey{}, fmt.Errorf("forwarded room key: %w", err)
		}
	}
	return ForwardedRoomKey(r), nil
}
