// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/todevice/ref"
)

// CiphertextInfo is one olm-encrypted payload addressed to a single
// recipient curve25519 identity key.
type CiphertextInfo struct {
	// Body is the encrypted payload, unpadded base64.
	Body string `json:"body"`

	// Type is the olm message type: 0 for a pre-key message, 1 for a
	// normal message.
	Type int `json:"type"`
}

// RawEncrypted is the structurally decoded, unvalidated form of
// Encrypted. Ciphertext is kept as raw JSON because its shape depends
// on the algorithm: an object keyed by recipient key for olm, a plain
// string for megolm. Validate resolves it.
type RawEncrypted struct {
	Algorithm  Algorithm       `json:"algorithm"`
	Ciphertext json.RawMessage `json:"ciphertext"`
	SenderKey  string          `json:"sender_key"`
	DeviceID   ref.DeviceID    `json:"device_id"`
	SessionID  string          `json:"session_id"`
}

// Encrypted is the validated content of an m.room.encrypted to-device
// event. Exactly one of OlmCiphertext and MegolmCiphertext is set,
// matching Algorithm.
type Encrypted struct {
	// Algorithm is the encryption algorithm; olm for direct
	// device-to-device payloads, megolm when an encrypted room event
	// is carried over to-device transport.
	Algorithm Algorithm

	// SenderKey is the curve25519 identity key of the sending device,
	// unpadded base64.
	SenderKey string

	// DeviceID is the sending device. Megolm only.
	DeviceID ref.DeviceID

	// SessionID identifies the megolm session. Megolm only.
	SessionID string

	// OlmCiphertext maps each recipient curve25519 identity key to
	// the payload encrypted for it. Olm only.
	OlmCiphertext map[string]CiphertextInfo

	// MegolmCiphertext is the opaque encrypted payload. Megolm only.
	MegolmCiphertext string
}

// Validate resolves the algorithm-dependent ciphertext shape and checks
// the remaining fields, returning the validated content. An algorithm
// outside the known set is an error, not a passthrough.
func (r RawEncrypted) Validate() (Encrypted, error) {
	if err := validateKeyField("sender_key", r.SenderKey); err != nil {
		return Encrypted{}, fmt.Errorf("encrypted: %w", err)
	}
	if len(r.Ciphertext) == 0 {
		return Encrypted{}, fmt.Errorf("encrypted: ciphertext is required")
	}

	switch r.Algorithm {
	case AlgorithmOlmV1:
		var ciphertext map[string]CiphertextInfo
		if err := json.Unmarshal(r.Ciphertext, &ciphertext); err != nil {
			return Encrypted{}, fmt.Errorf("encrypted: olm ciphertext must be an object keyed by recipient key: %w", err)
		}
		if len(ciphertext) == 0 {
			return Encrypted{}, fmt.Errorf("encrypted: olm ciphertext has no recipients")
		}
		for recipientKey, info := range ciphertext {
			if err := validateKeyField("recipient key", recipientKey); err != nil {
				return Encrypted{}, fmt.Errorf("encrypted: %w", err)
			}
			if info.Body == "" {
				return Encrypted{}, fmt.Errorf("encrypted: ciphertext body for %q is required", recipientKey)
			}
		}
		return Encrypted{
			Algorithm:     AlgorithmOlmV1,
			SenderKey:     r.SenderKey,
			OlmCiphertext: ciphertext,
		}, nil

	case AlgorithmMegolmV1:
		var ciphertext string
		if err := json.Unmarshal(r.Ciphertext, &ciphertext); err != nil {
			return Encrypted{}, fmt.Errorf("encrypted: megolm ciphertext must be a string: %w", err)
		}
		if ciphertext == "" {
			return Encrypted{}, fmt.Errorf("encrypted: megolm ciphertext is empty")
		}
		if r.DeviceID.IsZero() {
			return Encrypted{}, fmt.Errorf("encrypted: device_id is required for megolm")
		}
		if r.SessionID == "" {
			return Encrypted{}, fmt.Errorf("encrypted: session_id is required for megolm")
		}
		return Encrypted{
			Algorithm:        AlgorithmMegolmV1,
			SenderKey:        r.SenderKey,
			DeviceID:         r.DeviceID,
			SessionID:        r.SessionID,
			MegolmCiphertext: ciphertext,
		}, nil

	default:
		return Encrypted{}, fmt.Errorf("encrypted: unknown algorithm %q", r.Algorithm)
	}
}

// encryptedWire is the JSON wire shape shared by both algorithms.
type encryptedWire struct {
	Algorithm  Algorithm    `json:"algorithm"`
	Ciphertext any          `json:"ciphertext"`
	SenderKey  string       `json:"sender_key"`
	DeviceID   ref.DeviceID `json:"device_id,omitzero"`
	SessionID  string       `json:"session_id,omitempty"`
}

// MarshalJSON writes the wire shape: ciphertext is an object for olm,
// a string for megolm.
func (e Encrypted) MarshalJSON() ([]byte, error) {
	wire := encryptedWire{
		Algorithm: e.Algorithm,
		SenderKey: e.SenderKey,
		DeviceID:  e.DeviceID,
		SessionID: e.SessionID,
	}
	switch e.Algorithm {
	case AlgorithmOlmV1:
		wire.Ciphertext = e.OlmCiphertext
	case AlgorithmMegolmV1:
		wire.Ciphertext = e.MegolmCiphertext
	default:
		return nil, fmt.Errorf("encrypted: cannot marshal unknown algorithm %q", e.Algorithm)
	}
	return json.Marshal(wire)
}
