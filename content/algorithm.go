// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"encoding/base64"
	"fmt"
)

// Algorithm identifies a Matrix message encryption algorithm. Values
// are self-describing strings that serialize directly to JSON.
type Algorithm string

const (
	// AlgorithmOlmV1 is olm, the double-ratchet algorithm used for
	// direct device-to-device encryption. To-device m.room.encrypted
	// events carry olm ciphertext, one copy per recipient device key.
	AlgorithmOlmV1 Algorithm = "m.olm.v1.curve25519-aes-sha2"

	// AlgorithmMegolmV1 is megolm, the group ratchet used for room
	// messages. Room keys distributed over to-device events establish
	// megolm sessions.
	AlgorithmMegolmV1 Algorithm = "m.megolm.v1.aes-sha2"
)

// IsKnown reports whether a is one of the defined Algorithm values.
func (a Algorithm) IsKnown() bool {
	switch a {
	case AlgorithmOlmV1, AlgorithmMegolmV1:
		return true
	}
	return false
}

// validateKeyField checks that value is non-empty unpadded standard
// base64 — the wire shape of curve25519/ed25519 public keys, SAS
// commitments, MACs, and exported session keys.
func validateKeyField(label, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", label)
	}
	if _, err := base64.RawStdEncoding.DecodeString(value); err != nil {
		return fmt.Errorf("%s is not unpadded base64: %w", label, err)
	}
	return nil
}
