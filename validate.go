// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package todevice

import (
	"fmt"

	"github.com/bureau-foundation/todevice/content"
)

// Validate runs the semantic validation of the active variant's
// content, converting the raw event to its validated counterpart. The
// sender passes through untouched; only the content is normalized.
// The mapping is variant-preserving — a raw room key validates to a
// room key or fails, never to another kind.
//
// On failure the content type's own error is returned wrapped in a
// *ContentError that names the event kind; the underlying cause is
// preserved, not replaced. Validate is a pure function and idempotent:
// validating the re-decoded encoding of an already-validated event
// yields an equal result.
func Validate(raw RawToDevice) (ToDevice, error) {
	switch r := raw.(type) {
	case RawRoomKey:
		validated, err := r.Content.Validate()
		if err != nil {
			return nil, &ContentError{Type: TypeRoomKey, Err: err}
		}
		return RoomKey{Event[content.RoomKey]{Sender: r.Sender, Content: validated}}, nil
	case RawRoomEncrypted:
		validated, err := r.Content.Validate()
		if err != nil {
			return nil, &ContentError{Type: TypeRoomEncrypted, Err: err}
		}
		return RoomEncrypted{Event[content.Encrypted]{Sender: r.Sender, Content: validated}}, nil
	case RawForwardedRoomKey:
		validated, err := r.Content.Validate()
		if err != nil {
			return nil, &ContentError{Type: TypeForwardedRoomKey, Err: err}
		}
		return ForwardedRoomKey{Event[content.ForwardedRoomKey]{Sender: r.Sender, Content: validated}}, nil
	case RawRoomKeyRequest:
		validated, err := r.Content.Validate()
		if err != nil {
			return nil, &ContentError{Type: TypeRoomKeyRequest, Err: err}
		}
		return RoomKeyRequest{Event[content.RoomKeyRequest]{Sender: r.Sender, Content: validated}}, nil
	case RawVerificationStart:
		validated, err := r.Content.Validate()
		if err != nil {
			return nil, &ContentError{Type: TypeVerificationStart, Err: err}
		}
		return VerificationStart{Event[content.VerificationStart]{Sender: r.Sender, Content: validated}}, nil
	case RawVerificationAccept:
		validated, err := r.Content.Validate()
		if err != nil {
			return nil, &ContentError{Type: TypeVerificationAccept, Err: err}
		}
		return VerificationAccept{Event[content.VerificationAccept]{Sender: r.Sender, Content: validated}}, nil
	case RawVerificationKey:
		validated, err := r.Content.Validate()
		if err != nil {
			return nil, &ContentError{Type: TypeVerificationKey, Err: err}
		}
		return VerificationKey{Event[content.VerificationKey]{Sender: r.Sender, Content: validated}}, nil
	case RawVerificationMac:
		validated, err := r.Content.Validate()
		if err != nil {
			return nil, &ContentError{Type: TypeVerificationMac, Err: err}
		}
		return VerificationMac{Event[content.VerificationMac]{Sender: r.Sender, Content: validated}}, nil
	case RawVerificationCancel:
		validated, err := r.Content.Validate()
		if err != nil {
			return nil, &ContentError{Type: TypeVerificationCancel, Err: err}
		}
		return VerificationCancel{Event[content.VerificationCancel]{Sender: r.Sender, Content: validated}}, nil
	case RawVerificationRequest:
		validated, err := r.Content.Validate()
		if err != nil {
			return nil, &ContentError{Type: TypeVerificationRequest, Err: err}
		}
		return VerificationRequest{Event[content.VerificationRequest]{Sender: r.Sender, Content: validated}}, nil
	default:
		// The RawToDevice interface is sealed to the ten cases above.
		return nil, fmt.Errorf("to-device event: unsupported raw variant %T", raw)
	}
}
