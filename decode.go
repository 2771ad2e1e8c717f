// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package todevice

import (
	"bytes"
	"encoding/json"

	"github.com/bureau-foundation/todevice/content"
	"github.com/bureau-foundation/todevice/ref"
)

// Decode structurally decodes one to-device wire payload into the raw
// variant matching its "type" discriminant.
//
// The discriminant is read once to pick the decoder, then the entire
// original payload is decoded a second time as the envelope for that
// kind — so payloads that carry "type" as a sibling of "sender" and
// "content" (the wire format) decode without any field stripping.
// Fields beyond "type", "sender", and "content" are ignored.
//
// Failure modes: a *MissingFieldError for an absent or wrong-shaped
// mandatory field, or a *UnknownEventTypeError carrying an unrecognized
// discriminant verbatim. Decode is a pure function: it never mutates
// shared state and always returns the same result for the same payload.
func Decode(payload json.RawMessage) (RawToDevice, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, &MissingFieldError{Field: "type", cause: err}
	}
	typeRaw, ok := fields["type"]
	if !ok || isJSONNull(typeRaw) {
		return nil, &MissingFieldError{Field: "type"}
	}
	var eventType Type
	if err := json.Unmarshal(typeRaw, &eventType); err != nil {
		return nil, &MissingFieldError{Field: "type", cause: err}
	}

	switch eventType {
	case TypeRoomKey:
		event, err := decodeEvent[content.RawRoomKey](payload)
		if err != nil {
			return nil, err
		}
		return RawRoomKey{event}, nil
	case TypeRoomEncrypted:
		event, err := decodeEvent[content.RawEncrypted](payload)
		if err != nil {
			return nil, err
		}
		return RawRoomEncrypted{event}, nil
	case TypeForwardedRoomKey:
		event, err := decodeEvent[content.RawForwardedRoomKey](payload)
		if err != nil {
			return nil, err
		}
		return RawForwardedRoomKey{event}, nil
	case TypeRoomKeyRequest:
		event, err := decodeEvent[content.RawRoomKeyRequest](payload)
		if err != nil {
			return nil, err
		}
		return RawRoomKeyRequest{event}, nil
	case TypeVerificationStart:
		event, err := decodeEvent[content.RawVerificationStart](payload)
		if err != nil {
			return nil, err
		}
		return RawVerificationStart{event}, nil
	case TypeVerificationAccept:
		event, err := decodeEvent[content.RawVerificationAccept](payload)
		if err != nil {
			return nil, err
		}
		return RawVerificationAccept{event}, nil
	case TypeVerificationKey:
		event, err := decodeEvent[content.RawVerificationKey](payload)
		if err != nil {
			return nil, err
		}
		return RawVerificationKey{event}, nil
	case TypeVerificationMac:
		event, err := decodeEvent[content.RawVerificationMac](payload)
		if err != nil {
			return nil, err
		}
		return RawVerificationMac{event}, nil
	case TypeVerificationCancel:
		event, err := decodeEvent[content.RawVerificationCancel](payload)
		if err != nil {
			return nil, err
		}
		return RawVerificationCancel{event}, nil
	case TypeVerificationRequest:
		event, err := decodeEvent[content.RawVerificationRequest](payload)
		if err != nil {
			return nil, err
		}
		return RawVerificationRequest{event}, nil
	default:
		return nil, &UnknownEventTypeError{Type: eventType}
	}
}

// decodeEvent decodes the generic envelope for content type C: the
// "content" and "sender" fields as two independent mandatory
// sub-fields. Content is checked before sender — when both are
// missing, the reported field is always "content".
func decodeEvent[C any](payload json.RawMessage) (Event[C], error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return Event[C]{}, &MissingFieldError{Field: "content", cause: err}
	}

	contentRaw, ok := fields["content"]
	if !ok || isJSONNull(contentRaw) {
		return Event[C]{}, &MissingFieldError{Field: "content"}
	}
	var decoded C
	if err := json.Unmarshal(contentRaw, &decoded); err != nil {
		return Event[C]{}, &MissingFieldError{Field: "content", cause: err}
	}

	senderRaw, ok := fields["sender"]
	if !ok || isJSONNull(senderRaw) {
		return Event[C]{}, &MissingFieldError{Field: "sender"}
	}
	var sender ref.UserID
	if err := json.Unmarshal(senderRaw, &sender); err != nil {
		return Event[C]{}, &MissingFieldError{Field: "sender", cause: err}
	}
	if sender.IsZero() {
		return Event[C]{}, &MissingFieldError{Field: "sender"}
	}

	return Event[C]{Sender: sender, Content: decoded}, nil
}

// isJSONNull reports whether raw is the JSON null literal. A null
// mandatory field is treated the same as an absent one.
func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
