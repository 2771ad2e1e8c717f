// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package todevice_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/bureau-foundation/todevice"
	"github.com/bureau-foundation/todevice/content"
)

const testSender = "@alice:example.org"

// wellFormedContent maps each known event type to a wire content
// object that passes both structural decoding and validation.
var wellFormedContent = map[todevice.Type]string{
	todevice.TypeRoomKey: `{
		"algorithm": "m.megolm.v1.aes-sha2",
		"room_id": "!room:example.org",
		"session_id": "sess1",
		"session_key": "c2Vzc2lvbmtleQ"
	}`,
	todevice.TypeRoomEncrypted: `{
		"algorithm": "m.olm.v1.curve25519-aes-sha2",
		"sender_key": "c2VuZGVya2V5",
		"ciphertext": {
			"cmVjaXBpZW50a2V5": {"body": "AwogGJJz", "type": 0}
		}
	}`,
	todevice.TypeForwardedRoomKey: `{
		"algorithm": "m.megolm.v1.aes-sha2",
		"room_id": "!room:example.org",
		"sender_key": "c2VuZGVya2V5",
		"session_id": "sess1",
		"session_key": "c2Vzc2lvbmtleQ",
		"sender_claimed_ed25519_key": "Y2xhaW1lZGtleQ",
		"forwarding_curve25519_key_chain": ["c2VuZGVya2V5"]
	}`,
	todevice.TypeRoomKeyRequest: `{
		"action": "request",
		"body": {
			"algorithm": "m.megolm.v1.aes-sha2",
			"room_id": "!room:example.org",
			"sender_key": "c2VuZGVya2V5",
			"session_id": "sess1"
		},
		"requesting_device_id": "JLAFKJWSCS",
		"request_id": "req1"
	}`,
	todevice.TypeVerificationStart: `{
		"from_device": "JLAFKJWSCS",
		"transaction_id": "txn1",
		"method": "m.sas.v1",
		"key_agreement_protocols": ["curve25519"],
		"hashes": ["sha256"],
		"message_authentication_codes": ["hkdf-hmac-sha256"],
		"short_authentication_string": ["decimal", "emoji"]
	}`,
	todevice.TypeVerificationAccept: `{
		"transaction_id": "txn1",
		"method": "m.sas.v1",
		"key_agreement_protocol": "curve25519",
		"hash": "sha256",
		"message_authentication_code": "hkdf-hmac-sha256",
		"short_authentication_string": ["decimal"],
		"commitment": "Y29tbWl0bWVudA"
	}`,
	todevice.TypeVerificationKey: `{
		"transaction_id": "txn1",
		"key": "ZXBoZW1lcmFsa2V5"
	}`,
	todevice.TypeVerificationMac: `{
		"transaction_id": "txn1",
		"mac": {"ed25519:JLAFKJWSCS": "bWFjdmFsdWU"},
		"keys": "a2V5c21hYw"
	}`,
	todevice.TypeVerificationCancel: `{
		"transaction_id": "txn1",
		"code": "m.user",
		"reason": "User rejected the verification"
	}`,
	todevice.TypeVerificationRequest: `{
		"from_device": "JLAFKJWSCS",
		"transaction_id": "txn1",
		"methods": ["m.sas.v1"],
		"timestamp": 1432735824653
	}`,
}

// wellFormedPayload builds a full wire payload for the given type.
func wellFormedPayload(t *testing.T, eventType todevice.Type) json.RawMessage {
	t.Helper()
	payload := fmt.Sprintf(`{"type": %q, "sender": %q, "content": %s}`,
		eventType, testSender, wellFormedContent[eventType])
	if !json.Valid([]byte(payload)) {
		t.Fatalf("test payload for %s is not valid JSON", eventType)
	}
	return json.RawMessage(payload)
}

func decodeAndValidate(t *testing.T, eventType todevice.Type) todevice.ToDevice {
	t.Helper()
	raw, err := todevice.Decode(wellFormedPayload(t, eventType))
	if err != nil {
		t.Fatalf("Decode(%s): %v", eventType, err)
	}
	validated, err := todevice.Validate(raw)
	if err != nil {
		t.Fatalf("Validate(%s): %v", eventType, err)
	}
	return validated
}

func TestDecodeAllKnownTypes(t *testing.T) {
	for _, eventType := range todevice.KnownTypes() {
		t.Run(string(eventType), func(t *testing.T) {
			raw, err := todevice.Decode(wellFormedPayload(t, eventType))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if raw.Type() != eventType {
				t.Errorf("raw.Type() = %s, want %s", raw.Type(), eventType)
			}

			validated, err := todevice.Validate(raw)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if validated.Type() != eventType {
				t.Errorf("validated.Type() = %s, want %s", validated.Type(), eventType)
			}
		})
	}
}

func TestDecodePreservesSenderAndContent(t *testing.T) {
	event := decodeAndValidate(t, todevice.TypeRoomKey)
	roomKey, ok := event.(todevice.RoomKey)
	if !ok {
		t.Fatalf("got %T, want todevice.RoomKey", event)
	}
	if roomKey.Sender.String() != testSender {
		t.Errorf("sender = %q, want %q", roomKey.Sender, testSender)
	}

	// The envelope's content must equal a direct decode of the
	// content sub-object.
	var direct content.RawRoomKey
	if err := json.Unmarshal([]byte(wellFormedContent[todevice.TypeRoomKey]), &direct); err != nil {
		t.Fatalf("direct content decode: %v", err)
	}
	want, err := direct.Validate()
	if err != nil {
		t.Fatalf("direct content validate: %v", err)
	}
	if roomKey.Content != want {
		t.Errorf("content = %+v, want %+v", roomKey.Content, want)
	}
}

func TestDecodeVariantTypes(t *testing.T) {
	assertVariant := func(eventType todevice.Type, check func(todevice.ToDevice) bool) {
		t.Helper()
		event := decodeAndValidate(t, eventType)
		if !check(event) {
			t.Errorf("%s decoded to unexpected variant %T", eventType, event)
		}
	}

	assertVariant(todevice.TypeRoomKey, func(e todevice.ToDevice) bool {
		_, ok := e.(todevice.RoomKey)
		return ok
	})
	assertVariant(todevice.TypeRoomEncrypted, func(e todevice.ToDevice) bool {
		event, ok := e.(todevice.RoomEncrypted)
		return ok && event.Content.Algorithm == content.AlgorithmOlmV1 &&
			len(event.Content.OlmCiphertext) == 1
	})
	assertVariant(todevice.TypeForwardedRoomKey, func(e todevice.ToDevice) bool {
		event, ok := e.(todevice.ForwardedRoomKey)
		return ok && len(event.Content.ForwardingCurve25519KeyChain) == 1
	})
	assertVariant(todevice.TypeRoomKeyRequest, func(e todevice.ToDevice) bool {
		event, ok := e.(todevice.RoomKeyRequest)
		return ok && event.Content.Action == content.ActionRequest && event.Content.Body != nil
	})
	assertVariant(todevice.TypeVerificationStart, func(e todevice.ToDevice) bool {
		event, ok := e.(todevice.VerificationStart)
		return ok && event.Content.Method == content.MethodSASV1
	})
	assertVariant(todevice.TypeVerificationAccept, func(e todevice.ToDevice) bool {
		_, ok := e.(todevice.VerificationAccept)
		return ok
	})
	assertVariant(todevice.TypeVerificationKey, func(e todevice.ToDevice) bool {
		_, ok := e.(todevice.VerificationKey)
		return ok
	})
	assertVariant(todevice.TypeVerificationMac, func(e todevice.ToDevice) bool {
		_, ok := e.(todevice.VerificationMac)
		return ok
	})
	assertVariant(todevice.TypeVerificationCancel, func(e todevice.ToDevice) bool {
		event, ok := e.(todevice.VerificationCancel)
		return ok && event.Content.Code == content.CancelUser
	})
	assertVariant(todevice.TypeVerificationRequest, func(e todevice.ToDevice) bool {
		_, ok := e.(todevice.VerificationRequest)
		return ok
	})
}

func TestDecodeMissingType(t *testing.T) {
	payloads := map[string]string{
		"absent":       fmt.Sprintf(`{"sender": %q, "content": {}}`, testSender),
		"null":         fmt.Sprintf(`{"type": null, "sender": %q, "content": {}}`, testSender),
		"wrong-shape":  fmt.Sprintf(`{"type": 42, "sender": %q, "content": {}}`, testSender),
		"not-an-object": `[1, 2, 3]`,
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			_, err := todevice.Decode(json.RawMessage(payload))
			var missing *todevice.MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("got %v, want *MissingFieldError", err)
			}
			if missing.Field != "type" {
				t.Errorf("Field = %q, want %q", missing.Field, "type")
			}
			if todevice.IsUnknownEventType(err) {
				t.Error("missing type misreported as unknown event type")
			}
		})
	}
}

func TestDecodeUnknownType(t *testing.T) {
	payload := `{"type": "m.bogus", "sender": "@bob:example.org", "content": {}}`
	_, err := todevice.Decode(json.RawMessage(payload))

	var unknown *todevice.UnknownEventTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want *UnknownEventTypeError", err)
	}
	if unknown.Type != "m.bogus" {
		t.Errorf("Type = %q, want %q (tag must round-trip verbatim)", unknown.Type, "m.bogus")
	}
	if !todevice.IsUnknownEventType(err) {
		t.Error("IsUnknownEventType = false")
	}
}

func TestDecodeMissingEnvelopeFields(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantField string
	}{
		{
			name:      "missing sender",
			payload:   fmt.Sprintf(`{"type": "m.room_key", "content": %s}`, wellFormedContent[todevice.TypeRoomKey]),
			wantField: "sender",
		},
		{
			name:      "empty sender",
			payload:   fmt.Sprintf(`{"type": "m.room_key", "sender": "", "content": %s}`, wellFormedContent[todevice.TypeRoomKey]),
			wantField: "sender",
		},
		{
			name:      "malformed sender",
			payload:   fmt.Sprintf(`{"type": "m.room_key", "sender": "not-a-user-id", "content": %s}`, wellFormedContent[todevice.TypeRoomKey]),
			wantField: "sender",
		},
		{
			name:      "missing content",
			payload:   fmt.Sprintf(`{"type": "m.room_key", "sender": %q}`, testSender),
			wantField: "content",
		},
		{
			name:      "null content",
			payload:   fmt.Sprintf(`{"type": "m.room_key", "sender": %q, "content": null}`, testSender),
			wantField: "content",
		},
		{
			name:      "wrong-shaped content",
			payload:   fmt.Sprintf(`{"type": "m.room_key", "sender": %q, "content": "nope"}`, testSender),
			wantField: "content",
		},
		{
			// Content is checked before sender, so when both are
			// missing the report names content.
			name:      "both missing",
			payload:   `{"type": "m.room_key"}`,
			wantField: "content",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := todevice.Decode(json.RawMessage(tt.payload))
			var missing *todevice.MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("got %v, want *MissingFieldError", err)
			}
			if missing.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", missing.Field, tt.wantField)
			}
		})
	}
}

func TestDecodeIgnoresExtraFields(t *testing.T) {
	payload := fmt.Sprintf(`{
		"type": "m.room_key",
		"sender": %q,
		"content": %s,
		"unsigned": {"age": 1234},
		"org.example.custom": true
	}`, testSender, wellFormedContent[todevice.TypeRoomKey])

	raw, err := todevice.Decode(json.RawMessage(payload))
	if err != nil {
		t.Fatalf("Decode with extra fields: %v", err)
	}
	if _, err := todevice.Validate(raw); err != nil {
		t.Fatalf("Validate with extra fields: %v", err)
	}
}

func TestValidateContentError(t *testing.T) {
	payload := fmt.Sprintf(`{
		"type": "m.key.verification.cancel",
		"sender": %q,
		"content": {"transaction_id": "txn1", "code": "m.not_a_code", "reason": "r"}
	}`, testSender)

	raw, err := todevice.Decode(json.RawMessage(payload))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	_, err = todevice.Validate(raw)

	var contentErr *todevice.ContentError
	if !errors.As(err, &contentErr) {
		t.Fatalf("got %v, want *ContentError", err)
	}
	if contentErr.Type != todevice.TypeVerificationCancel {
		t.Errorf("ContentError.Type = %s, want %s", contentErr.Type, todevice.TypeVerificationCancel)
	}
	if contentErr.Unwrap() == nil {
		t.Error("ContentError must preserve the underlying validation error")
	}
}

func TestTypeIsKnown(t *testing.T) {
	for _, eventType := range todevice.KnownTypes() {
		if !eventType.IsKnown() {
			t.Errorf("IsKnown(%s) = false", eventType)
		}
	}
	for _, unknown := range []todevice.Type{"", "m.bogus", "m.room.message"} {
		if unknown.IsKnown() {
			t.Errorf("IsKnown(%q) = true", unknown)
		}
	}
}
