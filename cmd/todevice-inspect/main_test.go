// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"
)

func TestExtractPayloadsSingleEvent(t *testing.T) {
	payloads, err := extractPayloads([]byte(`{"type": "m.dummy", "sender": "@a:b", "content": {}}`))
	if err != nil {
		t.Fatalf("extractPayloads: %v", err)
	}
	if len(payloads) != 1 {
		t.Fatalf("got %d payloads, want 1", len(payloads))
	}
}

func TestExtractPayloadsArray(t *testing.T) {
	payloads, err := extractPayloads([]byte(`[{"type": "a"}, {"type": "b"}, {"type": "c"}]`))
	if err != nil {
		t.Fatalf("extractPayloads: %v", err)
	}
	if len(payloads) != 3 {
		t.Fatalf("got %d payloads, want 3", len(payloads))
	}
}

func TestExtractPayloadsSyncSection(t *testing.T) {
	payloads, err := extractPayloads([]byte(`{"events": [{"type": "a"}, {"type": "b"}]}`))
	if err != nil {
		t.Fatalf("extractPayloads: %v", err)
	}
	if len(payloads) != 2 {
		t.Fatalf("got %d payloads, want 2", len(payloads))
	}
}

func TestExtractPayloadsJSONC(t *testing.T) {
	document := []byte(`{
		// captured from sync
		"type": "m.key.verification.key",
		"sender": "@alice:example.org",
		"content": {"transaction_id": "txn1", "key": "ZXBoZW1lcmFsa2V5"},
	}`)
	payloads, err := extractPayloads(document)
	if err != nil {
		t.Fatalf("extractPayloads: %v", err)
	}
	if len(payloads) != 1 {
		t.Fatalf("got %d payloads, want 1", len(payloads))
	}

	result := inspectPayload(payloads[0], false)
	if !result.Valid {
		t.Errorf("payload rejected: %s", result.Error)
	}
	if result.Type != "m.key.verification.key" {
		t.Errorf("Type = %q", result.Type)
	}
	if result.Sender != "@alice:example.org" {
		t.Errorf("Sender = %q", result.Sender)
	}
}

func TestExtractPayloadsMalformed(t *testing.T) {
	for _, document := range []string{`not json`, `42`, `"a string"`, ``} {
		if _, err := extractPayloads([]byte(document)); err == nil {
			t.Errorf("extractPayloads(%q) succeeded, want error", document)
		}
	}
}

func TestInspectPayloadRawOnly(t *testing.T) {
	// Structurally sound but semantically broken: unknown cancel code.
	payload := []byte(`{
		"type": "m.key.verification.cancel",
		"sender": "@alice:example.org",
		"content": {"transaction_id": "txn1", "code": "m.bogus", "reason": "r"}
	}`)

	strict := inspectPayload(payload, false)
	if strict.Valid {
		t.Error("validation accepted an unknown cancel code")
	}

	raw := inspectPayload(payload, true)
	if !raw.Valid {
		t.Errorf("raw decode rejected payload: %s", raw.Error)
	}
	if raw.Type != "m.key.verification.cancel" {
		t.Errorf("Type = %q", raw.Type)
	}
}

func TestInspectPayloadUndecodable(t *testing.T) {
	result := inspectPayload([]byte(`{"sender": "@alice:example.org", "content": {}}`), false)
	if result.Valid {
		t.Error("payload without type accepted")
	}
	if result.Error == "" {
		t.Error("expected an error message")
	}
	if result.Sender != "@alice:example.org" {
		t.Errorf("Sender = %q", result.Sender)
	}
}
