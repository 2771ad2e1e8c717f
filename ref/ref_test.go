// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref_test

import (
	"encoding/json"
	"testing"

	"github.com/bureau-foundation/todevice/ref"
)

func TestParseUserID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "simple", raw: "@alice:example.org"},
		{name: "with-port", raw: "@alice:example.org:8448"},
		{name: "nested-localpart", raw: "@agent/worker:bureau.local"},
		{name: "empty", raw: "", wantErr: true},
		{name: "no-sigil", raw: "alice:example.org", wantErr: true},
		{name: "wrong-sigil", raw: "#alice:example.org", wantErr: true},
		{name: "no-server", raw: "@alice", wantErr: true},
		{name: "empty-localpart", raw: "@:example.org", wantErr: true},
		{name: "empty-server", raw: "@alice:", wantErr: true},
		{name: "space-in-server", raw: "@alice:exa mple.org", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := ref.ParseUserID(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", userID)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if userID.String() != tt.raw {
				t.Errorf("String() = %q, want %q", userID.String(), tt.raw)
			}
			if userID.IsZero() {
				t.Error("IsZero() = true for valid user ID")
			}
		})
	}
}

func TestUserIDParts(t *testing.T) {
	userID := ref.MustParseUserID("@alice:example.org")
	if got := userID.Localpart(); got != "alice" {
		t.Errorf("Localpart() = %q, want %q", got, "alice")
	}
	if got := userID.Server(); got != "example.org" {
		t.Errorf("Server() = %q, want %q", got, "example.org")
	}
}

func TestUserIDJSONRoundTrip(t *testing.T) {
	original := ref.MustParseUserID("@bob:example.org")
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"@bob:example.org"` {
		t.Errorf("marshaled to %s", data)
	}
	var decoded ref.UserID
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("round trip: got %v, want %v", decoded, original)
	}
}

func TestUserIDUnmarshalRejectsInvalid(t *testing.T) {
	var userID ref.UserID
	if err := json.Unmarshal([]byte(`"not-a-user-id"`), &userID); err == nil {
		t.Fatal("expected error unmarshaling invalid user ID")
	}
}

func TestParseRoomID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "simple", raw: "!abc123:example.org"},
		{name: "empty", raw: "", wantErr: true},
		{name: "no-sigil", raw: "abc123:example.org", wantErr: true},
		{name: "no-server", raw: "!abc123", wantErr: true},
		{name: "empty-local", raw: "!:example.org", wantErr: true},
		{name: "empty-server", raw: "!abc123:", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roomID, err := ref.ParseRoomID(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", roomID)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if roomID.String() != tt.raw {
				t.Errorf("String() = %q, want %q", roomID.String(), tt.raw)
			}
		})
	}
}

func TestDeviceID(t *testing.T) {
	deviceID, err := ref.ParseDeviceID("JLAFKJWSCS")
	if err != nil {
		t.Fatalf("ParseDeviceID: %v", err)
	}
	if deviceID.String() != "JLAFKJWSCS" {
		t.Errorf("String() = %q", deviceID.String())
	}
	if deviceID.IsZero() {
		t.Error("IsZero() = true for valid device ID")
	}
	if _, err := ref.ParseDeviceID(""); err == nil {
		t.Error("expected error for empty device ID")
	}
}
