// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"fmt"

	"github.com/bureau-foundation/todevice/ref"
)

// KeyRequestAction is the action field of an m.room_key_request event.
// Values are self-describing strings that serialize directly to JSON.
type KeyRequestAction string

const (
	// ActionRequest asks other devices for a megolm session key.
	ActionRequest KeyRequestAction = "request"

	// ActionRequestCancellation withdraws an earlier request with the
	// same request ID.
	ActionRequestCancellation KeyRequestAction = "request_cancellation"
)

// IsKnown reports whether a is one of the defined KeyRequestAction values.
func (a KeyRequestAction) IsKnown() bool {
	switch a {
	case ActionRequest, ActionRequestCancellation:
		return true
	}
	return false
}

// RequestedKeyInfo names the megolm session a key request asks for.
type RequestedKeyInfo struct {
	// Algorithm is always AlgorithmMegolmV1 — only megolm sessions
	// are shareable.
	Algorithm Algorithm `json:"algorithm"`

	// RoomID is the room the wanted session belongs to.
	RoomID ref.RoomID `json:"room_id"`

	// SenderKey is the curve25519 identity key of the device that
	// created the session, unpadded base64.
	SenderKey string `json:"sender_key"`

	// SessionID identifies the wanted megolm session.
	SessionID string `json:"session_id"`
}

func (k RequestedKeyInfo) validate() error {
	if k.Algorithm != AlgorithmMegolmV1 {
		return fmt.Errorf("body: algorithm must be %q, got %q", AlgorithmMegolmV1, k.Algorithm)
	}
	if k.RoomID.IsZero() {
		return fmt.Errorf("body: room_id is required")
	}
	if err := validateKeyField("body: sender_key", k.SenderKey); err != nil {
		return err
	}
	if k.SessionID == "" {
		return fmt.Errorf("body: session_id is required")
	}
	return nil
}

// RoomKeyRequest is the validated content of an m.room_key_request
// to-device event.
type RoomKeyRequest struct {
	// Action is what the sender wants: a key, or cancellation of an
	// earlier request.
	Action KeyRequestAction `json:"action"`

	// Body names the wanted session. Set when Action is
	// ActionRequest, nil for cancellations.
	Body *RequestedKeyInfo `json:"body,omitempty"`

	// RequestingDeviceID is the device making the request.
	RequestingDeviceID ref.DeviceID `json:"requesting_device_id"`

	// RequestID pairs a cancellation with its original request. Unique
	// per requesting device.
	RequestID string `json:"request_id"`
}

// RawRoomKeyRequest is the structurally decoded, unvalidated form of
// RoomKeyRequest.
type RawRoomKeyRequest struct {
	Action             KeyRequestAction  `json:"action"`
	Body               *RequestedKeyInfo `json:"body,omitempty"`
	RequestingDeviceID ref.DeviceID      `json:"requesting_device_id"`
	RequestID          string            `json:"request_id"`
}

// Validate checks the action against the known set and requires a
// well-formed body for requests. A body on a cancellation is tolerated
// and dropped, matching the forgiving read side of the protocol.
func (r RawRoomKeyRequest) Validate() (RoomKeyRequest, error) {
	if !r.Action.IsKnown() {
		return RoomKeyRequest{}, fmt.Errorf("room key request: unknown action %q", r.Action)
	}
	if r.RequestingDeviceID.IsZero() {
		return RoomKeyRequest{}, fmt.Errorf("room key request: requesting_device_id is required")
	}
	if r.RequestID == "" {
		return RoomKeyRequest{}, fmt.Errorf("room key request: request_id is required")
	}

	validated := RoomKeyRequest{
		Action:             r.Action,
		RequestingDeviceID: r.RequestingDeviceID,
		RequestID:          r.RequestID,
	}
	if r.Action == ActionRequest {
		if r.Body == nil {
			return RoomKeyRequest{}, fmt.Errorf("room key request: body is required for action %q", ActionRequest)
		}
		if err := r.Body.validate(); err != nil {
			return RoomKeyRequest{}, fmt.Errorf("room key request: %w", err)
		}
		body := *r.Body
		validated.Body = &body
	}
	return validated, nil
}
