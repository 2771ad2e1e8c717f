// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package todevice

import (
	"encoding/json"

	"github.com/bureau-foundation/todevice/content"
	"github.com/bureau-foundation/todevice/ref"
)

// Type is the wire discriminant of a to-device event — the "type"
// field naming which content shape the payload carries.
type Type string

// The closed set of to-device event types this package decodes.
const (
	TypeRoomKey             Type = "m.room_key"
	TypeRoomEncrypted       Type = "m.room.encrypted"
	TypeForwardedRoomKey    Type = "m.forwarded_room_key"
	TypeRoomKeyRequest      Type = "m.room_key_request"
	TypeVerificationStart   Type = "m.key.verification.start"
	TypeVerificationAccept  Type = "m.key.verification.accept"
	TypeVerificationKey     Type = "m.key.verification.key"
	TypeVerificationMac     Type = "m.key.verification.mac"
	TypeVerificationCancel  Type = "m.key.verification.cancel"
	TypeVerificationRequest Type = "m.key.verification.request"
)

// String returns the event type string (e.g., "m.room_key").
func (t Type) String() string { return string(t) }

// IsKnown reports whether t is one of the ten defined to-device event
// types.
func (t Type) IsKnown() bool {
	switch t {
	case TypeRoomKey, TypeRoomEncrypted, TypeForwardedRoomKey,
		TypeRoomKeyRequest, TypeVerificationStart, TypeVerificationAccept,
		TypeVerificationKey, TypeVerificationMac, TypeVerificationCancel,
		TypeVerificationRequest:
		return true
	}
	return false
}

// KnownTypes returns the ten to-device event types in wire order.
func KnownTypes() []Type {
	return []Type{
		TypeRoomKey, TypeRoomEncrypted, TypeForwardedRoomKey,
		TypeRoomKeyRequest, TypeVerificationStart, TypeVerificationAccept,
		TypeVerificationKey, TypeVerificationMac, TypeVerificationCancel,
		TypeVerificationRequest,
	}
}

// Event is the generic to-device envelope: the sending user plus the
// event content. To-device events carry no room ID, event ID, or
// timestamp — only these two fields. Both are mandatory; a payload
// missing either does not decode.
//
// Event values are immutable once constructed by Decode or Validate.
type Event[C any] struct {
	// Sender is the user whose device sent this event.
	Sender ref.UserID `json:"sender"`

	// Content is the event-type-specific payload.
	Content C `json:"content"`
}

// wireEvent is the full wire shape of one to-device event, used by
// Encode. The type discriminant sits beside sender and content at the
// top level.
type wireEvent struct {
	Type    Type       `json:"type"`
	Sender  ref.UserID `json:"sender"`
	Content any        `json:"content"`
}

// ToDevice is one validated to-device event. Exactly one of the ten
// variant types below implements it, determined by the wire
// discriminant at decode time and never changing afterward. Consumers
// dispatch with a type switch:
//
//	switch event := event.(type) {
//	case todevice.RoomKey:
//	    use(event.Content.SessionKey)
//	case todevice.VerificationCancel:
//	    abort(event.Content.Code)
//	...
//	}
//
// The interface is sealed: only this package constructs values.
type ToDevice interface {
	// Type returns the wire discriminant for this event.
	Type() Type

	// wire returns the full wire shape for re-encoding.
	wire() wireEvent
}

// RoomKey is the to-device version of the m.room_key event.
type RoomKey struct {
	Event[content.RoomKey]
}

// RoomEncrypted is the to-device version of the m.room.encrypted event.
type RoomEncrypted struct {
	Event[content.Encrypted]
}

// ForwardedRoomKey is the to-device version of the m.forwarded_room_key
// event.
type ForwardedRoomKey struct {
	Event[content.ForwardedRoomKey]
}

// RoomKeyRequest is the to-device version of the m.room_key_request
// event.
type RoomKeyRequest struct {
	Event[content.RoomKeyRequest]
}

// VerificationStart is the to-device version of the
// m.key.verification.start event.
type VerificationStart struct {
	Event[content.VerificationStart]
}

// VerificationAccept is the to-device version of the
// m.key.verification.accept event.
type VerificationAccept struct {
	Event[content.VerificationAccept]
}

// VerificationKey is the to-device version of the m.key.verification.key
// event.
type VerificationKey struct {
	Event[content.VerificationKey]
}

// VerificationMac is the to-device version of the m.key.verification.mac
// event.
type VerificationMac struct {
	Event[content.VerificationMac]
}

// VerificationCancel is the to-device version of the
// m.key.verification.cancel event.
type VerificationCancel struct {
	Event[content.VerificationCancel]
}

// VerificationRequest is the to-device version of the
// m.key.verification.request event.
type VerificationRequest struct {
	Event[content.VerificationRequest]
}

// Type implements ToDevice.
func (e RoomKey) Type() Type             { return TypeRoomKey }
func (e RoomEncrypted) Type() Type       { return TypeRoomEncrypted }
func (e ForwardedRoomKey) Type() Type    { return TypeForwardedRoomKey }
func (e RoomKeyRequest) Type() Type      { return TypeRoomKeyRequest }
func (e VerificationStart) Type() Type   { return TypeVerificationStart }
func (e VerificationAccept) Type() Type  { return TypeVerificationAccept }
func (e VerificationKey) Type() Type     { return TypeVerificationKey }
func (e VerificationMac) Type() Type     { return TypeVerificationMac }
func (e VerificationCancel) Type() Type  { return TypeVerificationCancel }
func (e VerificationRequest) Type() Type { return TypeVerificationRequest }

func (e RoomKey) wire() wireEvent {
	return wireEvent{Type: TypeRoomKey, Sender: e.Sender, Content: e.Content}
}

func (e RoomEncrypted) wire() wireEvent {
	return wireEvent{Type: TypeRoomEncrypted, Sender: e.Sender, Content: e.Content}
}

func (e ForwardedRoomKey) wire() wireEvent {
	return wireEvent{Type: TypeForwardedRoomKey, Sender: e.Sender, Content: e.Content}
}

func (e RoomKeyRequest) wire() wireEvent {
	return wireEvent{Type: TypeRoomKeyRequest, Sender: e.Sender, Content: e.Content}
}

func (e VerificationStart) wire() wireEvent {
	return wireEvent{Type: TypeVerificationStart, Sender: e.Sender, Content: e.Content}
}

func (e VerificationAccept) wire() wireEvent {
	return wireEvent{Type: TypeVerificationAccept, Sender: e.Sender, Content: e.Content}
}

func (e VerificationKey) wire() wireEvent {
	return wireEvent{Type: TypeVerificationKey, Sender: e.Sender, Content: e.Content}
}

func (e VerificationMac) wire() wireEvent {
	return wireEvent{Type: TypeVerificationMac, Sender: e.Sender, Content: e.Content}
}

func (e VerificationCancel) wire() wireEvent {
	return wireEvent{Type: TypeVerificationCancel, Sender: e.Sender, Content: e.Content}
}

func (e VerificationRequest) wire() wireEvent {
	return wireEvent{Type: TypeVerificationRequest, Sender: e.Sender, Content: e.Content}
}

// Encode marshals a validated event to its wire shape:
// {"type": ..., "sender": ..., "content": ...}. Decoding the result
// reproduces an equal event — Encode is the inverse of Decode followed
// by Validate.
func Encode(event ToDevice) (json.RawMessage, error) {
	return json.Marshal(event.wire())
}
