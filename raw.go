// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package todevice

import "github.com/bureau-foundation/todevice/content"

// RawToDevice is one structurally decoded but not yet validated
// to-device event, as produced by Decode. Each raw variant converts
// only to the validated variant of the same kind: Validate on a
// RawRoomKey yields a RoomKey or fails, never another variant.
//
// The interface is sealed: only this package constructs values.
type RawToDevice interface {
	// Type returns the wire discriminant for this event.
	Type() Type

	// isRaw restricts the interface to the variants Decode produces.
	isRaw()
}

// RawRoomKey is the unvalidated form of RoomKey.
type RawRoomKey struct {
	Event[content.RawRoomKey]
}

// RawRoomEncrypted is the unvalidated form of RoomEncrypted.
type RawRoomEncrypted struct {
	Event[content.RawEncrypted]
}

// RawForwardedRoomKey is the unvalidated form of ForwardedRoomKey.
type RawForwardedRoomKey struct {
	Event[content.RawForwardedRoomKey]
}

// RawRoomKeyRequest is the unvalidated form of RoomKeyRequest.
type RawRoomKeyRequest struct {
	Event[content.RawRoomKeyRequest]
}

// RawVerificationStart is the unvalidated form of VerificationStart.
type RawVerificationStart struct {
	Event[content.RawVerificationStart]
}

// RawVerificationAccept is the unvalidated form of VerificationAccept.
type RawVerificationAccept struct {
	Event[content.RawVerificationAccept]
}

// RawVerificationKey is the unvalidated form of VerificationKey.
type RawVerificationKey struct {
	Event[content.RawVerificationKey]
}

// RawVerificationMac is the unvalidated form of VerificationMac.
type RawVerificationMac struct {
	Event[content.RawVerificationMac]
}

// RawVerificationCancel is the unvalidated form of VerificationCancel.
type RawVerificationCancel struct {
	Event[content.RawVerificationCancel]
}

// RawVerificationRequest is the unvalidated form of VerificationRequest.
type RawVerificationRequest struct {
	Event[content.RawVerificationRequest]
}

// Type implements RawToDevice.
func (e RawRoomKey) Type() Type             { return TypeRoomKey }
func (e RawRoomEncrypted) Type() Type       { return TypeRoomEncrypted }
func (e RawForwardedRoomKey) Type() Type    { return TypeForwardedRoomKey }
func (e RawRoomKeyRequest) Type() Type      { return TypeRoomKeyRequest }
func (e RawVerificationStart) Type() Type   { return TypeVerificationStart }
func (e RawVerificationAccept) Type() Type  { return TypeVerificationAccept }
func (e RawVerificationKey) Type() Type     { return TypeVerificationKey }
func (e RawVerificationMac) Type() Type     { return TypeVerificationMac }
func (e RawVerificationCancel) Type() Type  { return TypeVerificationCancel }
func (e RawVerificationRequest) Type() Type { return TypeVerificationRequest }

func (RawRoomKey) isRaw()             {}
func (RawRoomEncrypted) isRaw()       {}
func (RawForwardedRoomKey) isRaw()    {}
func (RawRoomKeyRequest) isRaw()      {}
func (RawVerificationStart) isRaw()   {}
func (RawVerificationAccept) isRaw()  {}
func (RawVerificationKey) isRaw()     {}
func (RawVerificationMac) isRaw()     {}
func (RawVerificationCancel) isRaw()  {}
func (RawVerificationRequest) isRaw() {}
