// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"fmt"
	"slices"

	"github.com/bureau-foundation/todevice/ref"
)

// VerificationMethod identifies an interactive key verification method.
// Values are self-describing strings that serialize directly to JSON.
type VerificationMethod string

// MethodSASV1 is short-authentication-string verification, the only
// method this package validates in full.
const MethodSASV1 VerificationMethod = "m.sas.v1"

// CancelCode is the machine-readable reason an m.key.verification.cancel
// event gives for aborting a verification.
type CancelCode string

const (
	// CancelUser means the user chose to cancel.
	CancelUser CancelCode = "m.user"

	// CancelTimeout means the verification timed out.
	CancelTimeout CancelCode = "m.timeout"

	// CancelUnknownTransaction means the event referenced a transaction
	// the device doesn't know about.
	CancelUnknownTransaction CancelCode = "m.unknown_transaction"

	// CancelUnknownMethod means the device doesn't support the
	// requested verification method.
	CancelUnknownMethod CancelCode = "m.unknown_method"

	// CancelUnexpectedMessage means the device received a verification
	// event out of sequence.
	CancelUnexpectedMessage CancelCode = "m.unexpected_message"

	// CancelKeyMismatch means the key could not be verified.
	CancelKeyMismatch CancelCode = "m.key_mismatch"

	// CancelUserMismatch means the expected user did not match the
	// user verified.
	CancelUserMismatch CancelCode = "m.user_mismatch"

	// CancelInvalidMessage means the device received an invalid
	// verification event.
	CancelInvalidMessage CancelCode = "m.invalid_message"

	// CancelAccepted means another device answered the verification
	// request first.
	CancelAccepted CancelCode = "m.accepted"
)

// IsKnown reports whether c is one of the defined CancelCode values.
func (c CancelCode) IsKnown() bool {
	switch c {
	case CancelUser, CancelTimeout, CancelUnknownTransaction,
		CancelUnknownMethod, CancelUnexpectedMessage, CancelKeyMismatch,
		CancelUserMismatch, CancelInvalidMessage, CancelAccepted:
		return true
	}
	return false
}

// SAS protocol parameters this package accepts. The start event must
// offer at least the mandatory value of each set; the accept event must
// choose from the supported values.
const (
	keyAgreementCurve25519     = "curve25519"
	keyAgreementCurve25519HKDF = "curve25519-hkdf-sha256"
	hashSHA256                 = "sha256"
	macHKDFHMACSHA256          = "hkdf-hmac-sha256"
	sasDecimal                 = "decimal"
	sasEmoji                   = "emoji"
)

// VerificationStart is the validated content of an
// m.key.verification.start to-device event: the first message of an
// SAS exchange, offering the parameter sets the initiating device
// supports.
type VerificationStart struct {
	// FromDevice is the device that initiated the verification.
	FromDevice ref.DeviceID `json:"from_device"`

	// TransactionID ties all events of one verification together.
	// Unique per initiating device.
	TransactionID string `json:"transaction_id"`

	// Method is the verification method; only MethodSASV1 validates.
	Method VerificationMethod `json:"method"`

	// NextMethod is required when Method is a two-step method like
	// m.reciprocate.v1 started from a QR code. Unused for SAS.
	NextMethod string `json:"next_method,omitempty"`

	// KeyAgreementProtocols are the offered key agreement protocols;
	// must include curve25519.
	KeyAgreementProtocols []string `json:"key_agreement_protocols"`

	// Hashes are the offered hash algorithms; must include sha256.
	Hashes []string `json:"hashes"`

	// MessageAuthenticationCodes are the offered MAC algorithms; must
	// include hkdf-hmac-sha256.
	MessageAuthenticationCodes []string `json:"message_authentication_codes"`

	// ShortAuthenticationString are the offered SAS presentation
	// methods; must include decimal.
	ShortAuthenticationString []string `json:"short_authentication_string"`
}

// RawVerificationStart is the structurally decoded, unvalidated form of
// VerificationStart.
type RawVerificationStart struct {
	FromDevice                 ref.DeviceID       `json:"from_device"`
	TransactionID              string             `json:"transaction_id"`
	Method                     VerificationMethod `json:"method"`
	NextMethod                 string             `json:"next_method,omitempty"`
	KeyAgreementProtocols      []string           `json:"key_agreement_protocols"`
	Hashes                     []string           `json:"hashes"`
	MessageAuthenticationCodes []string           `json:"message_authentication_codes"`
	ShortAuthenticationString  []string           `json:"short_authentication_string"`
}

// Validate checks the SAS parameter sets: every mandatory protocol
// value must be among the offered ones, so that any compliant peer can
// proceed with the exchange.
func (r RawVerificationStart) Validate() (VerificationStart, error) {
	if r.FromDevice.IsZero() {
		return VerificationStart{}, fmt.Errorf("verification start: from_device is required")
	}
	if r.TransactionID == "" {
		return VerificationStart{}, fmt.Errorf("verification start: transaction_id is required")
	}
	if r.Method != MethodSASV1 {
		return VerificationStart{}, fmt.Errorf("verification start: unsupported method %q", r.Method)
	}
	if !slices.Contains(r.KeyAgreementProtocols, keyAgreementCurve25519) &&
		!slices.Contains(r.KeyAgreementProtocols, keyAgreementCurve25519HKDF) {
		return VerificationStart{}, fmt.Errorf("verification start: key_agreement_protocols must include %q", keyAgreementCurve25519)
	}
	if !slices.Contains(r.Hashes, hashSHA256) {
		return VerificationStart{}, fmt.Errorf("verification start: hashes must include %q", hashSHA256)
	}
	if !slices.Contains(r.MessageAuthenticationCodes, macHKDFHMACSHA256) {
		return VerificationStart{}, fmt.Errorf("verification start: message_authentication_codes must include %q", macHKDFHMACSHA256)
	}
	if !slices.Contains(r.ShortAuthenticationString, sasDecimal) {
		return VerificationStart{}, fmt.Errorf("verification start: short_authentication_string must include %q", sasDecimal)
	}
	return VerificationStart(r), nil
}

// VerificationAccept is the validated content of an
// m.key.verification.accept to-device event: the responding device's
// choice from the parameter sets offered in the start event, plus its
// commitment to the ephemeral key it will reveal later.
type VerificationAccept struct {
	// TransactionID matches the start event's transaction ID.
	TransactionID string `json:"transaction_id"`

	// Method is the verification method; only MethodSASV1 validates.
	Method VerificationMethod `json:"method"`

	// KeyAgreementProtocol is the chosen key agreement protocol.
	KeyAgreementProtocol string `json:"key_agreement_protocol"`

	// Hash is the chosen hash algorithm.
	Hash string `json:"hash"`

	// MessageAuthenticationCode is the chosen MAC algorithm.
	MessageAuthenticationCode string `json:"message_authentication_code"`

	// ShortAuthenticationString are the SAS presentation methods both
	// sides support.
	ShortAuthenticationString []string `json:"short_authentication_string"`

	// Commitment is the hash committing to the device's ephemeral
	// public key, unpadded base64.
	Commitment string `json:"commitment"`
}

// RawVerificationAccept is the structurally decoded, unvalidated form
// of VerificationAccept.
type RawVerificationAccept struct {
	TransactionID             string             `json:"transaction_id"`
	Method                    VerificationMethod `json:"method"`
	KeyAgreementProtocol      string             `json:"key_agreement_protocol"`
	Hash                      string             `json:"hash"`
	MessageAuthenticationCode string             `json:"message_authentication_code"`
	ShortAuthenticationString []string           `json:"short_authentication_string"`
	Commitment                string             `json:"commitment"`
}

// Validate checks that every chosen parameter is from the supported
// set and the commitment is well-formed.
func (r RawVerificationAccept) Validate() (VerificationAccept, error) {
	if r.TransactionID == "" {
		return VerificationAccept{}, fmt.Errorf("verification accept: transaction_id is required")
	}
	if r.Method != MethodSASV1 {
		return VerificationAccept{}, fmt.Errorf("verification accept: unsupported method %q", r.Method)
	}
	if r.KeyAgreementProtocol != keyAgreementCurve25519 && r.KeyAgreementProtocol != keyAgreementCurve25519HKDF {
		return VerificationAccept{}, fmt.Errorf("verification accept: unsupported key_agreement_protocol %q", r.KeyAgreementProtocol)
	}
	if r.Hash != hashSHA256 {
		return VerificationAccept{}, fmt.Errorf("verification accept: unsupported hash %q", r.Hash)
	}
	if r.MessageAuthenticationCode != macHKDFHMACSHA256 {
		return VerificationAccept{}, fmt.Errorf("verification accept: unsupported message_authentication_code %q", r.MessageAuthenticationCode)
	}
	if len(r.ShortAuthenticationString) == 0 {
		return VerificationAccept{}, fmt.Errorf("verification accept: short_authentication_string is required")
	}
	for _, method := range r.ShortAuthenticationString {
		if method != sasDecimal && method != sasEmoji {
			return VerificationAccept{}, fmt.Errorf("verification accept: unsupported short_authentication_string entry %q", method)
		}
	}
	if err := validateKeyField("commitment", r.Commitment); err != nil {
		return VerificationAccept{}, fmt.Errorf("verification accept: %w", err)
	}
	return VerificationAccept(r), nil
}

// VerificationKey is the validated content of an m.key.verification.key
// to-device event: a device revealing its ephemeral public key.
type VerificationKey struct {
	// TransactionID matches the start event's transaction ID.
	TransactionID string `json:"transaction_id"`

	// Key is the device's ephemeral curve25519 public key, unpadded
	// base64.
	Key string `json:"key"`
}

// RawVerificationKey is the structurally decoded, unvalidated form of
// VerificationKey.
type RawVerificationKey struct {
	TransactionID string `json:"transaction_id"`
	Key           string `json:"key"`
}

// Validate checks that the transaction ID is present and the key is
// well-formed.
func (r RawVerificationKey) Validate() (VerificationKey, error) {
	if r.TransactionID == "" {
		return VerificationKey{}, fmt.Errorf("verification key: transaction_id is required")
	}
	if err := validateKeyField("key", r.Key); err != nil {
		return VerificationKey{}, fmt.Errorf("verification key: %w", err)
	}
	return VerificationKey(r), nil
}

// VerificationMac is the validated content of an m.key.verification.mac
// to-device event: MACs of the device's keys, computed with the shared
// secret, proving both sides derived the same secret.
type VerificationMac struct {
	// TransactionID matches the start event's transaction ID.
	TransactionID string `json:"transaction_id"`

	// Mac maps each key ID (e.g., "ed25519:JLAFKJWSCS") to the MAC of
	// that key, unpadded base64.
	Mac map[string]string `json:"mac"`

	// Keys is the MAC of the comma-separated, sorted list of key IDs
	// in Mac, unpadded base64.
	Keys string `json:"keys"`
}

// RawVerificationMac is the structurally decoded, unvalidated form of
// VerificationMac.
type RawVerificationMac struct {
	TransactionID string            `json:"transaction_id"`
	Mac           map[string]string `json:"mac"`
	Keys          string            `json:"keys"`
}

// Validate checks that at least one key is MACed and every MAC is
// well-formed.
func (r RawVerificationMac) Validate() (VerificationMac, error) {
	if r.TransactionID == "" {
		return VerificationMac{}, fmt.Errorf("verification mac: transaction_id is required")
	}
	if len(r.Mac) == 0 {
		return VerificationMac{}, fmt.Errorf("verification mac: mac is required")
	}
	for keyID, mac := range r.Mac {
		if keyID == "" {
			return VerificationMac{}, fmt.Errorf("verification mac: empty key ID in mac")
		}
		if err := validateKeyField(fmt.Sprintf("mac[%q]", keyID), mac); err != nil {
			return VerificationMac{}, fmt.Errorf("verification mac: %w", err)
		}
	}
	if err := validateKeyField("keys", r.Keys); err != nil {
		return VerificationMac{}, fmt.Errorf("verification mac: %w", err)
	}
	return VerificationMac(r), nil
}

// VerificationCancel is the validated content of an
// m.key.verification.cancel to-device event: either side aborting a
// verification, with a machine-readable code and a human-readable
// reason.
type VerificationCancel struct {
	// TransactionID matches the start event's transaction ID.
	TransactionID string `json:"transaction_id"`

	// Code is the machine-readable cancellation reason, from the
	// known CancelCode set.
	Code CancelCode `json:"code"`

	// Reason is the human-readable cancellation reason.
	Reason string `json:"reason"`
}

// RawVerificationCancel is the structurally decoded, unvalidated form
// of VerificationCancel.
type RawVerificationCancel struct {
	TransactionID string     `json:"transaction_id"`
	Code          CancelCode `json:"code"`
	Reason        string     `json:"reason"`
}

// Validate checks that the code is from the known set and both fields
// are present.
func (r RawVerificationCancel) Validate() (VerificationCancel, error) {
	if r.TransactionID == "" {
		return VerificationCancel{}, fmt.Errorf("verification cancel: transaction_id is required")
	}
	if !r.Code.IsKnown() {
		return VerificationCancel{}, fmt.Errorf("verification cancel: unknown code %q", r.Code)
	}
	if r.Reason == "" {
		return VerificationCancel{}, fmt.Errorf("verification cancel: reason is required")
	}
	return VerificationCancel(r), nil
}

// VerificationRequest is the validated content of an
// m.key.verification.request to-device event: a device asking any of
// the recipient user's devices to start a verification.
type VerificationRequest struct {
	// FromDevice is the device requesting verification.
	FromDevice ref.DeviceID `json:"from_device"`

	// TransactionID ties the eventual verification events to this
	// request.
	TransactionID string `json:"transaction_id"`

	// Methods are the verification methods the requesting device
	// supports. Unrecognized methods are preserved — the recipient
	// picks one it understands.
	Methods []VerificationMethod `json:"methods"`

	// Timestamp is milliseconds since the Unix epoch. Receivers
	// ignore requests older than ten minutes.
	Timestamp int64 `json:"timestamp"`
}

// RawVerificationRequest is the structurally decoded, unvalidated form
// of VerificationRequest.
type RawVerificationRequest struct {
	FromDevice    ref.DeviceID         `json:"from_device"`
	TransactionID string               `json:"transaction_id"`
	Methods       []VerificationMethod `json:"methods"`
	Timestamp     int64                `json:"timestamp"`
}

// Validate checks that at least one method is offered and the
// housekeeping fields are present. Method strings outside the known
// set pass through unchanged: requests advertise, they don't commit.
func (r RawVerificationRequest) Validate() (VerificationRequest, error) {
	if r.FromDevice.IsZero() {
		return VerificationRequest{}, fmt.Errorf("verification request: from_device is required")
	}
	if r.TransactionID == "" {
		return VerificationRequest{}, fmt.Errorf("verification request: transaction_id is required")
	}
	if len(r.Methods) == 0 {
		return VerificationRequest{}, fmt.Errorf("verification request: methods is required")
	}
	for i, method := range r.Methods {
		if method == "" {
			return VerificationRequest{}, fmt.Errorf("verification request: methods[%d] is empty", i)
		}
	}
	if r.Timestamp <= 0 {
		return VerificationRequest{}, fmt.Errorf("verification request: timestamp is required")
	}
	return VerificationRequest(r), nil
}
