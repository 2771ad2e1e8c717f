// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package todevice

import (
	"errors"
	"fmt"
)

// MissingFieldError reports a mandatory top-level field ("type",
// "sender", or "content") that is absent or of the wrong shape. It is
// non-retryable: the sender produced a malformed payload.
//
// Callers use errors.As to extract the field name:
//
//	var missing *todevice.MissingFieldError
//	if errors.As(err, &missing) {
//	    log("payload missing", missing.Field)
//	}
type MissingFieldError struct {
	// Field is the wire name of the missing or malformed field.
	Field string

	// cause is the structural decode error for wrong-shaped fields,
	// nil for absent ones.
	cause error
}

func (e *MissingFieldError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("to-device event: malformed field %q: %v", e.Field, e.cause)
	}
	return fmt.Sprintf("to-device event: missing field %q", e.Field)
}

// Unwrap returns the structural decode error for wrong-shaped fields,
// or nil for absent ones.
func (e *MissingFieldError) Unwrap() error { return e.cause }

// UnknownEventTypeError reports a "type" discriminant outside the ten
// known to-device event kinds. The tag is carried verbatim. Unknown
// kinds are expected in normal operation — servers deliver whatever
// senders produce — so callers processing a sync batch skip these and
// continue; see DecodeBatch.
type UnknownEventTypeError struct {
	// Type is the unrecognized discriminant, exactly as it appeared
	// on the wire.
	Type Type
}

func (e *UnknownEventTypeError) Error() string {
	return fmt.Sprintf("to-device event: unknown event type %q", e.Type)
}

// IsUnknownEventType reports whether err is an *UnknownEventTypeError.
func IsUnknownEventType(err error) bool {
	var unknown *UnknownEventTypeError
	return errors.As(err, &unknown)
}

// ContentError reports content that decoded structurally but failed the
// event kind's semantic validation (e.g., malformed key material, a
// cancel code outside the known set). The underlying validation error
// is preserved unchanged and available via Unwrap.
type ContentError struct {
	// Type is the event kind whose content failed validation.
	Type Type

	// Err is the content-specific validation error.
	Err error
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("to-device event %s: invalid content: %v", e.Type, e.Err)
}

// Unwrap returns the content-specific validation error.
func (e *ContentError) Unwrap() error { return e.Err }
