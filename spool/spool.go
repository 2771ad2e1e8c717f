// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package spool persists raw to-device payloads between /sync receipt
// and processing. Homeservers deliver each to-device message exactly
// once — a client that acknowledges a sync token and then crashes
// mid-batch loses whatever it had not yet processed. The spool closes
// that window: append the batch before advancing the sync token, drain
// after processing.
//
// The spool is a single CBOR state file (package codec's deterministic
// encoding) written atomically: temporary file in the same directory,
// fsync, rename. Readers never see a partial write. One Spool value
// owns the file; operations are serialized by an internal mutex, so a
// Spool is safe for concurrent use within a process. Cross-process
// locking is out of scope.
package spool

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bureau-foundation/todevice/codec"
)

// fileVersion guards against reading state written by an incompatible
// future format.
const fileVersion = 1

// spoolFile is the on-disk state. Purely internal, so cbor struct tags.
type spoolFile struct {
	Version  int      `cbor:"version"`
	Payloads [][]byte `cbor:"payloads"`
}

// Spool is a crash-safe on-disk buffer of raw to-device payloads.
type Spool struct {
	path string
	mu   sync.Mutex
}

// Open returns a Spool backed by the file at path. The file is created
// on first Append; the parent directory must already exist.
func Open(path string) (*Spool, error) {
	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("spool directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("spool parent %s is not a directory", filepath.Dir(path))
	}
	return &Spool{path: path}, nil
}

// Append adds a batch of payloads to the spool, preserving order after
// any payloads already pending. The updated state is durable when
// Append returns.
func (s *Spool) Append(payloads []json.RawMessage) error {
	if len(payloads) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return err
	}
	for _, payload := range payloads {
		state.Payloads = append(state.Payloads, []byte(payload))
	}
	return s.write(state)
}

// Pending returns the number of payloads currently spooled.
func (s *Spool) Pending() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return 0, err
	}
	return len(state.Payloads), nil
}

// Drain removes and returns all pending payloads in append order.
// After a successful Drain the spool file is gone; a crash between
// Drain and processing loses the drained batch, so callers process
// first and acknowledge the sync token last.
func (s *Spool) Drain() ([]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return nil, err
	}
	if len(state.Payloads) == 0 {
		return nil, nil
	}
	if err := os.Remove(s.path); err != nil {
		return nil, fmt.Errorf("removing spool file: %w", err)
	}

	payloads := make([]json.RawMessage, len(state.Payloads))
	for i, payload := range state.Payloads {
		payloads[i] = json.RawMessage(payload)
	}
	return payloads, nil
}

// read loads the current state. A missing file is an empty spool.
func (s *Spool) read() (spoolFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return spoolFile{Version: fileVersion}, nil
		}
		return spoolFile{}, fmt.Errorf("reading spool file: %w", err)
	}

	var state spoolFile
	if err := codec.Unmarshal(data, &state); err != nil {
		return spoolFile{}, fmt.Errorf("parsing spool file %s: %w", s.path, err)
	}
	if state.Version != fileVersion {
		return spoolFile{}, fmt.Errorf("spool file %s has version %d, expected %d", s.path, state.Version, fileVersion)
	}
	return state, nil
}

// write atomically replaces the state file: temporary file in the same
// directory, fsync, rename, directory sync.
func (s *Spool) write(state spoolFile) error {
	data, err := codec.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling spool state: %w", err)
	}

	temporaryPath := s.path + ".tmp"
	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating temporary spool file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary spool file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary spool file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary spool file: %w", err)
	}

	if err := os.Rename(temporaryPath, s.path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming spool file into place: %w", err)
	}

	// Sync the parent directory so the rename survives power loss.
	parentDirectory, err := os.Open(filepath.Dir(s.path))
	if err == nil {
		parentDirectory.Sync()
		parentDirectory.Close()
	}
	return nil
}
