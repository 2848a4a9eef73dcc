// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"slices"
)

const (
	// EmitLauncher emits the self-extracting launcher executable.
	EmitLauncher EmitMode = "launcher"

	// EmitArchive emits the bare hermetic file tree as an archive, without
	// a bootstrap.
	EmitArchive EmitMode = "archive"

	// EmitDepMap emits the dependency map of the library pool as JSON.
	EmitDepMap EmitMode = "depmap"
)

// EmitMode selects the artifact the command produces.
type EmitMode string

func (m *EmitMode) isKnown() bool {
	knownEmitModes := []EmitMode{
		EmitLauncher,
		EmitArchive,
		EmitDepMap,
	}

	return slices.Contains(knownEmitModes, *m)
}

// String implements [fmt.Stringer].
func (m *EmitMode) String() string {
	if !m.isKnown() {
		return ""
	}

	return string(*m)
}

// MarshalText implements [encoding.TextMarshaler].
func (m EmitMode) MarshalText() ([]byte, error) {
	s := m.String()
	if s == "" {
		return nil, ErrEmitModeInvalid
	}

	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *EmitMode) UnmarshalText(text []byte) error {
	mode := EmitMode(text)
	if !mode.isKnown() {
		return fmt.Errorf("%w: %s", ErrEmitModeInvalid, text)
	}

	*m = mode

	return nil
}
