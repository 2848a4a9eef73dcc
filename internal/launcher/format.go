// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher

import (
	"fmt"
	"slices"
)

const (
	// FormatTar is the POSIX tar format. Launcher payloads always use it,
	// since the bootstrap extracts with the system tar.
	FormatTar Format = "tar"

	// FormatCPIO is the SVR4 cpio format as consumed by the Linux kernel
	// initramfs loader. It is available for bare archive output.
	FormatCPIO Format = "cpio"
)

// Format represents archive output formats.
type Format string

func (f *Format) isKnown() bool {
	knownFormats := []Format{
		FormatTar,
		FormatCPIO,
	}

	return slices.Contains(knownFormats, *f)
}

// String implements [fmt.Stringer].
func (f *Format) String() string {
	if !f.isKnown() {
		return ""
	}

	return string(*f)
}

// MarshalText implements [encoding.TextMarshaler].
func (f Format) MarshalText() ([]byte, error) {
	s := f.String()
	if s == "" {
		return nil, ErrFormatInvalid
	}

	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *Format) UnmarshalText(text []byte) error {
	format := Format(text)
	if !format.isKnown() {
		return fmt.Errorf("%w: %s", ErrFormatInvalid, text)
	}

	*f = format

	return nil
}
