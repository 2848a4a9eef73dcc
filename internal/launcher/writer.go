// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher

import (
	"fmt"
	"io"
	"io/fs"
)

// Writer writes regular file entries to an archive.
//
// Implementations normalize the ownership of every entry to uid 0, gid 0
// and empty owner names, so the archive bytes do not depend on the identity
// of the building user.
type Writer interface {
	// WriteRegular copies the existing regular file source into the archive
	// under the given path.
	WriteRegular(path string, source fs.File) error

	// Close finishes the archive. It does not close the underlying writer.
	Close() error
}

// NewWriter creates a [Writer] for the requested archive format writing to
// w.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatTar:
		return NewTarWriter(w), nil
	case FormatCPIO:
		return NewCPIOWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormatInvalid, format)
	}
}
