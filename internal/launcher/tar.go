// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"time"
)

// TarWriter implements [Writer] for POSIX tar archives.
type TarWriter struct {
	tarWriter *tar.Writer
}

// NewTarWriter creates a new archive writer.
func NewTarWriter(w io.Writer) *TarWriter {
	return &TarWriter{tar.NewWriter(w)}
}

// Close closes the [Writer]. Flush is called by the underlying closer.
func (w *TarWriter) Close() error {
	err := w.tarWriter.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

// WriteRegular copies the existing file from source into the archive.
func (w *TarWriter) WriteRegular(path string, source fs.File) error {
	info, err := source.Stat()
	if err != nil {
		return fmt.Errorf("read info: %w", err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, info.Name())
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("create header: %w", err)
	}

	header.Name = path

	// Strip everything that varies with the build machine or user, so
	// identical input bytes produce identical archive bytes. The modification
	// time is truncated to full seconds to keep the header within the plain
	// ustar representation.
	header.Uid = 0
	header.Gid = 0
	header.Uname = ""
	header.Gname = ""
	header.ModTime = info.ModTime().Truncate(time.Second)
	header.AccessTime = time.Time{}
	header.ChangeTime = time.Time{}

	err = w.tarWriter.WriteHeader(header)
	if err != nil {
		return fmt.Errorf("write header for %s: %w", path, err)
	}

	_, err = io.Copy(w.tarWriter, source)
	if err != nil {
		return fmt.Errorf("write body for %s: %w", path, err)
	}

	return nil
}
