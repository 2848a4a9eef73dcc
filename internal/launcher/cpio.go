// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher

import (
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/cavaliergopher/cpio"
)

// CPIOWriter implements [Writer] for SVR4 cpio archives.
type CPIOWriter struct {
	cpioWriter *cpio.Writer
}

// NewCPIOWriter creates a new archive writer.
func NewCPIOWriter(w io.Writer) *CPIOWriter {
	return &CPIOWriter{cpio.NewWriter(w)}
}

// Close closes the [Writer]. Flush is called by the underlying closer.
func (w *CPIOWriter) Close() error {
	err := w.cpioWriter.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

// WriteRegular copies the existing file from source into the archive.
func (w *CPIOWriter) WriteRegular(path string, source fs.File) error {
	info, err := source.Stat()
	if err != nil {
		return fmt.Errorf("read info: %w", err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, info.Name())
	}

	header, err := cpio.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("create header: %w", err)
	}

	header.Name = path

	// The cpio format has no owner names, so stripping uid and gid is all
	// it takes for ownerless entries. The format stores whole seconds only.
	header.Uid = 0
	header.Guid = 0
	header.ModTime = info.ModTime().Truncate(time.Second)

	err = w.cpioWriter.WriteHeader(header)
	if err != nil {
		return fmt.Errorf("write header for %s: %w", path, err)
	}

	_, err = io.Copy(w.cpioWriter, source)
	if err != nil {
		return fmt.Errorf("write body for %s: %w", path, err)
	}

	return nil
}
