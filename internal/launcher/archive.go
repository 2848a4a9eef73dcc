// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/hermetic-build/elfpack/internal/elfdeps"
)

const (
	// RealBinaryName is the archive path of the wrapped binary.
	RealBinaryName = "_real_binary"

	// LibDir is the archive directory holding the resolved libraries.
	LibDir = "_hermetic_lib"
)

// Entry maps an archive path to the source file it is read from.
type Entry struct {
	Path   string
	Source string
}

// Entries computes the archive layout for the spec.
//
// The interpreter goes in under the launcher's own base name, which lets the
// bootstrap invoke it with the launcher's name as argv[0]. The wrapped
// binary goes in as [RealBinaryName]. The libraries of the transitive
// closure of the binary's direct needs go into [LibDir], resolved over the
// spec's library pool. Libraries outside that closure are never part of the
// archive.
func Entries(spec Spec) ([]Entry, error) {
	interpSoName := filepath.Base(spec.Interpreter)

	metadata, err := elfdeps.Extract(spec.Binary, interpSoName)
	if err != nil {
		return nil, fmt.Errorf("analyze binary [%s]: %w", spec.Binary, err)
	}

	depMap, err := elfdeps.BuildMap(spec.Libraries, interpSoName)
	if err != nil {
		return nil, fmt.Errorf("build dependency map: %w", err)
	}

	required := depMap.FilesFor(metadata.Deps)

	fileToSource := make(map[string]string, len(spec.Libraries))
	for _, lib := range spec.Libraries {
		fileToSource[filepath.Base(lib)] = lib
	}

	name := filepath.Base(spec.Output)

	entries := make([]Entry, 0, len(required)+2)
	entries = append(entries,
		Entry{Path: name, Source: spec.Interpreter},
		Entry{Path: RealBinaryName, Source: spec.Binary},
	)

	for _, file := range required {
		entries = append(entries, Entry{
			Path:   path.Join(LibDir, file),
			Source: fileToSource[file],
		})
	}

	return entries, nil
}

// WriteArchive writes the hermetic file tree for the spec as a single
// archive in the spec's format.
func WriteArchive(w io.Writer, spec Spec) error {
	entries, err := Entries(spec)
	if err != nil {
		return err
	}

	archiveWriter, err := NewWriter(w, spec.Format)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		err := writeEntry(archiveWriter, entry)
		if err != nil {
			return err
		}
	}

	err = archiveWriter.Close()
	if err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return nil
}

func writeEntry(w Writer, entry Entry) error {
	source, err := os.Open(entry.Source)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer source.Close()

	err = w.WriteRegular(entry.Path, source)
	if err != nil {
		return fmt.Errorf("write %s: %w", entry.Path, err)
	}

	return nil
}
