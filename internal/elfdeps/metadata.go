// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package elfdeps

import (
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"slices"

	"golang.org/x/sys/unix"
)

// Metadata holds the dynamic linking metadata of an ELF object.
type Metadata struct {
	// SoName is the object's self-declared library name. It is empty for
	// executables and libraries without a DT_SONAME entry.
	SoName string

	// Deps are the sonames the object declares as needed at load time,
	// sorted and deduplicated. The program interpreter's own name is never
	// part of it.
	Deps []string
}

// Extract reads the dynamic section of the ELF file with the given path.
//
// An object without a dynamic section is statically linked and yields zero
// [Metadata] without error. interpSoName is the library name of the program
// interpreter and is dropped from the needed entries, since the interpreter
// is not a runtime dependency to track. An unparseable file is reported as
// [ErrMalformedELF].
func Extract(path string, interpSoName string) (Metadata, error) {
	file, err := openELF(path)
	if err != nil {
		return Metadata{}, err
	}
	defer file.Close()

	needed, err := file.DynString(elf.DT_NEEDED)
	if err != nil {
		return Metadata{}, fmt.Errorf(
			"%w: read needed entries: %v", ErrMalformedELF, err,
		)
	}

	sonames, err := file.DynString(elf.DT_SONAME)
	if err != nil {
		return Metadata{}, fmt.Errorf(
			"%w: read soname: %v", ErrMalformedELF, err,
		)
	}

	var metadata Metadata

	if len(sonames) > 0 {
		metadata.SoName = sonames[0]
	}

	deps := make(map[string]struct{}, len(needed))

	for _, dep := range needed {
		if dep == interpSoName {
			continue
		}

		deps[dep] = struct{}{}
	}

	metadata.Deps = slices.Sorted(maps.Keys(deps))

	return metadata, nil
}

// ReadInterpreter fetches the program interpreter path from the PT_INTERP
// segment of the ELF file with the given path.
//
// It returns [ErrNoInterpreter] if the file does not have an interpreter
// set, which is the case for statically linked binaries.
func ReadInterpreter(path string) (string, error) {
	file, err := openELF(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	for _, prog := range file.Progs {
		if prog.Type != elf.PT_INTERP {
			continue
		}

		buf := make([]byte, prog.Filesz)

		_, err := prog.Open().Read(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read interpreter: %w", err)
		}

		// Only terminate if the found path is not empty. If no other prog
		// has a valid path, it will result in the final ErrNoInterpreter.
		interpreter := unix.ByteSliceToString(buf)
		if interpreter != "" {
			return interpreter, nil
		}
	}

	return "", ErrNoInterpreter
}

// openELF opens the file and distinguishes file system errors from format
// errors. The latter are mapped to [ErrMalformedELF].
func openELF(path string) (*elf.File, error) {
	file, err := elf.Open(path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("open: %w", err)
		}

		return nil, fmt.Errorf("%w: %v", ErrMalformedELF, err)
	}

	return file, nil
}
