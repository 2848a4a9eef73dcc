// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package elfdeps

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedELF is returned if a file cannot be parsed as an ELF
	// object.
	ErrMalformedELF = errors.New("malformed ELF file")

	// ErrNoInterpreter is returned if no interpreter is found in an ELF file.
	ErrNoInterpreter = errors.New("no interpreter in ELF file")
)

// MissingDependencyError is returned if a soname referenced by a library in
// the pool has no corresponding file in the pool.
type MissingDependencyError struct {
	// SoName is the soname that could not be resolved.
	SoName string
	// NeededBy is the soname that requires it.
	NeededBy string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf(
		"library %s needed by %s not found in pool",
		e.SoName,
		e.NeededBy,
	)
}

func (e *MissingDependencyError) Is(other error) bool {
	_, ok := other.(*MissingDependencyError)
	return ok
}
