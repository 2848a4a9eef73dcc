// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"flag"
	"fmt"
)

var (
	// ErrHelp is returned if help or version output was requested. The
	// command should exit without an error in this case.
	ErrHelp = flag.ErrHelp

	// ErrReadBuildInfo is returned if build info can not be read from the
	// binary.
	ErrReadBuildInfo = errors.New("failed to read build info")

	// ErrEmptyFilePath is returned if an empty file path is given.
	ErrEmptyFilePath = errors.New("file path must not be empty")

	// ErrEmitModeInvalid is returned if an emit mode is not known.
	ErrEmitModeInvalid = errors.New("invalid emit mode")
)

// ParseArgsError wraps errors that occur during argument parsing.
type ParseArgsError struct {
	err error
	msg string
}

func (e *ParseArgsError) Error() string {
	if e.err == nil {
		return e.msg
	}

	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *ParseArgsError) Is(other error) bool {
	_, ok := other.(*ParseArgsError)
	return ok
}

func (e *ParseArgsError) Unwrap() error {
	return e.err
}
