// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
)

// EnvArgs returns elfpack arguments from the environment.
func EnvArgs() []string {
	return strings.Fields(os.Getenv("ELFPACK_ARGS"))
}

// LocalConfigArgs returns elfpack arguments from a local config file.
//
// The file's format is one argument per line. Environment variables may be
// used and are expanded with [os.ExpandEnv].
func LocalConfigArgs(fsys fs.FS, file string) ([]string, error) {
	conf, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read file: %w", err)
	}

	args := []string{}

	expandedConf := os.ExpandEnv(string(conf))
	for _, line := range strings.Split(expandedConf, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			args = append(args, line)
		}
	}

	return args, nil
}

// MergedArgs merges the given command line arguments with arguments from the
// environment and the local config file. Later arguments take precedence, so
// the order is: config file, environment, command line.
func MergedArgs(args []string, fsys fs.FS, file string) ([]string, error) {
	localArgs, err := LocalConfigArgs(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("local config args: %w", err)
	}

	return slices.Concat(localArgs, EnvArgs(), args), nil
}
