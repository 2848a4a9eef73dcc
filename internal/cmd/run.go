// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/hermetic-build/elfpack/internal/elfdeps"
	"github.com/hermetic-build/elfpack/internal/launcher"
)

const localConfigFile = ".elfpack-args"

// IO provides output details for the command.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
}

func newFlags(args []string, cfg IO) (*flags, error) {
	args, err := MergedArgs(args, os.DirFS("."), localConfigFile)
	if err != nil {
		return nil, err
	}

	flags := newFlagSet(cfg.Stderr)

	err = flags.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	return flags, nil
}

// libraryPool collects the candidate library paths from the -lib and
// -lib-dir flags.
func (f *flags) libraryPool() ([]string, error) {
	pool := slices.Clone([]string(f.Libraries))

	if f.LibDir != "" {
		entries, err := os.ReadDir(string(f.LibDir))
		if err != nil {
			return nil, fmt.Errorf("read lib dir: %w", err)
		}

		for _, entry := range entries {
			path := filepath.Join(string(f.LibDir), entry.Name())

			// Library directories are full of version symlinks. Follow them
			// and keep everything that ends up at a regular file.
			info, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", path, err)
			}

			if !info.Mode().IsRegular() {
				continue
			}

			pool = append(pool, path)
		}
	}

	slices.Sort(pool)

	return slices.Compact(pool), nil
}

func (f *flags) interpSoName() string {
	if f.Interpreter == "" {
		return ""
	}

	return filepath.Base(string(f.Interpreter))
}

func writeDepMap(flags *flags, pool []string, stdout io.Writer) error {
	depMap, err := elfdeps.BuildMap(pool, flags.interpSoName())
	if err != nil {
		return fmt.Errorf("build dependency map: %w", err)
	}

	writer := stdout

	if flags.Output != "" {
		file, err := os.Create(string(flags.Output))
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer file.Close()

		writer = file
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	err = encoder.Encode(depMap)
	if err != nil {
		return fmt.Errorf("encode dependency map: %w", err)
	}

	return nil
}

func buildOne(flags *flags, binary string, pool []string) error {
	interpreter := string(flags.Interpreter)

	if interpreter == "" {
		var err error

		interpreter, err = elfdeps.ReadInterpreter(binary)
		if err != nil {
			return fmt.Errorf("read interpreter: %w", err)
		}
	}

	spec := launcher.Spec{
		Binary:      binary,
		Output:      flags.outputPathFor(binary),
		Interpreter: interpreter,
		Libraries:   pool,
		Format:      flags.Format,
	}

	if flags.Emit == EmitArchive {
		return writeArchiveFile(spec)
	}

	err := launcher.Build(spec)
	if err != nil {
		return fmt.Errorf("build launcher: %w", err)
	}

	return nil
}

func writeArchiveFile(spec launcher.Spec) error {
	file, err := os.Create(spec.Output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	err = launcher.WriteArchive(file, spec)
	if err != nil {
		file.Close()
		_ = os.Remove(spec.Output)

		return fmt.Errorf("write archive: %w", err)
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	return nil
}

func run(flags *flags, cfg IO) error {
	pool, err := flags.libraryPool()
	if err != nil {
		return fmt.Errorf("collect library pool: %w", err)
	}

	if flags.Emit == EmitDepMap {
		return writeDepMap(flags, pool, cfg.Stdout)
	}

	// Each build works on its own file handles only, so independent
	// binaries can be processed in parallel.
	var group errgroup.Group

	for _, binary := range flags.Binaries {
		group.Go(func() error {
			err := buildOne(flags, binary, pool)
			if err != nil {
				return fmt.Errorf("[%s]: %w", binary, err)
			}

			slog.Debug("Artifact built",
				slog.String("binary", binary),
				slog.String("output", flags.outputPathFor(binary)))

			return nil
		})
	}

	return group.Wait()
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help or version output is requested. So
	// exit without error in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return -1
}

// Run is the main entry point for the CLI command. args are the command line
// arguments without the program name.
func Run(args []string, cfg IO) int {
	flags, err := newFlags(args, cfg)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.Debug)

	err = run(flags, cfg)
	if err != nil {
		slog.Error(err.Error())
		return 1
	}

	return 0
}
