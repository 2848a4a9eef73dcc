// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"runtime/debug"

	"github.com/hermetic-build/elfpack/internal/launcher"
)

// Set on build.
var version = "dev"

const (
	name = "elfpack"

	usageMessage = `Usage of 'elfpack':
    elfpack [flags...] binary...

Build a hermetic self-extracting launcher for a binary:
	elfpack -interp ./sysroot/lib/ld-linux-x86-64.so.2 \
	    -lib-dir ./sysroot/lib -out ./hello_launcher ./hello

Print the dependency map of a library pool:
	elfpack -emit depmap -interp ./sysroot/lib/ld-linux-x86-64.so.2 \
	    -lib-dir ./sysroot/lib

All elfpack flags can also be provided via environment variable ELFPACK_ARGS:
	ELFPACK_ARGS="-lib-dir ./sysroot/lib" elfpack -out ./out ./hello

All elfpack flags can also be provided via file ./.elfpack-args, with one
argument per line.
`
)

type flags struct {
	Output      FilePath
	OutputDir   FilePath
	Interpreter FilePath
	Libraries   FilePathList
	LibDir      FilePath
	Emit        EmitMode
	Format      launcher.Format
	Binaries    []string

	Version bool
	Debug   bool

	flagSet *flag.FlagSet
}

func newFlagSet(output io.Writer) *flags {
	flags := &flags{
		Emit:   EmitLauncher,
		Format: launcher.FormatTar,
	}

	flags.initFlagset(output)

	return flags
}

func (f *flags) initFlagset(output io.Writer) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageMessage)
		fs.PrintDefaults()
	}

	fs.Var(
		&f.Output,
		"out",
		"path the built artifact is written to",
	)

	fs.Var(
		&f.OutputDir,
		"out-dir",
		"directory the built artifacts are written to, named after their"+
			" binary. Required with more than one binary.",
	)

	fs.Var(
		&f.Interpreter,
		"interp",
		"ELF interpreter to embed. Defaults to the binary's PT_INTERP."+
			" Required with -emit depmap.",
	)

	fs.Var(
		&f.Libraries,
		"lib",
		"comma separated candidate library files. May be given multiple"+
			" times.",
	)

	fs.Var(
		&f.LibDir,
		"lib-dir",
		"directory to collect candidate library files from",
	)

	fs.TextVar(
		&f.Emit,
		"emit",
		f.Emit,
		"artifact to emit: launcher, archive, depmap",
	)

	fs.TextVar(
		&f.Format,
		"format",
		f.Format,
		"archive format for -emit archive: tar, cpio",
	)

	fs.BoolVar(
		&f.Debug,
		"debug",
		f.Debug,
		"enable debug output",
	)

	fs.BoolVar(
		&f.Version,
		"version",
		f.Version,
		"show version and exit",
	)

	f.flagSet = fs
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(f.flagSet.Output(), "%s: %s\n\n", name, version)
	fmt.Fprintln(f.flagSet.Output(), buildInfo.String())

	return nil
}

func (f *flags) ParseArgs(args []string) error {
	if err := f.flagSet.Parse(args); err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using
	// [flag.ErrHelp] the main binary is supposed to return with a non error
	// exit code.
	if f.Version {
		if err := f.printVersionInformation(); err != nil {
			return &ParseArgsError{msg: "version requested", err: err}
		}

		return &ParseArgsError{msg: "version requested", err: ErrHelp}
	}

	for _, arg := range f.flagSet.Args() {
		binary, err := AbsoluteFilePath(arg)
		if err != nil {
			return f.fail("binary path", err)
		}

		f.Binaries = append(f.Binaries, binary)
	}

	if f.Emit == EmitDepMap {
		if len(f.Binaries) > 0 {
			return f.fail("-emit depmap takes no binary", nil)
		}

		// Without a binary there is no PT_INTERP to default from, and pool
		// libraries regularly declare the interpreter itself as needed.
		if f.Interpreter == "" {
			return f.fail("-emit depmap requires -interp", nil)
		}

		return nil
	}

	if len(f.Binaries) == 0 {
		return f.fail("no binary given", nil)
	}

	if len(f.Binaries) > 1 && f.OutputDir == "" {
		return f.fail("multiple binaries require -out-dir", nil)
	}

	if f.Output == "" && f.OutputDir == "" {
		return f.fail("no output path given (use -out or -out-dir)", nil)
	}

	if f.Emit == EmitLauncher && f.Format != launcher.FormatTar {
		return f.fail(
			"launcher payloads are always tar (use -emit archive)", nil,
		)
	}

	return nil
}

// outputPathFor returns the artifact path for the given binary.
func (f *flags) outputPathFor(binary string) string {
	if f.OutputDir != "" {
		return filepath.Join(string(f.OutputDir), filepath.Base(binary))
	}

	return string(f.Output)
}
