// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/hermetic-build/elfpack/internal/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsParseArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectedErr error
		assertFlags func(t *testing.T, f *flags)
	}{
		{
			name: "launcher build",
			args: []string{"-out", "/tmp/out", "-interp", "/lib/ld.so", "bin"},
			assertFlags: func(t *testing.T, f *flags) {
				assert.Equal(t, EmitLauncher, f.Emit)
				assert.Equal(t, launcher.FormatTar, f.Format)
				assert.Equal(t, FilePath("/tmp/out"), f.Output)
				assert.Equal(t, FilePath("/lib/ld.so"), f.Interpreter)
				require.Len(t, f.Binaries, 1)
				assert.True(t, filepath.IsAbs(f.Binaries[0]))
			},
		},
		{
			name: "library list accumulates",
			args: []string{
				"-out", "/tmp/out",
				"-lib", "/lib/liba.so,/lib/libb.so",
				"-lib", "/lib/libc.so",
				"bin",
			},
			assertFlags: func(t *testing.T, f *flags) {
				assert.Equal(t, FilePathList{
					"/lib/liba.so", "/lib/libb.so", "/lib/libc.so",
				}, f.Libraries)
			},
		},
		{
			name: "depmap without binary",
			args: []string{
				"-emit", "depmap", "-interp", "/lib/ld.so",
				"-lib-dir", "/lib",
			},
			assertFlags: func(t *testing.T, f *flags) {
				assert.Equal(t, EmitDepMap, f.Emit)
				assert.Empty(t, f.Binaries)
			},
		},
		{
			name:        "depmap with binary",
			args:        []string{"-emit", "depmap", "bin"},
			expectedErr: &ParseArgsError{},
		},
		{
			name:        "depmap without interp",
			args:        []string{"-emit", "depmap", "-lib-dir", "/lib"},
			expectedErr: &ParseArgsError{},
		},
		{
			name:        "no binary",
			args:        []string{"-out", "/tmp/out"},
			expectedErr: &ParseArgsError{},
		},
		{
			name:        "no output",
			args:        []string{"bin"},
			expectedErr: &ParseArgsError{},
		},
		{
			name:        "multiple binaries require out dir",
			args:        []string{"-out", "/tmp/out", "bin1", "bin2"},
			expectedErr: &ParseArgsError{},
		},
		{
			name: "multiple binaries with out dir",
			args: []string{"-out-dir", "/tmp/out", "bin1", "bin2"},
			assertFlags: func(t *testing.T, f *flags) {
				assert.Len(t, f.Binaries, 2)
			},
		},
		{
			name:        "cpio launcher",
			args:        []string{"-out", "/tmp/out", "-format", "cpio", "bin"},
			expectedErr: &ParseArgsError{},
		},
		{
			name: "cpio archive",
			args: []string{
				"-out", "/tmp/out", "-emit", "archive", "-format", "cpio",
				"bin",
			},
			assertFlags: func(t *testing.T, f *flags) {
				assert.Equal(t, EmitArchive, f.Emit)
				assert.Equal(t, launcher.FormatCPIO, f.Format)
			},
		},
		{
			name:        "unknown emit mode",
			args:        []string{"-emit", "tarball", "bin"},
			expectedErr: &ParseArgsError{},
		},
		{
			name:        "version",
			args:        []string{"-version"},
			expectedErr: ErrHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := newFlagSet(io.Discard)

			err := flags.ParseArgs(tt.args)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)

			if tt.assertFlags != nil {
				tt.assertFlags(t, flags)
			}
		})
	}
}

func TestFlagsOutputPathFor(t *testing.T) {
	t.Run("out dir", func(t *testing.T) {
		flags := newFlagSet(io.Discard)
		flags.OutputDir = "/tmp/dir"

		assert.Equal(t, "/tmp/dir/bin", flags.outputPathFor("/some/path/bin"))
	})

	t.Run("out file", func(t *testing.T) {
		flags := newFlagSet(io.Discard)
		flags.Output = "/tmp/launcher"

		assert.Equal(t, "/tmp/launcher", flags.outputPathFor("/some/bin"))
	})
}
