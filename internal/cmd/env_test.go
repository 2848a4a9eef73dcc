// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"testing"
	"testing/fstest"

	"github.com/hermetic-build/elfpack/internal/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvArgs(t *testing.T) {
	t.Setenv("ELFPACK_ARGS", " -debug  -lib-dir /usr/lib ")

	assert.Equal(t, []string{"-debug", "-lib-dir", "/usr/lib"}, cmd.EnvArgs())
}

func TestLocalConfigArgs(t *testing.T) {
	t.Setenv("SYSROOT", "/opt/sysroot")

	tests := []struct {
		name     string
		fsys     fstest.MapFS
		expected []string
	}{
		{
			name: "file with args and blank lines",
			fsys: fstest.MapFS{
				".elfpack-args": &fstest.MapFile{
					Data: []byte("-debug\n\n-lib-dir\n${SYSROOT}/lib\n"),
				},
			},
			expected: []string{"-debug", "-lib-dir", "/opt/sysroot/lib"},
		},
		{
			name:     "missing file",
			fsys:     fstest.MapFS{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := cmd.LocalConfigArgs(tt.fsys, ".elfpack-args")
			require.NoError(t, err)

			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestMergedArgs(t *testing.T) {
	t.Setenv("ELFPACK_ARGS", "-debug")

	fsys := fstest.MapFS{
		".elfpack-args": &fstest.MapFile{Data: []byte("-lib-dir\n/lib\n")},
	}

	actual, err := cmd.MergedArgs(
		[]string{"-out", "/tmp/out", "bin"}, fsys, ".elfpack-args",
	)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"-lib-dir", "/lib", "-debug", "-out", "/tmp/out", "bin",
	}, actual)
}
