// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"path/filepath"
	"testing"

	"github.com/hermetic-build/elfpack/internal/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePathSet(t *testing.T) {
	t.Run("absolute", func(t *testing.T) {
		var path cmd.FilePath

		require.NoError(t, path.Set("/usr/lib/libc.so.6"))
		assert.Equal(t, cmd.FilePath("/usr/lib/libc.so.6"), path)
	})

	t.Run("relative is made absolute", func(t *testing.T) {
		var path cmd.FilePath

		require.NoError(t, path.Set("some/file"))
		assert.True(t, filepath.IsAbs(string(path)))
	})

	t.Run("empty", func(t *testing.T) {
		var path cmd.FilePath

		require.ErrorIs(t, path.Set(""), cmd.ErrEmptyFilePath)
	})
}

func TestFilePathListSet(t *testing.T) {
	var list cmd.FilePathList

	require.NoError(t, list.Set("/lib/liba.so,/lib/libb.so"))
	require.NoError(t, list.Set("/lib/libc.so"))

	assert.Equal(t, cmd.FilePathList{
		"/lib/liba.so", "/lib/libb.so", "/lib/libc.so",
	}, list)

	require.ErrorIs(t, list.Set("/lib/libd.so,"), cmd.ErrEmptyFilePath)
}
