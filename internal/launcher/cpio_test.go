// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/cavaliergopher/cpio"
	"github.com/hermetic-build/elfpack/internal/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPIOWriter(t *testing.T) {
	regularFileBody := []byte("some file content")

	testFS := fstest.MapFS{
		"regular": &fstest.MapFile{Data: regularFileBody, Mode: 0o755},
	}

	t.Run("write regular", func(t *testing.T) {
		var archive bytes.Buffer

		writer := launcher.NewCPIOWriter(&archive)

		source, err := testFS.Open("regular")
		require.NoError(t, err)

		require.NoError(t, writer.WriteRegular("test", source))
		require.NoError(t, writer.Close())

		reader := cpio.NewReader(&archive)

		header, err := reader.Next()
		require.NoError(t, err)

		assert.Equal(t, "test", header.Name, "name")
		assert.EqualValues(t, len(regularFileBody), header.Size, "size")

		body, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, regularFileBody, body, "body")

		_, err = reader.Next()
		require.ErrorIs(t, err, io.EOF, "must be last entry")
	})

	t.Run("not a regular file", func(t *testing.T) {
		writer := launcher.NewCPIOWriter(io.Discard)

		dirFS := fstest.MapFS{
			"dir": &fstest.MapFile{Mode: os.ModeDir | 0o755},
		}

		source, err := dirFS.Open("dir")
		require.NoError(t, err)

		err = writer.WriteRegular("dir", source)
		require.ErrorIs(t, err, launcher.ErrNotRegularFile)
	})
}

func TestCPIOWriterOwnerless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	source, err := os.Open(path)
	require.NoError(t, err)

	defer source.Close()

	var archive bytes.Buffer

	writer := launcher.NewCPIOWriter(&archive)
	require.NoError(t, writer.WriteRegular("file", source))
	require.NoError(t, writer.Close())

	header, err := cpio.NewReader(&archive).Next()
	require.NoError(t, err)

	assert.Zero(t, header.Uid, "uid")
	assert.Zero(t, header.Guid, "gid")
}
