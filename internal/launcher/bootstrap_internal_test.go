// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBootstrap(t *testing.T) {
	script := renderBootstrap(4242, "mytool")

	assert.True(t, strings.HasPrefix(script, "#!/bin/bash -eu\n"), "shebang")

	assert.NotContains(t, script, "${N_BYTES}", "length placeholder resolved")
	assert.NotContains(t, script, "${NAME}", "name placeholder resolved")

	assert.Contains(t, script, `tail --bytes=4242 "${SELF}"`)
	assert.Contains(t, script, `"${OUT}/mytool"`)

	// The interpreter invocation contract: original argv[0], explicit
	// library path, no rpath from the real binary, original arguments.
	assert.Contains(t, script, `--argv0 "$0"`)
	assert.Contains(t, script, `--library-path "${OUT}/_hermetic_lib"`)
	assert.Contains(t, script, `--inhibit-rpath ''`)
	assert.Contains(t, script, `"${OUT}/_real_binary"`)
	assert.Contains(t, script, `"$@"`)

	// Extraction must tolerate partial prior extraction and must not chown
	// to the extracting user.
	assert.Contains(t, script, "--skip-old-files")
	assert.Contains(t, script, "--no-same-owner")

	// Debug logging override for the wrapped binary.
	assert.Contains(t, script, `LD_DEBUG="${LD_HERMETIC_DEBUG:-}" exec`)

	// Scratch directory cleanup monitor.
	assert.Contains(t, script, "while kill -0 $$")
	assert.Contains(t, script, `rm -rf "${OUT}"`)
}
