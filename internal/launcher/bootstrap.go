// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher

import (
	"strconv"
	"strings"
)

// bootstrapScript is the self-extractor prepended to the archive payload.
//
// At run time it extracts the trailing payload bytes of its own file into a
// private scratch directory and replaces the process image with the embedded
// interpreter, which loads the real binary against the extracted libraries
// only. Extraction skips files that already exist and does not apply the
// extracting user's identity. A detached monitor polls for the process to
// die and then removes the scratch directory, since the exec leaves no
// chance for an exit trap to fire.
//
// ${N_BYTES} and ${NAME} are placeholders resolved by [renderBootstrap];
// all other parameter expansions are genuine bash.
const bootstrapScript = `#!/bin/bash -eu
set -o pipefail

SELF="${BASH_SOURCE[0]}"

OUT="$(mktemp -d)"

tail --bytes=${N_BYTES} "${SELF}" | tar -x --skip-old-files --no-same-owner -C "${OUT}"

{ while kill -0 $$; do sleep 5; done; rm -rf "${OUT}"; } >/dev/null 2>/dev/null &

# LD_DEBUG would trace this script's own shell. LD_HERMETIC_DEBUG is handed
# to the interpreter as LD_DEBUG for the real binary only.
LD_DEBUG="${LD_HERMETIC_DEBUG:-}" exec "${OUT}/${NAME}" \
    --argv0 "$0" \
    --library-path "${OUT}/_hermetic_lib" \
    --inhibit-rpath '' \
    "${OUT}/_real_binary" \
    "$@"
`

// renderBootstrap resolves the two placeholders of the bootstrap script: the
// byte length of the archive payload and the launcher's base name.
func renderBootstrap(payloadLen int, name string) string {
	script := strings.ReplaceAll(
		bootstrapScript, "${N_BYTES}", strconv.Itoa(payloadLen),
	)

	return strings.ReplaceAll(script, "${NAME}", name)
}
