// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Spec describes a single launcher or archive build.
type Spec struct {
	// Binary is the target executable to wrap.
	Binary string

	// Output is the path the artifact is written to. Its base name is also
	// the archive name of the embedded interpreter.
	Output string

	// Interpreter is the ELF program interpreter embedded into the archive.
	// Its base name is the soname excluded from dependency tracking.
	Interpreter string

	// Libraries is the candidate pool the dependency closure is resolved
	// over.
	Libraries []string

	// Format selects the archive format for [WriteArchive]. [Build] ignores
	// it, launcher payloads are always [FormatTar].
	Format Format
}

// Build writes a self-extracting launcher for the spec to the spec's output
// path.
//
// The payload is assembled completely in memory before the output file is
// touched, so a failing source read never leaves a partial launcher behind.
func Build(spec Spec) error {
	payloadSpec := spec
	payloadSpec.Format = FormatTar

	var payload bytes.Buffer

	err := WriteArchive(&payload, payloadSpec)
	if err != nil {
		return err
	}

	name := filepath.Base(spec.Output)
	bootstrap := renderBootstrap(payload.Len(), name)

	artifact := make([]byte, 0, len(bootstrap)+payload.Len())
	artifact = append(artifact, bootstrap...)
	artifact = append(artifact, payload.Bytes()...)

	err = os.WriteFile(spec.Output, artifact, 0o755)
	if err != nil {
		return fmt.Errorf("write launcher: %w", err)
	}

	slog.Debug("Launcher created",
		slog.String("path", spec.Output),
		slog.Int("payload_bytes", payload.Len()))

	return nil
}
