// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package launcher builds self-extracting hermetic launchers. A launcher is
// a single executable file consisting of a bash bootstrap followed by an
// archive that carries the wrapped binary, its ELF interpreter, and the
// minimal set of shared libraries the binary needs at run time.
package launcher
