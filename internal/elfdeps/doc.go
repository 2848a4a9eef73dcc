// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package elfdeps analyzes the dynamic linking metadata of ELF objects and
// computes transitive library dependency closures over a pool of candidate
// shared libraries.
package elfdeps
