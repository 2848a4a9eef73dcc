// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI command entry point for elfpack. It handles
// flag parsing, error handling, and output handling.
package cmd
