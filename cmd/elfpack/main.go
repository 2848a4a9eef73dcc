// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"os"

	"github.com/hermetic-build/elfpack/internal/cmd"
)

func main() {
	cfg := cmd.IO{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	os.Exit(cmd.Run(os.Args[1:], cfg))
}
