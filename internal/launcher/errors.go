// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher

import "errors"

var (
	// ErrFormatInvalid is returned if an archive format is not known.
	ErrFormatInvalid = errors.New("invalid archive format")

	// ErrNotRegularFile is returned if an archive source is not a regular
	// file.
	ErrNotRegularFile = errors.New("source is not a regular file")
)
