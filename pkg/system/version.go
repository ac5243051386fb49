// SPDX-FileCopyrightText: 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package system

// Build metadata, overridden at release time via -ldflags.
var (
	// Version is the service version.
	Version = "0.0.0-dev"
	// Commit is the git revision the binary was built from.
	Commit = ""
)
