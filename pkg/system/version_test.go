// SPDX-FileCopyrightText: 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionDefaults(t *testing.T) {
	assert.Equal(t, "0.0.0-dev", Version)
	assert.Equal(t, "", Commit)
}

func TestVersionVariablesCanBeModified(t *testing.T) {
	// Build pipelines overwrite these via -ldflags, make sure they stay plain vars
	originalVersion := Version
	originalCommit := Commit

	Version = "1.0.0"
	Commit = "abc123"

	assert.Equal(t, "1.0.0", Version)
	assert.Equal(t, "abc123", Commit)

	Version = originalVersion
	Commit = originalCommit

	assert.Equal(t, "0.0.0-dev", Version)
	assert.Equal(t, "", Commit)
}
