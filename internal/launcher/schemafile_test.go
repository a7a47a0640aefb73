// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSchemaPath(t *testing.T) {
	root := installSchema(t, testSchema)

	path, err := ResolveSchemaPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, SchemaRelPath), path)
}

func TestResolveSchemaPathUnsetRoot(t *testing.T) {
	t.Setenv(RootEnvVar, "")

	_, err := ResolveSchemaPath()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), RootEnvVar)
}

func TestResolveSchemaPathMissingFile(t *testing.T) {
	t.Setenv(RootEnvVar, t.TempDir())

	_, err := ResolveSchemaPath()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), "does not exist")
}
