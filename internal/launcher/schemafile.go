// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sciflow/sciflow/internal/hostinfo"
)

// RootEnvVar names the environment variable that roots the installation
// tree; the launch schema document is located relative to it.
const RootEnvVar = "SCIFLOW_ROOT"

// SchemaRelPath is the location of the launch schema document relative to
// the installation root.
const SchemaRelPath = "schema/executable.schema.yaml"

// ResolveSchemaPath computes the path to the launch schema document from
// the installation root. It fails when the root environment variable is
// unset or the resolved file does not exist.
func ResolveSchemaPath() (string, error) {
	root, ok := hostinfo.Getenv(RootEnvVar)
	if !ok || root == "" {
		return "", fmt.Errorf(
			"%w: the environment variable %s is not defined within the run-time environment",
			ErrConfig, RootEnvVar)
	}

	path := filepath.Join(root, SchemaRelPath)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: the schema file path %s does not exist", ErrConfig, path)
	}

	return path, nil
}
