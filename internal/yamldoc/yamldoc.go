// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package yamldoc ingests YAML documents with support for three custom
// directives:
//
//   - !ENV expands ${VAR} references from the run-time environment; the
//     expansion is also applied implicitly to any scalar containing ${.
//   - !INC inlines the YAML document at the given path.
//   - !APPEND concatenates a sequence of scalars into a single string.
//
// It also provides document writing, recursive merging and multi-file
// concatenation. All file access goes through FsFactory so tests can
// substitute an in-memory filesystem.
package yamldoc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sciflow/sciflow/internal/ctxlog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Directive tags recognized by the loader.
const (
	TagEnv    = "!ENV"
	TagInc    = "!INC"
	TagAppend = "!APPEND"
)

var (
	// ErrNotYAML is returned when a document cannot be decoded as YAML.
	ErrNotYAML = errors.New("not a valid YAML document")
	// ErrMissingFile is returned when a referenced YAML file does not exist.
	ErrMissingFile = errors.New("YAML file does not exist")
	// ErrInclude is returned when an !INC directive cannot be resolved.
	ErrInclude = errors.New("failed to resolve !INC directive")
)

// FsFactory returns the filesystem used for all reads and writes. Tests
// substitute an in-memory implementation.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Read parses the YAML document at path, resolving all directives, and
// returns its contents as a map.
func Read(path string) (map[string]any, error) {
	out := map[string]any{}
	if err := ReadInto(path, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// ReadInto parses the YAML document at path, resolving all directives,
// and decodes it into v.
func ReadInto(path string, v any) error {
	node, err := loadNode(path)
	if err != nil {
		return err
	}

	if err := node.Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotYAML, path, err)
	}

	return nil
}

// Write marshals doc and writes it to path. When appendFile is set the
// document is appended to an existing file instead of replacing it.
func Write(path string, doc map[string]any, appendFile bool) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}

	fs := FsFactory()

	if appendFile {
		f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}

		defer f.Close() //nolint:errcheck

		_, err = f.Write(data)

		return err
	}

	return afero.WriteFile(fs, path, data, 0o644)
}

// Merge recursively merges src into dst and returns the result. Values in
// src take precedence; nested maps are merged key by key. Neither input is
// modified.
func Merge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}

	for k, v := range src {
		srcMap, srcOk := v.(map[string]any)

		dstMap, dstOk := out[k].(map[string]any)
		if srcOk && dstOk {
			out[k] = Merge(dstMap, srcMap)
			continue
		}

		out[k] = v
	}

	return out
}

// Concat reads each listed YAML file, merges the contents in order and
// writes the composite document to outPath. A file that fails to decode is
// fatal unless failNonValid is false, in which case it is skipped with a
// warning; a missing file is fatal unless ignoreMissing is set. Failures
// across files are aggregated.
func Concat(ctx context.Context, files []string, outPath string, failNonValid, ignoreMissing bool) error {
	fs := FsFactory()
	composite := map[string]any{}

	var result *multierror.Error

	for _, file := range files {
		exists, err := afero.Exists(fs, file)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		if !exists {
			if ignoreMissing {
				ctxlog.Warn(ctx, "skipping missing YAML file", "path", file)
				continue
			}

			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrMissingFile, file))

			continue
		}

		doc, err := Read(file)
		if err != nil {
			if !failNonValid {
				ctxlog.Warn(ctx, "skipping invalid YAML file", "path", file)
				continue
			}

			result = multierror.Append(result, err)

			continue
		}

		composite = Merge(composite, doc)
	}

	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	return Write(outPath, composite, false)
}

// ReadConcat parses the YAML document at path and, for every top-level
// value that names an existing YAML file, inlines and merges that file's
// contents in place of the reference. Values that do not resolve to YAML
// files are kept as-is.
func ReadConcat(path string) (map[string]any, error) {
	doc, err := Read(path)
	if err != nil {
		return nil, err
	}

	fs := FsFactory()
	out := map[string]any{}

	for key, value := range doc {
		ref, ok := value.(string)
		if !ok {
			out[key] = value
			continue
		}

		exists, err := afero.Exists(fs, ref)
		if err != nil || !exists {
			out[key] = value
			continue
		}

		nested, err := Read(ref)
		if err != nil {
			out[key] = value
			continue
		}

		out = Merge(out, nested)
	}

	return out, nil
}

// loadNode reads path and resolves directives within the parsed node tree.
func loadNode(path string) (*yaml.Node, error) {
	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotYAML, path, err)
	}

	if err := resolve(&node, filepath.Dir(path)); err != nil {
		return nil, err
	}

	return &node, nil
}

// resolve rewrites directive nodes in place. Relative !INC paths are
// resolved against the including document's directory.
func resolve(node *yaml.Node, baseDir string) error {
	switch {
	case node.Tag == TagInc:
		incPath := node.Value
		if !filepath.IsAbs(incPath) {
			incPath = filepath.Join(baseDir, incPath)
		}

		included, err := loadNode(incPath)
		if err != nil {
			return errors.Join(ErrInclude, err)
		}

		// loadNode returns a document node; graft its content.
		if len(included.Content) > 0 {
			*node = *included.Content[0]
		}

		return nil

	case node.Tag == TagAppend:
		var sb strings.Builder

		for _, child := range node.Content {
			if child.Kind == yaml.ScalarNode {
				sb.WriteString(child.Value)
			}
		}

		*node = yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: sb.String(),
		}

		return nil

	case node.Kind == yaml.ScalarNode:
		if node.Tag == TagEnv || strings.Contains(node.Value, "${") {
			node.Value = os.ExpandEnv(node.Value)
			if node.Tag == TagEnv {
				node.Tag = "!!str"
			}
		}

		return nil
	}

	for _, child := range node.Content {
		if err := resolve(child, baseDir); err != nil {
			return err
		}
	}

	return nil
}
