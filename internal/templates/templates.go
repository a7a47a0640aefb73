// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package templates renders generic text templates. A template variable
// may be written in any of the recognized placeholder styles, e.g. for a
// variable named "cycle": @[cycle], [@cycle], {@cycle}, {%cycle%},
// {{% cycle %}}, <cycle>, {% cycle %} or {{ cycle }}.
//
// File access goes through FsFactory so tests can substitute an in-memory
// filesystem.
package templates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sciflow/sciflow/internal/ctxlog"
	"github.com/spf13/afero"
)

// placeholderStyles enumerates the recognized placeholder formats; %s is
// replaced by the variable name.
var placeholderStyles = []string{
	"@[%s]",
	"[@%s]",
	"{@%s}",
	"{%%%s%%}",
	"{{%% %s %%}}",
	"<%s>",
	"{%% %s %%}",
	"{{ %s }}",
}

// ErrMissingValues is returned when a template cannot be fully rendered
// and the caller requested strict rendering.
var ErrMissingValues = errors.New("template not fully rendered")

// FsFactory returns the filesystem used for template reads and writes.
// Tests substitute an in-memory implementation.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Options control template rendering behavior.
type Options struct {
	// FailMissing causes Render to return ErrMissingValues when any
	// placeholder remains unresolved.
	FailMissing bool
	// F90Bool renders boolean values in Fortran 90 logical form
	// (.true. / .false.).
	F90Bool bool
	// Warn logs a warning for each line with unresolved placeholders.
	Warn bool
}

// Render substitutes vars into text using every recognized placeholder
// style and returns the rendered result. Behavior for unresolved
// placeholders is governed by opts.
func Render(ctx context.Context, vars map[string]any, text string, opts Options) (string, error) {
	out := text

	for name, value := range vars {
		if value == nil {
			continue
		}

		rendered := formatValue(value, opts.F90Bool)
		for _, style := range placeholderStyles {
			out = strings.ReplaceAll(out, fmt.Sprintf(style, name), rendered)
		}
	}

	unresolved := unresolvedLines(out)
	if len(unresolved) > 0 {
		if opts.FailMissing {
			return "", fmt.Errorf("%w: %s", ErrMissingValues, strings.Join(unresolved, ", "))
		}

		if opts.Warn {
			ctxlog.Warn(ctx, "template not fully rendered", "lines", unresolved)
		}
	}

	return out, nil
}

// RenderFile reads the template at tmplPath, renders it with vars and
// writes the result to outPath.
func RenderFile(ctx context.Context, vars map[string]any, outPath, tmplPath string, opts Options) error {
	fs := FsFactory()

	data, err := afero.ReadFile(fs, tmplPath)
	if err != nil {
		return err
	}

	rendered, err := Render(ctx, vars, string(data), opts)
	if err != nil {
		return err
	}

	return afero.WriteFile(fs, outPath, []byte(rendered), 0o644)
}

// formatValue renders a template value as a string, optionally coercing
// booleans to Fortran 90 logicals.
func formatValue(value any, f90Bool bool) string {
	if b, ok := value.(bool); ok && f90Bool {
		if b {
			return ".true."
		}

		return ".false."
	}

	return fmt.Sprintf("%v", value)
}

// unresolvedLines returns the lines of text that still contain placeholder
// characters after rendering.
func unresolvedLines(text string) []string {
	// Characters that only appear in placeholder syntax.
	markers := []string{"@[", "[@", "{@", "{%", "{{", "<", ">"}

	var lines []string

	for _, line := range strings.Split(text, "\n") {
		for _, marker := range markers {
			if strings.Contains(line, marker) {
				lines = append(lines, strings.TrimSpace(line))
				break
			}
		}
	}

	return lines
}
