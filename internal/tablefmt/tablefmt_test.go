// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tablefmt

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/sciflow/sciflow/internal/ctxlog"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tbl := New().
		WithHeader("Variable", "Value").
		AddRow("exec_path", "/bin/model").
		AddRow("ntasks", "8")

	out := tbl.Render()

	assert.Contains(t, out, "Variable")
	assert.Contains(t, out, "exec_path")
	assert.Contains(t, out, "/bin/model")
	assert.Contains(t, out, "ntasks")

	// Bordered output spans multiple lines.
	assert.Greater(t, strings.Count(out, "\n"), 3)
}

func TestRenderLeftAligned(t *testing.T) {
	tbl := New().
		WithHeader("Key").
		AddRow("a").
		WithAlign(lipgloss.Left)

	assert.Contains(t, tbl.Render(), "a")
	assert.Equal(t, lipgloss.Left, tbl.Align)
}

func TestRenderEmptyTable(t *testing.T) {
	out := New().Render()
	assert.NotEmpty(t, out, "even an empty table renders its border")
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer

	ctx := ctxlog.NewWithWriter(context.Background(), &buf)

	New().
		WithHeader("Variable", "Value").
		AddRow("cycle", "6").
		Log(ctx, slog.LevelInfo, "launch configuration")

	out := buf.String()
	assert.Contains(t, out, "launch configuration")
	assert.Contains(t, out, "cycle")
}
