// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tablefmt composes plain-text tables for log and console output.
package tablefmt

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sciflow/sciflow/internal/ctxlog"
)

const cellPadding = 1

// Table holds the attributes of a table to be composed. Zero values for
// the optional attributes are replaced with defaults when the table is
// rendered.
type Table struct {
	// Header holds the column titles.
	Header []string
	// Rows holds the table body, one row per entry.
	Rows [][]string
	// Align is the cell alignment for every column; defaults to center.
	Align lipgloss.Position
	// alignSet records whether Align was set explicitly.
	alignSet bool
}

// New initializes an empty table.
func New() *Table {
	return &Table{}
}

// AddRow appends a row to the table body.
func (t *Table) AddRow(cells ...string) *Table {
	t.Rows = append(t.Rows, cells)
	return t
}

// WithHeader sets the column titles.
func (t *Table) WithHeader(titles ...string) *Table {
	t.Header = titles
	return t
}

// WithAlign sets the cell alignment for every column.
func (t *Table) WithAlign(pos lipgloss.Position) *Table {
	t.Align = pos
	t.alignSet = true

	return t
}

// Render composes the table and returns it as a string.
func (t *Table) Render() string {
	align := t.Align
	if !t.alignSet {
		align = lipgloss.Center
	}

	cellStyle := lipgloss.NewStyle().Align(align).Padding(0, cellPadding)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return cellStyle
		}).
		Headers(t.Header...).
		Rows(t.Rows...)

	return tbl.Render()
}

// Log writes the composed table to the context logger at the given level,
// prefixed with a newline so the table starts on its own line.
func (t *Table) Log(ctx context.Context, level slog.Level, msg string) {
	ctxlog.Logger(ctx).Log(ctx, level, msg+"\n"+t.Render())
}
