// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package schema provides the schema command for displaying the
// executable launch schema.
package schema

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/TylerBrock/colorjson"
	"github.com/sciflow/sciflow/internal/color"
	"github.com/sciflow/sciflow/internal/launcher"
	"github.com/sciflow/sciflow/internal/schema"
	"github.com/sciflow/sciflow/internal/tablefmt"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag   = "file"
	formatFlag = "format"

	jsonIndent = 2
)

// SchemaCmd is the command that displays the executable launch schema.
var SchemaCmd = &cli.Command{
	Name: "schema",
	Description: `Display the schema that launch configurations are validated against.
By default the schema is resolved from $` + launcher.RootEnvVar + `; use --file to
inspect an arbitrary schema document instead.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     fileFlag,
			Usage:    "Path to a schema document. Overrides $" + launcher.RootEnvVar + " resolution.",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:        formatFlag,
			Aliases:     []string{"f"},
			Usage:       "Output format: table, yaml, or json",
			DefaultText: "table",
			Value:       "table",
			OnlyOnce:    true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String(fileFlag)
	if path == "" {
		resolved, err := launcher.ResolveSchemaPath()
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		path = resolved
	}

	def, err := schema.Load(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	switch strings.ToLower(cmd.String(formatFlag)) {
	case "table":
		return writeTable(cmd, def)
	case "yaml":
		return writeYAML(cmd, path)
	case "json":
		return writeJSON(cmd, def)
	default:
		return cli.Exit(fmt.Sprintf("invalid format: %s. Valid formats: table, yaml, json", cmd.String(formatFlag)), 1)
	}
}

func writeTable(cmd *cli.Command, def schema.Definition) error {
	tbl := tablefmt.New().WithHeader("Field", "Type", "Required", "Default")
	for _, name := range def.Names() {
		field := def[name]
		tbl.AddRow(name, field.Type,
			fmt.Sprintf("%t", field.Required),
			fmt.Sprintf("%v", field.Default))
	}

	fmt.Fprintln(cmd.Writer, tbl.Render())

	return nil
}

func writeYAML(cmd *cli.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprint(cmd.Writer, string(data))

	return nil
}

func writeJSON(cmd *cli.Command, def schema.Definition) error {
	doc := make(map[string]any, len(def))
	for name, field := range def {
		entry := map[string]any{
			"type":     field.Type,
			"required": field.Required,
		}
		if field.Default != nil {
			entry["default"] = field.Default
		}

		doc[name] = entry
	}

	formatter := colorjson.NewFormatter()
	formatter.Indent = jsonIndent
	formatter.DisabledColor = !color.Enabled()

	out, err := formatter.Marshal(doc)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprintln(cmd.Writer, string(out))

	return nil
}
