// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package concat provides the concat command, which merges a list of
// YAML documents into a single composite file.
package concat

import (
	"context"

	"github.com/sciflow/sciflow/internal/yamldoc"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag          = "file"
	outFlag           = "out"
	ignoreMissingFlag = "ignore-missing"
	skipInvalidFlag   = "skip-invalid"
)

// ConcatCmd is the command that concatenates YAML documents.
var ConcatCmd = &cli.Command{
	Name: "concat",
	Description: `Read a list of YAML files, merge their contents in order and write the
composite document to a single output file. Later files take precedence;
nested mappings are merged recursively. The !ENV, !INC and !APPEND
directives are resolved during reading.`,
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    fileFlag,
			Aliases: []string{"f"},
			Usage:   "YAML file to merge. Specify multiple times; order matters.",
		},
		&cli.StringFlag{
			Name:     outFlag,
			Aliases:  []string{"o"},
			Usage:    "Path of the composite output file.",
			Required: true,
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        ignoreMissingFlag,
			Usage:       "Skip missing input files with a warning instead of failing.",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        skipInvalidFlag,
			Usage:       "Skip invalid YAML input files with a warning instead of failing.",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	files := cmd.StringSlice(fileFlag)
	if len(files) == 0 {
		return cli.Exit("please specify at least one input file with --file or -f", 1)
	}

	err := yamldoc.Concat(
		ctx,
		files,
		cmd.String(outFlag),
		!cmd.Bool(skipInvalidFlag),
		cmd.Bool(ignoreMissingFlag),
	)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}
