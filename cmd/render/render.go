// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package render provides the render command, which renders a generic
// template file with user-supplied variables.
package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sciflow/sciflow/internal/templates"
	"github.com/sciflow/sciflow/internal/yamldoc"
	"github.com/urfave/cli/v3"
)

const (
	templateFlag    = "template"
	outFlag         = "out"
	varFlag         = "var"
	valuesFlag      = "values"
	failMissingFlag = "fail-missing"
	f90Flag         = "f90-bool"
)

// ErrBadVar is returned when a --var flag is not of the form key=value.
var ErrBadVar = errors.New("variable must be of the form key=value")

// RenderCmd is the command that renders a template file.
var RenderCmd = &cli.Command{
	Name: "render",
	Description: `Render a template file. Template variables may be written in any of the
recognized placeholder styles, e.g. @[name], {{ name }} or <name>.
Values come from repeated --var flags and/or a YAML values file.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     templateFlag,
			Aliases:  []string{"t"},
			Usage:    "Path of the template file to render.",
			Required: true,
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     outFlag,
			Aliases:  []string{"o"},
			Usage:    "Path of the rendered output file.",
			Required: true,
			OnlyOnce: true,
		},
		&cli.StringSliceFlag{
			Name:    varFlag,
			Usage:   "Template variable as key=value. May be repeated.",
			Aliases: []string{"v"},
		},
		&cli.StringFlag{
			Name:     valuesFlag,
			Usage:    "YAML file providing template variables.",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        failMissingFlag,
			Usage:       "Fail when any template placeholder remains unresolved.",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        f90Flag,
			Usage:       "Render boolean values as Fortran 90 logicals (.true. / .false.).",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	vars := map[string]any{}

	if valuesPath := cmd.String(valuesFlag); valuesPath != "" {
		doc, err := yamldoc.Read(valuesPath)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		vars = doc
	}

	for _, kv := range cmd.StringSlice(varFlag) {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			return cli.Exit(fmt.Sprintf("%s: %s", ErrBadVar.Error(), kv), 1)
		}

		vars[key] = value
	}

	opts := templates.Options{
		FailMissing: cmd.Bool(failMissingFlag),
		F90Bool:     cmd.Bool(f90Flag),
		Warn:        true,
	}

	if err := templates.RenderFile(ctx, vars, cmd.String(outFlag), cmd.String(templateFlag), opts); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}
