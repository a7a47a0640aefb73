// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/sciflow/sciflow/cmd/concat"
	"github.com/sciflow/sciflow/cmd/exec"
	"github.com/sciflow/sciflow/cmd/fetch"
	"github.com/sciflow/sciflow/cmd/render"
	"github.com/sciflow/sciflow/cmd/schema"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		concat.ConcatCmd,
		exec.ExecCmd,
		fetch.FetchCmd,
		render.RenderCmd,
		schema.SchemaCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "sciflow",
	Description: `Sciflow is a utility toolkit for scientific-workflow automation.
It launches compiled executables on the host platform or under a scheduler
(MPI, SLURM), ingests YAML documents with environment and inclusion
directives, renders generic templates, and collects files from the web.`,
	Usage:                 "sciflow exec -f launch.yaml",
	EnableShellCompletion: true,
}
