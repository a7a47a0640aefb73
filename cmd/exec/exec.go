// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package exec provides the exec command, which runs an executable launch
// spec defined in a YAML file through the full launch pipeline.
package exec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-getter/v2"
	"github.com/sciflow/sciflow/internal/ctxlog"
	"github.com/sciflow/sciflow/internal/launcher"
	"github.com/sciflow/sciflow/internal/yamldoc"
	"github.com/urfave/cli/v3"
)

const fileFlag = "file"

// ErrGetSpecFile is returned when the launch spec file cannot be retrieved.
var ErrGetSpecFile = errors.New("failed to get launch spec file")

// ExecCmd is the command that runs an executable launch spec.
var ExecCmd = &cli.Command{
	Name: "exec",
	Description: `Run an executable application described by a YAML launch spec.
The spec file URL uses Hashicorp's go-getter syntax, which allows fetching
from local paths, git repositories, HTTP servers and object stores.

The spec document supports the !ENV, !INC and !APPEND directives.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     fileFlag,
			Aliases:  []string{"f"},
			Usage:    "URL of the YAML launch spec to run.",
			Required: true,
			OnlyOnce: true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	url := cmd.String(fileFlag)

	specPath, cleanup, err := getURL(ctx, url)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to retrieve launch spec %s: %s", url, err.Error()))
		return cli.Exit("", 1)
	}

	defer cleanup()

	builder := launcher.BuilderFunc(func(context.Context) (*launcher.Spec, error) {
		spec := &launcher.Spec{}
		if err := yamldoc.ReadInto(specPath, spec); err != nil {
			return nil, err
		}

		return spec, nil
	})

	if err := launcher.Execute(ctx, builder); err != nil {
		logger.Error(fmt.Sprintf("Launch failed: %s", err.Error()))
		return cli.Exit("", 1)
	}

	return nil
}

// getURL retrieves the file at the given URL using Hashicorp's go-getter
// and returns the local path together with a cleanup function.
func getURL(ctx context.Context, url string) (string, func(), error) {
	if url == "" {
		return "", nil, ErrGetSpecFile
	}

	tmpDir, err := os.MkdirTemp("", "sciflow-getter-*")
	if err != nil {
		return "", nil, errors.Join(ErrGetSpecFile, err)
	}

	cleanup := func() { os.RemoveAll(tmpDir) } //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		cleanup()
		return "", nil, errors.Join(ErrGetSpecFile, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	dst := filepath.Join(tmpDir, "spec.yaml")
	req := &getter.Request{
		Src:     url,
		Dst:     dst,
		Pwd:     wd,
		GetMode: getter.ModeFile,
	}

	if _, err := client.Get(ctx, req); err != nil {
		cleanup()
		return "", nil, errors.Join(ErrGetSpecFile, err)
	}

	return dst, cleanup, nil
}
