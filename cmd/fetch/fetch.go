// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fetch provides the fetch command, which collects files from the
// web using the platform curl executable.
package fetch

import (
	"context"
	"fmt"
	"os"

	"github.com/sciflow/sciflow/internal/webfetch"
	"github.com/urfave/cli/v3"
)

const (
	urlArg            = "url"
	dirFlag           = "dir"
	nameFlag          = "name"
	listFlag          = "list"
	extFlag           = "ext"
	ignoreMissingFlag = "ignore-missing"
)

// FetchCmd is the command that collects a web file or lists the files
// beneath a URL.
var FetchCmd = &cli.Command{
	Name: "fetch",
	Description: `Collect the file at a URL using the platform curl executable, or list
the files linked beneath a URL.`,
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name: urlArg,
		},
	},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     dirFlag,
			Aliases:  []string{"d"},
			Usage:    "Directory to write the collected file into.",
			Value:    ".",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     nameFlag,
			Aliases:  []string{"n"},
			Usage:    "Local file name for the collected file; defaults to the remote basename.",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        listFlag,
			Aliases:     []string{"l"},
			Usage:       "List the files linked beneath the URL instead of downloading.",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.StringFlag{
			Name:     extFlag,
			Usage:    "Keep only listed files with this extension.",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        ignoreMissingFlag,
			Usage:       "Ignore failed transfers instead of failing.",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg(urlArg)
	if url == "" {
		return cli.Exit("please specify a URL to fetch", 1)
	}

	if cmd.Bool(listFlag) {
		list, err := webfetch.List(ctx, url, cmd.String(extFlag))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		for _, entry := range list {
			fmt.Fprintln(cmd.Writer, entry) //nolint:errcheck
		}

		return nil
	}

	dir := cmd.String(dirFlag)
	if dir == "." {
		wd, err := os.Getwd()
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		dir = wd
	}

	if err := webfetch.Get(ctx, url, dir, cmd.String(nameFlag), cmd.Bool(ignoreMissingFlag)); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}
