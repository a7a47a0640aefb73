// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sciflow/sciflow/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("test scripts require a POSIX shell")
	}

	path := filepath.Join(dir, "run.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))

	return path
}

func TestRunRedirectsOutput(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "echo forecast complete\necho oops >&2")

	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)
	s := &Spec{ExecPath: script, RunPath: dir, Serial: true, Ntasks: 1}

	require.NoError(t, Run(ctx, s))
	assert.Equal(t, 0, s.RC)
	assert.Equal(t, filepath.Join(dir, "stdout.log"), s.Stdout)
	assert.Equal(t, filepath.Join(dir, "stderr.log"), s.Stderr)

	stdout, err := os.ReadFile(s.Stdout)
	require.NoError(t, err)
	assert.Contains(t, string(stdout), "forecast complete")

	stderr, err := os.ReadFile(s.Stderr)
	require.NoError(t, err)
	assert.Contains(t, string(stderr), "oops")
}

func TestRunExplicitRedirectPaths(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "echo hello")

	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)
	s := &Spec{
		ExecPath: script,
		RunPath:  dir,
		Serial:   true,
		Ntasks:   1,
		Stdout:   filepath.Join(dir, "out.txt"),
		Stderr:   filepath.Join(dir, "err.txt"),
	}

	require.NoError(t, Run(ctx, s))

	stdout, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(stdout), "hello")
}

func TestRunNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "echo failing >&2\nexit 7")

	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)
	s := &Spec{ExecPath: script, RunPath: dir, Serial: true, Ntasks: 1}

	err := Run(ctx, s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExec)
	assert.Equal(t, 7, s.RC)
	assert.Contains(t, err.Error(), "error code 7")
	assert.Contains(t, err.Error(), s.Stderr, "the error should point at the error log")
}

func TestRunUnstartableExecutable(t *testing.T) {
	dir := t.TempDir()

	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)
	s := &Spec{ExecPath: filepath.Join(dir, "missing.x"), RunPath: dir, Serial: true, Ntasks: 1}

	err := Run(ctx, s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExec)
	assert.Contains(t, err.Error(), "could not be started")
}

func TestRunUsesRunPathAsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "pwd")

	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)
	s := &Spec{ExecPath: script, RunPath: dir, Serial: true, Ntasks: 1}

	require.NoError(t, Run(ctx, s))

	wd, err := os.Getwd()
	require.NoError(t, err)

	stdout, err := os.ReadFile(s.Stdout)
	require.NoError(t, err)
	assert.NotContains(t, string(stdout), wd+"\n", "the calling process directory must not leak into the child")

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, string(stdout), filepath.Base(resolved))
}
