// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sciflow/sciflow/internal/ctxlog"
)

// Default redirect file names, created under the run directory when no
// explicit paths are configured.
const (
	defaultStdoutName = "stdout.log"
	defaultStderrName = "stderr.log"
)

// Run executes the assembled command in the configured run directory with
// standard output and standard error redirected to the Spec's redirect
// files. It blocks until the child exits, records the exit code on the
// Spec and fails with ErrExec on a non-zero exit.
//
// The working directory is passed directly to the child process; the
// calling process directory is never changed, so concurrent invocations
// are safe.
func Run(ctx context.Context, s *Spec) error {
	if len(s.Cmd) == 0 {
		BuildCommand(s)
	}

	if s.Stderr == "" {
		s.Stderr = filepath.Join(s.RunPath, defaultStderrName)
		ctxlog.Warn(ctx, "stderr redirect path not set, using default", "path", s.Stderr)
	}

	if s.Stdout == "" {
		s.Stdout = filepath.Join(s.RunPath, defaultStdoutName)
		ctxlog.Warn(ctx, "stdout redirect path not set, using default", "path", s.Stdout)
	}

	stdout, err := os.Create(s.Stdout)
	if err != nil {
		return fmt.Errorf("%w: cannot open stdout redirect %s: %v", ErrExec, s.Stdout, err)
	}

	defer stdout.Close() //nolint:errcheck

	stderr, err := os.Create(s.Stderr)
	if err != nil {
		return fmt.Errorf("%w: cannot open stderr redirect %s: %v", ErrExec, s.Stderr, err)
	}

	defer stderr.Close() //nolint:errcheck

	ctxlog.Info(ctx, "launching executable", "executable", s.ExecPath, "runPath", s.RunPath, "cmd", s.Cmd)

	cmd := exec.CommandContext(ctx, s.Cmd[0], s.Cmd[1:]...)
	cmd.Dir = s.RunPath
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()

	var exitErr *exec.ExitError

	switch {
	case runErr == nil:
		s.RC = 0
	case errors.As(runErr, &exitErr):
		s.RC = exitErr.ExitCode()
	default:
		return fmt.Errorf("%w: executable %s could not be started: %v", ErrExec, s.ExecPath, runErr)
	}

	if s.RC != 0 {
		return fmt.Errorf("%w: executable %s failed with error code %d; the error log is available at %s",
			ErrExec, s.ExecPath, s.RC, s.Stderr)
	}

	ctxlog.Info(ctx, "executable completed",
		"executable", s.ExecPath, "rc", s.RC, "stdout", s.Stdout, "stderr", s.Stderr)

	return nil
}
