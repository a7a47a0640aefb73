// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sciflow/sciflow/internal/ctxlog"
	"github.com/sciflow/sciflow/internal/hostinfo"
)

// Scheduler kinds recognized by the planner.
const (
	SchedulerMPI   = "mpi"
	SchedulerSlurm = "slurm"
)

// Task-count flags per scheduler.
const (
	nprocsFlagMPI   = "-np"
	nprocsFlagSlurm = "-n"
)

const inspectTool = "singularity"

// ResolveTaskType determines the task allocation for the Spec. When
// neither Multi nor Serial is set, Serial is assumed. For a multi-task
// run the TaskKeys environment variables are probed in order and the
// first bound value supplies the task count, which must be a non-zero
// integer. A serial run always receives a single task.
func ResolveTaskType(s *Spec) error {
	if !s.Multi && !s.Serial {
		s.Serial = true
	}

	if s.Multi {
		ntasks := 0
		found := false

		for _, key := range s.TaskKeys {
			value, ok := hostinfo.Getenv(key)
			if !ok {
				continue
			}

			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%w: task-count variable %s holds non-integer value %q",
					ErrConfig, key, value)
			}

			ntasks = n
			found = true

			break
		}

		if !found || ntasks == 0 {
			return fmt.Errorf(
				"%w: the total number of tasks for a multi-processor executable must be non-zero (probed %v)",
				ErrConfig, s.TaskKeys)
		}

		s.Ntasks = ntasks
	}

	if s.Serial {
		s.Ntasks = 1
	}

	return nil
}

// ResolveContainer validates the optional container image. A set ImgPath
// that does not exist on disk is fatal. When the inspection tool is
// available the image is inspected; inspection failure disables container
// usage and falls back to host execution without failing the pipeline.
func ResolveContainer(ctx context.Context, s *Spec) error {
	if s.ImgPath == "" {
		return nil
	}

	if _, err := os.Stat(s.ImgPath); err != nil {
		return fmt.Errorf("%w: the container image path %s does not exist", ErrConfig, s.ImgPath)
	}

	tool := hostinfo.AppPath(inspectTool)
	if tool == "" {
		s.Container = false
		return nil
	}

	cmd := exec.CommandContext(ctx, tool, "inspect", "--quiet", s.ImgPath)
	if err := cmd.Run(); err != nil {
		ctxlog.Info(ctx, "container image failed inspection and will not be used",
			"image", s.ImgPath, "executable", s.ExecPath, "error", err)

		s.Container = false

		return nil
	}

	s.Container = true

	return nil
}

// ResolveLauncher derives the launcher binary from the scheduler kind
// when no explicit launcher is set: mpi selects mpirun, slurm selects
// srun. Any other non-empty scheduler is fatal; an empty scheduler logs a
// warning and leaves the launcher unset for host-serial execution.
func ResolveLauncher(ctx context.Context, s *Spec) error {
	if s.Launcher != "" {
		return nil
	}

	switch strings.ToLower(s.Scheduler) {
	case SchedulerMPI:
		s.Launcher = hostinfo.AppPath("mpirun")
	case SchedulerSlurm:
		s.Launcher = hostinfo.AppPath("srun")
	case "":
		ctxlog.Warn(ctx,
			"no scheduler specified; compiled executables are assumed to run host-serial")
	default:
		return fmt.Errorf("%w: the job scheduler type %q is not recognized", ErrConfig, s.Scheduler)
	}

	return nil
}

// ResolveNprocsFlag returns the scheduler-specific flag used to pass the
// task count, or the empty string for serial runs and unrecognized
// schedulers.
func ResolveNprocsFlag(s *Spec) string {
	if !s.Multi {
		return ""
	}

	switch strings.ToLower(s.Scheduler) {
	case SchedulerMPI:
		return nprocsFlagMPI
	case SchedulerSlurm:
		return nprocsFlagSlurm
	}

	return ""
}

// BuildCommand assembles the command-line argument vector from the
// resolved Spec fields. Assembly is idempotent: re-running it on an
// unchanged Spec produces an identical vector.
func BuildCommand(s *Spec) {
	s.NprocsFlag = ResolveNprocsFlag(s)

	if s.NprocsFlag == "" {
		s.Cmd = []string{s.ExecPath}
		return
	}

	s.Cmd = []string{s.Launcher, s.NprocsFlag, strconv.Itoa(s.Ntasks), s.ExecPath}
}
