// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sciflow/sciflow/internal/ctxlog"
	"github.com/sciflow/sciflow/internal/hostinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTaskTypeDefaultsToSerial(t *testing.T) {
	s := &Spec{}

	require.NoError(t, ResolveTaskType(s))
	assert.True(t, s.Serial, "serial should be assumed when neither flag is set")
	assert.False(t, s.Multi)
	assert.Equal(t, 1, s.Ntasks, "a serial run always receives a single task")
}

func TestResolveTaskTypeMultiProbesKeysInOrder(t *testing.T) {
	t.Setenv("SLURM_NTASKS", "8")
	t.Setenv("NTASKS", "4")

	s := &Spec{Multi: true, TaskKeys: []string{"UNBOUND_TASK_KEY", "SLURM_NTASKS", "NTASKS"}}

	require.NoError(t, ResolveTaskType(s))
	assert.Equal(t, 8, s.Ntasks, "the first bound key should supply the task count")
}

func TestResolveTaskTypeMultiUnboundKeys(t *testing.T) {
	s := &Spec{Multi: true, TaskKeys: []string{"UNBOUND_TASK_KEY_A", "UNBOUND_TASK_KEY_B"}}

	err := ResolveTaskType(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), "must be non-zero")
	assert.Contains(t, err.Error(), "UNBOUND_TASK_KEY_A", "the error should name the probed keys")
}

func TestResolveTaskTypeMultiZeroTasks(t *testing.T) {
	t.Setenv("NTASKS", "0")

	s := &Spec{Multi: true, TaskKeys: []string{"NTASKS"}}

	err := ResolveTaskType(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestResolveTaskTypeMultiNonInteger(t *testing.T) {
	t.Setenv("NTASKS", "lots")

	s := &Spec{Multi: true, TaskKeys: []string{"NTASKS"}}

	err := ResolveTaskType(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), "non-integer")
	assert.Contains(t, err.Error(), "lots")
}

func TestResolveLauncherExplicitWins(t *testing.T) {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)
	s := &Spec{Scheduler: SchedulerMPI, Launcher: "/opt/launch/mympirun"}

	require.NoError(t, ResolveLauncher(ctx, s))
	assert.Equal(t, "/opt/launch/mympirun", s.Launcher, "an explicit launcher should never be overridden")
}

func TestResolveLauncherFromScheduler(t *testing.T) {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)

	tests := []struct {
		name      string
		scheduler string
		want      string
	}{
		{name: "mpi selects mpirun", scheduler: "mpi", want: hostinfo.AppPath("mpirun")},
		{name: "slurm selects srun", scheduler: "slurm", want: hostinfo.AppPath("srun")},
		{name: "scheduler kind is case-insensitive", scheduler: "MPI", want: hostinfo.AppPath("mpirun")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Spec{Scheduler: tt.scheduler}

			require.NoError(t, ResolveLauncher(ctx, s))
			assert.Equal(t, tt.want, s.Launcher)
		})
	}
}

func TestResolveLauncherUnknownScheduler(t *testing.T) {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)
	s := &Spec{Scheduler: "pbs"}

	err := ResolveLauncher(ctx, s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), `"pbs"`, "the error should name the unrecognized scheduler")
}

func TestResolveLauncherEmptySchedulerIsHostSerial(t *testing.T) {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)
	s := &Spec{}

	require.NoError(t, ResolveLauncher(ctx, s))
	assert.Empty(t, s.Launcher)
}

func TestResolveNprocsFlag(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{name: "mpi multi", spec: Spec{Multi: true, Scheduler: "mpi"}, want: "-np"},
		{name: "slurm multi", spec: Spec{Multi: true, Scheduler: "slurm"}, want: "-n"},
		{name: "serial has no flag", spec: Spec{Serial: true, Scheduler: "mpi"}, want: ""},
		{name: "unknown scheduler has no flag", spec: Spec{Multi: true, Scheduler: "pbs"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveNprocsFlag(&tt.spec))
		})
	}
}

func TestBuildCommandSerial(t *testing.T) {
	s := &Spec{ExecPath: "/opt/model/forecast.x", Serial: true, Ntasks: 1}

	BuildCommand(s)
	assert.Equal(t, []string{"/opt/model/forecast.x"}, s.Cmd)
}

func TestBuildCommandMulti(t *testing.T) {
	s := &Spec{
		ExecPath:  "/opt/model/forecast.x",
		Scheduler: SchedulerMPI,
		Launcher:  "/usr/bin/mpirun",
		Multi:     true,
		Ntasks:    16,
	}

	BuildCommand(s)
	assert.Equal(t, []string{"/usr/bin/mpirun", "-np", "16", "/opt/model/forecast.x"}, s.Cmd)
	assert.Equal(t, "-np", s.NprocsFlag)
}

func TestBuildCommandIdempotent(t *testing.T) {
	s := &Spec{
		ExecPath:  "/opt/model/forecast.x",
		Scheduler: SchedulerSlurm,
		Launcher:  "/usr/bin/srun",
		Multi:     true,
		Ntasks:    4,
	}

	BuildCommand(s)
	first := append([]string(nil), s.Cmd...)

	BuildCommand(s)
	assert.Equal(t, first, s.Cmd, "rebuilding an unchanged spec must produce an identical vector")
}

func TestResolveContainerMissingImage(t *testing.T) {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)
	s := &Spec{ImgPath: "/no/such/image.sif"}

	err := ResolveContainer(ctx, s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), "/no/such/image.sif")
}

func TestResolveContainerInspectorUnavailable(t *testing.T) {
	if hostinfo.AppPath("singularity") != "" {
		t.Skip("container inspection tool is installed")
	}

	img := filepath.Join(t.TempDir(), "model.sif")
	require.NoError(t, os.WriteFile(img, []byte("sif"), 0o644))

	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)
	s := &Spec{ImgPath: img, Container: true}

	require.NoError(t, ResolveContainer(ctx, s))
	assert.False(t, s.Container, "container usage requires the inspection tool")
}

func TestResolveContainerNoImageConfigured(t *testing.T) {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)
	s := &Spec{}

	require.NoError(t, ResolveContainer(ctx, s))
	assert.False(t, s.Container)
}
