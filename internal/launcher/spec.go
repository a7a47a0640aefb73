// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package launcher implements the declarative executable-launch pipeline:
// a builder produces a launch Spec, the schema applies defaults and
// validates it, the planner resolves the launcher binary and the task
// allocation, and the runner executes the assembled command with its
// output redirected to files in the run directory.
package launcher

import (
	"errors"

	"github.com/goccy/go-yaml"
)

var (
	// ErrConfig is returned for launch configuration errors: a zero task
	// count for a multi-task run, an unrecognized scheduler, or a schema
	// path that cannot be resolved.
	ErrConfig = errors.New("launch configuration error")
	// ErrValidation is returned when a Spec fails strict schema validation.
	ErrValidation = errors.New("launch validation error")
	// ErrExec is returned when the launched executable exits non-zero or
	// cannot be started.
	ErrExec = errors.New("executable failed")
)

// Spec describes one executable launch request and its resolved
// derivatives. It is created by a Builder, mutated in place through the
// pipeline stages and discarded after the process exits. A Spec must not
// be reused after a failed pipeline run.
type Spec struct {
	// ExecPath is the path to the binary to run. It must resolve to an
	// executable file by run time.
	ExecPath string `yaml:"exec_path"`
	// RunPath is the working directory for execution; it must exist
	// before the process is launched.
	RunPath string `yaml:"run_path"`
	// Scheduler is the job-launch convention: "mpi", "slurm" or empty.
	Scheduler string `yaml:"scheduler,omitempty"`
	// Launcher is the explicit path to the launch wrapper (mpirun, srun);
	// resolved from Scheduler when empty.
	Launcher string `yaml:"launcher,omitempty"`
	// Multi marks a multi-processor task allocation.
	Multi bool `yaml:"multi"`
	// Serial marks a single-processor task allocation; defaults true when
	// neither Multi nor Serial is set.
	Serial bool `yaml:"serial"`
	// TaskKeys lists the environment variables probed, in order, for the
	// task count of a multi-processor run.
	TaskKeys []string `yaml:"task_keys,omitempty"`
	// Ntasks is the resolved task count; non-zero when Multi is set.
	Ntasks int `yaml:"ntasks"`
	// ImgPath is an optional container image path.
	ImgPath string `yaml:"img_path,omitempty"`
	// Container is true only when ImgPath is set, the inspection tool is
	// available and the image passes inspection.
	Container bool `yaml:"container"`
	// NprocsFlag is the scheduler-specific task-count flag.
	NprocsFlag string `yaml:"nprocs_flag,omitempty"`
	// Cmd is the assembled command-line argument vector.
	Cmd []string `yaml:"cmd,omitempty"`
	// Stdout and Stderr are the redirect file paths; defaulted under
	// RunPath when unset.
	Stdout string `yaml:"stdout,omitempty"`
	Stderr string `yaml:"stderr,omitempty"`
	// RC is the process exit code, set after execution.
	RC int `yaml:"rc"`
	// SchemaPath is the resolved path to the launch schema document.
	SchemaPath string `yaml:"schema_path,omitempty"`
}

// ToMap converts the Spec to its schema field mapping.
func (s *Spec) ToMap() (map[string]any, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return m, nil
}

// fromMap replaces the Spec contents with the given field mapping.
func (s *Spec) fromMap(m map[string]any) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}

	next := Spec{}
	if err := yaml.Unmarshal(data, &next); err != nil {
		return err
	}

	*s = next

	return nil
}
