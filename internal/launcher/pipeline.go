// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sciflow/sciflow/internal/ctxlog"
	"github.com/sciflow/sciflow/internal/schema"
	"github.com/sciflow/sciflow/internal/tablefmt"
)

// Builder produces the initial launch Spec. A builder that needs to wait
// on other work may block on the context; the pipeline invokes Build
// exactly once.
type Builder interface {
	Build(ctx context.Context) (*Spec, error)
}

// BuilderFunc adapts a plain function to the Builder interface.
type BuilderFunc func(ctx context.Context) (*Spec, error)

// Build implements Builder.
func (f BuilderFunc) Build(ctx context.Context) (*Spec, error) {
	return f(ctx)
}

// Deferred wraps a builder whose work starts immediately in the
// background; the pipeline awaits the result once, at the build stage.
type Deferred struct {
	ch chan deferredResult
}

type deferredResult struct {
	spec *Spec
	err  error
}

// Defer starts building in the background and returns a Builder that
// yields the result when awaited.
func Defer(ctx context.Context, builder Builder) *Deferred {
	d := &Deferred{ch: make(chan deferredResult, 1)}

	go func() {
		spec, err := builder.Build(ctx)
		d.ch <- deferredResult{spec: spec, err: err}
	}()

	return d
}

// Build implements Builder; it waits for the background build to finish
// or for the context to be canceled.
func (d *Deferred) Build(ctx context.Context) (*Spec, error) {
	select {
	case res := <-d.ch:
		return res.spec, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// stage is one step of the launch pipeline.
type stage struct {
	name string
	fn   func(ctx context.Context, s *Spec) error
}

// pipelineStages is the fixed stage order; no stage may be skipped or
// reordered, and each stage mutates the one Spec in place.
var pipelineStages = []stage{
	{name: "schema-resolve", fn: stageSchemaResolve},
	{name: "defaults-apply", fn: stageDefaultsApply},
	{name: "launcher-resolve", fn: stageLauncherResolve},
	{name: "validate", fn: stageValidate},
	{name: "run", fn: stageRun},
}

// Execute runs the full launch pipeline: the builder produces the Spec,
// then the remaining stages execute strictly in order. A failing stage
// aborts the pipeline and its error propagates unchanged; the Spec is
// left in whatever state the failing stage reached.
func Execute(ctx context.Context, builder Builder) error {
	spec, err := builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("build stage: %w", err)
	}

	if spec == nil {
		return fmt.Errorf("%w: builder returned no launch spec", ErrConfig)
	}

	for _, st := range pipelineStages {
		ctxlog.Debug(ctx, "pipeline stage", "stage", st.name, "executable", spec.ExecPath)

		if err := st.fn(ctx, spec); err != nil {
			return fmt.Errorf("%s stage: %w", st.name, err)
		}
	}

	return nil
}

func stageSchemaResolve(ctx context.Context, s *Spec) error {
	path, err := ResolveSchemaPath()
	if err != nil {
		return err
	}

	s.SchemaPath = path
	ctxlog.Info(ctx, "resolved launch schema", "path", path)

	return nil
}

func stageDefaultsApply(_ context.Context, s *Spec) error {
	def, err := schema.Load(s.SchemaPath)
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	opts, err := s.ToMap()
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	return s.fromMap(def.ApplyDefaults(opts))
}

func stageLauncherResolve(ctx context.Context, s *Spec) error {
	return ResolveLauncher(ctx, s)
}

func stageValidate(ctx context.Context, s *Spec) error {
	if s.ImgPath != "" {
		if err := ResolveContainer(ctx, s); err != nil {
			return err
		}
	}

	if err := ResolveTaskType(s); err != nil {
		return err
	}

	def, err := schema.Load(s.SchemaPath)
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	opts, err := s.ToMap()
	if err != nil {
		return errors.Join(ErrValidation, err)
	}

	if err := def.Validate(opts); err != nil {
		return errors.Join(ErrValidation, err)
	}

	logOptionTable(ctx, def, opts)

	return nil
}

func stageRun(ctx context.Context, s *Spec) error {
	BuildCommand(s)

	return Run(ctx, s)
}

// logOptionTable writes the validated option set to the log as a table.
func logOptionTable(ctx context.Context, def schema.Definition, opts map[string]any) {
	tbl := tablefmt.New().WithHeader("Variable", "Value", "Type")

	for _, name := range def.Names() {
		value, ok := opts[name]
		if !ok || value == nil {
			continue
		}

		tbl.AddRow(name, fmt.Sprintf("%v", value), def[name].Type)
	}

	tbl.Log(ctx, slog.LevelInfo, "launch configuration")
}
