// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker listens for OS termination signals so that a
// running executable can be shut down gracefully. By default it listens
// for os.Interrupt, SIGINT, SIGTERM and SIGQUIT.
//
// The Watch watchdog cancels a context once a second signal of the same
// type arrives, so a single stray interrupt never kills a long-running
// launch.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sciflow/sciflow/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New creates a signal channel subscribed to the signals that should
// terminate the process. With no arguments the default termination set
// is used.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker", "detail", "creating signal broker", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}
