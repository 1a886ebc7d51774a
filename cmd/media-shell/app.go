// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/pdiddy/media-shell/internal/convert"
	"github.com/pdiddy/media-shell/internal/dispatch"
	"github.com/pdiddy/media-shell/internal/history"
	"github.com/pdiddy/media-shell/internal/logging"
	"github.com/pdiddy/media-shell/internal/runner"
	"github.com/pdiddy/media-shell/pkg/types"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
)

// app holds the components a conversion command needs.
type app struct {
	cfg   types.Config
	log   *zap.Logger
	svc   *convert.Service
	proc  *runner.ProcessRunner
	store *history.Store
}

// newApp wires configuration, logging, the converter process, and the
// history store into a convert.Service.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log.Debug)
	if err != nil {
		return nil, err
	}

	proc, err := runner.New(cfg.Converter, log)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, proc: proc}

	var rec history.Recorder
	if !cfg.History.Disabled {
		store, err := history.Open(cfg.History)
		if err != nil {
			log.Warn("history disabled", zap.Error(err))
		} else {
			a.store = store
			rec = store
		}
	}

	a.svc = convert.NewService(dispatch.New(log), proc, rec, log)
	return a, nil
}

// newConverterApp is newApp for commands that invoke the converter. It fails
// before any conversion starts when the converter binary is not on PATH.
func newConverterApp() (*app, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	if err := a.proc.Available(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("closing history store", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

// printResult writes a colored success line to w.
func printResult(w io.Writer, format string, args ...any) {
	okColor.Fprintf(w, format+"\n", args...)
}

// printFailure writes a colored failure line to w.
func printFailure(w io.Writer, format string, args ...any) {
	failColor.Fprintf(w, format+"\n", args...)
}

// warnUnknownOperation prints a hint when op has no dedicated rule. The
// request still goes through the fallback branch.
func warnUnknownOperation(w io.Writer, op types.Operation) {
	if op.IsKnown() {
		return
	}
	if s, ok := dispatch.Suggest(op); ok {
		warnColor.Fprintf(w, "warning: unknown operation %q (did you mean %q?), using fallback arguments\n", op, s)
		return
	}
	warnColor.Fprintf(w, "warning: unknown operation %q, using fallback arguments\n", op)
}

// batchError turns a batch summary into the command's exit status.
func batchError(r convert.BatchResult) error {
	if r.HasFailures() {
		return fmt.Errorf("%d of %d conversion(s) failed", r.Failed, r.Total())
	}
	return nil
}
