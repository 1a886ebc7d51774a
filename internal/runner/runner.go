// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner invokes the external conversion process.
//
// The converter is an opaque program: it receives an argument sequence, and
// its exit status decides the outcome. On success the trimmed standard output
// is the result payload; on failure the trimmed standard error is the message.
// Invocations block until the process exits and buffer both streams in full.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/shlex"
	"go.uber.org/zap"

	"github.com/pdiddy/media-shell/internal/logging"
	"github.com/pdiddy/media-shell/pkg/types"
)

// Runner runs one conversion and returns the converter's result payload.
type Runner interface {
	Run(args []string) (string, error)
}

// InvocationError reports that the converter could not be started at all
// (missing executable, permissions, bad command line).
type InvocationError struct {
	Command string
	Err     error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("starting converter %s: %v", e.Command, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// ExternalError reports that the converter ran and exited non-zero. Its
// message is the converter's trimmed standard error, verbatim.
type ExternalError struct {
	ExitCode int
	Stderr   string
}

func (e *ExternalError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("converter exited with status %d", e.ExitCode)
	}
	return e.Stderr
}

// exitStatusError is what an executor returns when the process ran but
// exited non-zero.
type exitStatusError struct {
	code int
}

func (e *exitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &exitStatusError{code: exitErr.ExitCode()}
	}
	return err
}

// ProcessRunner runs the configured converter command with the argument
// sequence appended.
type ProcessRunner struct {
	bin      string
	prefix   []string
	lockPath string
	exec     executor
	log      *zap.Logger
}

// New creates a ProcessRunner from cfg. The command line is split
// shell-style, so quoted paths with spaces are supported. An empty command
// falls back to types.DefaultConverterCommand.
func New(cfg types.ConverterConfig, log *zap.Logger) (*ProcessRunner, error) {
	return newProcessRunner(cfg, &osExecutor{}, log)
}

func newProcessRunner(cfg types.ConverterConfig, exec executor, log *zap.Logger) (*ProcessRunner, error) {
	command := strings.TrimSpace(cfg.Command)
	if command == "" {
		command = types.DefaultConverterCommand
	}
	parts, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parsing converter command %q: %w", command, err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("converter command %q is empty", command)
	}
	return &ProcessRunner{
		bin:      parts[0],
		prefix:   parts[1:],
		lockPath: cfg.LockFile,
		exec:     exec,
		log:      logging.OrNop(log).Named("runner"),
	}, nil
}

// Available reports whether the converter binary can be found on PATH.
func (r *ProcessRunner) Available() error {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return &InvocationError{Command: r.bin, Err: err}
	}
	return nil
}

// Run invokes the converter with args and waits for it to exit. It returns
// an *InvocationError when the process cannot be started and an
// *ExternalError when it exits non-zero.
func (r *ProcessRunner) Run(args []string) (string, error) {
	if r.lockPath != "" {
		lock := flock.New(r.lockPath)
		if err := lock.Lock(); err != nil {
			return "", fmt.Errorf("acquiring converter lock %s: %w", r.lockPath, err)
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				r.log.Warn("releasing converter lock", zap.String("path", r.lockPath), zap.Error(err))
			}
		}()
	}

	full := make([]string, 0, len(r.prefix)+len(args))
	full = append(full, r.prefix...)
	full = append(full, args...)

	r.log.Debug("invoking converter", zap.String("bin", r.bin), zap.Strings("args", full))

	var stdout, stderr bytes.Buffer
	start := time.Now()
	err := r.exec.Run(r.bin, full, &stdout, &stderr)
	elapsed := time.Since(start)

	if err != nil {
		var status *exitStatusError
		if errors.As(err, &status) {
			r.log.Info("converter failed",
				zap.Int("exit_code", status.code),
				zap.Duration("elapsed", elapsed))
			return "", &ExternalError{
				ExitCode: status.code,
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return "", &InvocationError{Command: r.bin, Err: err}
	}

	r.log.Info("converter finished", zap.Duration("elapsed", elapsed))
	return strings.TrimSpace(stdout.String()), nil
}
