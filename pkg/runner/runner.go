//go:generate mockgen -destination=./mocks/runner.go -package=mocks . Runner

// Package runner executes external commands as subprocesses and returns
// their combined output. All tool invocations in the codebase go through
// this package so process execution and logging live in one place.
//
// Commands requiring privilege elevation (sudo) must be constructed by the
// caller.
package runner

import (
	"context"
	stderrors "errors"
	"os/exec"

	"github.com/glorpus-work/hostpkg/internal/logger"
	"github.com/glorpus-work/hostpkg/pkg/errors"
)

// Runner runs a command line and returns its merged stdout and stderr.
type Runner interface {
	// Run blocks until the process exits. The returned output is always
	// populated with whatever the process emitted, even when err is
	// non-nil: a non-zero exit returns both the output and an error
	// wrapping the *exec.ExitError. Whether a non-zero exit is a real
	// failure or just "no results" is backend policy and belongs to the
	// caller, not here.
	Run(ctx context.Context, argv ...string) (string, error)
}

// ExecRunner is the os/exec backed Runner used outside of tests.
type ExecRunner struct{}

// New returns a Runner that spawns real OS processes.
func New() *ExecRunner {
	return &ExecRunner{}
}

// Run executes argv and returns combined stdout+stderr in emission order.
func (r *ExecRunner) Run(ctx context.Context, argv ...string) (string, error) {
	if len(argv) == 0 {
		return "", errors.ErrEmptyCommand
	}

	logger.Debug("executing command", logger.Fields{"argv": argv})

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			logger.Debug("command exited non-zero", logger.Fields{
				"argv":   argv,
				"status": exitErr.ExitCode(),
			})
			return output, errors.Wrapf(err, "command %q exited with status %d", argv[0], exitErr.ExitCode())
		}
		return output, errors.Wrap(errors.ErrCommandStart, err.Error())
	}

	logger.Debug("command finished", logger.Fields{"argv": argv, "output_bytes": len(output)})
	return output, nil
}

// ExitCode extracts the process exit status from an error returned by Run.
// It reports ok=false when the error does not carry an exit status, i.e.
// the process never launched.
func ExitCode(err error) (int, bool) {
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}
