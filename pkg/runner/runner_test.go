package runner

import (
	"context"
	"testing"

	"github.com/glorpus-work/hostpkg/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesOutput(t *testing.T) {
	r := New()

	out, err := r.Run(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestRunMergesStdoutAndStderr(t *testing.T) {
	r := New()

	out, err := r.Run(context.Background(), "sh", "-c", "echo out; echo err 1>&2")
	require.NoError(t, err)
	assert.Contains(t, out, "out")
	assert.Contains(t, out, "err")
}

func TestRunNonZeroExitReturnsOutputAndError(t *testing.T) {
	r := New()

	out, err := r.Run(context.Background(), "sh", "-c", "echo partial; exit 3")
	require.Error(t, err)
	assert.Contains(t, out, "partial")

	code, ok := ExitCode(err)
	require.True(t, ok, "expected an exit status on %v", err)
	assert.Equal(t, 3, code)
}

func TestRunStartFailure(t *testing.T) {
	r := New()

	_, err := r.Run(context.Background(), "definitely-not-a-real-binary-4f9a")
	require.ErrorIs(t, err, errors.ErrCommandStart)

	_, ok := ExitCode(err)
	assert.False(t, ok, "launch failures carry no exit status")
}

func TestRunEmptyCommand(t *testing.T) {
	r := New()

	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, errors.ErrEmptyCommand)
}

func TestRunHonorsContextCancellation(t *testing.T) {
	r := New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, "sleep", "10")
	require.Error(t, err)
}
