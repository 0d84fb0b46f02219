package backend

import (
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

// exitErr returns an error shaped like the one runner.Run produces for a
// process that launched but exited non-zero: the *exec.ExitError stays in
// the chain so runner.ExitCode can recover the status.
func exitErr(t *testing.T) error {
	t.Helper()
	err := exec.Command("sh", "-c", "exit 1").Run()
	require.Error(t, err)
	return fmt.Errorf("command exited with status 1: %w", err)
}
