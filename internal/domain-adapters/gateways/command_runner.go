// Package gateways contains adapters around the filesystem and the external
// signing tools.
package gateways

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/signdroid/signdroid/internal/domain/entities"
)

// CommandRunner handles execution of external signing tools
type CommandRunner struct {
	defaultTimeout time.Duration
}

// NewCommandRunner creates a new command runner. A zero timeout selects the
// default of 10 minutes per invocation, which keeps a wedged tool from
// hanging a CI job indefinitely.
func NewCommandRunner(timeout time.Duration) *CommandRunner {
	if timeout == 0 {
		timeout = 10 * time.Minute
	}
	return &CommandRunner{defaultTimeout: timeout}
}

// RunResult contains the result of one tool invocation
type RunResult struct {
	ExitCode int
	Output   string
	Duration time.Duration
}

// Run invokes an external tool and waits for it to finish. A non-zero exit,
// a failure to start, and a timeout all surface as the external process
// error kind; the trailing tool output is folded into the message so CI logs
// show what the tool reported.
func (r *CommandRunner) Run(ctx context.Context, toolPath string, args ...string) (*RunResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.defaultTimeout)
	defer cancel()

	startTime := time.Now()

	//nolint:gosec // G204: tool paths are resolved by the tool locator, not user input
	cmd := exec.CommandContext(runCtx, toolPath, args...)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	result := &RunResult{
		Output:   output.String(),
		Duration: time.Since(startTime),
	}

	if err == nil {
		return result, nil
	}

	if runCtx.Err() == context.DeadlineExceeded {
		result.ExitCode = -1
		return result, entities.NewExternalProcessError(
			"%s timed out after %v", toolPath, r.defaultTimeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, entities.NewExternalProcessError(
			"%s exited with status %d: %s", toolPath, result.ExitCode, tailOf(result.Output))
	}

	result.ExitCode = -1
	return result, entities.NewExternalProcessError("failed to run %s: %v", toolPath, err)
}

// tailOf trims tool output to its last few lines; signing tools put the
// actionable message at the end.
func tailOf(output string) string {
	const maxLines = 5
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return strings.Join(lines, "\n")
}
