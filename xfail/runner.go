package xfail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// DefaultInterpreter is the executable used to run tests when none is
// configured.
const DefaultInterpreter = "python3"

// Runner spawns the external test interpreter in verbose mode and captures
// its report from stdout.
type Runner struct {
	Interpreter string
	log         *zap.Logger
}

// NewRunner creates a Runner for the given interpreter binary.
func NewRunner(interpreter string, log *zap.Logger) *Runner {
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{Interpreter: interpreter, log: log}
}

// Run executes one verbose run of the named test and returns captured
// stdout. A non-zero exit from the interpreter is not an error: failing
// suites still produce a parseable report. Only a failure to start the
// process is reported as an error.
func (r *Runner) Run(ctx context.Context, testName string) (string, error) {
	cmd := exec.CommandContext(ctx, r.Interpreter, "-m", "test", "-v", testName)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	setProcessGroup(cmd)

	r.log.Info("running test",
		zap.String("test", testName),
		zap.String("interpreter", r.Interpreter))

	spin := NewSpinner(os.Stderr, "running "+testName)
	spin.Start()
	err := cmd.Run()
	spin.Stop()

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("starting %s: %w", r.Interpreter, err)
		}
		r.log.Debug("interpreter exited non-zero",
			zap.Int("code", exitErr.ExitCode()),
			zap.Int("stderr_bytes", stderr.Len()))
	}
	return stdout.String(), nil
}
