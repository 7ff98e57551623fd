// Package compiler runs a C/C++ compiler and turns its textual diagnostics
// back into diagnostic events and compilation context.
package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Result is the captured outcome of one compiler invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner defines an interface for running compiler commands
type Runner interface {
	Run(name string, args ...string) (Result, error)
}

// Ensure DefaultRunner implements Runner interface
var _ Runner = (*DefaultRunner)(nil)

// DefaultRunner implements the Runner interface using exec.Command
type DefaultRunner struct {
	Dir   string
	Stdin io.Reader
}

// NewDefaultRunner creates a new instance of DefaultRunner
func NewDefaultRunner(dir string) *DefaultRunner {
	return &DefaultRunner{
		Dir: dir,
	}
}

// Run executes a command and captures its output. A non-zero exit status is
// reported in Result, not as an error; err is set only when the command could
// not be run at all.
func (r *DefaultRunner) Run(name string, args ...string) (Result, error) {
	cmd := exec.Command(name, args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	cmd.Stdin = r.Stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("error running %s: %w", name, err)
	}
	return result, nil
}
