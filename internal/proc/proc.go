// Package proc starts external helper programs and exposes their output streams.
package proc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Spec describes a program to launch.
type Spec struct {
	Name string
	Args []string
	Env  []string // Added to the parent environment
	Dir  string
}

// Process is a started program. Callers must drain Stdout and Stderr
// before calling Wait.
type Process interface {
	Stdout() io.Reader
	Stderr() io.Reader
	Wait() error
}

// Runner starts programs.
type Runner interface {
	Start(ctx context.Context, spec Spec) (Process, error)
}

// ExitError reports a program that ran but exited non-zero.
// Code is -1 when the program was killed by a signal.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Start launches spec. A non-nil error means the program never ran.
func (ExecRunner) Start(ctx context.Context, spec Spec) (Process, error) {
	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Env = append(os.Environ(), spec.Env...)
	cmd.Dir = spec.Dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", spec.Name, err)
	}

	return &execProcess{cmd: cmd, stdout: stdout, stderr: stderr}, nil
}

type execProcess struct {
	cmd    *exec.Cmd
	stdout io.Reader
	stderr io.Reader
}

func (p *execProcess) Stdout() io.Reader { return p.stdout }
func (p *execProcess) Stderr() io.Reader { return p.stderr }

func (p *execProcess) Wait() error {
	err := p.cmd.Wait()
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{Code: ee.ExitCode()}
	}
	return err
}
