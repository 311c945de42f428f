// Package executor runs external OS tools with bounded execution time.
package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/pirouter/api/pkg/log"
)

// DefaultTimeout bounds every external-process invocation unless the caller
// asks for a different limit.
const DefaultTimeout = 30 * time.Second

// TimeoutMessage is the sentinel stderr text reported when a command is
// killed for exceeding its deadline. A timed-out command may have partially
// run before being killed.
const TimeoutMessage = "command timed out"

// Result captures the outcome of one external command.
type Result struct {
	Success bool
	Stdout  string
	Stderr  string
}

// Runner executes external commands. Callers hold a Runner rather than
// spawning processes directly so tests can substitute a fake.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) Result
	RunTimeout(ctx context.Context, timeout time.Duration, name string, args ...string) Result
}

// Exec is the production Runner backed by os/exec.
type Exec struct{}

// New returns a Runner that spawns real processes.
func New() *Exec {
	return &Exec{}
}

// Run executes the command with the default timeout.
func (e *Exec) Run(ctx context.Context, name string, args ...string) Result {
	return e.RunTimeout(ctx, DefaultTimeout, name, args...)
}

// RunTimeout executes the command, capturing stdout and stderr. It never
// returns an error: process failure, launch failure, and timeout are all
// reported through Result. Exactly one process is spawned per call and no
// retry is attempted; callers decide whether to retry.
func (e *Exec) RunTimeout(ctx context.Context, timeout time.Duration, name string, args ...string) Result {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Logger.Debugf("Running command: %s %s", name, strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		log.Logger.Errorf("Command timed out: %s %s", name, strings.Join(args, " "))
		return Result{Success: false, Stdout: stdout.String(), Stderr: TimeoutMessage}
	}
	if err != nil {
		errText := stderr.String()
		if errText == "" {
			// Launch failures (missing binary, permission) produce no
			// process stderr; surface the exec error text instead.
			errText = err.Error()
		}
		log.Logger.Warnf("Command failed: %s %s - %s", name, strings.Join(args, " "), errText)
		return Result{Success: false, Stdout: stdout.String(), Stderr: errText}
	}

	return Result{Success: true, Stdout: stdout.String(), Stderr: stderr.String()}
}
