package network

import (
	"context"
	"strings"
	"time"

	"github.com/pirouter/api/internal/executor"
)

// fakeRunner returns canned results keyed by the joined argv and records
// every invocation in order.
type fakeRunner struct {
	responses map[string]executor.Result
	calls     []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: map[string]executor.Result{}}
}

func (f *fakeRunner) on(argv string, res executor.Result) {
	f.responses[argv] = res
}

func (f *fakeRunner) onSuccess(argv, stdout string) {
	f.on(argv, executor.Result{Success: true, Stdout: stdout})
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) executor.Result {
	return f.RunTimeout(ctx, executor.DefaultTimeout, name, args...)
}

func (f *fakeRunner) RunTimeout(ctx context.Context, timeout time.Duration, name string, args ...string) executor.Result {
	argv := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, argv)
	if res, ok := f.responses[argv]; ok {
		return res
	}
	// Unknown commands fail, like an inactive unit or absent tool.
	return executor.Result{Success: false, Stderr: "inactive"}
}

func (f *fakeRunner) callIndex(argv string) int {
	for i, c := range f.calls {
		if c == argv {
			return i
		}
	}
	return -1
}

func newTestManager(runner executor.Runner, stagingDir string) *Manager {
	m := NewManager(runner, "wlan0", "wlan1")
	m.StagingDir = stagingDir
	m.uplinkGrace = 0
	return m
}
