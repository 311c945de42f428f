package system

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pirouter/api/internal/executor"
	"github.com/stretchr/testify/assert"
)

type stubRunner struct {
	responses map[string]executor.Result
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) executor.Result {
	return s.RunTimeout(ctx, executor.DefaultTimeout, name, args...)
}

func (s *stubRunner) RunTimeout(ctx context.Context, timeout time.Duration, name string, args ...string) executor.Result {
	argv := strings.Join(append([]string{name}, args...), " ")
	if res, ok := s.responses[argv]; ok {
		return res
	}
	return executor.Result{Success: false, Stderr: "inactive"}
}

func TestGetServiceStatusActiveEnabled(t *testing.T) {
	runner := &stubRunner{responses: map[string]executor.Result{
		"systemctl is-active dnsmasq":  {Success: true, Stdout: "active\n"},
		"systemctl is-enabled dnsmasq": {Success: true, Stdout: "enabled\n"},
	}}

	m := NewManager(runner)
	status := m.GetServiceStatus(context.Background(), "dnsmasq")

	assert.True(t, status.Active)
	assert.True(t, status.Enabled)
	assert.Equal(t, "active", status.State)
}

func TestGetServiceStatusInactive(t *testing.T) {
	m := NewManager(&stubRunner{responses: map[string]executor.Result{}})
	status := m.GetServiceStatus(context.Background(), "hostapd")

	assert.False(t, status.Active)
	assert.False(t, status.Enabled)
	assert.Equal(t, "unknown", status.State)
}

func TestGetServiceLogs(t *testing.T) {
	runner := &stubRunner{responses: map[string]executor.Result{
		"journalctl -u hostapd -n 2 --no-pager": {Success: true, Stdout: "line one\nline two\n"},
	}}

	m := NewManager(runner)
	logs := m.GetServiceLogs(context.Background(), "hostapd", 2)

	assert.Equal(t, []string{"line one", "line two"}, logs)
}

func TestGetServiceLogsFailure(t *testing.T) {
	m := NewManager(&stubRunner{responses: map[string]executor.Result{}})
	assert.Nil(t, m.GetServiceLogs(context.Background(), "hostapd", 10))
}
