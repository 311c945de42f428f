// Package system exposes host-level operations: service state, logs,
// resource metrics, and power control.
package system

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pirouter/api/internal/executor"
	"github.com/pirouter/api/pkg/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Manager runs host-level queries and actions.
type Manager struct {
	runner executor.Runner
}

// NewManager builds a system manager.
func NewManager(runner executor.Runner) *Manager {
	return &Manager{runner: runner}
}

// ServiceStatus is the state of one systemd unit.
type ServiceStatus struct {
	Name    string `json:"name"`
	Active  bool   `json:"active"`
	Enabled bool   `json:"enabled"`
	State   string `json:"state"`
}

// MemoryInfo reports memory usage in bytes.
type MemoryInfo struct {
	Total     uint64  `json:"total"`
	Available uint64  `json:"available"`
	Used      uint64  `json:"used"`
	Percent   float64 `json:"percent"`
}

// DiskInfo reports root filesystem usage in bytes.
type DiskInfo struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}

// Info is a point-in-time snapshot of host resources.
type Info struct {
	CPUPercent float64    `json:"cpu_percent"`
	CPUTemp    float64    `json:"cpu_temp"`
	Memory     MemoryInfo `json:"memory"`
	Disk       DiskInfo   `json:"disk"`
	Uptime     uint64     `json:"uptime"`
}

var tempRe = regexp.MustCompile(`([\d.]+)`)

// GetInfo gathers CPU, memory, disk, uptime, and the Pi's SoC temperature.
// Individual probe failures leave their fields zero rather than failing the
// whole snapshot.
func (m *Manager) GetInfo(ctx context.Context) Info {
	info := Info{}

	if percents, err := cpu.PercentWithContext(ctx, time.Second, false); err == nil && len(percents) > 0 {
		info.CPUPercent = percents[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.Memory = MemoryInfo{
			Total:     vm.Total,
			Available: vm.Available,
			Used:      vm.Used,
			Percent:   vm.UsedPercent,
		}
	}

	if du, err := disk.UsageWithContext(ctx, "/"); err == nil {
		info.Disk = DiskInfo{
			Total:   du.Total,
			Used:    du.Used,
			Free:    du.Free,
			Percent: du.UsedPercent,
		}
	}

	if uptime, err := host.UptimeWithContext(ctx); err == nil {
		info.Uptime = uptime
	}

	// vcgencmd is Raspberry Pi firmware tooling; absent elsewhere.
	if res := m.runner.Run(ctx, "vcgencmd", "measure_temp"); res.Success {
		if tm := tempRe.FindStringSubmatch(res.Stdout); tm != nil {
			if temp, err := strconv.ParseFloat(tm[1], 64); err == nil {
				info.CPUTemp = temp
			}
		}
	}

	return info
}

// GetServiceStatus queries one systemd unit's active and enabled state.
func (m *Manager) GetServiceStatus(ctx context.Context, service string) ServiceStatus {
	status := ServiceStatus{Name: service, State: "unknown"}

	res := m.runner.Run(ctx, "systemctl", "is-active", service)
	status.Active = res.Success
	if res.Success {
		status.State = strings.TrimSpace(res.Stdout)
	}

	res = m.runner.Run(ctx, "systemctl", "is-enabled", service)
	status.Enabled = res.Success

	return status
}

// ControlService runs a systemctl action (start, stop, restart) on a unit.
// The caller is responsible for validating both the service and the action.
func (m *Manager) ControlService(ctx context.Context, service, action string) executor.Result {
	return m.runner.Run(ctx, "sudo", "systemctl", action, service)
}

// GetServiceLogs tails the journal for one service.
func (m *Manager) GetServiceLogs(ctx context.Context, service string, lines int) []string {
	res := m.runner.Run(ctx, "journalctl", "-u", service, "-n", strconv.Itoa(lines), "--no-pager")
	if !res.Success {
		return nil
	}
	return strings.Split(strings.TrimSpace(res.Stdout), "\n")
}

// Reboot restarts the host after a short delay so the HTTP response can
// flush first.
func (m *Manager) Reboot(delay time.Duration) {
	go func() {
		time.Sleep(delay)
		res := m.runner.Run(context.Background(), "sudo", "reboot")
		if !res.Success {
			log.Logger.Errorf("Failed to reboot: %s", res.Stderr)
		}
	}()
}

// Shutdown powers the host off after a short delay.
func (m *Manager) Shutdown(delay time.Duration) {
	go func() {
		time.Sleep(delay)
		res := m.runner.Run(context.Background(), "sudo", "shutdown", "-h", "now")
		if !res.Success {
			log.Logger.Errorf("Failed to shutdown: %s", res.Stderr)
		}
	}()
}
