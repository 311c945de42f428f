package network

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pirouter/api/internal/netconf"
	"github.com/pirouter/api/pkg/log"
)

// ConflictReport collects what EnsureAPMode found and what it changed.
type ConflictReport struct {
	Issues []string `json:"issues"`
	Fixes  []string `json:"fixes"`
}

// Summary renders the report as a single operator-facing message.
func (r *ConflictReport) Summary(apInterface string) string {
	if len(r.Issues) == 0 {
		return fmt.Sprintf("%s is correctly configured for AP mode", apInterface)
	}
	return fmt.Sprintf("Fixed %d issue(s): %s. Fixes: %s",
		len(r.Issues), strings.Join(r.Issues, "; "), strings.Join(r.Fixes, "; "))
}

// InterfaceConflicts is the read-only view of AP-radio role conflicts for
// dashboard display. Computed fresh on every call, never persisted.
type InterfaceConflicts struct {
	APAsClient               bool     `json:"ap_as_client"`
	StationDaemonOnAP        bool     `json:"station_daemon_on_ap"`
	NetworkManagerManagingAP bool     `json:"networkmanager_managing_ap"`
	APServiceRunning         bool     `json:"ap_service_running"`
	Warnings                 []string `json:"warnings"`
	Recommendations          []string `json:"recommendations"`
}

func (m *Manager) apStationService() string {
	return "wpa_supplicant@" + m.APInterface
}

// stationConfPaths are the supplicant config files that may wrongly reference
// the AP interface.
func (m *Manager) stationConfPaths() []string {
	return []string{
		filepath.Join(m.WPAConfDir, "wpa_supplicant.conf"),
		filepath.Join(m.WPAConfDir, "wpa_supplicant-"+m.APInterface+".conf"),
	}
}

// EnsureAPMode walks the fixed remediation checklist for the AP radio:
// station daemon takeover, NetworkManager takeover, stray station configs,
// boot enablement, and a final restart so fixes take effect immediately.
// Detecting an issue is not a failure; a failed fix action is.
func (m *Manager) EnsureAPMode(ctx context.Context) (*ConflictReport, error) {
	report := &ConflictReport{}

	// 1. A station-mode supplicant bound to the AP interface prevents
	// hostapd from owning the radio.
	if res := m.runner.Run(ctx, "systemctl", "is-active", m.apStationService()); res.Success {
		report.Issues = append(report.Issues, m.apStationService()+" is running (should be disabled)")

		if res := m.runner.Run(ctx, "sudo", "systemctl", "disable", m.apStationService()); res.Success {
			report.Fixes = append(report.Fixes, "Disabled "+m.apStationService())
		} else {
			return report, fmt.Errorf("failed to disable %s: %s", m.apStationService(), res.Stderr)
		}

		if res := m.runner.Run(ctx, "sudo", "systemctl", "stop", m.apStationService()); res.Success {
			report.Fixes = append(report.Fixes, "Stopped "+m.apStationService())
		} else {
			return report, fmt.Errorf("failed to stop %s: %s", m.apStationService(), res.Stderr)
		}
	}

	// 2. NetworkManager reconfigures any interface it considers managed.
	if res := m.runner.Run(ctx, "nmcli", "device", "show", m.APInterface); res.Success {
		if strings.Contains(strings.ToLower(res.Stdout), "managed") {
			report.Issues = append(report.Issues, "NetworkManager is managing "+m.APInterface)

			staged, err := m.stage("90-nm-unmanage-"+m.APInterface+".rules", netconf.NMUnmanagedRule(m.APInterface))
			if err != nil {
				return report, err
			}
			dest := "/etc/udev/rules.d/90-nm-unmanage-" + m.APInterface + ".rules"
			if res := m.runner.Run(ctx, "sudo", "mv", staged, dest); res.Success {
				report.Fixes = append(report.Fixes, "Created udev rule to unmanage "+m.APInterface)
			} else {
				return report, fmt.Errorf("failed to create udev rule: %s", res.Stderr)
			}

			m.runner.Run(ctx, "sudo", "udevadm", "control", "--reload-rules")
			report.Fixes = append(report.Fixes, "Reloaded udev rules")
		}
	}

	// 3. Station configs referencing the AP interface are flagged for
	// manual review only; the mention could be a benign comment.
	for _, confPath := range m.stationConfPaths() {
		content, err := os.ReadFile(confPath)
		if err != nil {
			continue
		}
		if strings.Contains(string(content), m.APInterface) {
			report.Issues = append(report.Issues, fmt.Sprintf("%s configured in %s", m.APInterface, confPath))
			report.Fixes = append(report.Fixes, fmt.Sprintf("Review %s - ensure %s is not configured", confPath, m.APInterface))
		}
	}

	// 4. hostapd must come back after reboot.
	if res := m.runner.Run(ctx, "systemctl", "is-enabled", apService); !res.Success {
		report.Issues = append(report.Issues, "hostapd is not enabled")
		if res := m.runner.Run(ctx, "sudo", "systemctl", "enable", apService); res.Success {
			report.Fixes = append(report.Fixes, "Enabled hostapd service")
		} else {
			return report, fmt.Errorf("failed to enable hostapd: %s", res.Stderr)
		}
	}

	// 5. Restart last so hostapd takes the radio with all fixes applied.
	if res := m.runner.Run(ctx, "sudo", "systemctl", "restart", apService); res.Success {
		report.Fixes = append(report.Fixes, "Restarted hostapd")
	} else {
		return report, fmt.Errorf("failed to restart hostapd: %s", res.Stderr)
	}

	if len(report.Issues) > 0 {
		log.Logger.Infof("AP mode remediation fixed %d issue(s) on %s", len(report.Issues), m.APInterface)
	}
	return report, nil
}

// GetInterfaceConflicts runs the same detection logic as EnsureAPMode without
// performing any fixes.
func (m *Manager) GetInterfaceConflicts(ctx context.Context) InterfaceConflicts {
	conflicts := InterfaceConflicts{
		Warnings:        []string{},
		Recommendations: []string{},
	}

	res := m.runner.Run(ctx, "systemctl", "is-active", m.apStationService())
	conflicts.StationDaemonOnAP = res.Success
	if res.Success {
		conflicts.Warnings = append(conflicts.Warnings, m.apStationService()+" is running - this will prevent AP mode")
		conflicts.Recommendations = append(conflicts.Recommendations, "Disable: sudo systemctl disable --now "+m.apStationService())
	}

	res = m.runner.RunTimeout(ctx, nmcliTimeout, "nmcli", "device", "show", m.APInterface)
	if res.Success && strings.Contains(strings.ToLower(res.Stdout), "managed") {
		conflicts.NetworkManagerManagingAP = true
		conflicts.Warnings = append(conflicts.Warnings, "NetworkManager is managing "+m.APInterface)
		conflicts.Recommendations = append(conflicts.Recommendations, "Add udev rule to unmanage "+m.APInterface)
	}

	res = m.runner.Run(ctx, "systemctl", "is-active", apService)
	conflicts.APServiceRunning = res.Success
	if !res.Success {
		conflicts.Warnings = append(conflicts.Warnings, "hostapd is not running")
		conflicts.Recommendations = append(conflicts.Recommendations, "Enable: sudo systemctl enable --now hostapd")
	}

	// An SSID association without master mode means the AP radio is
	// behaving like a client.
	res = m.runner.Run(ctx, "iwconfig", m.APInterface)
	if res.Success && strings.Contains(res.Stdout, "ESSID:") && !strings.Contains(res.Stdout, "Mode:Master") {
		conflicts.APAsClient = true
		conflicts.Warnings = append(conflicts.Warnings, m.APInterface+" appears to be in client mode")
		conflicts.Recommendations = append(conflicts.Recommendations, "Run interface cleanup to restore AP mode")
	}

	return conflicts
}
