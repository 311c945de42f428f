package network

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pirouter/api/config"
	"github.com/pirouter/api/internal/netconf"
	"github.com/pirouter/api/pkg/log"
)

// Reconciliation methods follow one shape: validate, generate the artifact,
// stage it in an unprivileged location, hand it to the privileged installer,
// restart the owning service. The first failing step aborts and its error
// text is surfaced verbatim; earlier steps are not rolled back.

// stage writes artifact content to the staging directory and returns its path.
func (m *Manager) stage(name, content string) (string, error) {
	path := filepath.Join(m.StagingDir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("failed to write staged config: %w", err)
	}
	return path, nil
}

// UpdateUplink reconfigures the station-mode radio and confirms connectivity
// after a grace period.
func (m *Manager) UpdateUplink(ctx context.Context, cfg config.UplinkConfig) (bool, string) {
	if err := cfg.Validate(); err != nil {
		return false, err.Error()
	}

	staged, err := m.stage("wpa_supplicant-"+m.UplinkInterface+".conf.new", netconf.WPASupplicant(cfg))
	if err != nil {
		return false, err.Error()
	}

	// The supplicant refuses world-readable credential files.
	m.runner.Run(ctx, "chmod", "600", staged)
	m.runner.Run(ctx, "chown", "root:root", staged)

	if res := m.runner.Run(ctx, "sudo", installUplink, staged); !res.Success {
		return false, fmt.Sprintf("Failed to update config: %s", res.Stderr)
	}

	if res := m.runner.Run(ctx, "sudo", "systemctl", "restart", m.uplinkService()); !res.Success {
		return false, fmt.Sprintf("Failed to restart wpa_supplicant: %s", res.Stderr)
	}

	// Give the supplicant time to associate before judging the result.
	select {
	case <-time.After(m.uplinkGrace):
	case <-ctx.Done():
		return false, ctx.Err().Error()
	}

	status := m.GetUplinkStatus(ctx)
	if status.Connected {
		return true, "Successfully connected to uplink network"
	}
	return false, "Configuration updated but not yet connected (check SSID/password)"
}

// UpdateAP reconfigures the access-point radio and restarts hostapd.
func (m *Manager) UpdateAP(ctx context.Context, cfg config.APConfig) (bool, string) {
	if err := cfg.Validate(); err != nil {
		return false, err.Error()
	}

	staged, err := m.stage("hostapd.conf.new", netconf.Hostapd(cfg, m.APInterface))
	if err != nil {
		return false, err.Error()
	}

	if res := m.runner.Run(ctx, "sudo", installAP, staged); !res.Success {
		return false, fmt.Sprintf("Failed to update AP config: %s", res.Stderr)
	}

	if res := m.runner.Run(ctx, "sudo", "systemctl", "restart", apService); !res.Success {
		return false, fmt.Sprintf("Failed to restart hostapd: %s", res.Stderr)
	}

	return true, "AP configuration updated successfully"
}

// UpdateDHCP reconfigures the DHCP/DNS daemon and restarts it.
func (m *Manager) UpdateDHCP(ctx context.Context, cfg config.DHCPConfig) (bool, string) {
	if err := cfg.Validate(); err != nil {
		return false, err.Error()
	}

	staged, err := m.stage("dnsmasq.conf.new", netconf.Dnsmasq(cfg, m.APInterface))
	if err != nil {
		return false, err.Error()
	}

	if res := m.runner.Run(ctx, "sudo", installDHCP, staged); !res.Success {
		return false, fmt.Sprintf("Failed to update DHCP config: %s", res.Stderr)
	}

	if res := m.runner.Run(ctx, "sudo", "systemctl", "restart", dhcpService); !res.Success {
		return false, fmt.Sprintf("Failed to restart dnsmasq: %s", res.Stderr)
	}

	return true, "DHCP configuration updated successfully"
}

// SetupNAT loads the nftables rule set and persists it.
func (m *Manager) SetupNAT(ctx context.Context) (bool, string) {
	staged, err := m.stage("nftables.conf.new", netconf.Nftables(m.UplinkInterface, m.APInterface))
	if err != nil {
		return false, err.Error()
	}

	if res := m.runner.Run(ctx, "sudo", "nft", "-f", staged); !res.Success {
		return false, fmt.Sprintf("Failed to load nftables rules: %s", res.Stderr)
	}

	if res := m.runner.Run(ctx, "sudo", saveNftables, staged); !res.Success {
		return false, fmt.Sprintf("Failed to save nftables config: %s", res.Stderr)
	}

	return true, "NAT rules configured successfully"
}

// EnableForwarding turns on IPv4 forwarding immediately and persists it.
func (m *Manager) EnableForwarding(ctx context.Context) (bool, string) {
	if res := m.runner.Run(ctx, "sudo", "sysctl", "-w", "net.ipv4.ip_forward=1"); !res.Success {
		return false, fmt.Sprintf("Failed to enable forwarding: %s", res.Stderr)
	}

	staged, err := m.stage("sysctl-pi-router", netconf.Sysctl())
	if err != nil {
		return false, err.Error()
	}

	if res := m.runner.Run(ctx, "sudo", installSysctl, staged); !res.Success {
		return false, fmt.Sprintf("Failed to persist forwarding config: %s", res.Stderr)
	}

	return true, "IPv4 forwarding enabled"
}

// NATEnabled reports whether a masquerade rule is currently loaded.
func (m *Manager) NATEnabled(ctx context.Context) bool {
	res := m.runner.Run(ctx, "nft", "list", "table", "nat")
	return res.Success && strings.Contains(res.Stdout, "masquerade")
}

// RestartService restarts one of the managed service units.
func (m *Manager) RestartService(ctx context.Context, service string) (bool, string) {
	valid := false
	for _, s := range m.ManagedServices() {
		if s == service {
			valid = true
			break
		}
	}
	if !valid {
		return false, fmt.Sprintf("Invalid service: %s", service)
	}

	if res := m.runner.Run(ctx, "sudo", "systemctl", "restart", service); !res.Success {
		log.Logger.Errorf("Failed to restart %s: %s", service, res.Stderr)
		return false, fmt.Sprintf("Failed to restart %s: %s", service, res.Stderr)
	}
	return true, fmt.Sprintf("Service %s restarted successfully", service)
}
