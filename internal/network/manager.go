// Package network derives live radio status from OS tools and reconciles
// declarative configuration into daemon artifacts and service state.
package network

import (
	"time"

	"github.com/pirouter/api/internal/executor"
)

// Default locations of the managed artifacts and helpers.
const (
	DefaultHostapdConf = "/etc/hostapd/hostapd.conf"
	DefaultLeasesFile  = "/var/lib/misc/dnsmasq.leases"
	DefaultStagingDir  = "/tmp"

	installUplink  = "/usr/local/sbin/pi-router-update-uplink"
	installAP      = "/usr/local/sbin/pi-router-update-ap"
	installDHCP    = "/usr/local/sbin/pi-router-update-dhcp"
	installSysctl  = "/usr/local/sbin/pi-router-install-sysctl"
	saveNftables   = "/usr/local/sbin/pi-router-save-nftables"
	apService      = "hostapd"
	dhcpService    = "dnsmasq"
	uplinkGraceDef = 5 * time.Second

	// nmcli can hang when NetworkManager is wedged; keep its probe short.
	nmcliTimeout = 5 * time.Second
)

// Manager owns status reads and reconciliation for both radios. It is
// constructed once at startup with its collaborators injected; it keeps no
// cache, every status query re-reads ground truth.
type Manager struct {
	runner executor.Runner

	UplinkInterface string
	APInterface     string
	HostapdConf     string
	LeasesFile      string
	StagingDir      string
	WPAConfDir      string

	// uplinkGrace is how long to wait after a supplicant restart before
	// confirming connectivity. Tests shorten it.
	uplinkGrace time.Duration
}

// NewManager builds a Manager for the given radio interfaces.
func NewManager(runner executor.Runner, uplinkInterface, apInterface string) *Manager {
	return &Manager{
		runner:          runner,
		UplinkInterface: uplinkInterface,
		APInterface:     apInterface,
		HostapdConf:     DefaultHostapdConf,
		LeasesFile:      DefaultLeasesFile,
		StagingDir:      DefaultStagingDir,
		WPAConfDir:      "/etc/wpa_supplicant",
		uplinkGrace:     uplinkGraceDef,
	}
}

func (m *Manager) uplinkService() string {
	return "wpa_supplicant@" + m.UplinkInterface
}

// ManagedServices lists the service units this manager may control.
func (m *Manager) ManagedServices() []string {
	return []string{apService, dhcpService, m.uplinkService()}
}
