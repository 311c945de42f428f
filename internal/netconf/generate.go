// Package netconf generates daemon configuration artifacts from declarative
// settings. All functions are pure: no file or network I/O, same input gives
// byte-identical output.
package netconf

import (
	"fmt"

	"github.com/pirouter/api/config"
)

// WPASupplicant renders the station-mode network block for the uplink radio.
func WPASupplicant(cfg config.UplinkConfig) string {
	country := cfg.Country
	if country == "" {
		country = "US"
	}
	return fmt.Sprintf(`country=%s
ctrl_interface=DIR=/var/run/wpa_supplicant GROUP=netdev
update_config=1

network={
    ssid="%s"
    psk="%s"
    key_mgmt=WPA-PSK
}
`, country, cfg.SSID, cfg.Password)
}

// Hostapd renders the access-point daemon configuration. AP mode always uses
// WPA2-PSK with CCMP.
func Hostapd(cfg config.APConfig, apInterface string) string {
	return fmt.Sprintf(`# Pi Router AP Configuration
interface=%s
driver=nl80211
ssid=%s
hw_mode=%s
channel=%d
country_code=%s
auth_algs=1
wpa=2
wpa_passphrase=%s
wpa_key_mgmt=WPA-PSK
wpa_pairwise=CCMP
rsn_pairwise=CCMP
`, apInterface, cfg.SSID, cfg.HWMode, cfg.Channel, cfg.Country, cfg.Password)
}

// Dnsmasq renders the DHCP/DNS daemon configuration bound to the AP
// interface.
func Dnsmasq(cfg config.DHCPConfig, apInterface string) string {
	return fmt.Sprintf(`# Pi Router DHCP and DNS Configuration
# Listen on %s only
interface=%s
bind-interfaces
except-interface=lo

# DHCP range
dhcp-range=%s,%s,%s,%s

# DHCP options
dhcp-option=3,%s
dhcp-option=6,8.8.8.8,8.8.4.4

# Log DHCP activity
log-queries
log-dhcp

# Cache DNS entries
cache-size=150

# Don't read /etc/resolv.conf
no-resolv

# Upstream DNS servers
server=1.1.1.1
server=1.0.0.1
`, apInterface, apInterface, cfg.RangeStart, cfg.RangeEnd, cfg.Netmask, cfg.LeaseTime, cfg.Gateway)
}

// Nftables renders the NAT and forwarding rule set: masquerade out the
// uplink, forward AP traffic to the uplink, accept established return
// traffic.
func Nftables(uplinkInterface, apInterface string) string {
	return fmt.Sprintf(`# Pi Router NAT Configuration
table nat {
    chain postrouting {
        type nat hook postrouting priority srcnat { policy accept; }
        oifname "%s" masquerade
    }
}

table inet filter {
    chain forward {
        type filter hook forward priority filter { policy accept; }
        # Allow forwarding from %s to %s
        iifname "%s" oifname "%s" accept
        # Allow established/related connections back
        ct state established,related accept
    }
}
`, uplinkInterface, apInterface, uplinkInterface, apInterface, uplinkInterface)
}

// Sysctl renders the persisted IPv4 forwarding setting.
func Sysctl() string {
	return "net.ipv4.ip_forward=1\n"
}

// NMUnmanagedRule renders a udev rule that stops NetworkManager from taking
// over the AP interface.
func NMUnmanagedRule(apInterface string) string {
	return fmt.Sprintf(`# Prevent NetworkManager from managing %s
ACTION=="add", SUBSYSTEM=="net", DRIVERS=="?*", ATTR{address}=="*", KERNELS=="%s", ENV{NM_UNMANAGED}="1"
`, apInterface, apInterface)
}
