package netconf

import (
	"strings"
	"testing"

	"github.com/pirouter/api/config"
	"github.com/stretchr/testify/assert"
)

func TestHostapdContainsSuppliedValues(t *testing.T) {
	cfg := config.APConfig{
		SSID:     "MyHomeAP",
		Password: "correct-horse",
		Channel:  11,
		Country:  "DE",
		HWMode:   "n",
	}

	out := Hostapd(cfg, "wlan1")

	assert.Contains(t, out, "interface=wlan1\n")
	assert.Contains(t, out, "ssid=MyHomeAP\n")
	assert.Contains(t, out, "channel=11\n")
	assert.Contains(t, out, "country_code=DE\n")
	assert.Contains(t, out, "wpa_passphrase=correct-horse\n")
	assert.Contains(t, out, "hw_mode=n\n")
	// Always WPA2-PSK with CCMP.
	assert.Contains(t, out, "wpa=2\n")
	assert.Contains(t, out, "wpa_key_mgmt=WPA-PSK\n")
}

func TestHostapdDeterministic(t *testing.T) {
	cfg := config.APConfig{SSID: "X", Password: "12345678", Channel: 6, Country: "US", HWMode: "g"}
	assert.Equal(t, Hostapd(cfg, "wlan1"), Hostapd(cfg, "wlan1"))
}

func TestWPASupplicant(t *testing.T) {
	out := WPASupplicant(config.UplinkConfig{SSID: "CoffeeShop", Password: "p@ssw0rd", Country: "GB"})
	assert.True(t, strings.HasPrefix(out, "country=GB\n"))
	assert.Contains(t, out, `ssid="CoffeeShop"`)
	assert.Contains(t, out, `psk="p@ssw0rd"`)
	assert.Contains(t, out, "key_mgmt=WPA-PSK")
}

func TestWPASupplicantDefaultCountry(t *testing.T) {
	out := WPASupplicant(config.UplinkConfig{SSID: "a", Password: "b"})
	assert.True(t, strings.HasPrefix(out, "country=US\n"))
}

func TestDnsmasq(t *testing.T) {
	cfg := config.DHCPConfig{
		Subnet:     "10.42.0.0",
		Netmask:    "255.255.255.0",
		Gateway:    "10.42.0.1",
		RangeStart: "10.42.0.50",
		RangeEnd:   "10.42.0.200",
		LeaseTime:  "12h",
	}

	out := Dnsmasq(cfg, "wlan1")

	assert.Contains(t, out, "interface=wlan1\n")
	assert.Contains(t, out, "dhcp-range=10.42.0.50,10.42.0.200,255.255.255.0,12h\n")
	assert.Contains(t, out, "dhcp-option=3,10.42.0.1\n")
	assert.Contains(t, out, "no-resolv")
	assert.Contains(t, out, "server=1.1.1.1")
}

func TestNftables(t *testing.T) {
	out := Nftables("wlan0", "wlan1")
	assert.Contains(t, out, `oifname "wlan0" masquerade`)
	assert.Contains(t, out, `iifname "wlan1" oifname "wlan0" accept`)
	assert.Contains(t, out, "ct state established,related accept")
}

func TestSysctl(t *testing.T) {
	assert.Equal(t, "net.ipv4.ip_forward=1\n", Sysctl())
}
