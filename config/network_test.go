package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIPv4(t *testing.T) {
	assert.NoError(t, ValidateIPv4("10.42.0.1"))
	assert.NoError(t, ValidateIPv4("255.255.255.0"))
	assert.NoError(t, ValidateIPv4("0.0.0.0"))

	assert.Error(t, ValidateIPv4("10.42.0"))
	assert.Error(t, ValidateIPv4("10.42.0.256"))
	assert.Error(t, ValidateIPv4("not-an-ip"))
	assert.Error(t, ValidateIPv4("10.42.0.1/24"))
	assert.Error(t, ValidateIPv4(""))
}

func TestUplinkConfigValidate(t *testing.T) {
	cfg := UplinkConfig{SSID: "HomeNet", Password: "secretpw", Country: "us"}
	require.NoError(t, cfg.Validate())
	// Mode defaults to wpa, country is normalized.
	assert.Equal(t, UplinkModeWPA, cfg.Mode)
	assert.Equal(t, "US", cfg.Country)

	bad := UplinkConfig{Mode: "bridge", SSID: "x", Password: "x", Country: "US"}
	assert.Error(t, bad.Validate())

	long := UplinkConfig{SSID: strings.Repeat("a", 33), Password: "x", Country: "US"}
	assert.Error(t, long.Validate())

	longPW := UplinkConfig{SSID: "x", Password: strings.Repeat("a", 64), Country: "US"}
	assert.Error(t, longPW.Validate())

	noSSID := UplinkConfig{Mode: UplinkModeWPA, Password: "secretpw", Country: "US"}
	assert.Error(t, noSSID.Validate())

	noPW := UplinkConfig{Mode: UplinkModeWPA, SSID: "HomeNet", Country: "US"}
	assert.Error(t, noPW.Validate())

	badCountry := UplinkConfig{SSID: "HomeNet", Password: "secretpw", Country: "USA"}
	assert.Error(t, badCountry.Validate())
}

func TestUplinkConfigValidatePortalMode(t *testing.T) {
	// Portal mode allows an open network, so no password is fine.
	cfg := UplinkConfig{Mode: UplinkModePortal, SSID: "CoffeeShop", Country: "US"}
	assert.NoError(t, cfg.Validate())
}

func TestAPConfigValidate(t *testing.T) {
	cfg := APConfig{SSID: "PiRouter-AP", Password: "SecurePass123", Channel: 6, Country: "us", HWMode: "g"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "US", cfg.Country)

	cases := []APConfig{
		{SSID: "", Password: "SecurePass123", Channel: 6, Country: "US", HWMode: "g"},
		{SSID: strings.Repeat("a", 33), Password: "SecurePass123", Channel: 6, Country: "US", HWMode: "g"},
		// WPA2 passphrases are 8-63 characters.
		{SSID: "ap", Password: "short", Channel: 6, Country: "US", HWMode: "g"},
		{SSID: "ap", Password: strings.Repeat("a", 64), Channel: 6, Country: "US", HWMode: "g"},
		{SSID: "ap", Password: "SecurePass123", Channel: 0, Country: "US", HWMode: "g"},
		{SSID: "ap", Password: "SecurePass123", Channel: 14, Country: "US", HWMode: "g"},
		{SSID: "ap", Password: "SecurePass123", Channel: 6, Country: "US", HWMode: "x"},
		{SSID: "ap", Password: "SecurePass123", Channel: 6, Country: "", HWMode: "g"},
	}
	for _, c := range cases {
		assert.Error(t, c.Validate(), "%+v", c)
	}
}

func TestDHCPConfigValidate(t *testing.T) {
	cfg := DHCPConfig{
		Subnet:     "10.42.0.0",
		Netmask:    "255.255.255.0",
		Gateway:    "10.42.0.1",
		RangeStart: "10.42.0.10",
		RangeEnd:   "10.42.0.250",
		LeaseTime:  "12h",
	}
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Gateway = "10.42.0.999"
	assert.Error(t, bad.Validate())

	noLease := cfg
	noLease.LeaseTime = ""
	assert.Error(t, noLease.Validate())

	// A reversed range is accepted; only per-field syntax is checked.
	reversed := cfg
	reversed.RangeStart = "10.42.0.250"
	reversed.RangeEnd = "10.42.0.10"
	assert.NoError(t, reversed.Validate())
}

func TestDefaultNetworkConfig(t *testing.T) {
	cfg := DefaultNetworkConfig()
	// The uplink SSID is intentionally unset at the factory; the AP and
	// DHCP sections must be immediately usable.
	require.NoError(t, cfg.AP.Validate())
	require.NoError(t, cfg.DHCP.Validate())
	assert.Equal(t, "PiRouter-AP", cfg.AP.SSID)
	assert.Equal(t, 6, cfg.AP.Channel)
	assert.Equal(t, "10.42.0.1", cfg.DHCP.Gateway)
	assert.Empty(t, cfg.Uplink.SSID)
}
