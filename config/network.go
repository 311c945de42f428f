package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// UplinkMode selects how the uplink radio joins the upstream network.
type UplinkMode string

const (
	UplinkModeWPA    UplinkMode = "wpa"
	UplinkModePortal UplinkMode = "portal"
)

// UplinkConfig is the station-mode configuration for the uplink radio.
type UplinkConfig struct {
	Mode             UplinkMode `json:"mode"`
	SSID             string     `json:"ssid"`
	Password         string     `json:"password"`
	Country          string     `json:"country"`
	PortalURL        string     `json:"portal_url,omitempty"`
	PortalUsername   string     `json:"portal_username,omitempty"`
	PortalPassword   string     `json:"portal_password,omitempty"`
	AutoDetectPortal bool       `json:"auto_detect_portal"`
}

// APConfig is the access-point configuration for the AP radio.
type APConfig struct {
	SSID     string `json:"ssid"`
	Password string `json:"password"`
	Channel  int    `json:"channel"`
	Country  string `json:"country"`
	HWMode   string `json:"hw_mode"`
}

// DHCPConfig describes the DHCP server settings for the AP subnet.
type DHCPConfig struct {
	Subnet     string `json:"subnet"`
	Netmask    string `json:"netmask"`
	Gateway    string `json:"gateway"`
	RangeStart string `json:"range_start"`
	RangeEnd   string `json:"range_end"`
	LeaseTime  string `json:"lease_time"`
}

// NetworkConfig is the complete network configuration, persisted and
// reconciled as a single unit.
type NetworkConfig struct {
	Uplink UplinkConfig `json:"uplink"`
	AP     APConfig     `json:"ap"`
	DHCP   DHCPConfig   `json:"dhcp"`
}

var ipv4Pattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// ValidateIPv4 checks that s is a dotted-quad with each octet in 0-255.
func ValidateIPv4(s string) error {
	if !ipv4Pattern.MatchString(s) {
		return fmt.Errorf("invalid IP address format: %q", s)
	}
	for _, part := range strings.Split(s, ".") {
		if n, _ := strconv.Atoi(part); n > 255 {
			return fmt.Errorf("IP address parts must be 0-255: %q", s)
		}
	}
	return nil
}

// Validate normalizes and checks the uplink configuration.
func (c *UplinkConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = UplinkModeWPA
	}
	if c.Mode != UplinkModeWPA && c.Mode != UplinkModePortal {
		return fmt.Errorf("invalid uplink mode: %q", c.Mode)
	}
	if len(c.SSID) > 32 {
		return fmt.Errorf("SSID must be at most 32 characters")
	}
	if len(c.Password) > 63 {
		return fmt.Errorf("password must be at most 63 characters")
	}
	if c.Mode == UplinkModeWPA && c.SSID == "" {
		return fmt.Errorf("SSID is required for WPA mode")
	}
	if c.Mode == UplinkModeWPA && c.Password == "" {
		return fmt.Errorf("password is required for WPA mode")
	}
	if len(c.Country) != 2 {
		return fmt.Errorf("country must be a 2-letter code")
	}
	c.Country = strings.ToUpper(c.Country)
	return nil
}

// Validate normalizes and checks the AP configuration. AP mode always runs
// WPA2, so the 8-character passphrase minimum is not negotiable.
func (c *APConfig) Validate() error {
	if len(c.SSID) < 1 || len(c.SSID) > 32 {
		return fmt.Errorf("AP SSID must be 1-32 characters")
	}
	if len(c.Password) < 8 || len(c.Password) > 63 {
		return fmt.Errorf("AP password must be 8-63 characters")
	}
	if c.Channel < 1 || c.Channel > 13 {
		return fmt.Errorf("channel must be between 1 and 13")
	}
	if len(c.Country) != 2 {
		return fmt.Errorf("country must be a 2-letter code")
	}
	c.Country = strings.ToUpper(c.Country)
	switch c.HWMode {
	case "a", "b", "g", "n", "ac":
	default:
		return fmt.Errorf("invalid hw_mode %q, must be one of: a, b, g, n, ac", c.HWMode)
	}
	return nil
}

// Validate checks the DHCP configuration. Fields are validated individually
// for IPv4 syntax; the range is not checked against the subnet or for
// start <= end.
func (c *DHCPConfig) Validate() error {
	for name, v := range map[string]string{
		"subnet":      c.Subnet,
		"netmask":     c.Netmask,
		"gateway":     c.Gateway,
		"range_start": c.RangeStart,
		"range_end":   c.RangeEnd,
	} {
		if err := ValidateIPv4(v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if c.LeaseTime == "" {
		return fmt.Errorf("lease_time must not be empty")
	}
	return nil
}

// Validate checks all three sections.
func (c *NetworkConfig) Validate() error {
	if err := c.Uplink.Validate(); err != nil {
		return fmt.Errorf("uplink: %w", err)
	}
	if err := c.AP.Validate(); err != nil {
		return fmt.Errorf("ap: %w", err)
	}
	if err := c.DHCP.Validate(); err != nil {
		return fmt.Errorf("dhcp: %w", err)
	}
	return nil
}

// DefaultNetworkConfig returns the factory configuration.
func DefaultNetworkConfig() *NetworkConfig {
	return &NetworkConfig{
		Uplink: UplinkConfig{
			Mode:             UplinkModeWPA,
			SSID:             "",
			Password:         "",
			Country:          "US",
			AutoDetectPortal: true,
		},
		AP: APConfig{
			SSID:     "PiRouter-AP",
			Password: "SecurePass123",
			Channel:  6,
			Country:  "US",
			HWMode:   "g",
		},
		DHCP: DHCPConfig{
			Subnet:     "10.42.0.0",
			Netmask:    "255.255.255.0",
			Gateway:    "10.42.0.1",
			RangeStart: "10.42.0.50",
			RangeEnd:   "10.42.0.200",
			LeaseTime:  "12h",
		},
	}
}
