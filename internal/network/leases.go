package network

import (
	"context"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Lease is one entry of the dnsmasq lease table.
type Lease struct {
	MAC      string    `json:"mac"`
	IP       string    `json:"ip"`
	Hostname string    `json:"hostname"`
	Expires  time.Time `json:"expires"`
}

// ParseLeases parses dnsmasq lease-file content. Each line carries
// expiry, MAC, IP, hostname-or-*, client id; malformed lines are skipped.
// A "*" hostname becomes "Unknown".
func ParseLeases(content string) []Lease {
	var leases []Lease

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}

		if _, err := net.ParseMAC(fields[1]); err != nil {
			continue
		}
		if net.ParseIP(fields[2]) == nil {
			continue
		}

		lease := Lease{
			MAC: fields[1],
			IP:  fields[2],
		}
		if ts, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
			lease.Expires = time.Unix(ts, 0)
		}
		if fields[3] == "*" {
			lease.Hostname = "Unknown"
		} else {
			lease.Hostname = fields[3]
		}

		leases = append(leases, lease)
	}

	return leases
}

// GetLeases reads the current DHCP lease table. A missing lease file means
// no leases, not an error worth surfacing to status callers.
func (m *Manager) GetLeases(ctx context.Context) ([]Lease, error) {
	content, err := os.ReadFile(m.LeasesFile)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseLeases(string(content)), nil
}
