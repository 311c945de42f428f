package network

import (
	"context"
	"os"
	"regexp"
	"strconv"
)

// UplinkStatus describes the uplink radio as observed right now. Fields that
// could not be parsed from tool output stay nil; absence is never an error.
type UplinkStatus struct {
	Connected      bool    `json:"connected"`
	SSID           *string `json:"ssid"`
	IPAddress      *string `json:"ip_address"`
	Gateway        *string `json:"gateway"`
	SignalStrength *string `json:"signal_strength"`
	Interface      string  `json:"interface"`
}

// APStatus describes the access-point radio as observed right now.
type APStatus struct {
	Running   bool    `json:"running"`
	SSID      *string `json:"ssid"`
	IPAddress *string `json:"ip_address"`
	Channel   *int    `json:"channel"`
	Interface string  `json:"interface"`
	Clients   int     `json:"clients"`
}

var (
	essidRe       = regexp.MustCompile(`ESSID:"([^"]+)"`)
	linkQualityRe = regexp.MustCompile(`Link Quality=(\d+)/(\d+)`)
	inetRe        = regexp.MustCompile(`inet\s+(\d+\.\d+\.\d+\.\d+)`)
	hostapdSSIDRe = regexp.MustCompile(`(?m)^ssid=(.+)$`)
	hostapdChanRe = regexp.MustCompile(`(?m)^channel=(\d+)`)
)

func parseESSID(iwconfigOut string) *string {
	if m := essidRe.FindStringSubmatch(iwconfigOut); m != nil {
		ssid := m[1]
		return &ssid
	}
	return nil
}

func parseSignalStrength(iwconfigOut string) *string {
	m := linkQualityRe.FindStringSubmatch(iwconfigOut)
	if m == nil {
		return nil
	}
	quality, _ := strconv.Atoi(m[1])
	total, _ := strconv.Atoi(m[2])
	if total == 0 {
		return nil
	}
	s := strconv.Itoa(quality*100/total) + "%"
	return &s
}

func parseInet(ipAddrOut string) *string {
	if m := inetRe.FindStringSubmatch(ipAddrOut); m != nil {
		ip := m[1]
		return &ip
	}
	return nil
}

// parseDefaultGateway extracts the gateway of the default route bound to the
// given device, if any.
func parseDefaultGateway(routeOut, device string) *string {
	re := regexp.MustCompile(`default.*via\s+(\d+\.\d+\.\d+\.\d+).*dev\s+` + regexp.QuoteMeta(device))
	if m := re.FindStringSubmatch(routeOut); m != nil {
		gw := m[1]
		return &gw
	}
	return nil
}

// GetUplinkStatus rebuilds the uplink picture from live tool output. The
// configuration can change out-of-band, so nothing here is cached.
func (m *Manager) GetUplinkStatus(ctx context.Context) UplinkStatus {
	status := UplinkStatus{Interface: m.UplinkInterface}

	if res := m.runner.Run(ctx, "iwconfig", m.UplinkInterface); res.Success {
		status.SSID = parseESSID(res.Stdout)
		status.Connected = status.SSID != nil && *status.SSID != ""
		status.SignalStrength = parseSignalStrength(res.Stdout)
	}

	if res := m.runner.Run(ctx, "ip", "-o", "-4", "addr", "show", m.UplinkInterface); res.Success {
		status.IPAddress = parseInet(res.Stdout)
	}

	if res := m.runner.Run(ctx, "ip", "route", "show", "default"); res.Success {
		status.Gateway = parseDefaultGateway(res.Stdout, m.UplinkInterface)
	}

	return status
}

// GetAPStatus rebuilds the access-point picture: daemon state from systemd,
// SSID/channel from the generated hostapd artifact, address from the kernel,
// client count from the lease table.
func (m *Manager) GetAPStatus(ctx context.Context) APStatus {
	status := APStatus{Interface: m.APInterface}

	res := m.runner.Run(ctx, "systemctl", "is-active", apService)
	status.Running = res.Success

	if content, err := os.ReadFile(m.HostapdConf); err == nil {
		if sm := hostapdSSIDRe.FindStringSubmatch(string(content)); sm != nil {
			ssid := sm[1]
			status.SSID = &ssid
		}
		if cm := hostapdChanRe.FindStringSubmatch(string(content)); cm != nil {
			if ch, err := strconv.Atoi(cm[1]); err == nil {
				status.Channel = &ch
			}
		}
	}

	if res := m.runner.Run(ctx, "ip", "-o", "-4", "addr", "show", m.APInterface); res.Success {
		status.IPAddress = parseInet(res.Stdout)
	}

	leases, err := m.GetLeases(ctx)
	if err == nil {
		status.Clients = len(leases)
	}

	return status
}
