package network

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Captured from iwconfig on Raspberry Pi OS (wireless-tools 30).
const iwconfigConnected = `wlan0     IEEE 802.11  ESSID:"HomeNet"
          Mode:Managed  Frequency:2.437 GHz  Access Point: AA:BB:CC:DD:EE:FF
          Bit Rate=72.2 Mb/s   Tx-Power=31 dBm
          Retry short limit:7   RTS thr:off   Fragment thr:off
          Power Management:on
          Link Quality=56/70  Signal level=-54 dBm
          Rx invalid nwid:0  Rx invalid crypt:0  Rx invalid frag:0
`

const iwconfigDisconnected = `wlan0     IEEE 802.11  ESSID:off/any
          Mode:Managed  Access Point: Not-Associated   Tx-Power=31 dBm
          Retry short limit:7   RTS thr:off   Fragment thr:off
`

const ipAddrOut = `3: wlan0    inet 192.168.1.42/24 brd 192.168.1.255 scope global dynamic noprefixroute wlan0\       valid_lft 850sec preferred_lft 743sec
`

const routeOut = `default via 192.168.1.1 dev wlan0 proto dhcp src 192.168.1.42 metric 600
`

func TestParseESSID(t *testing.T) {
	ssid := parseESSID(iwconfigConnected)
	require.NotNil(t, ssid)
	assert.Equal(t, "HomeNet", *ssid)

	assert.Nil(t, parseESSID(iwconfigDisconnected))
	assert.Nil(t, parseESSID(""))
}

func TestParseSignalStrength(t *testing.T) {
	sig := parseSignalStrength(iwconfigConnected)
	require.NotNil(t, sig)
	assert.Equal(t, "80%", *sig)

	assert.Nil(t, parseSignalStrength(iwconfigDisconnected))
}

func TestParseInet(t *testing.T) {
	ip := parseInet(ipAddrOut)
	require.NotNil(t, ip)
	assert.Equal(t, "192.168.1.42", *ip)

	assert.Nil(t, parseInet("3: wlan0 <NO-CARRIER,BROADCAST,MULTICAST,UP>"))
}

func TestParseDefaultGateway(t *testing.T) {
	gw := parseDefaultGateway(routeOut, "wlan0")
	require.NotNil(t, gw)
	assert.Equal(t, "192.168.1.1", *gw)

	// Default route on a different device does not count.
	assert.Nil(t, parseDefaultGateway("default via 10.0.0.1 dev eth0", "wlan0"))
}

func TestGetUplinkStatusConnected(t *testing.T) {
	runner := newFakeRunner()
	runner.onSuccess("iwconfig wlan0", iwconfigConnected)
	runner.onSuccess("ip -o -4 addr show wlan0", ipAddrOut)
	runner.onSuccess("ip route show default", routeOut)

	m := newTestManager(runner, t.TempDir())
	status := m.GetUplinkStatus(context.Background())

	assert.True(t, status.Connected)
	require.NotNil(t, status.SSID)
	assert.Equal(t, "HomeNet", *status.SSID)
	require.NotNil(t, status.IPAddress)
	assert.Equal(t, "192.168.1.42", *status.IPAddress)
	require.NotNil(t, status.Gateway)
	assert.Equal(t, "192.168.1.1", *status.Gateway)
	assert.Equal(t, "wlan0", status.Interface)
}

func TestGetUplinkStatusNoESSIDMarker(t *testing.T) {
	runner := newFakeRunner()
	runner.onSuccess("iwconfig wlan0", iwconfigDisconnected)

	m := newTestManager(runner, t.TempDir())
	status := m.GetUplinkStatus(context.Background())

	assert.False(t, status.Connected)
	assert.Nil(t, status.SSID)
	assert.Nil(t, status.IPAddress)
	assert.Nil(t, status.Gateway)
	assert.Nil(t, status.SignalStrength)
}

func TestGetUplinkStatusToolFailure(t *testing.T) {
	// Every tool failing still yields a zero-valued status, never an error.
	m := newTestManager(newFakeRunner(), t.TempDir())
	status := m.GetUplinkStatus(context.Background())
	assert.False(t, status.Connected)
	assert.Nil(t, status.SSID)
}

func TestGetAPStatus(t *testing.T) {
	dir := t.TempDir()
	hostapdConf := filepath.Join(dir, "hostapd.conf")
	require.NoError(t, os.WriteFile(hostapdConf, []byte("interface=wlan1\nssid=PiRouter-AP\nchannel=6\n"), 0o600))

	leases := filepath.Join(dir, "dnsmasq.leases")
	require.NoError(t, os.WriteFile(leases, []byte(
		"1767100000 aa:bb:cc:dd:ee:01 10.42.0.50 phone 01:aa:bb:cc:dd:ee:01\n"+
			"1767100500 aa:bb:cc:dd:ee:02 10.42.0.51 * *\n"), 0o600))

	runner := newFakeRunner()
	runner.onSuccess("systemctl is-active hostapd", "active\n")
	runner.onSuccess("ip -o -4 addr show wlan1", "4: wlan1    inet 10.42.0.1/24 scope global wlan1")

	m := newTestManager(runner, dir)
	m.HostapdConf = hostapdConf
	m.LeasesFile = leases

	status := m.GetAPStatus(context.Background())

	assert.True(t, status.Running)
	require.NotNil(t, status.SSID)
	assert.Equal(t, "PiRouter-AP", *status.SSID)
	require.NotNil(t, status.Channel)
	assert.Equal(t, 6, *status.Channel)
	require.NotNil(t, status.IPAddress)
	assert.Equal(t, "10.42.0.1", *status.IPAddress)
	assert.Equal(t, 2, status.Clients)
}

func TestGetAPStatusMissingConf(t *testing.T) {
	dir := t.TempDir()
	m := newTestManager(newFakeRunner(), dir)
	m.HostapdConf = filepath.Join(dir, "missing.conf")
	m.LeasesFile = filepath.Join(dir, "missing.leases")

	status := m.GetAPStatus(context.Background())
	assert.False(t, status.Running)
	assert.Nil(t, status.SSID)
	assert.Nil(t, status.Channel)
	assert.Equal(t, 0, status.Clients)
}
