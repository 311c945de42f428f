package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pirouter/api/internal/network"
	"github.com/pirouter/api/internal/system"
	"github.com/pirouter/api/internal/tracker"
	"github.com/pirouter/api/pkg/log"
)

// NetworkStatus returns the combined status of both radios.
func (a *API) NetworkStatus(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"uplink":      a.Network.GetUplinkStatus(ctx),
		"ap":          a.Network.GetAPStatus(ctx),
		"nat_enabled": a.Network.NATEnabled(ctx),
	})
}

// UplinkStatus returns the live station-mode status of the uplink radio.
func (a *API) UplinkStatus(c *gin.Context) {
	c.JSON(http.StatusOK, a.Network.GetUplinkStatus(c.Request.Context()))
}

// APStatus returns the live access-point status of the AP radio.
func (a *API) APStatus(c *gin.Context) {
	c.JSON(http.StatusOK, a.Network.GetAPStatus(c.Request.Context()))
}

// Devices syncs the lease file into the device store and returns the
// recently-seen device list.
func (a *API) Devices(c *gin.Context) {
	leases, err := a.Network.GetLeases(c.Request.Context())
	if err != nil {
		log.Logger.Warnf("failed to read leases: %v", err)
	} else if err := a.Tracker.Ingest(leases); err != nil {
		log.Logger.Warnf("failed to ingest leases: %v", err)
	}

	devices, err := a.Tracker.List(tracker.DefaultDisplayWindow)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list devices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"devices": devices,
		"count":   len(devices),
	})
}

// DHCPLeases returns the raw parsed lease table.
func (a *API) DHCPLeases(c *gin.Context) {
	leases, err := a.Network.GetLeases(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read DHCP leases"})
		return
	}
	if leases == nil {
		leases = []network.Lease{}
	}
	c.JSON(http.StatusOK, gin.H{
		"leases": leases,
		"count":  len(leases),
	})
}

// SystemStatus returns host metrics and the state of the managed services.
func (a *API) SystemStatus(c *gin.Context) {
	ctx := c.Request.Context()
	info := a.System.GetInfo(ctx)

	services := make(map[string]system.ServiceStatus)
	for _, svc := range a.Network.ManagedServices() {
		services[svc] = a.System.GetServiceStatus(ctx, svc)
	}

	c.JSON(http.StatusOK, gin.H{
		"system":   info,
		"services": services,
	})
}
