package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pirouter/api/config"
	"github.com/pirouter/api/internal/network"
	"github.com/pirouter/api/pkg/log"
)

const passwordMask = "********"

// redactSecrets masks stored credentials for display. The QR endpoint is
// the only read path that needs the real AP passphrase.
func redactSecrets(cfg *config.NetworkConfig) *config.NetworkConfig {
	out := *cfg
	if out.Uplink.Password != "" {
		out.Uplink.Password = passwordMask
	}
	if out.Uplink.PortalPassword != "" {
		out.Uplink.PortalPassword = passwordMask
	}
	if out.AP.Password != "" {
		out.AP.Password = passwordMask
	}
	return &out
}

// GetNetworkConfig returns the persisted desired configuration with
// credentials masked.
func (a *API) GetNetworkConfig(c *gin.Context) {
	cfg, err := a.Config.LoadNetwork()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load network configuration"})
		return
	}
	c.JSON(http.StatusOK, redactSecrets(cfg))
}

// UpdateUplink applies new uplink settings and persists them on success.
func (a *API) UpdateUplink(c *gin.Context) {
	var req config.UplinkConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, message := a.Network.UpdateUplink(c.Request.Context(), req)
	if !ok {
		recordServiceLog("wpa_supplicant@"+a.Network.UplinkInterface, "error", message)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message})
		return
	}

	a.persistSection(func(cfg *config.NetworkConfig) { cfg.Uplink = req })
	recordEvent("config_change", "Uplink configuration updated: "+req.SSID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// UpdateAP applies new access-point settings and persists them on success.
func (a *API) UpdateAP(c *gin.Context) {
	var req config.APConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, message := a.Network.UpdateAP(c.Request.Context(), req)
	if !ok {
		recordServiceLog("hostapd", "error", message)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message})
		return
	}

	a.persistSection(func(cfg *config.NetworkConfig) { cfg.AP = req })
	recordEvent("config_change", "AP configuration updated: "+req.SSID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// UpdateDHCP applies new DHCP settings and persists them on success.
func (a *API) UpdateDHCP(c *gin.Context) {
	var req config.DHCPConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, message := a.Network.UpdateDHCP(c.Request.Context(), req)
	if !ok {
		recordServiceLog("dnsmasq", "error", message)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message})
		return
	}

	a.persistSection(func(cfg *config.NetworkConfig) { cfg.DHCP = req })
	recordEvent("config_change", "DHCP configuration updated")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// ResetConfig restores factory defaults and reconciles all three subsystems.
func (a *API) ResetConfig(c *gin.Context) {
	cfg, err := a.Config.ResetToFactory()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset configuration"})
		return
	}

	ctx := c.Request.Context()
	results := gin.H{}
	ok, msg := a.Network.UpdateAP(ctx, cfg.AP)
	results["ap"] = gin.H{"success": ok, "message": msg}
	ok, msg = a.Network.UpdateDHCP(ctx, cfg.DHCP)
	results["dhcp"] = gin.H{"success": ok, "message": msg}

	recordEvent("config_reset", "Configuration reset to factory defaults")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Configuration reset to factory defaults",
		"results": results,
		"config":  redactSecrets(cfg),
	})
}

// APQRCode returns a scannable join code for the configured AP network.
func (a *API) APQRCode(c *gin.Context) {
	cfg, err := a.Config.LoadNetwork()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load network configuration"})
		return
	}

	qr, err := network.APJoinQRCode(cfg.AP)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ssid":    cfg.AP.SSID,
		"qr_code": qr,
	})
}

// persistSection mirrors a successfully applied change into the saved
// configuration. The live system already changed, so a save failure is
// logged rather than reported as a request failure.
func (a *API) persistSection(apply func(*config.NetworkConfig)) {
	cfg, err := a.Config.LoadNetwork()
	if err != nil {
		log.Logger.Warnf("failed to load saved configuration: %v", err)
		return
	}
	apply(cfg)
	if err := a.Config.SaveNetwork(cfg); err != nil {
		log.Logger.Warnf("failed to persist configuration: %v", err)
	}
}
