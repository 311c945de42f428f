package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// reboot and shutdown are delayed so the HTTP response can flush first.
const powerActionDelay = 2 * time.Second

type ServiceControlRequest struct {
	Service string `json:"service" binding:"required"`
	Action  string `json:"action" binding:"required"`
}

var allowedActions = map[string]bool{
	"start":   true,
	"stop":    true,
	"restart": true,
}

// ControlService starts, stops, or restarts one of the managed services.
func (a *API) ControlService(c *gin.Context) {
	var req ServiceControlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !allowedActions[req.Action] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action: " + req.Action})
		return
	}

	allowed := false
	for _, svc := range a.Network.ManagedServices() {
		if svc == req.Service {
			allowed = true
			break
		}
	}
	if !allowed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service not managed: " + req.Service})
		return
	}

	res := a.System.ControlService(c.Request.Context(), req.Service, req.Action)
	if !res.Success {
		recordServiceLog(req.Service, "error", req.Action+" failed: "+res.Stderr)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": res.Stderr,
		})
		return
	}

	recordServiceLog(req.Service, "info", req.Action+" completed")
	recordEvent("service_control", req.Action+" "+req.Service)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": req.Service + " " + req.Action + " completed",
	})
}

// ServiceLogs returns recent journal lines for a managed service.
func (a *API) ServiceLogs(c *gin.Context) {
	service := c.Param("service")
	allowed := false
	for _, svc := range a.Network.ManagedServices() {
		if svc == service {
			allowed = true
			break
		}
	}
	if !allowed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service not managed: " + service})
		return
	}

	lines := 50
	if raw := c.Query("lines"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
			lines = n
		}
	}

	logs := a.System.GetServiceLogs(c.Request.Context(), service, lines)
	c.JSON(http.StatusOK, gin.H{
		"service": service,
		"logs":    logs,
	})
}

// SetupNAT enables IP forwarding and installs the NAT ruleset.
func (a *API) SetupNAT(c *gin.Context) {
	ctx := c.Request.Context()

	ok, message := a.Network.EnableForwarding(ctx)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message})
		return
	}

	ok, message = a.Network.SetupNAT(ctx)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message})
		return
	}

	recordEvent("nat_setup", "NAT and IP forwarding configured")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// FixAPMode runs the AP-radio conflict remediation checklist.
func (a *API) FixAPMode(c *gin.Context) {
	report, err := a.Network.EnsureAPMode(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
			"report":  report,
		})
		return
	}

	if len(report.Issues) > 0 {
		recordEvent("ap_mode_fix", report.Summary(a.Network.APInterface))
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": report.Summary(a.Network.APInterface),
		"report":  report,
	})
}

// Conflicts returns the read-only AP-radio conflict view.
func (a *API) Conflicts(c *gin.Context) {
	c.JSON(http.StatusOK, a.Network.GetInterfaceConflicts(c.Request.Context()))
}

// Reboot schedules a host reboot.
func (a *API) Reboot(c *gin.Context) {
	recordEvent("reboot", "Reboot requested via API")
	a.System.Reboot(powerActionDelay)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Rebooting in 2 seconds"})
}

// Shutdown schedules a host shutdown.
func (a *API) Shutdown(c *gin.Context) {
	recordEvent("shutdown", "Shutdown requested via API")
	a.System.Shutdown(powerActionDelay)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Shutting down in 2 seconds"})
}
