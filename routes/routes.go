package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pirouter/api/config"
	"github.com/pirouter/api/handlers"
	"github.com/pirouter/api/middleware"
)

func Setup(cfg *config.Config, api *handlers.API) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// The dashboard is served from the Pi itself or a dev machine on the
	// AP subnet, so origins are open.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	// Health check
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (login is the only unauthenticated endpoint)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", handlers.Login)

		authed := auth.Group("")
		authed.Use(middleware.AuthRequired())
		{
			authed.POST("/change-password", handlers.ChangePassword)
			authed.GET("/me", handlers.Me)
		}
	}

	protected := r.Group("/api")
	protected.Use(middleware.AuthRequired())
	{
		status := protected.Group("/status")
		{
			status.GET("/network", api.NetworkStatus)
			status.GET("/wlan0", api.UplinkStatus)
			status.GET("/wlan1", api.APStatus)
			status.GET("/devices", api.Devices)
			status.GET("/dhcp-leases", api.DHCPLeases)
			status.GET("/system", api.SystemStatus)
		}

		conf := protected.Group("/config")
		{
			conf.GET("/network", api.GetNetworkConfig)
			conf.POST("/uplink", api.UpdateUplink)
			conf.POST("/ap", api.UpdateAP)
			conf.GET("/ap/qrcode", api.APQRCode)
			conf.POST("/dhcp", api.UpdateDHCP)
			conf.POST("/reset", api.ResetConfig)
		}

		services := protected.Group("/services")
		{
			services.POST("/control", api.ControlService)
			services.GET("/logs/:service", api.ServiceLogs)
			services.POST("/setup-nat", api.SetupNAT)
			services.POST("/fix-ap-mode", api.FixAPMode)
			services.GET("/conflicts", api.Conflicts)
			services.POST("/reboot", api.Reboot)
			services.POST("/shutdown", api.Shutdown)
		}
	}

	return r
}
