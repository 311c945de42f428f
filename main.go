package main

import (
	"context"

	"github.com/pirouter/api/config"
	"github.com/pirouter/api/database"
	"github.com/pirouter/api/handlers"
	"github.com/pirouter/api/internal/executor"
	"github.com/pirouter/api/internal/network"
	"github.com/pirouter/api/internal/system"
	"github.com/pirouter/api/internal/tracker"
	"github.com/pirouter/api/jobs"
	"github.com/pirouter/api/pkg/log"
	"github.com/pirouter/api/routes"
)

func main() {
	log.Init("info")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Logger.Fatalf("Failed to load config: %v", err)
	}
	log.Init(cfg.LogLevel)
	log.Logger.Info("Configuration loaded")

	// Connect to database
	if err := database.Connect(cfg.DBPath, cfg.Env != "production"); err != nil {
		log.Logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Ensure the admin account exists
	if err := handlers.EnsureAdminUser(); err != nil {
		log.Logger.Fatalf("Failed to ensure admin user: %v", err)
	}

	// Build managers
	runner := executor.New()
	netMgr := network.NewManager(runner, cfg.UplinkInterface, cfg.APInterface)
	netMgr.LeasesFile = cfg.LeasesFile
	sysMgr := system.NewManager(runner)
	tr := tracker.New(database.DB)

	cfgMgr, err := config.NewManager(cfg.ConfigDir)
	if err != nil {
		log.Logger.Fatalf("Failed to initialize config manager: %v", err)
	}

	// Bring up routing on boot. Failures are logged, not fatal: the API
	// must stay reachable so the operator can diagnose.
	ctx := context.Background()
	if ok, msg := netMgr.EnableForwarding(ctx); !ok {
		log.Logger.Warnf("IP forwarding setup failed: %s", msg)
	}
	if ok, msg := netMgr.SetupNAT(ctx); !ok {
		log.Logger.Warnf("NAT setup failed: %s", msg)
	}

	// Background device tracking
	watcher := tracker.NewWatcher(tr, cfg.LeasesFile)
	if err := watcher.Start(); err != nil {
		log.Logger.Warnf("Lease watcher failed to start: %v", err)
	} else {
		defer watcher.Stop()
	}
	jobs.StartDeviceMaintenance(tr, netMgr)

	// Setup routes
	api := handlers.NewAPI(netMgr, sysMgr, tr, cfgMgr)
	router := routes.Setup(cfg, api)

	// Start server
	log.Logger.Infof("Starting server on %s:%s", cfg.Host, cfg.Port)
	if err := router.Run(cfg.Host + ":" + cfg.Port); err != nil {
		log.Logger.Fatalf("Failed to start server: %v", err)
	}
}
