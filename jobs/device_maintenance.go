package jobs

import (
	"context"
	"time"

	"github.com/pirouter/api/internal/network"
	"github.com/pirouter/api/internal/tracker"
	"github.com/pirouter/api/pkg/log"
)

const (
	ingestInterval = 1 * time.Minute
	sweepInterval  = 24 * time.Hour
)

// StartDeviceMaintenance runs the periodic lease ingestion and the device
// retention sweep. The fsnotify watcher catches most sightings; the ticker
// covers missed events and keeps last_seen moving for renewing clients.
func StartDeviceMaintenance(tr *tracker.Tracker, net *network.Manager) {
	go ingestDevices(tr, net)

	ingestTicker := time.NewTicker(ingestInterval)
	go func() {
		for range ingestTicker.C {
			ingestDevices(tr, net)
		}
	}()

	sweepTicker := time.NewTicker(sweepInterval)
	go func() {
		for range sweepTicker.C {
			sweepDevices(tr)
		}
	}()

	log.Logger.Info("[Jobs] Device maintenance started (ingest every minute, sweep daily)")
}

func ingestDevices(tr *tracker.Tracker, net *network.Manager) {
	leases, err := net.GetLeases(context.Background())
	if err != nil {
		log.Logger.Warnf("[Jobs] Failed to read leases: %v", err)
		return
	}
	if len(leases) == 0 {
		return
	}
	if err := tr.Ingest(leases); err != nil {
		log.Logger.Errorf("[Jobs] Failed to ingest leases: %v", err)
	}
}

func sweepDevices(tr *tracker.Tracker) {
	deleted, err := tr.Sweep(tracker.DefaultRetention)
	if err != nil {
		log.Logger.Errorf("[Jobs] Device sweep failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Logger.Infof("[Jobs] Device sweep removed %d stale devices", deleted)
	}
}
