// Package tracker maintains the persistent picture of devices attached to
// the AP, fed from DHCP lease sightings.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/pirouter/api/internal/network"
	"github.com/pirouter/api/models"
	"github.com/pirouter/api/pkg/log"
	"gorm.io/gorm"
)

const (
	// DefaultDisplayWindow is how long after its last sighting a device
	// keeps appearing in listings. Wider than the online window so devices
	// between lease renewals don't flicker out of the UI.
	DefaultDisplayWindow = 30 * time.Minute

	// DefaultRetention is how long a silent device survives before the
	// maintenance sweep hard-deletes its record.
	DefaultRetention = 7 * 24 * time.Hour
)

// Tracker owns the devices table. The API layer only reads through it.
type Tracker struct {
	db  *gorm.DB
	now func() time.Time
}

// New builds a tracker backed by the given store.
func New(db *gorm.DB) *Tracker {
	return &Tracker{db: db, now: time.Now}
}

// Ingest upserts one device record per lease entry: unseen MACs are created
// with first_seen set now; every sighting refreshes ip, hostname, last_seen
// and marks the stored flag online.
func (t *Tracker) Ingest(leases []network.Lease) error {
	now := t.now()

	for _, lease := range leases {
		hostname := lease.Hostname
		if hostname == "" {
			hostname = "Unknown"
		}

		var device models.Device
		err := t.db.Where("mac = ?", lease.MAC).First(&device).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			device = models.Device{
				MAC:       lease.MAC,
				IP:        lease.IP,
				Hostname:  hostname,
				FirstSeen: now,
				LastSeen:  now,
				IsOnline:  true,
			}
			if err := t.db.Create(&device).Error; err != nil {
				return fmt.Errorf("failed to create device %s: %w", lease.MAC, err)
			}
			log.Logger.Debugf("New device tracked: %s (%s)", lease.MAC, lease.IP)
		case err != nil:
			return fmt.Errorf("failed to look up device %s: %w", lease.MAC, err)
		default:
			updates := map[string]interface{}{
				"ip":        lease.IP,
				"hostname":  hostname,
				"last_seen": now,
				"is_online": true,
			}
			if err := t.db.Model(&device).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update device %s: %w", lease.MAC, err)
			}
		}
	}

	return nil
}

// List returns devices for display, most recent first. A device is included
// when it is online right now, or was last seen inside the display window;
// anything older is soft-hidden, not deleted. The online flag in the result
// is recomputed from last_seen, never read from storage.
func (t *Tracker) List(window time.Duration) ([]models.DeviceResponse, error) {
	if window <= 0 {
		window = DefaultDisplayWindow
	}

	var devices []models.Device
	if err := t.db.Order("last_seen DESC").Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	now := t.now()
	cutoff := now.Add(-window)

	responses := make([]models.DeviceResponse, 0, len(devices))
	for _, d := range devices {
		if !d.OnlineNow(now) && d.LastSeen.Before(cutoff) {
			continue
		}
		responses = append(responses, d.ToResponse(now))
	}
	return responses, nil
}

// MarkOffline clears the stored online flag for one device.
func (t *Tracker) MarkOffline(mac string) error {
	return t.db.Model(&models.Device{}).Where("mac = ?", mac).Update("is_online", false).Error
}

// Sweep hard-deletes devices unseen for longer than the retention period and
// returns how many were removed.
func (t *Tracker) Sweep(retention time.Duration) (int64, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}

	cutoff := t.now().Add(-retention)
	res := t.db.Where("last_seen < ?", cutoff).Delete(&models.Device{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to sweep old devices: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		log.Logger.Infof("Deleted %d old devices", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
