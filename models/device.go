package models

import (
	"fmt"
	"time"
)

// OnlineWindow is how recently a device must have been seen to count as
// online right now. Lease renewals can lag actual attachment, so listings
// use a wider display window on top of this.
const OnlineWindow = 5 * time.Minute

// Device is a client known from the DHCP lease table, keyed by MAC address.
type Device struct {
	MAC       string    `gorm:"primaryKey" json:"mac"`
	IP        string    `json:"ip"`
	Hostname  string    `json:"hostname"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
	// IsOnline is set on every sighting but is advisory only; listings
	// recompute the live state from LastSeen.
	IsOnline bool `json:"is_online"`
}

// DeviceResponse is the public representation with derived presence fields.
type DeviceResponse struct {
	MAC       string    `json:"mac"`
	IP        string    `json:"ip"`
	Hostname  string    `json:"hostname"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
	IsOnline  bool      `json:"is_online"`
	TimeAgo   string    `json:"time_ago"`
}

// OnlineNow reports whether the device was seen within OnlineWindow of now.
func (d *Device) OnlineNow(now time.Time) bool {
	return now.Sub(d.LastSeen) < OnlineWindow
}

// ToResponse builds the derived view as of now.
func (d *Device) ToResponse(now time.Time) DeviceResponse {
	return DeviceResponse{
		MAC:       d.MAC,
		IP:        d.IP,
		Hostname:  d.Hostname,
		FirstSeen: d.FirstSeen,
		LastSeen:  d.LastSeen,
		IsOnline:  d.OnlineNow(now),
		TimeAgo:   TimeAgo(d.LastSeen, now),
	}
}

// TimeAgo renders a human-readable recency string for a timestamp.
func TimeAgo(t, now time.Time) string {
	seconds := now.Sub(t).Seconds()
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", int(seconds/60))
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", int(seconds/3600))
	default:
		return fmt.Sprintf("%dd ago", int(seconds/86400))
	}
}
