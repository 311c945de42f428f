// Package handlers holds the HTTP request handlers for the router API.
package handlers

import (
	"github.com/pirouter/api/config"
	"github.com/pirouter/api/database"
	"github.com/pirouter/api/internal/network"
	"github.com/pirouter/api/internal/system"
	"github.com/pirouter/api/internal/tracker"
	"github.com/pirouter/api/models"
	"github.com/pirouter/api/pkg/log"
)

// API bundles the managers the handlers operate on. Everything is injected
// at startup so tests can substitute fakes.
type API struct {
	Network *network.Manager
	System  *system.Manager
	Tracker *tracker.Tracker
	Config  *config.Manager
}

func NewAPI(net *network.Manager, sys *system.Manager, tr *tracker.Tracker, cfg *config.Manager) *API {
	return &API{Network: net, System: sys, Tracker: tr, Config: cfg}
}

// recordEvent writes an audit entry; failures are logged, never surfaced.
func recordEvent(eventType, description string) {
	event := models.SystemEvent{EventType: eventType, Description: description}
	if err := database.DB.Create(&event).Error; err != nil {
		log.Logger.Warnf("failed to record %s event: %v", eventType, err)
	}
}

// recordServiceLog attributes an outcome line to a managed service in the
// persistent service log.
func recordServiceLog(service, level, message string) {
	entry := models.ServiceLog{Service: service, Level: level, Message: message}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Logger.Warnf("failed to record service log for %s: %v", service, err)
	}
}
