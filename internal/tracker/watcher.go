package tracker

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/pirouter/api/internal/network"
	"github.com/pirouter/api/pkg/log"
)

// Watcher feeds lease-table changes into the tracker as dnsmasq rewrites its
// lease file, so device sightings land without polling.
type Watcher struct {
	tracker    *Tracker
	leasesFile string

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
}

// NewWatcher builds a watcher over the given lease file.
func NewWatcher(tracker *Tracker, leasesFile string) *Watcher {
	return &Watcher{
		tracker:    tracker,
		leasesFile: leasesFile,
		stopCh:     make(chan struct{}),
	}
}

// Start performs an initial ingestion and begins watching for rewrites.
func (w *Watcher) Start() error {
	var err error
	w.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := w.ingestFile(); err != nil {
		log.Logger.Warnf("Initial lease ingestion failed: %v", err)
	}

	go w.loop()

	if err := w.watcher.Add(w.leasesFile); err != nil {
		log.Logger.Warnf("Failed to watch leases file %s: %v", w.leasesFile, err)
	}
	return nil
}

// Stop shuts the watcher down.
func (w *Watcher) Stop() {
	close(w.stopCh)
	if w.watcher != nil {
		w.watcher.Close()
	}
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if err := w.ingestFile(); err != nil {
					log.Logger.Warnf("Lease ingestion failed: %v", err)
				}
			}
			// dnsmasq may replace the file instead of appending; re-arm
			// the watch after a rename.
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				w.watcher.Add(w.leasesFile)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Logger.Warnf("Lease file watcher error: %v", err)
		}
	}
}

func (w *Watcher) ingestFile() error {
	content, err := os.ReadFile(w.leasesFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return w.tracker.Ingest(network.ParseLeases(string(content)))
}
