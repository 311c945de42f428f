package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pirouter/api/pkg/log"
	"sigs.k8s.io/yaml"
)

// Manager loads and saves the persisted network configuration. It is the
// single writer for network.yaml; handlers mirror successful reconciliations
// through it.
type Manager struct {
	configDir   string
	networkFile string
}

// NewManager creates a configuration manager rooted at configDir.
func NewManager(configDir string) (*Manager, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}
	return &Manager{
		configDir:   configDir,
		networkFile: filepath.Join(configDir, "network.yaml"),
	}, nil
}

// LoadNetwork reads network.yaml, creating it with factory defaults when it
// does not exist yet.
func (m *Manager) LoadNetwork() (*NetworkConfig, error) {
	data, err := os.ReadFile(m.networkFile)
	if os.IsNotExist(err) {
		log.Logger.Info("Network config not found, creating defaults")
		cfg := DefaultNetworkConfig()
		if err := m.SaveNetwork(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read network config: %w", err)
	}

	cfg := &NetworkConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse network config: %w", err)
	}
	return cfg, nil
}

// SaveNetwork writes network.yaml, keeping a backup of the previous contents.
// If the write fails the backup is restored.
func (m *Manager) SaveNetwork(cfg *NetworkConfig) error {
	backupFile := m.networkFile + ".backup"
	if prev, err := os.ReadFile(m.networkFile); err == nil {
		if err := os.WriteFile(backupFile, prev, 0o600); err != nil {
			log.Logger.Warnf("Failed to write config backup: %v", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal network config: %w", err)
	}

	if err := os.WriteFile(m.networkFile, data, 0o600); err != nil {
		if backup, berr := os.ReadFile(backupFile); berr == nil {
			if rerr := os.WriteFile(m.networkFile, backup, 0o600); rerr != nil {
				log.Logger.Errorf("Failed to restore config backup: %v", rerr)
			}
		}
		return fmt.Errorf("failed to save network config: %w", err)
	}

	log.Logger.Info("Network configuration saved")
	return nil
}

// ResetToFactory moves the current config aside and recreates defaults.
func (m *Manager) ResetToFactory() (*NetworkConfig, error) {
	log.Logger.Warn("Resetting configuration to factory defaults")

	if _, err := os.Stat(m.networkFile); err == nil {
		factoryBackup := filepath.Join(m.configDir, "network.yaml.factory_backup")
		if err := os.Rename(m.networkFile, factoryBackup); err != nil {
			return nil, fmt.Errorf("failed to back up current config: %w", err)
		}
	}

	return m.LoadNetwork()
}
