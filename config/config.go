package config

import (
	"os"

	"github.com/pirouter/api/pkg/log"
	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Host string `mapstructure:"HOST"`
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Auth
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	AdminUsername string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	// Paths
	ConfigDir  string `mapstructure:"CONFIG_DIR"`
	StateDir   string `mapstructure:"STATE_DIR"`
	DBPath     string `mapstructure:"DB_PATH"`
	LeasesFile string `mapstructure:"LEASES_FILE"`

	// Radios
	UplinkInterface string `mapstructure:"UPLINK_INTERFACE"`
	APInterface     string `mapstructure:"AP_INTERFACE"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

var AppConfig *Config

func Load() (*Config, error) {
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("JWT_SECRET", "CHANGE_THIS_SECRET_KEY_IN_PRODUCTION")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "admin123")
	viper.SetDefault("CONFIG_DIR", "/etc/pi-router")
	viper.SetDefault("STATE_DIR", "/var/lib/pi-router")
	viper.SetDefault("DB_PATH", "/var/lib/pi-router/data/pi-router.db")
	viper.SetDefault("LEASES_FILE", "/var/lib/misc/dnsmasq.leases")
	viper.SetDefault("UPLINK_INTERFACE", "wlan0")
	viper.SetDefault("AP_INTERFACE", "wlan1")
	viper.SetDefault("LOG_LEVEL", "info")

	// Only try to read .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		viper.SetConfigFile(".env")
		if err := viper.ReadInConfig(); err != nil {
			log.Logger.Warnf("Error reading .env file: %v", err)
		} else {
			log.Logger.Info("Loaded configuration from .env file")
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	AppConfig = config
	return config, nil
}
