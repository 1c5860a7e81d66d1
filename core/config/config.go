package config

import (
	"reflect"
	"strings"

	"grail-monitor/core/database"
	"grail-monitor/core/logger"
	"grail-monitor/core/server"
	"grail-monitor/core/storage"
	"grail-monitor/feature/backup"
	"grail-monitor/feature/catalog"
	"grail-monitor/feature/monitor"
	"grail-monitor/feature/stats"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the progress database.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the backup object storage.
	Storage storage.Config `mapstructure:"storage"`
	// Backup holds configuration for save-file backups.
	Backup backup.Config `mapstructure:"backup"`
	// Monitor holds configuration for save directory watching.
	Monitor monitor.Config `mapstructure:"monitor"`
	// Catalog holds configuration for the item catalog data.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Grail holds the tracking settings for the stats engine.
	Grail stats.Settings `mapstructure:"grail"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. MONITOR_SAVE_DIR -> monitor.save_dir)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
