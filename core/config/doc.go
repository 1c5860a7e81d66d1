// Package config provides configuration management for the grail monitor.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Log: Logging level and format
//   - Database: progress database connection (sqlite or MySQL)
//   - Storage: S3/MinIO credentials and bucket settings for backups
//   - Backup: save-file backup retention
//   - Monitor: save directory, game mode, tick and debounce intervals
//   - Catalog: item catalog data file
//   - Grail: which item forms and categories are tracked
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Monitor.SaveDir)
package config
