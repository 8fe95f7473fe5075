// Package config provides configuration management for the Tag Manager.
//
// It utilizes Viper for loading configuration. Sources, lowest priority first:
// the `default` struct tags, an optional tag-manager.yaml, the .env file and the
// environment (IMPORT_MODE sets import.mode). LoadConfig validates the result.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, upload limit)
//   - Database: MySQL or SQLite connection details
//   - Storage: S3/MinIO credentials and the bucket holding import files
//   - Log: Logging level and format
//   - Import: defaults for import passes (controllers, mode, rules, delete handling)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	settings := cfg.Import.Settings()
package config
