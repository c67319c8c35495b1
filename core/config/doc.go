// Package config provides configuration management for gamedata-manager.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Archive: local data directory, index file names, locale
//   - Remote: S3/MinIO credentials for an archive CDN mirror
//   - Cache: default record-cache budgets
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Archive.Dir)
package config
