// Package config provides configuration management for grain.
//
// It utilizes Viper for loading configuration from environment variables, an optional
// .env file and an optional config file passed with --config.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Remote: ingestion service URL, API version and credentials
//   - Sync: batch size, pacing, wait-path polling and the payload backend
//   - Storage: S3/MinIO settings for the object payload backend
//   - Log: logging level and format
//   - Database: the pass history database (sqlite or mysql)
//   - Server: HTTP API port and API key
//
// Every field declares its default in a `default` struct tag. Environment variables map
// onto nested keys by replacing dots with underscores, e.g. SYNC_BATCH_SIZE sets
// sync.batch_size.
//
// # Usage
//
//	cfg, err := config.Load(".", configFile)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Remote.BaseURL)
package config
