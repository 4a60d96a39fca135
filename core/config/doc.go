// Package config provides configuration management for the sync service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv). Defaults come from 'default' struct
// tags which are bound recursively through reflection.
//
// # Configuration Structure
//
// The Config struct aggregates per-package sections:
//   - Server: HTTP entry point (port, API key)
//   - Log: logging level and format
//   - Feed: merchant CSV feed (URL, delimiter, timeout)
//   - Hood: marketplace account and endpoint
//   - Database: optional MySQL run journal
//   - Storage: optional S3/MinIO audit archive
//
// # Environment Mapping
//
// Nested keys map to underscore-separated environment variables, so feed.url
// becomes FEED_URL and hood.endpoint becomes HOOD_ENDPOINT.
//
// # Validation
//
// Validate enforces required settings using go-playground/validator tags and
// wraps failures in ConfigurationError. Entry points call it before doing any
// network work.
package config
