// Package config loads and validates application settings from defaults,
// an optional config.yaml, a .env file and TASKAPI_* environment variables.
package config
