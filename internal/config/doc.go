// Package config provides configuration management for chngfilter.
//
// # Configuration Sources
//
// Configuration is layered, later sources overriding earlier ones:
//
//	1. Default values (Default)
//	2. A YAML file (config.yaml, configs/config.yaml or CHNG_CONFIG_FILE)
//	3. Environment variables, after an optional .env file is loaded
//
// # Environment Variables
//
// All environment variables are prefixed with CHNG_ and follow the struct
// layout:
//
//	CHNG_SERVER_PORT=8080
//	CHNG_SERVER_MAX_UPLOAD_BYTES=33554432
//	CHNG_LOGGING_LEVEL=debug
//	CHNG_COLUMNS_CHANGE=%CHNG
//	CHNG_TELEMETRY_TRACE_EXPORTER=stdout
//
// The filter thresholds are not read from configuration; they are
// request or command-line parameters with fixed defaults.
package config
