package config

import (
	"time"

	"chngfilter/pkg/contracts"
)

// Application constants
const (
	AppName    = "chngfilter"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable, e.g. CHNG_SERVER_PORT.
	EnvPrefix = "CHNG"

	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	DefaultRequestTimeout = 60 * time.Second
	DefaultMaxUploadBytes = 32 << 20 // 32MB

	DefaultOutputDir = "output"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// MaxPreviewRows caps the rows echoed back by the filter endpoints.
	MaxPreviewRows = 1000
)

// Endpoints
const (
	APIBasePath     = "/api"
	HealthEndpoint  = "/api/health"
	MetricsEndpoint = "/metrics"
)
