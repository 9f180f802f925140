package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// TableLister reports the tables held by the session.
type TableLister interface {
	Tables(ctx context.Context) []TableInfo
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	tables    TableLister
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Tables    map[Slot]string        `json:"tables"`
}

// NewHealthService creates a health service
func NewHealthService(version string, tables TableLister, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		tables:    tables,
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthCheck returns overall health status. Tables maps each slot to the
// name of the loaded file, or "empty".
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(hs.startTime).Seconds(),
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
		},
		Tables: map[Slot]string{
			SlotFirst:  "empty",
			SlotSecond: "empty",
		},
	}

	if hs.tables != nil {
		for _, info := range hs.tables.Tables(ctx) {
			status.Tables[info.Slot] = info.Name
		}
	}

	hs.logger.DebugContext(ctx, "health check completed",
		slog.String("status", status.Status),
		slog.String("uptime", time.Since(hs.startTime).String()))

	return status
}
