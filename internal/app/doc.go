// Package app provides application initialization and lifecycle management
// for the chngfilter server. It wires configuration, logging, OpenTelemetry,
// the filter service and the HTTP handlers together.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, config.yaml, .env and CHNG_* variables
//	2. Initialize the slog logger and OpenTelemetry providers
//	3. Create the loader, the workbook exporter and the FilterService
//	4. Set up the chi router and middleware
//	5. Configure the HTTP server
//
// # Usage
//
//	app, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// Run returns after SIGINT, SIGTERM or cancellation of its context. Active
// requests get the configured shutdown timeout to complete, then the
// OpenTelemetry providers are flushed.
//
// The app does not call os.Exit(); main decides the exit code.
package app
