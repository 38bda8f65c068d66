// Package app wires the dashboard together and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration (defaults, YAML file, TREND_* environment)
//	2. Initialize logging and OpenTelemetry
//	3. Create business metrics and the error handler
//	4. Initialize the analysis and health services
//	5. Set up middleware and HTTP handlers
//	6. Configure the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication(configPath)
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// Run serves until SIGINT or SIGTERM, then drains in-flight requests
// within Server.ShutdownTimeout and flushes telemetry.
//
// Initialization errors are returned to the caller; the package never
// calls os.Exit.
package app
