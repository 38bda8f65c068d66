// Package services implements the business logic layer of the dashboard.
// It sits between the HTTP handlers and the data processing packages so
// that the pipeline rules live in one place and stay testable.
//
// AnalysisService runs one upload through the pipeline:
//
//	load (workbook or CSV) -> validate -> aggregate -> summarize
//
// Loader and aggregation failures are translated into AppErrors carrying
// the message shown to the user. Every run is traced as an analysis.run
// span and counted on the analysis metrics by outcome.
//
// HealthService answers the health, liveness and version endpoints.
package services
