// Package dataprocessing turns an uploaded marketing spreadsheet into the
// typed aggregates shown on the dashboard.
//
// # Architecture
//
// The package has two stages:
//
// 1. Loader: reads an XLSX workbook or CSV table, matches the required
// columns, parses dates and money cells and returns a domain.Dataset.
// 2. Aggregation: folds validated records into overall KPIs and one
// breakdown per dimension, then derives chart series and highlights.
//
// # Usage
//
//	loader := dataprocessing.NewLoader("Sheet1", logger)
//	ds, err := loader.LoadFile("transactions.xlsx")
//	if err != nil {
//	    return err
//	}
//	agg, err := dataprocessing.Aggregate(ds.Records)
//	if err != nil {
//	    return err
//	}
//	summary := dataprocessing.Summarize(agg)
//
// # Error Handling
//
// A header without the required columns yields an *InputFormatError
// (errors.Is(err, ErrInputFormat)). Rows whose date cannot be parsed are
// dropped and counted in Dataset.DroppedRows. Malformed numeric cells are
// collected in Dataset.CellErrors and rejected by the analysis step.
// Aggregating zero records returns ErrEmptyDataset.
//
// Ratios with a zero denominator are reported as domain.UndefinedRatio.
package dataprocessing
