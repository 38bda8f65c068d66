// Package shared holds code used across packages that belongs to no
// single layer.
//
// The testutil subpackage builds in-memory marketing workbooks and
// captures slog output for assertions:
//
//	logger, logs := testutil.NewTestLogger(t)
//	buf := testutil.WorkbookBytes(t, "Sheet1", [][]interface{}{testutil.Header, row})
package shared
