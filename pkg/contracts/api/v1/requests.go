// Package api contains the JSON contract of the Thread & Trend dashboard API.
// Version v1 represents the current stable API version.
package api

// AnalysisRequest carries the query options accepted alongside an upload.
type AnalysisRequest struct {
	Sheet   string `json:"sheet" query:"sheet" validate:"omitempty,max=31,sheetname"`
	Preview int    `json:"preview" query:"preview" validate:"omitempty,min=1,max=100"`
}

// ExportRequest carries the options of a report download. Dimension selects
// the breakdown written by the csv format and defaults to channel.
type ExportRequest struct {
	AnalysisRequest
	Format    string `json:"format" query:"format" validate:"required,oneof=xlsx csv"`
	Dimension string `json:"dimension" query:"dimension" validate:"omitempty,oneof=channel season customer_type time_of_day"`
}
