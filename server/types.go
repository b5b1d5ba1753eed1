package server

import (
	"github.com/shopspring/decimal"

	"github.com/sig-0/ratescope/frame"
)

// DownloadRequest triggers a rate download for a currency and date range
type DownloadRequest struct {
	Code      string `json:"code"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// DownloadResponse reports a completed download
type DownloadResponse struct {
	Code string `json:"code"`
	Rows int    `json:"rows"`
}

// PreviewRow is a single canonical table row in a preview
type PreviewRow struct {
	ID            string          `json:"id,omitempty"`
	EffectiveDate string          `json:"effective_date"`
	Bid           decimal.Decimal `json:"bid"`
	Ask           decimal.Decimal `json:"ask"`
	Spread        decimal.Decimal `json:"spread"`
}

// PreviewResponse is the tail preview of a downloaded table
type PreviewResponse struct {
	Results []PreviewRow `json:"results"`
	Total   int          `json:"total"`
}

// SummaryResponse wraps the per-variable aggregates
type SummaryResponse struct {
	Results frame.Summary `json:"results"`
}

// CurrenciesResponse lists the loaded currency codes
type CurrenciesResponse struct {
	Results []string `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
