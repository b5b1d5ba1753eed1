package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sig-0/ratescope/chart"
	"github.com/sig-0/ratescope/frame"
	"github.com/sig-0/ratescope/nbp"
)

const (
	defaultPreviewRows = 10
	maxPreviewRows     = 100

	defaultChartWidth  = 900
	defaultChartHeight = 500

	dateLayout = "2006-01-02"
)

var (
	errUnableToDownload    = errors.New("unable to download rates")
	errUnableToSummarize   = errors.New("unable to summarize rates")
	errUnableToRenderChart = errors.New("unable to render chart")

	errInvalidBody      = errors.New("invalid request body")
	errInvalidDate      = errors.New("invalid date (must be YYYY-MM-DD)")
	errInvalidDateRange = errors.New("invalid date range")
	errInvalidCurrency  = errors.New("invalid currency (must be 3 letters)")
	errInvalidRows      = errors.New("invalid rows")
	errInvalidSize      = errors.New("invalid chart size")

	errCurrencyNotLoaded = errors.New("currency not loaded")
)

// DownloadRates downloads, shapes and stores the rate table for the
// requested currency and date range
func (s *Server) DownloadRates(w http.ResponseWriter, r *http.Request) {
	var req DownloadRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody)

		return
	}

	code, err := parseCurrencyCode(req.Code)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidDate)

		return
	}

	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidDate)

		return
	}

	table, err := s.analyser.Download(r.Context(), code, start, end)
	if err != nil {
		// A failed load leaves no stale data behind
		s.sessions.Invalidate(code)

		s.logger.Debug(
			"unable to download rates",
			"code", code,
			"err", err,
		)

		if errors.Is(err, nbp.ErrEndBeforeStart) {
			writeError(w, http.StatusBadRequest, errInvalidDateRange)

			return
		}

		writeError(w, http.StatusBadGateway, errUnableToDownload)

		return
	}

	s.sessions.Publish(code, table)

	writeJSON(w, http.StatusOK, &DownloadResponse{
		Code: code,
		Rows: table.Len(),
	})
}

// Preview returns the last N rows of the stored table for the currency
func (s *Server) Preview(w http.ResponseWriter, r *http.Request) {
	table, ok := s.loadTable(w, r)
	if !ok {
		return
	}

	rows, err := parseRows(r.URL.Query().Get("rows"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	var (
		total = table.Len()
		from  = max(total-rows, 0)

		results = make([]PreviewRow, 0, total-from)
	)

	bid, _ := table.Column(frame.ColumnBid)
	ask, _ := table.Column(frame.ColumnAsk)
	spread, _ := table.Column(frame.ColumnSpread)

	for i := from; i < total; i++ {
		row := PreviewRow{
			EffectiveDate: table.Dates[i].Format(dateLayout),
			Bid:           bid.Values[i],
			Ask:           ask.Values[i],
			Spread:        spread.Values[i],
		}

		if table.IDs != nil {
			row.ID = table.IDs[i]
		}

		results = append(results, row)
	}

	writeJSON(w, http.StatusOK, &PreviewResponse{
		Results: results,
		Total:   total,
	})
}

// Summary returns the per-variable min / mean / max of the stored table
func (s *Server) Summary(w http.ResponseWriter, r *http.Request) {
	table, ok := s.loadTable(w, r)
	if !ok {
		return
	}

	summary, err := s.analyser.Summary(table)
	if err != nil {
		s.logger.Debug(
			"unable to summarize rates",
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToSummarize,
		)

		return
	}

	writeJSON(w, http.StatusOK, &SummaryResponse{
		Results: summary,
	})
}

// HistogramChart renders the bid/ask distribution chart as HTML
func (s *Server) HistogramChart(w http.ResponseWriter, r *http.Request) {
	table, ok := s.loadTable(w, r)
	if !ok {
		return
	}

	width, height, err := parseChartSize(
		r.URL.Query().Get("width"),
		r.URL.Query().Get("height"),
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	figure, err := s.analyser.Histogram(table, width, height)
	if err != nil {
		s.logger.Debug(
			"unable to build histogram",
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToRenderChart,
		)

		return
	}

	writeFigure(w, figure)
}

// SeriesChart renders the bid/ask time-series chart as HTML
func (s *Server) SeriesChart(w http.ResponseWriter, r *http.Request) {
	table, ok := s.loadTable(w, r)
	if !ok {
		return
	}

	figure, err := s.analyser.Series(table)
	if err != nil {
		s.logger.Debug(
			"unable to build time series",
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToRenderChart,
		)

		return
	}

	writeFigure(w, figure)
}

// Currencies lists the loaded currency codes
func (s *Server) Currencies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, &CurrenciesResponse{
		Results: s.sessions.Currencies(),
	})
}

// loadTable resolves the stored rate table for the route's currency,
// writing the error response on failure
func (s *Server) loadTable(w http.ResponseWriter, r *http.Request) (*frame.Table, bool) {
	code, err := parseCurrencyCode(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return nil, false
	}

	state, ok := s.sessions.Get(code)
	if !ok {
		writeError(w, http.StatusNotFound, errCurrencyNotLoaded)

		return nil, false
	}

	return state.Table, true
}

func parseCurrencyCode(v string) (string, error) {
	code := nbp.FormatCode(v)
	if len(code) != 3 {
		return "", errInvalidCurrency
	}

	for i := 0; i < 3; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return "", errInvalidCurrency
		}
	}

	return code, nil
}

func parseRows(rowsRaw string) (int, error) {
	v := strings.TrimSpace(rowsRaw)
	if v == "" {
		return defaultPreviewRows, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, errInvalidRows
	}

	if n > maxPreviewRows {
		n = maxPreviewRows
	}

	return n, nil
}

func parseChartSize(widthRaw, heightRaw string) (int, int, error) {
	parse := func(raw string, fallback int) (int, error) {
		v := strings.TrimSpace(raw)
		if v == "" {
			return fallback, nil
		}

		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, errInvalidSize
		}

		return n, nil
	}

	width, err := parse(widthRaw, defaultChartWidth)
	if err != nil {
		return 0, 0, err
	}

	height, err := parse(heightRaw, defaultChartHeight)
	if err != nil {
		return 0, 0, err
	}

	return width, height, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Fine to ignore
}

func writeFigure(w http.ResponseWriter, figure chart.Figure) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_ = figure.Render(w) //nolint:errcheck // Fine to ignore
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := &ErrorResponse{
		Error: err.Error(),
	}

	writeJSON(w, status, resp)
}
