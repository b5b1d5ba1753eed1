// Package fetch implements the one-shot download command: fetch a
// currency's rates over a date range, print the summary, and optionally
// write the chart documents to disk
package fetch

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/ratescope/analyser"
	"github.com/sig-0/ratescope/chart"
	"github.com/sig-0/ratescope/cmd/env"
	"github.com/sig-0/ratescope/nbp"
)

const dateLayout = "2006-01-02"

var errMissingCode = errors.New("missing currency code")

// fetchCfg wraps the fetch configuration
type fetchCfg struct {
	code  string
	start string
	end   string

	baseURL   string
	chartsDir string

	timeout time.Duration
	months  int

	dropID bool
}

// NewFetchCmd creates the fetch subcommand
func NewFetchCmd() *ffcli.Command {
	cfg := &fetchCfg{}

	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "fetch",
		ShortUsage: "fetch -code <code> [flags]",
		LongHelp:   "Downloads rates for a currency and prints their summary",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *fetchCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.code,
		"code",
		"",
		"the currency code to download rates for",
	)

	fs.StringVar(
		&c.start,
		"start",
		"",
		"the range start date (YYYY-MM-DD); defaults to -months from today",
	)

	fs.StringVar(
		&c.end,
		"end",
		"",
		"the range end date (YYYY-MM-DD); defaults to today",
	)

	fs.StringVar(
		&c.baseURL,
		"nbp-url",
		nbp.DefaultBaseURL,
		"the NBP C-table API base URL",
	)

	fs.StringVar(
		&c.chartsDir,
		"charts-dir",
		"",
		"write histogram.html and series.html to this directory, if set",
	)

	fs.DurationVar(
		&c.timeout,
		"timeout",
		analyser.DefaultTimeout,
		"the timeout for the rate download, must be positive",
	)

	fs.IntVar(
		&c.months,
		"months",
		6,
		"the trailing window of months, used when -start is not given",
	)

	fs.BoolVar(
		&c.dropID,
		"drop-id",
		false,
		"drop the NBP record identifiers instead of keeping them as row keys",
	)
}

func (c *fetchCfg) exec(ctx context.Context, _ []string) error {
	if c.code == "" {
		return errMissingCode
	}

	// Resolve the date range
	end := time.Now()

	if c.end != "" {
		parsed, err := time.Parse(dateLayout, c.end)
		if err != nil {
			return fmt.Errorf("unable to parse end date, %w", err)
		}

		end = parsed
	}

	start := end.AddDate(0, -c.months, 0)

	if c.start != "" {
		parsed, err := time.Parse(dateLayout, c.start)
		if err != nil {
			return fmt.Errorf("unable to parse start date, %w", err)
		}

		start = parsed
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	a, err := analyser.New(
		analyser.WithLogger(logger),
		analyser.WithBaseURL(c.baseURL),
		analyser.WithTimeout(c.timeout),
		analyser.WithDropID(c.dropID),
	)
	if err != nil {
		return fmt.Errorf("unable to create analyser, %w", err)
	}

	table, err := a.Download(ctx, c.code, start, end)
	if err != nil {
		return fmt.Errorf("unable to download rates, %w", err)
	}

	summary, err := a.Summary(table)
	if err != nil {
		return fmt.Errorf("unable to summarize rates, %w", err)
	}

	// Print the summary
	fmt.Printf(
		"%s, %s - %s (%d rows)\n\n",
		nbp.FormatCode(c.code),
		start.Format(dateLayout),
		end.Format(dateLayout),
		table.Len(),
	)

	fmt.Printf("%-8s %12s %12s %12s\n", "", "min", "mean", "max")

	for _, stats := range summary {
		fmt.Printf(
			"%-8s %12s %12s %12s\n",
			stats.Variable,
			stats.Min.String(),
			stats.Mean.Round(6).String(),
			stats.Max.String(),
		)
	}

	if c.chartsDir == "" {
		return nil
	}

	// Write the chart documents
	histogram, err := a.Histogram(table, 900, 500)
	if err != nil {
		return fmt.Errorf("unable to build histogram, %w", err)
	}

	series, err := a.Series(table)
	if err != nil {
		return fmt.Errorf("unable to build time series, %w", err)
	}

	charts := []struct {
		figure chart.Figure
		name   string
	}{
		{histogram, "histogram.html"},
		{series, "series.html"},
	}

	for _, ch := range charts {
		if err := writeFigure(ch.figure, filepath.Join(c.chartsDir, ch.name)); err != nil {
			return err
		}
	}

	return nil
}

// writeFigure renders the figure into the given file
func writeFigure(figure chart.Figure, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create chart file, %w", err)
	}
	defer f.Close()

	if err := figure.Render(f); err != nil {
		return fmt.Errorf("unable to render chart, %w", err)
	}

	return nil
}
