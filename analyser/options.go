package analyser

import (
	"log/slog"
	"time"

	"github.com/sig-0/ratescope/nbp"
)

type Option func(a *Analyser)

// WithLogger specifies the logger for the analyser
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyser) {
		a.logger = l
	}
}

// WithTimeout specifies the fetch timeout.
// Must be positive; validated during construction
func WithTimeout(timeout time.Duration) Option {
	return func(a *Analyser) {
		a.timeout = timeout
	}
}

// WithDropID specifies whether record identifiers are discarded
// during shaping
func WithDropID(drop bool) Option {
	return func(a *Analyser) {
		a.dropID = drop
	}
}

// WithBaseURL specifies the API base URL for the owned client
func WithBaseURL(url string) Option {
	return func(a *Analyser) {
		a.baseURL = url
	}
}

// WithDownloader specifies a custom downloader, replacing the
// owned NBP client
func WithDownloader(d nbp.Downloader) Option {
	return func(a *Analyser) {
		a.downloader = d
	}
}
