package serve

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/sync/errgroup"

	"github.com/sig-0/ratescope/analyser"
	"github.com/sig-0/ratescope/cmd/env"
	"github.com/sig-0/ratescope/nbp"
	"github.com/sig-0/ratescope/refresh"
	"github.com/sig-0/ratescope/server"
	"github.com/sig-0/ratescope/server/config"
	"github.com/sig-0/ratescope/session"
)

// serveCfg wraps the serve configuration
type serveCfg struct {
	config *config.Config

	configPath string

	baseURL string
	track   string

	timeout         time.Duration
	months          int
	refreshInterval time.Duration

	dropID bool
}

// NewServeCmd creates the serve subcommand
func NewServeCmd() *ffcli.Command {
	cfg := &serveCfg{
		config: config.DefaultConfig(),
	}

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "serve",
		ShortUsage: "serve [flags]",
		LongHelp:   "Serves the ratescope backend",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *serveCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.config.ListenAddress,
		"listen",
		config.DefaultListenAddress,
		"the IP:PORT URL for the server",
	)

	fs.StringVar(
		&c.configPath,
		"config",
		"",
		"the path to the server TOML configuration, if any",
	)

	fs.StringVar(
		&c.baseURL,
		"nbp-url",
		nbp.DefaultBaseURL,
		"the NBP C-table API base URL",
	)

	fs.StringVar(
		&c.track,
		"track",
		"",
		"comma-separated currency codes to refresh periodically",
	)

	fs.DurationVar(
		&c.timeout,
		"timeout",
		analyser.DefaultTimeout,
		"the timeout for a single rate download, must be positive",
	)

	fs.IntVar(
		&c.months,
		"months",
		6,
		"the trailing window of months tracked currencies cover",
	)

	fs.DurationVar(
		&c.refreshInterval,
		"refresh-interval",
		time.Hour*24,
		"the interval at which tracked currencies are refreshed",
	)

	fs.BoolVar(
		&c.dropID,
		"drop-id",
		false,
		"drop the NBP record identifiers instead of keeping them as row keys",
	)
}

func (c *serveCfg) exec(ctx context.Context, _ []string) error {
	// Read the server configuration, if any
	if c.configPath != "" {
		serverCfg, err := config.Read(c.configPath)
		if err != nil {
			return fmt.Errorf("unable to read server config, %w", err)
		}

		c.config = serverCfg
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("unable to load .env file")
	}

	// Create the analyser
	a, err := analyser.New(
		analyser.WithLogger(logger),
		analyser.WithBaseURL(c.baseURL),
		analyser.WithTimeout(c.timeout),
		analyser.WithDropID(c.dropID),
	)
	if err != nil {
		return fmt.Errorf("unable to create analyser, %w", err)
	}

	// Create the in-memory session store
	sessions := session.NewStore()

	s, err := server.New(
		a,
		sessions,
		server.WithLogger(logger),
		server.WithConfig(c.config),
	)
	if err != nil {
		return fmt.Errorf("unable to create server, %w", err)
	}

	// Set up the currency refresh orchestrator
	orchestrator := refresh.New(
		a,
		sessions,
		refresh.WithLogger(logger),
	)

	for _, code := range strings.Split(c.track, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}

		job := refresh.NewWindowJob(code, c.months, c.refreshInterval)

		if err := orchestrator.Register(job); err != nil {
			return fmt.Errorf("unable to register refresh job, %w", err)
		}
	}

	runCtx, cancelFn := signal.NotifyContext(
		ctx,
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelFn()

	group, gCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		return s.Serve(gCtx)
	})

	group.Go(func() error {
		return orchestrator.Start(gCtx)
	})

	return group.Wait()
}
