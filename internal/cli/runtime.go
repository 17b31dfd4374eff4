package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/redsoxbot/soxbot/internal/config"
	"github.com/redsoxbot/soxbot/internal/logger"
	"github.com/redsoxbot/soxbot/internal/notifier"
	"github.com/redsoxbot/soxbot/internal/post"
	"github.com/redsoxbot/soxbot/internal/poster"
	"github.com/redsoxbot/soxbot/internal/storage"
)

const metricsJob = "soxbot"

// runtime holds what every posting command builds from the configuration
type runtime struct {
	cfg     *config.Config
	loc     *time.Location
	store   storage.ObjectStore
	markers *storage.Markers
	format  OutputFormat
}

// setup loads configuration and opens the marker store. Its errors are
// configuration errors and end the command with a non-zero exit.
func setup(ctx context.Context) (*runtime, error) {
	config.LoadEnv()

	cfg, err := config.Load(flagTeamFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", poster.ErrConfiguration, err)
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	if flagPlatform != "" {
		cfg.Platform = flagPlatform
	}

	format, err := parseFormat(flagFormat)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Team.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", poster.ErrConfiguration, err)
	}

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s store: %w", poster.ErrConfiguration, cfg.Store.Kind, err)
	}

	logger.Debug("Configuration loaded", logger.Fields{
		"team":      cfg.Team.FullName,
		"platform":  cfg.Platform,
		"store":     cfg.Store.Kind,
		"namespace": cfg.Store.Namespace,
	})

	return &runtime{
		cfg:     cfg,
		loc:     loc,
		store:   store,
		markers: storage.NewMarkers(store, cfg.Store.Namespace),
		format:  format,
	}, nil
}

func openStore(ctx context.Context, sc config.StoreConfig) (storage.ObjectStore, error) {
	switch sc.Kind {
	case config.StoreFile:
		return storage.NewFileStore(sc.DataDir)
	case config.StoreMemory:
		return storage.NewMemoryStore(), nil
	default:
		return storage.NewS3Store(ctx, sc.S3)
	}
}

// sender returns the platform notifier for live runs and a printing
// notifier otherwise. Dry-run posts go to stderr when stdout carries JSON.
func (r *runtime) sender(live bool, out io.Writer) (notifier.Notifier, error) {
	if !live {
		if r.format == FormatJSON {
			out = os.Stderr
		}
		return notifier.NewDryRunNotifierTo(out), nil
	}

	n, err := notifier.New(r.cfg.Platform, r.cfg.Credentials)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", poster.ErrConfiguration, err)
	}
	return n, nil
}

func (r *runtime) posterConfig(force, dryRun bool) poster.Config {
	return poster.Config{
		Location: r.loc,
		Formatter: post.Formatter{
			TeamName: r.cfg.Team.Name,
			SiteURL:  r.cfg.Team.SiteURL,
		},
		Force:  force,
		DryRun: dryRun,
		Pause:  poster.DefaultPause,
	}
}

// close pushes run metrics when a Pushgateway is configured
func (r *runtime) close(ctx context.Context) {
	if r.cfg.PushgatewayURL == "" {
		return
	}
	if err := logger.PushMetrics(ctx, r.cfg.PushgatewayURL, metricsJob); err != nil {
		logger.Warn("Failed to push metrics", logger.Fields{"gateway": r.cfg.PushgatewayURL, "error": err.Error()})
	}
}
