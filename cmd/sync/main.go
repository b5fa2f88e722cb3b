package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/courtdata/courtsync/internal/app"
	"github.com/courtdata/courtsync/internal/config"
	"github.com/courtdata/courtsync/internal/interfaces/feedfile"
	"github.com/courtdata/courtsync/internal/observability"
	"github.com/courtdata/courtsync/internal/platform/logging"
	"github.com/courtdata/courtsync/internal/provider"
	"github.com/courtdata/courtsync/internal/provider/euroleague"
	"github.com/courtdata/courtsync/internal/provider/winnerleague"
	"github.com/courtdata/courtsync/internal/usecase"
)

var syncTracer = otel.Tracer("courtsync/cmd/sync")

func main() {
	_ = godotenv.Load()

	dryRun := flag.Bool("dry-run", false, "convert and count without writing anything")
	workers := flag.Int("workers", 0, "per-feed game worker count, 0 uses SYNC_MAX_WORKERS")
	audit := flag.Bool("audit", false, "report duplicate player candidates after ingesting")
	gaps := flag.Bool("gaps", true, "report data gaps per source after ingesting")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: sync [flags] <feed.json> [feed.json ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("shutdown tracing", "error", err)
		}
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() { _ = application.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, application, cfg, paths, *dryRun, *workers, *audit, *gaps); err != nil {
		logger.ErrorContext(ctx, "sync failed", "error", err)
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, application *app.App, cfg config.Config, paths []string, dryRun bool, workers int, audit, gaps bool) error {
	logger := application.Logger
	loader := feedfile.NewLoader()

	if workers <= 0 {
		workers = cfg.SyncMaxWorkers
	}

	sources := make([]string, 0, len(paths))
	for _, path := range paths {
		source, feed, err := loader.Load(ctx, path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}

		conv, err := converterFor(source, cfg.SyncSources)
		if err != nil {
			return fmt.Errorf("feed %s: %w", path, err)
		}

		feedCtx, span := syncTracer.Start(ctx, "sync.ingest_feed",
			trace.WithAttributes(
				attribute.String("feed.path", path),
				attribute.String("feed.source", source),
			),
		)
		result, err := application.Pipeline.Ingest(feedCtx, conv, usecase.PipelineInput{
			Feed:       feed,
			MaxWorkers: workers,
			DryRun:     dryRun,
		})
		span.End()
		if err != nil {
			return fmt.Errorf("ingest %s: %w", path, err)
		}

		logger.InfoContext(ctx, "feed ingested",
			"feed", path,
			"source", source,
			"dry_run", dryRun,
			"games", result.GameCount,
			"players", result.PlayerCount,
			"failed", result.FailedCount,
			"skipped", result.SkippedCount,
		)
		if err := printJSON(result); err != nil {
			return err
		}

		if !slices.Contains(sources, source) {
			sources = append(sources, source)
		}
	}

	if gaps && !dryRun {
		for _, source := range sources {
			report, err := application.Completeness.Detect(ctx, source)
			if err != nil {
				return fmt.Errorf("detect gaps for %s: %w", source, err)
			}
			logger.InfoContext(ctx, "gap report",
				"source", source,
				"incomplete_players", len(report.IncompletePlayers),
				"incomplete_teams", len(report.IncompleteTeams),
				"games_missing_stats", len(report.GamesMissingStats),
				"games_missing_events", len(report.GamesMissingEvents),
			)
			if err := printJSON(report); err != nil {
				return err
			}
		}
	}

	if audit && !dryRun {
		candidates, err := application.Resolver.AuditDuplicates(ctx)
		if err != nil {
			return fmt.Errorf("audit duplicates: %w", err)
		}
		logger.InfoContext(ctx, "duplicate audit", "candidates", len(candidates))
		if err := printJSON(candidates); err != nil {
			return err
		}
	}

	return nil
}

func converterFor(source string, allowed []string) (provider.Converter, error) {
	if !slices.Contains(allowed, source) {
		return nil, fmt.Errorf("source %q is not enabled (SYNC_SOURCES=%v)", source, allowed)
	}

	switch source {
	case "euroleague":
		return euroleague.New(), nil
	case "winnerleague":
		return winnerleague.New(), nil
	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}
}

func printJSON(v any) error {
	out, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
