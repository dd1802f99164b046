// Command fbingest runs the Facebook export to PostgreSQL batch load once and
// prints the run summary as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fbingest/internal/blobstore"
	"fbingest/internal/config"
	"fbingest/internal/database"
	"fbingest/internal/etl"
	"fbingest/internal/repository"
)

func main() {
	localPath := flag.String("local", "", "Read the export from a local file instead of S3")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.VerifyTables(db); err != nil {
		logger.Error("required database tables missing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var fetcher blobstore.Fetcher
	if *localPath != "" {
		fetcher = &blobstore.FileFetcher{Path: *localPath}
	} else {
		fetcher, err = blobstore.NewS3Fetcher(ctx, cfg)
		if err != nil {
			logger.Error("failed to initialize S3 client", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	runner := etl.NewRunner(
		fetcher,
		repository.NewPostRepository(db),
		repository.NewCommentRepository(db),
		cfg.BatchSize,
		logger,
	)

	summary := runner.Run(ctx)

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		logger.Error("failed to encode summary", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(string(out))

	if summary.Status == etl.StatusFatalError {
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}
