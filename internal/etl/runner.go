// Package etl drives the extract-batch-upsert pipeline for one export file.
package etl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fbingest/internal/batch"
	"fbingest/internal/blobstore"
	"fbingest/internal/extract"
	"fbingest/internal/repository"
)

// Status classifies the overall outcome of a run.
type Status string

const (
	StatusSuccess        Status = "success"
	StatusPartialFailure Status = "partial_failure"
	StatusFatalError     Status = "fatal_error"
)

// EntityStats aggregates batch outcomes for one record type.
type EntityStats struct {
	Total   int `json:"total"`
	Batches int `json:"batches"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// RunSummary is the sole result returned to the caller of a run.
type RunSummary struct {
	Status   Status      `json:"status"`
	Posts    EntityStats `json:"posts"`
	Comments EntityStats `json:"comments"`
	Message  string      `json:"message"`
}

// Runner wires the fetcher, extractor, batcher, and writers into a single
// sequential pipeline. Posts are always written before comments so that the
// comments' foreign keys can resolve.
type Runner struct {
	fetcher   blobstore.Fetcher
	posts     repository.PostRepository
	comments  repository.CommentRepository
	batchSize int
	logger    *slog.Logger
}

// NewRunner creates a Runner. batchSize must already be validated as positive
// by configuration loading.
func NewRunner(
	fetcher blobstore.Fetcher,
	posts repository.PostRepository,
	comments repository.CommentRepository,
	batchSize int,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		fetcher:   fetcher,
		posts:     posts,
		comments:  comments,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run executes the pipeline for one export document. Fetch and parse failures
// are fatal and abort before any write; individual batch failures are logged,
// folded into the summary counts, and never abort the run.
func (r *Runner) Run(ctx context.Context) RunSummary {
	started := time.Now()
	r.logger.Info("ETL run started", slog.String("source", r.fetcher.Location()))

	exists, err := r.fetcher.Exists(ctx)
	if err != nil {
		return r.fatal(fmt.Sprintf("failed to check source: %v", err))
	}
	if !exists {
		return r.fatal(fmt.Sprintf("file not found: %s", r.fetcher.Location()))
	}

	raw, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return r.fatal(fmt.Sprintf("failed to fetch source: %v", err))
	}
	r.logger.Info("fetched export document",
		slog.String("source", r.fetcher.Location()),
		slog.Int("bytes", len(raw)),
	)

	doc, err := extract.Parse(raw)
	if err != nil {
		return r.fatal(fmt.Sprintf("failed to parse document: %v", err))
	}

	posts, comments := extract.NewExtractor(r.logger).Extract(doc)
	r.logger.Info("extracted records",
		slog.Int("posts", len(posts)),
		slog.Int("comments", len(comments)),
	)

	if len(posts) == 0 && len(comments) == 0 {
		r.logger.Warn("no posts or comments found in document")
		return RunSummary{Status: StatusSuccess, Message: "no data to process"}
	}

	summary := RunSummary{
		Posts:    writeBatches(ctx, r.logger, "posts", posts, r.batchSize, r.posts.UpsertBatch),
		Comments: writeBatches(ctx, r.logger, "comments", comments, r.batchSize, r.comments.UpsertBatch),
	}

	failed := summary.Posts.Failed + summary.Comments.Failed
	if failed > 0 {
		summary.Status = StatusPartialFailure
		summary.Message = fmt.Sprintf("ETL process completed with %d failed records", failed)
	} else {
		summary.Status = StatusSuccess
		summary.Message = "ETL process completed successfully"
	}

	r.logger.Info("ETL run finished",
		slog.String("status", string(summary.Status)),
		slog.Int("posts_success", summary.Posts.Success),
		slog.Int("comments_success", summary.Comments.Success),
		slog.Int("failed", failed),
		slog.Duration("elapsed", time.Since(started)),
	)
	return summary
}

func (r *Runner) fatal(msg string) RunSummary {
	r.logger.Error("ETL run aborted", slog.String("error", msg))
	return RunSummary{Status: StatusFatalError, Message: msg}
}

// writeBatches splits records into chunks and writes them one transaction at
// a time, accumulating the outcome of every batch. A failed batch is logged
// with its index and identity range so it can be replayed manually, then
// iteration continues with the next batch.
func writeBatches[T any](
	ctx context.Context,
	logger *slog.Logger,
	entity string,
	records []T,
	size int,
	write func(context.Context, []T) repository.BatchResult,
) EntityStats {
	chunks := batch.Chunk(records, size)
	stats := EntityStats{Total: len(records), Batches: len(chunks)}

	for i, chunk := range chunks {
		logger.Info("writing batch",
			slog.String("entity", entity),
			slog.Int("batch", i+1),
			slog.Int("batches", len(chunks)),
			slog.Int("records", len(chunk)),
		)

		result := write(ctx, chunk)
		stats.Success += result.Succeeded
		stats.Failed += result.Failed

		if !result.OK() {
			logger.Error("batch write failed, continuing with next batch",
				slog.String("entity", entity),
				slog.Int("batch", i+1),
				slog.String("first_id", result.FirstID),
				slog.String("last_id", result.LastID),
				slog.String("error", result.Err.Error()),
			)
		}
	}

	return stats
}
