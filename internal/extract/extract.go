// Package extract parses Facebook export documents into normalized records.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"fbingest/internal/models"

	"github.com/samber/lo"
)

// ErrMalformedDocument is returned when the document is not well-formed JSON
// at the top level. It is fatal for the run.
var ErrMalformedDocument = errors.New("malformed export document")

// Document is the top-level shape of a Facebook export file.
type Document struct {
	Posts    []PostEntry    `json:"posts"`
	Comments []CommentEntry `json:"comments"`
}

// PostEntry is one raw post object as it appears in the export.
type PostEntry struct {
	ID        string     `json:"id"`
	Timestamp string     `json:"timestamp"`
	Title     string     `json:"title"`
	Data      []PostData `json:"data"`
}

// PostData is the nested single-element container holding the post body.
type PostData struct {
	Post string `json:"post"`
}

// CommentEntry is one raw comment object as it appears in the export.
type CommentEntry struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	Timestamp string `json:"timestamp"`
	Author    string `json:"author"`
	Comment   string `json:"comment"`
}

// Parse decodes the raw export bytes. A decode failure aborts the run.
func Parse(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return &doc, nil
}

// Extractor turns a parsed document into Post and Comment records. It is a
// pure transform apart from warning logs for skipped records.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an Extractor that logs skipped records to logger.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract maps the document's raw entries onto record values, preserving
// source order. A record missing its id is skipped with a warning; it never
// aborts extraction of the remaining records.
func (e *Extractor) Extract(doc *Document) ([]models.Post, []models.Comment) {
	posts := lo.FilterMap(doc.Posts, func(entry PostEntry, i int) (models.Post, bool) {
		if entry.ID == "" {
			e.logger.Warn("skipping post without id", slog.Int("index", i))
			return models.Post{}, false
		}

		// The body lives inside a single-element "data" container; an
		// absent container means an empty body, not an error.
		text := ""
		if len(entry.Data) > 0 {
			text = entry.Data[0].Post
		}

		return models.Post{
			PostID:     entry.ID,
			Timestamp:  e.parseTimestamp(entry.Timestamp),
			Title:      entry.Title,
			PostTexts:  text,
			TextLength: utf8.RuneCountInString(text),
		}, true
	})

	comments := lo.FilterMap(doc.Comments, func(entry CommentEntry, i int) (models.Comment, bool) {
		if entry.ID == "" {
			e.logger.Warn("skipping comment without id", slog.Int("index", i))
			return models.Comment{}, false
		}

		return models.Comment{
			CommentID:    entry.ID,
			PostID:       entry.PostID,
			Timestamp:    e.parseTimestamp(entry.Timestamp),
			Author:       entry.Author,
			CommentTexts: entry.Comment,
			TextLength:   utf8.RuneCountInString(entry.Comment),
		}, true
	})

	return posts, comments
}

// parseTimestamp coerces an ISO-8601 timestamp, with or without a zone
// designator, into UTC. An empty or unparseable value yields nil.
func (e *Extractor) parseTimestamp(value string) *time.Time {
	if value == "" {
		return nil
	}

	const layout = "2006-01-02T15:04:05"

	// Strip the zone suffix and keep the wall-clock part, e.g.
	// "2024-11-18T09:42:13+0000" or "...Z".
	candidate := value
	if len(candidate) > len(layout) && (strings.ContainsRune(candidate[len(layout):], '+') || strings.HasSuffix(candidate, "Z")) {
		candidate = candidate[:len(layout)]
	}

	ts, err := time.ParseInLocation(layout, candidate, time.UTC)
	if err != nil {
		e.logger.Warn("failed to parse timestamp",
			slog.String("timestamp", value),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return &ts
}
