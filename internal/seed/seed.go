// Package seed generates synthetic export documents for local runs and tests.
// These helpers are intended for development and testing only.
package seed

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"fbingest/internal/extract"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// timestampLayout matches the export's ISO-8601 format with a zone suffix.
const timestampLayout = "2006-01-02T15:04:05+0000"

// Options controls the shape of a generated document.
type Options struct {
	Posts    int
	Comments int
	// OrphanComments references post ids that do not exist in the document,
	// useful for exercising foreign-key failures.
	OrphanComments int
	// Seed fixes the random source; zero means time-based.
	Seed int64
}

// Document builds a synthetic export document with the requested record counts.
func Document(opts Options) *extract.Document {
	s := opts.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	gofakeit.Seed(s)
	r := rand.New(rand.NewSource(s))

	doc := &extract.Document{}

	for i := 0; i < opts.Posts; i++ {
		doc.Posts = append(doc.Posts, extract.PostEntry{
			ID:        uuid.NewString(),
			Timestamp: randomTimestamp(r),
			Title:     gofakeit.Sentence(5),
			Data: []extract.PostData{
				{Post: gofakeit.Paragraph(1, 3, 5, "\n")},
			},
		})
	}

	for i := 0; i < opts.Comments; i++ {
		postID := uuid.NewString()
		if len(doc.Posts) > 0 {
			postID = doc.Posts[i%len(doc.Posts)].ID
		}
		doc.Comments = append(doc.Comments, comment(r, postID))
	}

	for i := 0; i < opts.OrphanComments; i++ {
		doc.Comments = append(doc.Comments, comment(r, fmt.Sprintf("missing-%s", uuid.NewString())))
	}

	return doc
}

// Marshal renders a document as export JSON.
func Marshal(doc *extract.Document) ([]byte, error) {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export document: %w", err)
	}
	return raw, nil
}

func comment(r *rand.Rand, postID string) extract.CommentEntry {
	return extract.CommentEntry{
		ID:        uuid.NewString(),
		PostID:    postID,
		Timestamp: randomTimestamp(r),
		Author:    gofakeit.Name(),
		Comment:   gofakeit.Sentence(12),
	}
}

// randomTimestamp spreads records over the last ~90 days.
func randomTimestamp(r *rand.Rand) string {
	back := time.Duration(r.Intn(90*24)) * time.Hour
	return time.Now().UTC().Add(-back).Format(timestampLayout)
}
