package etl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"fbingest/internal/extract"
	"fbingest/internal/models"
	"fbingest/internal/repository"
	"fbingest/internal/seed"
	"fbingest/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubFetcher struct {
	data      []byte
	exists    bool
	existsErr error
	fetchErr  error
}

func (s *stubFetcher) Location() string { return "stub://export.json" }

func (s *stubFetcher) Exists(context.Context) (bool, error) {
	return s.exists, s.existsErr
}

func (s *stubFetcher) Fetch(context.Context) ([]byte, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.data, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRunner(t *testing.T, db *gorm.DB, fetcher *stubFetcher, batchSize int) *Runner {
	t.Helper()
	return NewRunner(
		fetcher,
		repository.NewPostRepository(db),
		repository.NewCommentRepository(db),
		batchSize,
		testLogger(),
	)
}

func marshalDoc(t *testing.T, doc *extract.Document) []byte {
	t.Helper()
	raw, err := seed.Marshal(doc)
	require.NoError(t, err)
	return raw
}

func TestRunner_EndToEnd(t *testing.T) {
	db := testutil.OpenDB(t)

	doc := seed.Document(seed.Options{Posts: 2500, Comments: 1200, Seed: 42})
	fetcher := &stubFetcher{data: marshalDoc(t, doc), exists: true}
	runner := newTestRunner(t, db, fetcher, 1000)

	summary := runner.Run(context.Background())

	assert.Equal(t, StatusSuccess, summary.Status)
	assert.Equal(t, EntityStats{Total: 2500, Batches: 3, Success: 2500, Failed: 0}, summary.Posts)
	assert.Equal(t, EntityStats{Total: 1200, Batches: 2, Success: 1200, Failed: 0}, summary.Comments)

	var postCount, commentCount int64
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&commentCount).Error)
	assert.EqualValues(t, 2500, postCount)
	assert.EqualValues(t, 1200, commentCount)
}

func TestRunner_RerunIsIdempotent(t *testing.T) {
	db := testutil.OpenDB(t)

	doc := seed.Document(seed.Options{Posts: 120, Comments: 80, Seed: 7})
	fetcher := &stubFetcher{data: marshalDoc(t, doc), exists: true}
	runner := newTestRunner(t, db, fetcher, 50)

	first := runner.Run(context.Background())
	require.Equal(t, StatusSuccess, first.Status)

	var before models.Post
	require.NoError(t, db.First(&before, "post_id = ?", doc.Posts[0].ID).Error)

	second := runner.Run(context.Background())
	assert.Equal(t, first, second)

	var postCount, commentCount int64
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&commentCount).Error)
	assert.EqualValues(t, 120, postCount)
	assert.EqualValues(t, 80, commentCount)

	var after models.Post
	require.NoError(t, db.First(&after, "post_id = ?", doc.Posts[0].ID).Error)
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.PostTexts, after.PostTexts)
	assert.Equal(t, before.TextLength, after.TextLength)
}

func TestRunner_FileNotFoundIsFatal(t *testing.T) {
	db := testutil.OpenDB(t)
	runner := newTestRunner(t, db, &stubFetcher{exists: false}, 1000)

	summary := runner.Run(context.Background())

	assert.Equal(t, StatusFatalError, summary.Status)
	assert.Contains(t, summary.Message, "file not found")
	assert.Zero(t, summary.Posts.Batches)
	assert.Zero(t, summary.Comments.Batches)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRunner_FetchErrorIsFatal(t *testing.T) {
	db := testutil.OpenDB(t)
	fetcher := &stubFetcher{exists: true, fetchErr: errors.New("connection refused")}
	runner := newTestRunner(t, db, fetcher, 1000)

	summary := runner.Run(context.Background())
	assert.Equal(t, StatusFatalError, summary.Status)
	assert.Contains(t, summary.Message, "failed to fetch")
}

func TestRunner_ParseErrorIsFatal(t *testing.T) {
	db := testutil.OpenDB(t)
	fetcher := &stubFetcher{data: []byte(`{"posts": [`), exists: true}
	runner := newTestRunner(t, db, fetcher, 1000)

	summary := runner.Run(context.Background())
	assert.Equal(t, StatusFatalError, summary.Status)
	assert.Contains(t, summary.Message, "failed to parse")
}

func TestRunner_EmptyDocument(t *testing.T) {
	db := testutil.OpenDB(t)
	fetcher := &stubFetcher{data: []byte(`{}`), exists: true}
	runner := newTestRunner(t, db, fetcher, 1000)

	summary := runner.Run(context.Background())
	assert.Equal(t, StatusSuccess, summary.Status)
	assert.Equal(t, "no data to process", summary.Message)
	assert.Zero(t, summary.Posts.Total)
	assert.Zero(t, summary.Comments.Total)
}

// A batch containing one orphaned comment fails entirely; independent batches
// still commit and the run reports partial failure instead of aborting.
func TestRunner_OrphanCommentBatchFailsWithoutAbortingRun(t *testing.T) {
	db := testutil.OpenDB(t)

	doc := &extract.Document{
		Posts: []extract.PostEntry{
			{ID: "p1", Title: "one", Data: []extract.PostData{{Post: "body"}}},
			{ID: "p2", Title: "two"},
		},
		Comments: []extract.CommentEntry{
			{ID: "c1", PostID: "p1", Comment: "fine"},
			{ID: "c2", PostID: "no-such-post", Comment: "orphan"},
			{ID: "c3", PostID: "p2", Comment: "also fine"},
		},
	}

	fetcher := &stubFetcher{data: marshalDoc(t, doc), exists: true}
	runner := newTestRunner(t, db, fetcher, 2)

	summary := runner.Run(context.Background())

	assert.Equal(t, StatusPartialFailure, summary.Status)
	assert.Equal(t, EntityStats{Total: 2, Batches: 1, Success: 2, Failed: 0}, summary.Posts)
	// batch 1 = [c1, c2] rolls back entirely, batch 2 = [c3] succeeds
	assert.Equal(t, EntityStats{Total: 3, Batches: 2, Success: 1, Failed: 2}, summary.Comments)

	var ids []string
	require.NoError(t, db.Model(&models.Comment{}).Order("comment_id").Pluck("comment_id", &ids).Error)
	assert.Equal(t, []string{"c3"}, ids)
}

// A record missing its identity field is skipped during extraction and never
// reaches any batch; the remaining records still load.
func TestRunner_MalformedRecordSkipped(t *testing.T) {
	db := testutil.OpenDB(t)

	doc := &extract.Document{
		Posts: []extract.PostEntry{
			{ID: "p1"},
			{Title: "missing id"},
			{ID: "p2"},
		},
	}

	fetcher := &stubFetcher{data: marshalDoc(t, doc), exists: true}
	runner := newTestRunner(t, db, fetcher, 10)

	summary := runner.Run(context.Background())

	assert.Equal(t, StatusSuccess, summary.Status)
	assert.Equal(t, EntityStats{Total: 2, Batches: 1, Success: 2, Failed: 0}, summary.Posts)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
