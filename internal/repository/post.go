package repository

import (
	"context"
	"fmt"

	"fbingest/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the write interface for the posts table.
type PostRepository interface {
	UpsertBatch(ctx context.Context, posts []models.Post) BatchResult
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// UpsertBatch writes one batch of posts inside a single transaction using
// insert-or-update semantics keyed on post_id. Re-invoking with the same
// records yields the same final row state.
func (r *postRepository) UpsertBatch(ctx context.Context, posts []models.Post) BatchResult {
	result := BatchResult{Attempted: len(posts)}
	if len(posts) == 0 {
		return result
	}
	result.FirstID = posts[0].PostID
	result.LastID = posts[len(posts)-1].PostID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "post_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"timestamp", "title", "post_texts", "text_length",
			}),
		}).Create(&posts).Error
	})
	if err != nil {
		result.Failed = result.Attempted
		result.Err = fmt.Errorf("failed to upsert posts batch [%s..%s]: %w", result.FirstID, result.LastID, err)
		return result
	}

	result.Succeeded = result.Attempted
	return result
}
