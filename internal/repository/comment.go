package repository

import (
	"context"
	"fmt"

	"fbingest/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the write interface for the comments table.
type CommentRepository interface {
	UpsertBatch(ctx context.Context, comments []models.Comment) BatchResult
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// UpsertBatch writes one batch of comments inside a single transaction using
// insert-or-update semantics keyed on comment_id. A comment referencing a
// missing post trips the foreign-key constraint and fails the whole batch;
// that is the declared mechanism for surfacing orphans.
func (r *commentRepository) UpsertBatch(ctx context.Context, comments []models.Comment) BatchResult {
	result := BatchResult{Attempted: len(comments)}
	if len(comments) == 0 {
		return result
	}
	result.FirstID = comments[0].CommentID
	result.LastID = comments[len(comments)-1].CommentID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "comment_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"post_id", "timestamp", "author", "comment_texts", "text_length",
			}),
		}).Create(&comments).Error
	})
	if err != nil {
		result.Failed = result.Attempted
		result.Err = fmt.Errorf("failed to upsert comments batch [%s..%s]: %w", result.FirstID, result.LastID, err)
		return result
	}

	result.Succeeded = result.Attempted
	return result
}
