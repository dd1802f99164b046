package models

import (
	"time"
)

// Comment represents one comment row extracted from a Facebook export document.
// PostID references posts.post_id; the constraint is enforced by the database,
// not at extraction time, so an orphaned comment surfaces as a write failure.
type Comment struct {
	CommentID    string     `gorm:"column:comment_id;primaryKey" json:"comment_id"`
	PostID       string     `gorm:"column:post_id;not null;index" json:"post_id"`
	Post         *Post      `gorm:"foreignKey:PostID;references:PostID" json:"-"`
	Timestamp    *time.Time `gorm:"column:timestamp" json:"timestamp"`
	Author       string     `json:"author"`
	CommentTexts string     `gorm:"type:text" json:"comment_texts"`
	TextLength   int        `gorm:"not null" json:"text_length"`
}

// TableName overrides the default table name used by GORM.
func (Comment) TableName() string {
	return "comments"
}
