// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents one post row extracted from a Facebook export document.
// PostID comes verbatim from the export; it is never generated here.
type Post struct {
	PostID     string     `gorm:"column:post_id;primaryKey" json:"post_id"`
	Timestamp  *time.Time `gorm:"column:timestamp" json:"timestamp"`
	Title      string     `json:"title"`
	PostTexts  string     `gorm:"type:text" json:"post_texts"`
	TextLength int        `gorm:"not null" json:"text_length"`
}

// TableName overrides the default table name used by GORM.
func (Post) TableName() string {
	return "posts"
}
