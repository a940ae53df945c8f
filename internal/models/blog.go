package models

import (
	"time"

	"gorm.io/datatypes"
)

// BlogPost backs the read-only blog surface. Content seeding happens outside
// this service.
type BlogPost struct {
	BaseModel
	Slug        string                        `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string                        `gorm:"not null" json:"title"`
	Excerpt     string                        `json:"excerpt,omitempty"`
	Content     string                        `json:"content"`
	Author      string                        `json:"author,omitempty"`
	Tags        datatypes.JSONSlice[string]   `json:"tags,omitempty"`
	Published   bool                          `gorm:"default:false;index" json:"published"`
	PublishedAt *time.Time                    `json:"published_at,omitempty"`
}
