// internal/domain/models/article.go
package models

import (
	"time"
)

// Article represents a content document written by staff.
//
// The slug is always derived from the title (never edited independently) and
// tags are stored lowercased. CreatedAt is assigned by the store on creation
// and never changed by updates.
type Article struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Slug      string    `bson:"slug" json:"slug"`
	Thumbnail string    `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"` // URL or embedded image data
	Content   string    `bson:"content" json:"content"`                         // markdown
	Excerpt   string    `bson:"excerpt" json:"excerpt"`
	Author    string    `bson:"author" json:"author"` // display name, not a foreign key
	Category  string    `bson:"category" json:"category"`
	Tags      []string  `bson:"tags" json:"tags"` // lowercase, deduplicated
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Article categories
const (
	CategoryOpini   = "Opini"
	CategoryBerita  = "Berita"
	CategoryLainnya = "Lainnya"
)

// AllCategories returns all valid article categories.
func AllCategories() []string {
	return []string{
		CategoryOpini,
		CategoryBerita,
		CategoryLainnya,
	}
}

// IsValidCategory checks if a category is valid.
func IsValidCategory(category string) bool {
	for _, c := range AllCategories() {
		if c == category {
			return true
		}
	}
	return false
}

// Article statuses. Transitions are unconstrained: any status may move to
// any other.
const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
)

// AllStatuses returns all valid article statuses.
func AllStatuses() []string {
	return []string{
		StatusDraft,
		StatusPublished,
	}
}

// IsValidStatus checks if an article status is valid.
func IsValidStatus(status string) bool {
	return status == StatusDraft || status == StatusPublished
}
