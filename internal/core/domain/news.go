package domain

import "time"

// NewsArticle is a club news post written by an admin.
type NewsArticle struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary,omitempty"`
	Body        string     `json:"body"`
	Image       string     `json:"image,omitempty"`
	AuthorID    int64      `json:"author_id" gorm:"column:author_id"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty" gorm:"column:published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (NewsArticle) TableName() string { return "news" }
