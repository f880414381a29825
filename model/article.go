package model

import "time"

// Article statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Article represents a submitted news article
type Article struct {
	Key         string    `json:"_key,omitempty"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url,omitempty"`
	AuthorEmail string    `json:"author_email"`
	AuthorName  string    `json:"author_name"`
	Status      string    `json:"status"` // pending, approved, rejected
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewArticle creates a pending article for the given author
func NewArticle(title, body, category, authorEmail, authorName string) *Article {
	now := time.Now()
	return &Article{
		Title:       title,
		Body:        body,
		Category:    category,
		AuthorEmail: NormalizeEmail(authorEmail),
		AuthorName:  authorName,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsValidStatus reports whether s is a known article status
func IsValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}
