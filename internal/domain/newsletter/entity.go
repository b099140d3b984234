// Package newsletter contains the newsletter content entity. Newsletters
// are one of the two content types the translation pipeline can process.
package newsletter

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Newsletter is an editorial content item with a small, fixed set of
// translatable fields: title, excerpt and content.
type Newsletter struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Title     string
	Excerpt   string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var ErrEmptyTitle = errors.New("newsletter title is required")

// New creates a newsletter
func New(authorID uuid.UUID, title, excerpt, content string) (*Newsletter, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	now := time.Now().UTC()
	return &Newsletter{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Title:     title,
		Excerpt:   excerpt,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
