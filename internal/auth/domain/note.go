package domain

import "time"

// Note belongs to exactly one user and is only visible to them.
type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
