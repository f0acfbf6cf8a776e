package models

import "time"

// Like marks a post as liked by a user. The composite unique index
// idx_like_pair enforces at most one like per (user, post) pair.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_like_pair"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);not null;index;uniqueIndex:idx_like_pair"`
	CreatedAt time.Time `json:"created_at"`
}
