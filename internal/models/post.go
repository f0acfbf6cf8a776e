package models

import "time"

// Post is a piece of user content, optionally carrying an image URL.
// Image bytes live in an external object store; only the URL is kept here.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;index:idx_post_user_created"`
	Content   string    `json:"content" gorm:"type:text;not null" validate:"required"`
	ImageURL  string    `json:"image_url,omitempty" gorm:"type:varchar(512)" validate:"omitempty,url"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_post_user_created"`
	UpdatedAt time.Time `json:"updated_at"`

	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Likes    []Like    `json:"likes,omitempty" gorm:"foreignKey:PostID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
}
