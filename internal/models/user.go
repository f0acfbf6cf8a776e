package models

import "time"

// User represents a registered account.
type User struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username       string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,alphanum,min=3,max=30"`
	Email          string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password       string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	Bio            string    `json:"bio" gorm:"type:text" validate:"omitempty,max=500"`
	ProfilePicture string    `json:"profile_picture" gorm:"type:varchar(512)"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserSummary is the minimal author payload embedded in posts and comments.
type UserSummary struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

// Summary strips a User down to what feed and comment views embed.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, ProfilePicture: u.ProfilePicture}
}
