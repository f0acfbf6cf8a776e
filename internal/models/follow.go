package models

import "time"

// FollowStatus is the lifecycle state of a follow edge.
type FollowStatus string

const (
	FollowStatusPending  FollowStatus = "PENDING"
	FollowStatusAccepted FollowStatus = "ACCEPTED"
	FollowStatusRejected FollowStatus = "REJECTED"
)

// Valid reports whether s is one of the known statuses.
func (s FollowStatus) Valid() bool {
	switch s {
	case FollowStatusPending, FollowStatusAccepted, FollowStatusRejected:
		return true
	}
	return false
}

// Follow is a directed edge: FollowerID follows FollowedID.
// The composite unique index idx_follow_pair guarantees at most one
// edge per (follower, followed) pair at the storage level.
type Follow struct {
	ID         string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FollowerID string       `json:"follower_id" gorm:"type:varchar(36);not null;index;uniqueIndex:idx_follow_pair"`
	FollowedID string       `json:"followed_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_follow_pair"`
	Status     FollowStatus `json:"status" gorm:"type:varchar(16);not null;default:'PENDING'"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	Follower *User `json:"follower,omitempty" gorm:"foreignKey:FollowerID"`
	Followed *User `json:"followed,omitempty" gorm:"foreignKey:FollowedID"`
}
