package models

import "time"

// Notification types
const (
	NotificationFriendRequest = "friend_request"
	NotificationFriendAccept  = "friend_accept"
)

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"` // friend_request, friend_accept
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	TargetID    uint      `json:"target_id"`                  // follower or friendship ID
	TargetType  string    `json:"target_type" gorm:"size:20"` // follower, friendship
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
