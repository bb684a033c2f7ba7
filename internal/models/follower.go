package models

import "time"

// Follower is a one-directional follow edge: SenderID follows (has requested) ReceiverID.
// The reverse edge is a separate row.
type Follower struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"not null;index;uniqueIndex:idx_follower_sender_receiver;check:chk_follower_not_self,sender_id <> receiver_id"`
	ReceiverID uint      `json:"receiver_id" gorm:"not null;index;uniqueIndex:idx_follower_sender_receiver"`
	CreatedAt  time.Time `json:"date"`
}

// CreateFriendRequest defines the request body for sending a friend request
type CreateFriendRequest struct {
	ReceiverID uint `json:"receiver_id" validate:"required"`
}
