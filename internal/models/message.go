package models

import "time"

// Message is a direct message between two friends
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"not null;index:idx_message_pair,priority:1"`
	ReceiverID uint      `json:"receiver_id" gorm:"not null;index:idx_message_pair,priority:2"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"date" gorm:"index"`
}

// SendMessageRequest defines the request body for sending a message
type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Text       string `json:"text" validate:"required,min=1,max=2000"`
}
