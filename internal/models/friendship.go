package models

import (
	"time"

	"gorm.io/gorm"
)

// Friendship is a confirmed mutual relationship. UserOneID/UserTwoID keep the order in which
// the friendship was created (request sender first).
type Friendship struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserOneID uint      `json:"user_one_id" gorm:"not null;index"`
	UserTwoID uint      `json:"user_two_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"date"`

	// PairLow/PairHigh hold the normalized pair so the unique index covers both orderings.
	PairLow  uint `json:"-" gorm:"not null;uniqueIndex:idx_friendship_pair"`
	PairHigh uint `json:"-" gorm:"not null;uniqueIndex:idx_friendship_pair"`
}

// BeforeCreate fills the normalized pair columns
func (f *Friendship) BeforeCreate(_ *gorm.DB) error {
	f.PairLow, f.PairHigh = f.UserOneID, f.UserTwoID
	if f.PairLow > f.PairHigh {
		f.PairLow, f.PairHigh = f.PairHigh, f.PairLow
	}
	return nil
}

// Other returns the party of the friendship that is not userID.
func (f Friendship) Other(userID uint) uint {
	if f.UserOneID == userID {
		return f.UserTwoID
	}
	return f.UserOneID
}
