package services

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrInvalidOperation is returned when a user targets themselves.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrDuplicateRequest is returned when the sender already has a request to the receiver.
	ErrDuplicateRequest = errors.New("friend request already sent")
	// ErrDuplicateFriendship is returned when the two users are already friends.
	ErrDuplicateFriendship = errors.New("friendship already exists")
	ErrNotFriends          = errors.New("users are not friends")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrUsernameTaken       = errors.New("username or email already taken")

	// ErrNotFound is the parent of every not-found kind below; errors.Is(err, ErrNotFound)
	// holds for all of them.
	ErrNotFound             = errors.New("not found")
	ErrRequestNotFound      = errors.WithMessage(ErrNotFound, "friend request")
	ErrFriendshipNotFound   = errors.WithMessage(ErrNotFound, "friendship")
	ErrFollowNotFound       = errors.WithMessage(ErrNotFound, "follow")
	ErrUserNotFound         = errors.WithMessage(ErrNotFound, "user")
	ErrPostNotFound         = errors.WithMessage(ErrNotFound, "post")
	ErrNotificationNotFound = errors.WithMessage(ErrNotFound, "notification")
)

// notFound maps gorm.ErrRecordNotFound to kind and wraps any other failure.
func notFound(err error, kind error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return kind
	}
	return errors.Wrap(err, msg)
}
