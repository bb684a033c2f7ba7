package services

import (
	"context"

	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/repositories"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MessageService gates direct messages on friendship.
type MessageService struct {
	store repositories.Store
	log   *zap.Logger
}

func NewMessageService(store repositories.Store, log *zap.Logger) *MessageService {
	return &MessageService{store: store, log: log.Named("message")}
}

// AreFriends reports whether a friendship exists between a and b in either stored order.
func (s *MessageService) AreFriends(ctx context.Context, a, b uint) (bool, error) {
	ok, err := s.store.Friendships().ExistsBetween(ctx, a, b)
	if err != nil {
		return false, errors.Wrap(err, "failed to check friendship")
	}
	return ok, nil
}

func (s *MessageService) SendMessage(ctx context.Context, senderID, receiverID uint, text string) (*models.Message, error) {
	var message *models.Message
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		for _, id := range []uint{senderID, receiverID} {
			exists, err := tx.Users().ExistsByID(ctx, id)
			if err != nil {
				return errors.Wrap(err, "failed to look up user")
			}
			if !exists {
				return ErrUserNotFound
			}
		}

		friends, err := tx.Friendships().ExistsBetween(ctx, senderID, receiverID)
		if err != nil {
			return errors.Wrap(err, "failed to check friendship")
		}
		if !friends {
			return ErrNotFriends
		}

		message = &models.Message{SenderID: senderID, ReceiverID: receiverID, Text: text}
		return errors.Wrap(tx.Messages().CreateMessage(ctx, message), "failed to create message")
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

// GetMessages returns the conversation between the two users, oldest first.
func (s *MessageService) GetMessages(ctx context.Context, userOneID, userTwoID uint) ([]models.Message, error) {
	friends, err := s.AreFriends(ctx, userOneID, userTwoID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, ErrNotFriends
	}

	messages, err := s.store.Messages().GetConversation(ctx, userOneID, userTwoID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load messages")
	}
	return messages, nil
}
