package services

import (
	"context"

	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/pagination"
	"github.com/nanomedia/social-backend/internal/repositories"
	"github.com/pkg/errors"
)

type NotificationService struct {
	store repositories.Store
}

func NewNotificationService(store repositories.Store) *NotificationService {
	return &NotificationService{store: store}
}

func (s *NotificationService) List(ctx context.Context, userID uint, page pagination.Page) (*pagination.Result[models.Notification], error) {
	items, total, err := s.store.Notifications().GetByRecipientID(ctx, userID, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}
	return &pagination.Result[models.Notification]{Items: items, TotalItems: total, Page: page}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	count, err := s.store.Notifications().GetUnreadCount(ctx, userID)
	return count, errors.Wrap(err, "failed to count notifications")
}

// MarkAsRead marks one of userID's notifications as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID uint) error {
	err := s.store.Notifications().MarkAsRead(ctx, userID, notificationID)
	if err != nil {
		return notFound(err, ErrNotificationNotFound, "failed to mark notification")
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uint) error {
	return errors.Wrap(s.store.Notifications().MarkAllAsRead(ctx, userID), "failed to mark notifications")
}
