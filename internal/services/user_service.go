package services

import (
	"context"

	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserService struct {
	store repositories.Store
}

func NewUserService(store repositories.Store) *UserService {
	return &UserService{store: store}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.store.Users().GetUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "failed to load user")
	}
	return user, nil
}

// UpdateProfile applies the non-empty fields of req to user id.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	if err := s.store.Users().UpdateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, errors.Wrap(err, "failed to update user")
	}
	return user, nil
}

// DeleteUser removes user id together with every row that references it: follow edges,
// friendships, messages and notifications. Nothing is removed if any step fails.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(tx repositories.Store) error {
		if _, err := tx.Users().GetUserByID(ctx, id); err != nil {
			return notFound(err, ErrUserNotFound, "failed to load user")
		}
		if err := tx.Friendships().DeleteByUserID(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete friendships")
		}
		if err := tx.Followers().DeleteByUserID(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete follow edges")
		}
		if err := tx.Messages().DeleteByUserID(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete messages")
		}
		if err := tx.Notifications().DeleteByUserID(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete notifications")
		}
		return errors.Wrap(tx.Users().DeleteUser(ctx, id), "failed to delete user")
	})
}

func (s *UserService) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	users, err := s.store.Users().SearchUsers(ctx, query)
	return users, errors.Wrap(err, "failed to search users")
}
