package repositories

import (
	"context"

	"github.com/nanomedia/social-backend/internal/models"
	"gorm.io/gorm"
)

// FriendshipRepository defines the interface for friendship data operations
type FriendshipRepository interface {
	CreateFriendship(ctx context.Context, friendship *models.Friendship) error
	// GetByUsers matches the stored order exactly: user_one_id = userOneID AND user_two_id = userTwoID.
	GetByUsers(ctx context.Context, userOneID, userTwoID uint) (*models.Friendship, error)
	// ExistsBetween checks both stored orders.
	ExistsBetween(ctx context.Context, userA, userB uint) (bool, error)
	GetByUserID(ctx context.Context, userID uint) ([]models.Friendship, error)
	DeleteFriendship(ctx context.Context, id uint) error
	// DeleteByUserID removes every friendship userID is part of.
	DeleteByUserID(ctx context.Context, userID uint) error
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// CreateFriendship inserts the friendship; a second row for the same unordered pair fails
// with gorm.ErrDuplicatedKey.
func (r *PostgresFriendshipRepository) CreateFriendship(ctx context.Context, friendship *models.Friendship) error {
	return r.db.WithContext(ctx).Create(friendship).Error
}

func (r *PostgresFriendshipRepository) GetByUsers(ctx context.Context, userOneID, userTwoID uint) (*models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.WithContext(ctx).
		Where("user_one_id = ? AND user_two_id = ?", userOneID, userTwoID).
		First(&friendship).Error
	if err != nil {
		return nil, err
	}
	return &friendship, nil
}

func (r *PostgresFriendshipRepository) ExistsBetween(ctx context.Context, userA, userB uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("(user_one_id = ? AND user_two_id = ?) OR (user_one_id = ? AND user_two_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	return count > 0, err
}

// GetByUserID retrieves all friendships where userID is either party
func (r *PostgresFriendshipRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.WithContext(ctx).
		Where("user_one_id = ? OR user_two_id = ?", userID, userID).
		Order("id").
		Find(&friendships).Error
	return friendships, err
}

func (r *PostgresFriendshipRepository) DeleteFriendship(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Friendship{}, id).Error
}

func (r *PostgresFriendshipRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_one_id = ? OR user_two_id = ?", userID, userID).
		Delete(&models.Friendship{}).Error
}
