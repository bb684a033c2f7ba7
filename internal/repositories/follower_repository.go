package repositories

import (
	"context"

	"github.com/nanomedia/social-backend/internal/models"
	"gorm.io/gorm"
)

// FollowerRepository defines the interface for follow edge data operations
type FollowerRepository interface {
	CreateFollower(ctx context.Context, follower *models.Follower) error
	GetFollowerByID(ctx context.Context, id uint) (*models.Follower, error)
	ExistsBySenderReceiver(ctx context.Context, senderID, receiverID uint) (bool, error)
	DeleteFollower(ctx context.Context, id uint) error
	DeleteBySenderReceiver(ctx context.Context, senderID, receiverID uint) error
	GetByReceiverID(ctx context.Context, receiverID uint) ([]models.Follower, error)
	GetBySenderID(ctx context.Context, senderID uint) ([]models.Follower, error)
	// DeleteByUserID removes the edges userID sent and received.
	DeleteByUserID(ctx context.Context, userID uint) error
}

// PostgresFollowerRepository implements FollowerRepository for PostgreSQL
type PostgresFollowerRepository struct {
	db *gorm.DB
}

// NewPostgresFollowerRepository creates a new PostgresFollowerRepository
func NewPostgresFollowerRepository(db *gorm.DB) *PostgresFollowerRepository {
	return &PostgresFollowerRepository{db: db}
}

func (r *PostgresFollowerRepository) CreateFollower(ctx context.Context, follower *models.Follower) error {
	return r.db.WithContext(ctx).Create(follower).Error
}

// GetFollowerByID returns gorm.ErrRecordNotFound when the edge does not exist
func (r *PostgresFollowerRepository) GetFollowerByID(ctx context.Context, id uint) (*models.Follower, error) {
	var follower models.Follower
	if err := r.db.WithContext(ctx).First(&follower, id).Error; err != nil {
		return nil, err
	}
	return &follower, nil
}

func (r *PostgresFollowerRepository) ExistsBySenderReceiver(ctx context.Context, senderID, receiverID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follower{}).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresFollowerRepository) DeleteFollower(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Follower{}, id).Error
}

// DeleteBySenderReceiver removes the sender→receiver edge; a missing edge is not an error.
func (r *PostgresFollowerRepository) DeleteBySenderReceiver(ctx context.Context, senderID, receiverID uint) error {
	return r.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Delete(&models.Follower{}).Error
}

func (r *PostgresFollowerRepository) GetByReceiverID(ctx context.Context, receiverID uint) ([]models.Follower, error) {
	var followers []models.Follower
	err := r.db.WithContext(ctx).Where("receiver_id = ?", receiverID).Order("id").Find(&followers).Error
	return followers, err
}

func (r *PostgresFollowerRepository) GetBySenderID(ctx context.Context, senderID uint) ([]models.Follower, error) {
	var followers []models.Follower
	err := r.db.WithContext(ctx).Where("sender_id = ?", senderID).Order("id").Find(&followers).Error
	return followers, err
}

func (r *PostgresFollowerRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Delete(&models.Follower{}).Error
}
