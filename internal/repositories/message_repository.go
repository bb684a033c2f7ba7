package repositories

import (
	"context"

	"github.com/nanomedia/social-backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct message data operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	// GetConversation returns messages exchanged in either direction, oldest first.
	GetConversation(ctx context.Context, userOneID, userTwoID uint) ([]models.Message, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *PostgresMessageRepository) GetConversation(ctx context.Context, userOneID, userTwoID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userOneID, userTwoID, userTwoID, userOneID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

func (r *PostgresMessageRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Delete(&models.Message{}).Error
}
