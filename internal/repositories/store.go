package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the PostgreSQL repositories whose writes must commit together.
type Store interface {
	Users() UserRepository
	Followers() FollowerRepository
	Friendships() FriendshipRepository
	Messages() MessageRepository
	Notifications() NotificationRepository

	// Transaction runs fn against a Store bound to a single transaction. The transaction
	// commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// PostgresStore implements Store on top of a *gorm.DB
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore creates a new PostgresStore
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Users() UserRepository {
	return NewPostgresUserRepository(s.db)
}

func (s *PostgresStore) Followers() FollowerRepository {
	return NewPostgresFollowerRepository(s.db)
}

func (s *PostgresStore) Friendships() FriendshipRepository {
	return NewPostgresFriendshipRepository(s.db)
}

func (s *PostgresStore) Messages() MessageRepository {
	return NewPostgresMessageRepository(s.db)
}

func (s *PostgresStore) Notifications() NotificationRepository {
	return NewPostgresNotificationRepository(s.db)
}

func (s *PostgresStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresStore{db: tx})
	})
}
