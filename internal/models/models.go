package models

// Relational returns every PostgreSQL-backed model in migration order.
func Relational() []any {
	return []any{
		&User{},
		&Follower{},
		&Friendship{},
		&Message{},
		&Notification{},
	}
}
