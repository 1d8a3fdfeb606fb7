package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles the PostgreSQL repositories that can participate in
// a single transaction.
type Repositories struct {
	Users          UserRepository
	FriendRequests FriendRequestRepository
	Friendships    FriendshipRepository
	Invitations    InvitationRepository
	Notifications  NotificationRepository
	Events         EventRepository
}

// NewRepositories builds the repository bundle over a gorm handle, which may
// be the root connection or a transaction.
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:          NewPostgresUserRepository(db),
		FriendRequests: NewPostgresFriendRequestRepository(db),
		Friendships:    NewPostgresFriendshipRepository(db),
		Invitations:    NewPostgresInvitationRepository(db),
		Notifications:  NewPostgresNotificationRepository(db),
		Events:         NewPostgresEventRepository(db),
	}
}

// TxManager runs a function against a transaction-scoped repository bundle.
// If fn returns an error the whole transaction rolls back, including any
// notification writes made along the way.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(repos Repositories) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a TxManager backed by gorm transactions
func NewGormTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) WithinTransaction(ctx context.Context, fn func(repos Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
