package repositories

import (
	"github.com/K1motho/pfol/internal/models"
	"gorm.io/gorm"
)

// FriendRequestRepository defines the interface for friend request data operations
type FriendRequestRepository interface {
	Create(req *models.FriendRequest) error
	// GetPendingBetween returns the pending request connecting the two users
	// in either direction, or gorm.ErrRecordNotFound.
	GetPendingBetween(userA, userB uint) (*models.FriendRequest, error)
	GetPendingForReceiver(receiverID uint) ([]models.FriendRequest, error)
	// DeletePending removes the pending request for the ordered pair and
	// reports how many rows went away. Callers use the count to detect a
	// concurrent accept/cancel that got there first.
	DeletePending(senderID, receiverID uint) (int64, error)
}

// PostgresFriendRequestRepository implements FriendRequestRepository for PostgreSQL
type PostgresFriendRequestRepository struct {
	db *gorm.DB
}

// NewPostgresFriendRequestRepository creates a new PostgresFriendRequestRepository
func NewPostgresFriendRequestRepository(db *gorm.DB) *PostgresFriendRequestRepository {
	return &PostgresFriendRequestRepository{db: db}
}

// Create creates a new friend request
func (r *PostgresFriendRequestRepository) Create(req *models.FriendRequest) error {
	return r.db.Create(req).Error
}

// GetPendingBetween retrieves the pending request between two users, checking both directions
func (r *PostgresFriendRequestRepository) GetPendingBetween(userA, userB uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.Where("status = ? AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))",
		models.FriendRequestStatusPending, userA, userB, userB, userA).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetPendingForReceiver retrieves all pending friend requests addressed to a user
func (r *PostgresFriendRequestRepository) GetPendingForReceiver(receiverID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	if err := r.db.Where("receiver_id = ? AND status = ?", receiverID, models.FriendRequestStatusPending).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// DeletePending deletes the pending request for the ordered (sender, receiver)
// pair. The delete is unscoped: a soft-deleted row would keep occupying the
// pair index and block the users from ever exchanging a request again.
func (r *PostgresFriendRequestRepository) DeletePending(senderID, receiverID uint) (int64, error) {
	res := r.db.Unscoped().Where("sender_id = ? AND receiver_id = ? AND status = ?",
		senderID, receiverID, models.FriendRequestStatusPending).Delete(&models.FriendRequest{})
	return res.RowsAffected, res.Error
}
