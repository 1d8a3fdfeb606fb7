package repositories

import (
	"github.com/K1motho/pfol/internal/models"
	"gorm.io/gorm"
)

// FriendshipRepository defines the interface for friendship data operations.
// All methods accept the pair in any order; storage is canonical.
type FriendshipRepository interface {
	Create(friendship *models.Friendship) error
	AreFriends(userA, userB uint) (bool, error)
	// Delete removes the friendship row and reports how many rows went away.
	Delete(userA, userB uint) (int64, error)
	GetFriendIDs(userID uint) ([]uint, error)
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// Create creates a new friendship record, normalizing the pair first
func (r *PostgresFriendshipRepository) Create(friendship *models.Friendship) error {
	friendship.EnsureCanonicalOrder()
	return r.db.Create(friendship).Error
}

// AreFriends checks whether a friendship row connects the two users.
// Single indexed lookup against the canonical pair.
func (r *PostgresFriendshipRepository) AreFriends(userA, userB uint) (bool, error) {
	u1, u2 := models.OrderedPair(userA, userB)
	var count int64
	err := r.db.Model(&models.Friendship{}).Where("user_id1 = ? AND user_id2 = ?", u1, u2).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the friendship between the two users. Unscoped so the
// canonical pair index frees up and the pair can re-friend later.
func (r *PostgresFriendshipRepository) Delete(userA, userB uint) (int64, error) {
	u1, u2 := models.OrderedPair(userA, userB)
	res := r.db.Unscoped().Where("user_id1 = ? AND user_id2 = ?", u1, u2).Delete(&models.Friendship{})
	return res.RowsAffected, res.Error
}

// GetFriendIDs retrieves the IDs of everyone connected to userID, resolving
// the other side regardless of which column holds the user
func (r *PostgresFriendshipRepository) GetFriendIDs(userID uint) ([]uint, error) {
	var idsPart1 []uint
	if err := r.db.Model(&models.Friendship{}).Where("user_id1 = ?", userID).Pluck("user_id2", &idsPart1).Error; err != nil {
		return nil, err
	}

	var idsPart2 []uint
	if err := r.db.Model(&models.Friendship{}).Where("user_id2 = ?", userID).Pluck("user_id1", &idsPart2).Error; err != nil {
		return nil, err
	}

	return append(idsPart1, idsPart2...), nil
}
