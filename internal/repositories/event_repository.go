package repositories

import (
	"github.com/K1motho/pfol/internal/models"
	"gorm.io/gorm"
)

// EventRepository defines the interface for attended/wishlist event operations
type EventRepository interface {
	CreateAttended(event *models.AttendedEvent) error
	GetAttendedByUser(userID uint) ([]models.AttendedEvent, error)
	// GetAttendedByUsers returns every attended event belonging to any of the
	// given users, most recent attendance first.
	GetAttendedByUsers(userIDs []uint) ([]models.AttendedEvent, error)
	CreateWishlist(event *models.WishListEvent) error
	GetWishlistByUser(userID uint) ([]models.WishListEvent, error)
	DeleteWishlist(id, userID uint) (int64, error)
}

// PostgresEventRepository implements EventRepository for PostgreSQL
type PostgresEventRepository struct {
	db *gorm.DB
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(db *gorm.DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

// CreateAttended records an attended event
func (r *PostgresEventRepository) CreateAttended(event *models.AttendedEvent) error {
	return r.db.Create(event).Error
}

// GetAttendedByUser retrieves a user's attended events, most recent first
func (r *PostgresEventRepository) GetAttendedByUser(userID uint) ([]models.AttendedEvent, error) {
	var events []models.AttendedEvent
	if err := r.db.Where("user_id = ?", userID).Order("attended_at DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// GetAttendedByUsers retrieves attended events for a set of users
func (r *PostgresEventRepository) GetAttendedByUsers(userIDs []uint) ([]models.AttendedEvent, error) {
	var events []models.AttendedEvent
	if len(userIDs) == 0 {
		return events, nil
	}
	if err := r.db.Where("user_id IN ?", userIDs).Order("attended_at DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// CreateWishlist saves an event to a user's wishlist
func (r *PostgresEventRepository) CreateWishlist(event *models.WishListEvent) error {
	return r.db.Create(event).Error
}

// GetWishlistByUser retrieves a user's wishlist, most recently added first
func (r *PostgresEventRepository) GetWishlistByUser(userID uint) ([]models.WishListEvent, error) {
	var events []models.WishListEvent
	if err := r.db.Where("user_id = ?", userID).Order("added_at DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteWishlist removes a wishlist entry owned by the user
func (r *PostgresEventRepository) DeleteWishlist(id, userID uint) (int64, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.WishListEvent{})
	return res.RowsAffected, res.Error
}
