package repositories

import (
	"github.com/K1motho/pfol/internal/models"
	"gorm.io/gorm"
)

// InvitationRepository defines the interface for QR invitation data operations
type InvitationRepository interface {
	Create(invitation *models.Invitation) error
	GetByID(id uint) (*models.Invitation, error)
	GetForUser(userID uint) ([]models.Invitation, error)
	GetPendingBetween(senderID, receiverID uint) (*models.Invitation, error)
	// ResolveIfPending flips a pending invitation to the given status and
	// reports how many rows changed. Zero means the invitation was already
	// resolved by a concurrent call.
	ResolveIfPending(id uint, status models.InvitationStatus) (int64, error)
}

// PostgresInvitationRepository implements InvitationRepository for PostgreSQL
type PostgresInvitationRepository struct {
	db *gorm.DB
}

// NewPostgresInvitationRepository creates a new PostgresInvitationRepository
func NewPostgresInvitationRepository(db *gorm.DB) *PostgresInvitationRepository {
	return &PostgresInvitationRepository{db: db}
}

// Create creates a new invitation
func (r *PostgresInvitationRepository) Create(invitation *models.Invitation) error {
	return r.db.Create(invitation).Error
}

// GetByID retrieves an invitation by ID
func (r *PostgresInvitationRepository) GetByID(id uint) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.First(&invitation, id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// GetForUser retrieves all invitations sent or received by a user
func (r *PostgresInvitationRepository) GetForUser(userID uint) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := r.db.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// GetPendingBetween retrieves a pending invitation for the ordered pair
func (r *PostgresInvitationRepository) GetPendingBetween(senderID, receiverID uint) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.Where("sender_id = ? AND receiver_id = ? AND status = ?",
		senderID, receiverID, models.InvitationStatusPending).First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// ResolveIfPending updates a pending invitation to the given final status
func (r *PostgresInvitationRepository) ResolveIfPending(id uint, status models.InvitationStatus) (int64, error) {
	res := r.db.Model(&models.Invitation{}).
		Where("id = ? AND status = ?", id, models.InvitationStatusPending).
		Update("status", status)
	return res.RowsAffected, res.Error
}
