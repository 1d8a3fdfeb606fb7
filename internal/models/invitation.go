package models

import "gorm.io/gorm"

// InvitationStatus is the lifecycle state of a QR invitation.
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusIgnored  InvitationStatus = "ignored"
)

// Invitation is the QR-code friending path. Unlike a FriendRequest the row
// is kept after resolution, with its final status, as an audit trail.
type Invitation struct {
	gorm.Model
	SenderID   uint             `json:"sender_id" gorm:"index"`
	ReceiverID uint             `json:"receiver_id" gorm:"index"`
	Status     InvitationStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
}

// CreateInvitation defines the request body for creating an invitation
type CreateInvitation struct {
	ReceiverID uint `json:"receiver_id" validate:"required"`
}

// UpdateInvitation defines the request body for responding to an invitation
type UpdateInvitation struct {
	Action string `json:"action" validate:"required,oneof=accept ignore"`
}
