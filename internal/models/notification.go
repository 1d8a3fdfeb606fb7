package models

import "time"

// Notification types emitted by relationship transitions.
const (
	NotificationTypeFriendRequest         = "friend_request"
	NotificationTypeFriendRequestAccepted = "friend_request_accepted"
	NotificationTypeInvitation            = "invitation"
	NotificationTypeInvitationAccepted    = "invitation_accepted"
)

// Notification represents a user notification (PostgreSQL).
// Rows are derived state: created and deleted only by relationship
// transitions, mutated only by mark-read.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	SenderID    *uint     `json:"sender_id,omitempty" gorm:"index"` // nil for system notifications
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Content     string    `json:"content"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
