package models

import (
	"time"

	"gorm.io/gorm"
)

// AttendedEvent marks an event a user went to. EventID is the discovery
// provider's identifier, an opaque string, not a local foreign key.
type AttendedEvent struct {
	gorm.Model
	UserID     uint      `json:"user_id" gorm:"index"`
	EventID    string    `json:"event_id" gorm:"size:100;index"`
	Title      string    `json:"title"`
	Date       string    `json:"date"`
	ImageURL   string    `json:"image_url"`
	AttendedAt time.Time `json:"attended_at" gorm:"index"`
}

// WishListEvent is an event a user saved for later.
type WishListEvent struct {
	gorm.Model
	UserID   uint      `json:"user_id" gorm:"index"`
	EventID  string    `json:"event_id" gorm:"size:100;index"`
	Title    string    `json:"title"`
	Date     string    `json:"date"`
	ImageURL string    `json:"image_url"`
	AddedAt  time.Time `json:"added_at"`
}

// CreateEventEntry defines the request body for attended/wishlist entries
type CreateEventEntry struct {
	EventID  string `json:"event_id" validate:"required,max=100"`
	Title    string `json:"title" validate:"required"`
	Date     string `json:"date"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}
