package models

import "gorm.io/gorm"

// FriendRequestStatus is the lifecycle state of a friend request.
type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
	FriendRequestStatusDeclined FriendRequestStatus = "declined"
)

// FriendRequest represents a friend request between two users.
// Only pending rows survive: accept converts the pair into a Friendship and
// deletes the request; decline and cancel delete it outright.
type FriendRequest struct {
	gorm.Model
	SenderID   uint                `json:"sender_id" gorm:"uniqueIndex:idx_request_pair"`
	ReceiverID uint                `json:"receiver_id" gorm:"uniqueIndex:idx_request_pair"`
	Status     FriendRequestStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
}

// CreateFriendRequest defines the request body for sending a friend request
type CreateFriendRequest struct {
	ReceiverID uint `json:"receiver_id" validate:"required"`
}

// RespondFriendRequest defines the request body for accepting/rejecting a
// friend request, identified by the user who sent it.
type RespondFriendRequest struct {
	SenderID uint `json:"sender_id" validate:"required"`
}

// FriendRequestWithSender pairs a pending request with the sender's profile
// so list responses don't force a second round trip.
type FriendRequestWithSender struct {
	FriendRequest
	Sender PublicUser `json:"sender"`
}
