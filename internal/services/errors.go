package services

import "errors"

// Service-level errors. Handlers map these to HTTP status codes.
var (
	ErrSelfTarget         = errors.New("cannot target yourself")
	ErrUserNotFound       = errors.New("user not found")
	ErrRequestExists      = errors.New("a pending friend request already exists between these users")
	ErrAlreadyFriends     = errors.New("users are already friends")
	ErrRequestNotFound    = errors.New("no pending friend request found")
	ErrNotFriends         = errors.New("users are not friends")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationResolved = errors.New("invitation already resolved")
	ErrInvitationExists   = errors.New("a pending invitation already exists for this user")
)
