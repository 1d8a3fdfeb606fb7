package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/K1motho/pfol/internal/models"
	"github.com/K1motho/pfol/internal/repositories"
	"gorm.io/gorm"
)

// FriendshipService is the relationship state machine. Every mutating
// operation runs as one transaction: the existence checks, the store
// mutation, and the notification writes commit or roll back together.
// Transitions are one-shot: a second accept/reject/cancel fails instead of
// silently succeeding, and two racing calls resolve to one winner via
// conditional deletes inside the transaction.
type FriendshipService interface {
	SendFriendRequest(ctx context.Context, actorID, targetID uint) (*models.FriendRequest, error)
	CancelFriendRequest(ctx context.Context, actorID, targetID uint) error
	AcceptFriendRequest(ctx context.Context, actorID, senderID uint) error
	RejectFriendRequest(ctx context.Context, actorID, senderID uint) error
	Unfriend(ctx context.Context, actorID, targetID uint) error

	ListFriends(ctx context.Context, actorID uint) ([]models.PublicUser, error)
	ListPendingRequests(ctx context.Context, actorID uint) ([]models.FriendRequestWithSender, error)
	FriendProfile(ctx context.Context, actorID, targetID uint) (*FriendProfile, error)
	FriendEvents(ctx context.Context, actorID uint) ([]models.AttendedEvent, error)
	AreFriends(ctx context.Context, userA, userB uint) (bool, error)
}

// FriendProfile is a friend's profile together with the events both users
// attended, matched by the discovery provider's event_id.
type FriendProfile struct {
	User         models.PublicUser      `json:"user"`
	MutualEvents []models.AttendedEvent `json:"mutual_events"`
}

type friendshipService struct {
	tx    repositories.TxManager
	repos repositories.Repositories
}

// NewFriendshipService creates a new FriendshipService
func NewFriendshipService(tx repositories.TxManager, repos repositories.Repositories) FriendshipService {
	return &friendshipService{tx: tx, repos: repos}
}

// SendFriendRequest creates a pending request from actor to target and
// notifies the target. A pending request in either direction blocks a new
// one: the pair constraint is unordered.
func (s *friendshipService) SendFriendRequest(ctx context.Context, actorID, targetID uint) (*models.FriendRequest, error) {
	if actorID == targetID {
		return nil, ErrSelfTarget
	}

	var created *models.FriendRequest
	err := s.tx.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		actor, err := repos.Users.GetUserByID(actorID)
		if err != nil {
			return fmt.Errorf("loading actor %d: %w", actorID, err)
		}

		if _, err := repos.Users.GetUserByID(targetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("checking target user %d: %w", targetID, err)
		}

		areFriends, err := repos.Friendships.AreFriends(actorID, targetID)
		if err != nil {
			return fmt.Errorf("checking friendship: %w", err)
		}
		if areFriends {
			return ErrAlreadyFriends
		}

		if _, err := repos.FriendRequests.GetPendingBetween(actorID, targetID); err == nil {
			return ErrRequestExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("checking existing request: %w", err)
		}

		request := &models.FriendRequest{
			SenderID:   actorID,
			ReceiverID: targetID,
			Status:     models.FriendRequestStatusPending,
		}
		if err := repos.FriendRequests.Create(request); err != nil {
			return fmt.Errorf("creating friend request: %w", err)
		}

		notif := &models.Notification{
			Type:        models.NotificationTypeFriendRequest,
			SenderID:    &actorID,
			RecipientID: targetID,
			Content:     actor.Username + " sent you a friend request",
		}
		if err := repos.Notifications.CreateNotification(notif); err != nil {
			return fmt.Errorf("creating notification: %w", err)
		}

		created = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CancelFriendRequest withdraws a pending request the actor sent. The
// notification it produced is removed so the target never sees a stale
// actionable entry.
func (s *friendshipService) CancelFriendRequest(ctx context.Context, actorID, targetID uint) error {
	return s.tx.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		deleted, err := repos.FriendRequests.DeletePending(actorID, targetID)
		if err != nil {
			return fmt.Errorf("deleting friend request: %w", err)
		}
		if deleted == 0 {
			return ErrRequestNotFound
		}

		if err := repos.Notifications.DeleteMatching(targetID, actorID, models.NotificationTypeFriendRequest); err != nil {
			return fmt.Errorf("deleting notification: %w", err)
		}
		return nil
	})
}

// AcceptFriendRequest converts the pending request from senderID to the
// actor into a friendship. The conditional delete of the request decides
// races: whichever concurrent call removes the row proceeds, the other
// gets ErrRequestNotFound.
func (s *friendshipService) AcceptFriendRequest(ctx context.Context, actorID, senderID uint) error {
	return s.tx.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		deleted, err := repos.FriendRequests.DeletePending(senderID, actorID)
		if err != nil {
			return fmt.Errorf("deleting friend request: %w", err)
		}
		if deleted == 0 {
			return ErrRequestNotFound
		}

		// The pair may have become friends through an invitation while the
		// request sat pending; don't create a duplicate row.
		areFriends, err := repos.Friendships.AreFriends(senderID, actorID)
		if err != nil {
			return fmt.Errorf("checking friendship: %w", err)
		}
		if !areFriends {
			friendship := &models.Friendship{UserID1: senderID, UserID2: actorID}
			if err := repos.Friendships.Create(friendship); err != nil {
				return fmt.Errorf("creating friendship: %w", err)
			}
		}

		if err := repos.Notifications.DeleteMatching(actorID, senderID, models.NotificationTypeFriendRequest); err != nil {
			return fmt.Errorf("deleting originating notification: %w", err)
		}

		actor, err := repos.Users.GetUserByID(actorID)
		if err != nil {
			return fmt.Errorf("loading actor %d: %w", actorID, err)
		}

		notif := &models.Notification{
			Type:        models.NotificationTypeFriendRequestAccepted,
			SenderID:    &actorID,
			RecipientID: senderID,
			Content:     actor.Username + " accepted your friend request",
		}
		if err := repos.Notifications.CreateNotification(notif); err != nil {
			return fmt.Errorf("creating notification: %w", err)
		}
		return nil
	})
}

// RejectFriendRequest declines the pending request from senderID to the
// actor. The request and its notification are removed; the sender is not
// told (silent decline).
func (s *friendshipService) RejectFriendRequest(ctx context.Context, actorID, senderID uint) error {
	return s.tx.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		deleted, err := repos.FriendRequests.DeletePending(senderID, actorID)
		if err != nil {
			return fmt.Errorf("deleting friend request: %w", err)
		}
		if deleted == 0 {
			return ErrRequestNotFound
		}

		if err := repos.Notifications.DeleteMatching(actorID, senderID, models.NotificationTypeFriendRequest); err != nil {
			return fmt.Errorf("deleting originating notification: %w", err)
		}
		return nil
	})
}

// Unfriend removes the friendship between actor and target in both query
// directions (the single canonical row covers both).
func (s *friendshipService) Unfriend(ctx context.Context, actorID, targetID uint) error {
	return s.tx.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		deleted, err := repos.Friendships.Delete(actorID, targetID)
		if err != nil {
			return fmt.Errorf("deleting friendship: %w", err)
		}
		if deleted == 0 {
			return ErrNotFriends
		}
		return nil
	})
}

// ListFriends returns everyone connected to the actor by a friendship row.
func (s *friendshipService) ListFriends(ctx context.Context, actorID uint) ([]models.PublicUser, error) {
	friendIDs, err := s.repos.Friendships.GetFriendIDs(actorID)
	if err != nil {
		return nil, fmt.Errorf("getting friend IDs: %w", err)
	}

	users, err := s.repos.Users.GetUsersByIDs(friendIDs)
	if err != nil {
		return nil, fmt.Errorf("loading friends: %w", err)
	}

	friends := make([]models.PublicUser, 0, len(users))
	for i := range users {
		friends = append(friends, users[i].ToPublic())
	}
	return friends, nil
}

// ListPendingRequests returns the pending requests addressed to the actor,
// newest first, with each sender's profile attached.
func (s *friendshipService) ListPendingRequests(ctx context.Context, actorID uint) ([]models.FriendRequestWithSender, error) {
	requests, err := s.repos.FriendRequests.GetPendingForReceiver(actorID)
	if err != nil {
		return nil, fmt.Errorf("listing pending requests: %w", err)
	}

	result := make([]models.FriendRequestWithSender, 0, len(requests))
	for _, req := range requests {
		sender, err := s.repos.Users.GetUserByID(req.SenderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Sender account is gone; the orphaned request isn't actionable.
				continue
			}
			return nil, fmt.Errorf("loading sender %d: %w", req.SenderID, err)
		}
		result = append(result, models.FriendRequestWithSender{
			FriendRequest: req,
			Sender:        sender.ToPublic(),
		})
	}
	return result, nil
}

// FriendProfile returns the target's profile plus the attended events both
// users share. Only friends may look.
func (s *friendshipService) FriendProfile(ctx context.Context, actorID, targetID uint) (*FriendProfile, error) {
	areFriends, err := s.repos.Friendships.AreFriends(actorID, targetID)
	if err != nil {
		return nil, fmt.Errorf("checking friendship: %w", err)
	}
	if !areFriends {
		return nil, ErrNotFriends
	}

	target, err := s.repos.Users.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading user %d: %w", targetID, err)
	}

	actorEvents, err := s.repos.Events.GetAttendedByUser(actorID)
	if err != nil {
		return nil, fmt.Errorf("loading actor events: %w", err)
	}
	targetEvents, err := s.repos.Events.GetAttendedByUser(targetID)
	if err != nil {
		return nil, fmt.Errorf("loading target events: %w", err)
	}

	attended := make(map[string]bool, len(actorEvents))
	for _, e := range actorEvents {
		attended[e.EventID] = true
	}
	mutual := make([]models.AttendedEvent, 0)
	for _, e := range targetEvents {
		if attended[e.EventID] {
			mutual = append(mutual, e)
		}
	}

	return &FriendProfile{User: target.ToPublic(), MutualEvents: mutual}, nil
}

// FriendEvents returns every attended event belonging to any friend of the
// actor, most recent attendance first.
func (s *friendshipService) FriendEvents(ctx context.Context, actorID uint) ([]models.AttendedEvent, error) {
	friendIDs, err := s.repos.Friendships.GetFriendIDs(actorID)
	if err != nil {
		return nil, fmt.Errorf("getting friend IDs: %w", err)
	}
	if len(friendIDs) == 0 {
		return []models.AttendedEvent{}, nil
	}

	events, err := s.repos.Events.GetAttendedByUsers(friendIDs)
	if err != nil {
		return nil, fmt.Errorf("loading friend events: %w", err)
	}
	return events, nil
}

// AreFriends reports whether the two users are friends.
func (s *friendshipService) AreFriends(ctx context.Context, userA, userB uint) (bool, error) {
	return s.repos.Friendships.AreFriends(userA, userB)
}
