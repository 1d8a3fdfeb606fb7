package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/K1motho/pfol/internal/models"
	"github.com/K1motho/pfol/internal/repositories"
	"gorm.io/gorm"
)

// InvitationAction is what a receiver can do with a pending invitation.
type InvitationAction string

const (
	InvitationActionAccept InvitationAction = "accept"
	InvitationActionIgnore InvitationAction = "ignore"
)

// InvitationService handles the QR-code friending path. Accepting an
// invitation establishes the same canonical friendship as accepting a
// friend request, but the invitation row survives with its final status.
type InvitationService interface {
	CreateInvitation(ctx context.Context, actorID, targetID uint) (*models.Invitation, error)
	ListInvitations(ctx context.Context, actorID uint) ([]models.Invitation, error)
	RespondToInvitation(ctx context.Context, actorID, invitationID uint, action InvitationAction) (*models.Invitation, error)
}

type invitationService struct {
	tx    repositories.TxManager
	repos repositories.Repositories
}

// NewInvitationService creates a new InvitationService
func NewInvitationService(tx repositories.TxManager, repos repositories.Repositories) InvitationService {
	return &invitationService{tx: tx, repos: repos}
}

// CreateInvitation issues a pending invitation from actor to target and
// notifies the target.
func (s *invitationService) CreateInvitation(ctx context.Context, actorID, targetID uint) (*models.Invitation, error) {
	if actorID == targetID {
		return nil, ErrSelfTarget
	}

	var created *models.Invitation
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

		// A pending friend request already represents an open offer between
		// the pair; don't stack a second path onto it.
		if _, err := repos.FriendRequests.GetPendingBetween(actorID, targetID); err == nil {
			return ErrRequestExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("checking existing request: %w", err)
		}

		if _, err := repos.Invitations.GetPendingBetween(actorID, targetID); err == nil {
			return ErrInvitationExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("checking existing invitation: %w", err)
		}

		invitation := &models.Invitation{
			SenderID:   actorID,
			ReceiverID: targetID,
			Status:     models.InvitationStatusPending,
		}
		if err := repos.Invitations.Create(invitation); err != nil {
			return fmt.Errorf("creating invitation: %w", err)
		}

		notif := &models.Notification{
			Type:        models.NotificationTypeInvitation,
			SenderID:    &actorID,
			RecipientID: targetID,
			Content:     actor.Username + " invited you to connect",
		}
		if err := repos.Notifications.CreateNotification(notif); err != nil {
			return fmt.Errorf("creating notification: %w", err)
		}

		created = invitation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListInvitations returns invitations the actor sent or received, newest first.
func (s *invitationService) ListInvitations(ctx context.Context, actorID uint) ([]models.Invitation, error) {
	invitations, err := s.repos.Invitations.GetForUser(actorID)
	if err != nil {
		return nil, fmt.Errorf("listing invitations: %w", err)
	}
	return invitations, nil
}

// RespondToInvitation resolves a pending invitation addressed to the actor.
// Accept creates the friendship and tells the inviter; ignore is silent.
// The conditional status update decides races: only one concurrent respond
// flips the row, the other gets ErrInvitationResolved.
func (s *invitationService) RespondToInvitation(ctx context.Context, actorID, invitationID uint, action InvitationAction) (*models.Invitation, error) {
	var resolved *models.Invitation
	err := s.tx.WithinTransaction(ctx, func(repos repositories.Repositories) error {
		invitation, err := repos.Invitations.GetByID(invitationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvitationNotFound
			}
			return fmt.Errorf("loading invitation %d: %w", invitationID, err)
		}
		if invitation.ReceiverID != actorID {
			// Not addressed to the actor; don't reveal that the row exists.
			return ErrInvitationNotFound
		}
		if invitation.Status != models.InvitationStatusPending {
			return ErrInvitationResolved
		}

		status := models.InvitationStatusIgnored
		if action == InvitationActionAccept {
			status = models.InvitationStatusAccepted
		}

		updated, err := repos.Invitations.ResolveIfPending(invitationID, status)
		if err != nil {
			return fmt.Errorf("resolving invitation: %w", err)
		}
		if updated == 0 {
			return ErrInvitationResolved
		}
		invitation.Status = status

		if action == InvitationActionAccept {
			// The pair may have become friends through a friend request while
			// this invitation sat pending; don't create a duplicate row.
			areFriends, err := repos.Friendships.AreFriends(invitation.SenderID, actorID)
			if err != nil {
				return fmt.Errorf("checking friendship: %w", err)
			}
			if !areFriends {
				friendship := &models.Friendship{UserID1: invitation.SenderID, UserID2: actorID}
				if err := repos.Friendships.Create(friendship); err != nil {
					return fmt.Errorf("creating friendship: %w", err)
				}
			}

			actor, err := repos.Users.GetUserByID(actorID)
			if err != nil {
				return fmt.Errorf("loading actor %d: %w", actorID, err)
			}
			notif := &models.Notification{
				Type:        models.NotificationTypeInvitationAccepted,
				SenderID:    &actorID,
				RecipientID: invitation.SenderID,
				Content:     actor.Username + " accepted your invitation",
			}
			if err := repos.Notifications.CreateNotification(notif); err != nil {
				return fmt.Errorf("creating notification: %w", err)
			}
		}

		resolved = invitation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}
